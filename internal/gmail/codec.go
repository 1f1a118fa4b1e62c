package gmail

import (
	"encoding/base64"
	"strings"
)

// DecodeBase64URL decodes the base64url wire format used for message
// bodies and raw MIME payloads. Both padded and unpadded input are
// accepted, as is standard-alphabet base64 (some providers mix the two).
// Malformed input yields ok=false rather than an error: callers treat it
// as "no body available".
func DecodeBase64URL(s string) ([]byte, bool) {
	s = strings.ReplaceAll(s, "-", "+")
	s = strings.ReplaceAll(s, "_", "/")
	if n := len(s) % 4; n != 0 {
		s += strings.Repeat("=", 4-n)
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, false
	}
	return b, true
}

// EncodeBase64URL encodes bytes into the provider's base64url form:
// standard base64 with '-' and '_' substituted and trailing padding
// stripped.
func EncodeBase64URL(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// BodyContent holds the decoded body variants of a message.
type BodyContent struct {
	HTML  string
	Plain string
}

// ExtractBody walks the payload tree and decodes the HTML and plain-text
// bodies. When the payload has no parts, its own body is decoded and
// classified by the top-level MIME type (text/html goes to the HTML slot,
// anything else to the plain slot). With parts, the tree is visited
// depth-first: nodes with nested parts are expanded rather than decoded,
// and each leaf fills its slot only if that slot is still empty, so the
// first occurrence in traversal order wins. Leaves that are missing a
// body or fail to decode are skipped.
func ExtractBody(payload *Part) BodyContent {
	var bc BodyContent
	if payload == nil {
		return bc
	}
	if len(payload.Parts) == 0 {
		data, ok := decodePartBody(payload)
		if !ok {
			return bc
		}
		if strings.Contains(strings.ToLower(payload.MimeType), "text/html") {
			bc.HTML = data
		} else {
			bc.Plain = data
		}
		return bc
	}
	for _, part := range payload.Parts {
		walkBody(part, &bc)
	}
	return bc
}

func walkBody(p *Part, bc *BodyContent) {
	if p == nil {
		return
	}
	if len(p.Parts) > 0 {
		for _, sub := range p.Parts {
			walkBody(sub, bc)
		}
		return
	}
	mimeType := strings.ToLower(p.MimeType)
	switch {
	case strings.Contains(mimeType, "text/html"):
		if bc.HTML == "" {
			if data, ok := decodePartBody(p); ok {
				bc.HTML = data
			}
		}
	case strings.Contains(mimeType, "text/plain"):
		if bc.Plain == "" {
			if data, ok := decodePartBody(p); ok {
				bc.Plain = data
			}
		}
	}
}

func decodePartBody(p *Part) (string, bool) {
	if p.Body == nil || p.Body.Data == "" {
		return "", false
	}
	b, ok := DecodeBase64URL(p.Body.Data)
	if !ok {
		return "", false
	}
	return string(b), true
}

// lookupHeader finds a header by case-insensitive exact name match. The
// second return value distinguishes an absent header from an empty one.
func lookupHeader(headers []Header, name string) (string, bool) {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value, true
		}
	}
	return "", false
}

// HeaderValue extracts a header value from a raw message, or "" when the
// header (or the whole payload) is absent.
func HeaderValue(m *RawMessage, name string) string {
	if m == nil || m.Payload == nil {
		return ""
	}
	v, _ := lookupHeader(m.Payload.Headers, name)
	return v
}
