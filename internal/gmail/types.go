package gmail

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// ThreadList is the response of the threads listing endpoint.
type ThreadList struct {
	Threads []ThreadSummary `json:"threads"`
}

// ThreadSummary is the lightweight thread handle returned by the listing
// endpoint. It is only used to drive the per-thread full fetch.
type ThreadSummary struct {
	ID        string `json:"id"`
	HistoryID string `json:"historyId,omitempty"`
}

// Thread is the full-format thread response.
type Thread struct {
	ID       string        `json:"id"`
	Messages []*RawMessage `json:"messages"`
}

// Header is a single RFC822 header as the API returns it.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Body carries the base64url-encoded content of a payload part. Large
// bodies are referenced by attachment ID instead of inline data.
type Body struct {
	Data         string `json:"data,omitempty"`
	AttachmentID string `json:"attachmentId,omitempty"`
	Size         int64  `json:"size,omitempty"`
}

// Part is one node of the recursive MIME payload tree. A node either
// carries a body of its own or expands into nested parts.
type Part struct {
	PartID   string   `json:"partId,omitempty"`
	MimeType string   `json:"mimeType,omitempty"`
	Filename string   `json:"filename,omitempty"`
	Headers  []Header `json:"headers,omitempty"`
	Body     *Body    `json:"body,omitempty"`
	Parts    []*Part  `json:"parts,omitempty"`
}

// RawMessage is the provider-wire representation of a single message.
type RawMessage struct {
	ID           string   `json:"id"`
	ThreadID     string   `json:"threadId"`
	Snippet      string   `json:"snippet,omitempty"`
	LabelIDs     []string `json:"labelIds,omitempty"`
	InternalDate Millis   `json:"internalDate,omitempty"`
	Payload      *Part    `json:"payload,omitempty"`
}

// SendRequest is the body of the message send endpoint: the fully formed
// MIME message base64url-encoded into a single field, plus the thread the
// reply belongs to.
type SendRequest struct {
	Raw      string `json:"raw"`
	ThreadID string `json:"threadId,omitempty"`
}

// SendResponse is the send endpoint's response. Decode success is all the
// caller needs; the provider-assigned identifiers are not used.
type SendResponse struct {
	ID       string `json:"id,omitempty"`
	ThreadID string `json:"threadId,omitempty"`
}

// Millis is a milliseconds-since-epoch timestamp. The API returns it as a
// quoted string, but the wire contract also permits a bare number, so both
// forms decode. Zero means the timestamp is absent.
type Millis int64

// UnmarshalJSON accepts both "1700000000000" and 1700000000000. Malformed
// values decode to zero rather than failing the enclosing message.
func (m *Millis) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*m = 0
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			*m = 0
			return nil
		}
		n = int64(f)
	}
	*m = Millis(n)
	return nil
}

// MarshalJSON emits the quoted form the API itself uses.
func (m Millis) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatInt(int64(m), 10))
}

// Time converts the timestamp to a time.Time. The zero value maps to the
// zero time, which sorts before every real timestamp.
func (m Millis) Time() time.Time {
	if m == 0 {
		return time.Time{}
	}
	return time.UnixMilli(int64(m)).UTC()
}
