package gmail

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"
	"time"
)

// Message is the domain representation of a single mail message, derived
// from the provider wire format. Messages are constructed fresh on every
// fetch and never mutated.
type Message struct {
	ID              string
	ThreadID        string
	Subject         string
	From            string
	FromEmail       string
	Snippet         string
	MessageIDHeader string
	InternalDate    time.Time
	IsUnread        bool
	BodyHTML        string
	BodyPlain       string
}

var fromAddrPattern = regexp.MustCompile(`<(.+)>`)

// ParseMessage converts a raw wire message into a domain Message. The
// Subject, From and Message-ID (or Message-Id) headers are mandatory even
// though the wire format marks them optional; a message missing any of
// them yields ok=false and contributes nothing downstream. An absent or
// unparseable internal date is not a failure and leaves InternalDate at
// its zero value.
func ParseMessage(raw *RawMessage) (Message, bool) {
	if raw == nil || raw.Payload == nil {
		return Message{}, false
	}

	subject, ok := lookupHeader(raw.Payload.Headers, "Subject")
	if !ok {
		return Message{}, false
	}
	from, ok := lookupHeader(raw.Payload.Headers, "From")
	if !ok {
		return Message{}, false
	}
	// Case-insensitive lookup covers the Message-Id spelling too.
	messageID, ok := lookupHeader(raw.Payload.Headers, "Message-ID")
	if !ok {
		return Message{}, false
	}

	fromEmail := from
	if m := fromAddrPattern.FindStringSubmatch(from); m != nil {
		fromEmail = m[1]
	}

	body := ExtractBody(raw.Payload)

	return Message{
		ID:              raw.ID,
		ThreadID:        raw.ThreadID,
		Subject:         subject,
		From:            from,
		FromEmail:       fromEmail,
		Snippet:         raw.Snippet,
		MessageIDHeader: messageID,
		InternalDate:    raw.InternalDate.Time(),
		IsUnread:        slices.Contains(raw.LabelIDs, "UNREAD"),
		BodyHTML:        body.HTML,
		BodyPlain:       body.Plain,
	}, true
}

// ParseThread parses every message of a thread and returns them ordered
// ascending by internal date. Messages without a date sort first, and
// unparseable messages are dropped.
func ParseThread(raws []*RawMessage) []Message {
	msgs := make([]Message, 0, len(raws))
	for _, raw := range raws {
		if m, ok := ParseMessage(raw); ok {
			msgs = append(msgs, m)
		}
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].InternalDate.Before(msgs[j].InternalDate)
	})
	return msgs
}

// Body returns the preferred body text of the message: the plain-text
// variant when present, otherwise the snippet.
func (m Message) Body() string {
	if m.BodyPlain != "" {
		return m.BodyPlain
	}
	return m.Snippet
}

// GravatarURL derives the sender's avatar URL from the address, falling
// back to an identicon when no avatar is registered. Empty addresses
// yield "".
func (m Message) GravatarURL() string {
	email := strings.TrimSpace(strings.ToLower(m.FromEmail))
	if email == "" {
		return ""
	}
	sum := md5.Sum([]byte(email))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?d=identicon&s=80", hex.EncodeToString(sum[:]))
}

// FormatDisplayDate renders a message timestamp the way inbox rows show
// it: time of day for today, weekday within the last week, month and day
// within the current year, numeric date otherwise. The reference time is
// explicit so the function stays pure.
func FormatDisplayDate(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	t = t.In(now.Location())
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	switch {
	case ty == ny && tm == nm && td == nd:
		return t.Format("3:04 PM")
	case now.Sub(t) < 7*24*time.Hour && now.After(t):
		return t.Format("Monday")
	case ty == ny:
		return t.Format("Jan 2")
	default:
		return t.Format("1/2/06")
	}
}
