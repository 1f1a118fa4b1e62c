package genai

import "fmt"

// DraftCount is the number of reply drafts every generation produces:
// concise, balanced, detailed.
const DraftCount = 3

// GeneratedReply is one ready-to-send draft.
type GeneratedReply struct {
	Subject string `json:"subject"`
	Content string `json:"content"`
}

// ReplySet is the ordered set of generated drafts. The parser guarantees
// exactly DraftCount entries: index 0 is the concise draft (used for
// silent auto-fill), index 2 the detailed one (used for the user-reviewed
// reply flow).
type ReplySet struct {
	Emails []GeneratedReply `json:"emails"`
}

// Concise returns the first (concise) draft.
func (s ReplySet) Concise() GeneratedReply { return s.Emails[0] }

// Balanced returns the middle (balanced) draft.
func (s ReplySet) Balanced() GeneratedReply { return s.Emails[1] }

// Detailed returns the last (detailed) draft.
func (s ReplySet) Detailed() GeneratedReply { return s.Emails[2] }

// Summary is a one-shot condensation of a message body.
type Summary struct {
	Content string `json:"content"`
}

// FormatError reports that the assistant's response text did not contain
// a parseable JSON payload of the expected shape. It is deliberately a
// different kind from transport errors so the two are never confused in
// user-facing messages.
type FormatError struct {
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	msg := "the AI response was not in the expected format"
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Err }
