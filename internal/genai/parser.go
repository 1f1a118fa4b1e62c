package genai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// extractJSONObject locates the JSON object embedded in a completion
// response. Assistants routinely wrap the payload in triple-backtick
// fences or surround it with prose, so the payload is taken as the span
// from the first '{' to the last '}'.
func extractJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// ParseReplySet decodes a reply-generation response. Anything other than
// a JSON object with exactly DraftCount drafts is a FormatError.
func ParseReplySet(text string) (ReplySet, error) {
	payload, ok := extractJSONObject(text)
	if !ok {
		return ReplySet{}, &FormatError{Reason: "no JSON object found"}
	}
	var set ReplySet
	if err := json.Unmarshal([]byte(payload), &set); err != nil {
		return ReplySet{}, &FormatError{Err: err}
	}
	if len(set.Emails) != DraftCount {
		return ReplySet{}, &FormatError{
			Reason: fmt.Sprintf("expected %d drafts, got %d", DraftCount, len(set.Emails)),
		}
	}
	return set, nil
}

// ParseSummary decodes a summary response.
func ParseSummary(text string) (Summary, error) {
	payload, ok := extractJSONObject(text)
	if !ok {
		return Summary{}, &FormatError{Reason: "no JSON object found"}
	}
	var summary Summary
	if err := json.Unmarshal([]byte(payload), &summary); err != nil {
		return Summary{}, &FormatError{Err: err}
	}
	if summary.Content == "" {
		return Summary{}, &FormatError{Reason: "empty summary content"}
	}
	return summary, nil
}
