package genai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const threeDraftPayload = `{
  "emails": [
    {"subject": "Re: Meeting", "content": "Works for me."},
    {"subject": "Re: Meeting", "content": "Tuesday works; should we keep the same agenda?"},
    {"subject": "Re: Meeting", "content": "Tuesday works well for me. I will prepare the quarterly numbers beforehand so we can go through them together. Let me know if the usual room is booked."}
  ]
}`

func TestParseReplySet(t *testing.T) {
	t.Run("bare JSON object", func(t *testing.T) {
		set, err := ParseReplySet(threeDraftPayload)
		require.NoError(t, err)
		require.Len(t, set.Emails, DraftCount)
		assert.Equal(t, "Works for me.", set.Concise().Content)
		assert.Contains(t, set.Balanced().Content, "agenda")
		assert.Contains(t, set.Detailed().Content, "quarterly numbers")
	})

	t.Run("fenced payload is equivalent to bare", func(t *testing.T) {
		fenced := "```json\n" + threeDraftPayload + "\n```"
		bare, err := ParseReplySet(threeDraftPayload)
		require.NoError(t, err)
		got, err := ParseReplySet(fenced)
		require.NoError(t, err)
		assert.Equal(t, bare, got)
	})

	t.Run("surrounding prose is ignored", func(t *testing.T) {
		wrapped := "Here are your drafts:\n\n" + threeDraftPayload + "\n\nLet me know if you need more."
		set, err := ParseReplySet(wrapped)
		require.NoError(t, err)
		assert.Len(t, set.Emails, DraftCount)
	})

	t.Run("wrong draft count", func(t *testing.T) {
		_, err := ParseReplySet(`{"emails":[{"subject":"a","content":"b"},{"subject":"c","content":"d"}]}`)
		var ferr *FormatError
		require.ErrorAs(t, err, &ferr)
		assert.Contains(t, ferr.Error(), "expected format")
	})

	t.Run("no JSON object at all", func(t *testing.T) {
		_, err := ParseReplySet("I'm sorry, I cannot help with that.")
		var ferr *FormatError
		assert.ErrorAs(t, err, &ferr)
	})

	t.Run("garbage between braces", func(t *testing.T) {
		_, err := ParseReplySet("{ this is not json }")
		var ferr *FormatError
		assert.ErrorAs(t, err, &ferr)
		assert.Error(t, errors.Unwrap(err))
	})
}

func TestParseSummary(t *testing.T) {
	t.Run("fenced summary", func(t *testing.T) {
		s, err := ParseSummary("```json\n{\"content\": \"They moved the meeting to Tuesday.\"}\n```")
		require.NoError(t, err)
		assert.Equal(t, "They moved the meeting to Tuesday.", s.Content)
	})

	t.Run("empty content is a format error", func(t *testing.T) {
		_, err := ParseSummary(`{"content": ""}`)
		var ferr *FormatError
		assert.ErrorAs(t, err, &ferr)
	})

	t.Run("no object", func(t *testing.T) {
		_, err := ParseSummary("no structure here")
		var ferr *FormatError
		assert.ErrorAs(t, err, &ferr)
	})
}

func TestFormatErrorMessage(t *testing.T) {
	err := &FormatError{Reason: "expected 3 drafts, got 2"}
	assert.Equal(t, "the AI response was not in the expected format: expected 3 drafts, got 2", err.Error())
}
