package genai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplyPrompt(t *testing.T) {
	t.Run("carries the email and the contract", func(t *testing.T) {
		p := ReplyPrompt("Can we move the meeting to Tuesday?", "")
		assert.Contains(t, p, "EMAIL CONTENT:\nCan we move the meeting to Tuesday?")
		assert.Contains(t, p, "exactly THREE reply options")
		assert.Contains(t, p, "Concise")
		assert.Contains(t, p, "Balanced")
		assert.Contains(t, p, "Detailed")
		assert.Contains(t, p, `"emails"`)
		assert.NotContains(t, p, "USER NOTES")
	})

	t.Run("notes are included and prioritized", func(t *testing.T) {
		p := ReplyPrompt("Can we move the meeting?", "decline politely")
		assert.Contains(t, p, "USER NOTES:\ndecline politely")
		assert.Contains(t, p, "Prioritize them over any tone")
	})

	t.Run("whitespace-only notes are treated as absent", func(t *testing.T) {
		p := ReplyPrompt("body", "   \n ")
		assert.NotContains(t, p, "USER NOTES")
	})

	t.Run("schema comes after the email content", func(t *testing.T) {
		p := ReplyPrompt("body text", "")
		assert.Greater(t, strings.Index(p, "```json"), strings.Index(p, "EMAIL CONTENT:"))
	})
}

func TestSummaryPrompt(t *testing.T) {
	p := SummaryPrompt("Long email body here.")
	assert.Contains(t, p, "EMAIL CONTENT:\nLong email body here.")
	assert.Contains(t, p, "strictly shorter")
	assert.Contains(t, p, `"content"`)
}
