package genai

import (
	"fmt"
	"strings"
)

// SystemRole is the system message every generation call carries.
const SystemRole = "You are a professional email responder."

const replyPromptHeader = `You are an expert professional email response assistant.

Your task is to generate high-quality, context-aware email replies that reflect the expertise, tone, and caution of the assigned professional role.

You MUST strictly follow the assigned role.
You MUST NOT act outside the assigned role.
You MUST NOT provide definitive legal, medical, or financial advice.
You MUST NOT invent facts, policies, laws, or company rules.
You MUST NOT mention internal reasoning, analysis, or role selection.

If the assigned role involves legal or HR matters, responses must remain neutral, cautious, and non-binding.

OUTPUT REQUIREMENTS:
- Generate exactly THREE reply options:
  1. Concise
  2. Balanced
  3. Detailed
- Replies must be ready to send.
- Do NOT include explanations, labels, or formatting notes.
- Do NOT ask follow-up questions.
- Do NOT add disclaimers unless strictly required by the role.`

const replyPromptSchema = `The output must be a structured JSON object of the following form:

` + "```json" + `
{
  "emails": [
    {
      "subject": "String",
      "content": "String"
    }
  ]
}
` + "```"

// ReplyPrompt builds the user prompt for reply generation. When notes
// are supplied, the assistant is instructed to prioritize them over the
// tone it would otherwise infer from the email.
func ReplyPrompt(emailBody, notes string) string {
	var b strings.Builder
	b.WriteString(replyPromptHeader)
	b.WriteString("\n\n────────────────────────\nEMAIL CONTENT:\n")
	b.WriteString(emailBody)
	b.WriteString("\n\nThe email content is provided above; you need to write a reply for it.\n")
	if notes = strings.TrimSpace(notes); notes != "" {
		b.WriteString("\nUSER NOTES:\n")
		b.WriteString(notes)
		b.WriteString("\n\nThe notes above come from the user composing the reply. Prioritize them over any tone or content you would otherwise infer from the email.\n")
	}
	b.WriteString("\n")
	b.WriteString(replyPromptSchema)
	return b.String()
}

// SummaryPrompt builds the user prompt for summarizing an email body.
// The summary must be strictly shorter than the source.
func SummaryPrompt(emailBody string) string {
	return fmt.Sprintf(`You are an expert email summarization assistant.

Summarize the email content below. The summary MUST be strictly shorter than the source text, preserve the key facts and any requested actions, and add nothing that is not in the source.

────────────────────────
EMAIL CONTENT:
%s

The output must be a structured JSON object of the following form:

`+"```json"+`
{
  "content": "String"
}
`+"```", emailBody)
}
