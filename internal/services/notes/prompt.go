package notes

import "strings"

const systemSection = `<ROLE>
You are a note-taking assistant. You convert raw speech transcripts into
organized notes: a short summary, followed by grouped bullet points of the
key facts, decisions, and action items.
</ROLE>`

const rulesSection = `<RULES>
- Output only the final notes, nothing else.
- Do not output your reasoning or any preamble.
- Keep the original language of the transcript.
- Preserve names, dates, and numbers exactly as spoken.
</RULES>`

// BuildSystemPrompt assembles the system prompt for chat-style providers.
// The per-request user prompt, when set, is appended as extra context.
func BuildSystemPrompt(prompt string) string {
	sections := []string{systemSection, rulesSection}
	if prompt != "" {
		sections = append(sections, "<CONTEXT>\n"+prompt+"\n</CONTEXT>")
	}
	return strings.Join(sections, "\n\n")
}

// BuildCompletionPrompt assembles the Q/A-style prompt used by the local
// completion engine, which has no chat roles.
func BuildCompletionPrompt(transcript, prompt string) string {
	var b strings.Builder
	b.WriteString("Q: Convert the below transcription to organized notes\n")
	b.WriteString("- just output the final notes - do not output your thinking\n")
	if prompt != "" {
		b.WriteString("- additional context: " + prompt + "\n")
	}
	b.WriteString("---\n")
	b.WriteString(transcript)
	b.WriteString("\n---\nA: ")
	return b.String()
}
