package counsel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/w-h-a/counsel/history"
	"github.com/w-h-a/counsel/vectorstore"
)

func TestBuildPromptEmbedsAllSections(t *testing.T) {
	prompt := BuildPrompt(PromptInput{
		LegalText:  "[Source: Rent_Laws.pdf]\nThe authorized rent shall not be exceeded.",
		Transcript: "User: earlier question\nLegal AI: earlier answer",
		Question:   "May a landlord raise the rent?",
	})

	assert.Contains(t, prompt, "Sri Lankan law")
	assert.Contains(t, prompt, "authorized rent shall not be exceeded")
	assert.Contains(t, prompt, "earlier question")
	assert.Contains(t, prompt, "May a landlord raise the rent?")
	assert.Contains(t, prompt, "NEVER fabricate")
}

func TestBuildPromptWithNoLegalText(t *testing.T) {
	prompt := BuildPrompt(PromptInput{Question: "anything"})

	assert.Contains(t, prompt, "No relevant legal text was retrieved")
	assert.Contains(t, prompt, "(no prior conversation)")
}

func TestFormatLegalTextSeparatesChunksAndKeepsSources(t *testing.T) {
	text := FormatLegalText([]vectorstore.Record{
		{Content: "Section 7 text.", Source: "Property_and_Land_Laws.pdf"},
		{Content: "Section 10 text.", Source: "Rent_Laws.pdf"},
	})

	assert.Contains(t, text, "[Source: Property_and_Land_Laws.pdf]")
	assert.Contains(t, text, "[Source: Rent_Laws.pdf]")
	assert.Contains(t, text, "---")
	assert.Contains(t, text, "Section 7 text.")
}

func TestFormatLegalTextEmpty(t *testing.T) {
	assert.Empty(t, FormatLegalText(nil))
}

func TestFormatTranscriptLabelsRoles(t *testing.T) {
	transcript := FormatTranscript([]history.Turn{
		{Role: history.RoleUser, Content: "a question"},
		{Role: history.RoleAssistant, Content: "an answer"},
	})

	assert.Equal(t, "User: a question\nLegal AI: an answer", transcript)
}
