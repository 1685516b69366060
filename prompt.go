package counsel

import (
	"fmt"
	"strings"

	"github.com/w-h-a/counsel/history"
	"github.com/w-h-a/counsel/vectorstore"
)

const (
	noLegalText = "No relevant legal text was retrieved for this question."

	promptInstructions = `You are a highly specialized Legal AI Assistant trained exclusively in Sri Lankan law. You MUST provide legally accurate answers ONLY using the extracted legal content below: the Constitution of Sri Lanka, official Acts and Ordinances, and verified statute text from the loaded documents. DO NOT use laws from foreign jurisdictions or uncited assumptions.`

	promptGuidelines = `RESPONSE GUIDELINES:
1. Provide a legally correct answer based ONLY on the extracted legal content above.
2. Cite specific sections or articles (e.g. Section 7 of the Land Development Ordinance).
3. If the user cited a non-existent or wrong law, politely correct them and refer to the accurate law.
4. Use clear and formal legal English.
5. NEVER fabricate legal acts, ordinance numbers, or citations.
6. If no relevant legal text was retrieved, say plainly that no matching law was found; do not invent one.`
)

// PromptInput carries the typed fields the prompt is assembled from, so the
// template can change without touching call sites.
type PromptInput struct {
	LegalText  string
	Transcript string
	Question   string
}

func BuildPrompt(input PromptInput) string {
	legalText := input.LegalText
	if len(strings.TrimSpace(legalText)) == 0 {
		legalText = noLegalText
	}

	transcript := input.Transcript
	if len(strings.TrimSpace(transcript)) == 0 {
		transcript = "(no prior conversation)"
	}

	var b strings.Builder

	b.WriteString(promptInstructions)
	b.WriteString("\n\nExtracted Legal Content:\n")
	b.WriteString(legalText)
	b.WriteString("\n\nConversation History:\n")
	b.WriteString(transcript)
	b.WriteString("\n\nUser's Current Legal Question:\n")
	b.WriteString(strings.TrimSpace(input.Question))
	b.WriteString("\n\n")
	b.WriteString(promptGuidelines)

	return b.String()
}

// FormatLegalText concatenates retrieved chunks with clear separation and
// their source documents. Nothing is stripped from the chunk text.
func FormatLegalText(records []vectorstore.Record) string {
	if len(records) == 0 {
		return ""
	}

	var b strings.Builder

	for i, rec := range records {
		if i > 0 {
			b.WriteString("\n\n---\n\n")
		}
		b.WriteString(fmt.Sprintf("[Source: %s]\n", rec.Source))
		b.WriteString(rec.Content)
	}

	return b.String()
}

// FormatTranscript labels each turn by role, matching the transcript shape
// the model is prompted with.
func FormatTranscript(turns []history.Turn) string {
	var b strings.Builder

	for i, turn := range turns {
		if i > 0 {
			b.WriteString("\n")
		}
		label := "User"
		if turn.Role == history.RoleAssistant {
			label = "Legal AI"
		}
		b.WriteString(fmt.Sprintf("%s: %s", label, turn.Content))
	}

	return b.String()
}
