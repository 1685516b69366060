// Package counsel is the retrieval-augmented legal assistant core. It
// wires language detection and translation around MMR retrieval and
// constrained answer generation, and records every exchange in per-session
// history with durable archival keyed by user identity.
package counsel

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/w-h-a/counsel/generator"
	"github.com/w-h-a/counsel/history"
	"github.com/w-h-a/counsel/translator"
	"github.com/w-h-a/counsel/vectorstore"
)

const (
	english = "en"

	// FallbackAnswer is what callers see when any step of the exchange
	// fails. Raw collaborator errors never reach the caller.
	FallbackAnswer = "I'm unable to generate a response right now. Please try again later."

	emptyQuestionAnswer = "No question provided."
)

// Retriever returns the ranked, diversified chunks relevant to a question.
type Retriever interface {
	Retrieve(ctx context.Context, question string) ([]vectorstore.Record, error)
}

type AskRequest struct {
	Question string `json:"question"`
	// UserId identifies the caller for history archival. Empty means
	// anonymous: history stays in memory only.
	UserId string `json:"user_id,omitempty"`
	// SessionKey scopes the in-memory transcript for anonymous callers
	// (e.g. a web session cookie). Defaults to UserId.
	SessionKey string `json:"session_key,omitempty"`
}

func (r AskRequest) key() string {
	if len(r.UserId) > 0 {
		return r.UserId
	}
	if len(r.SessionKey) > 0 {
		return r.SessionKey
	}
	return "anonymous"
}

type AskResponse struct {
	Answer string `json:"answer"`
	// Context lists the chunks the answer was grounded on, for
	// transparency and debugging.
	Context  []vectorstore.Record `json:"context,omitempty"`
	Language string               `json:"language,omitempty"`
}

type Assistant struct {
	translator translator.Translator
	retriever  Retriever
	generator  generator.Generator
	sessions   *history.Sessions
	archiver   history.Archiver
}

// Ask runs one question-answer exchange. Non-English questions are
// normalized to English for retrieval and generation and the answer is
// translated back; the in-memory transcript keeps the English copies while
// archived rows keep what the caller saw. Ask always returns a structured
// response — failures collapse into the fallback answer.
func (a *Assistant) Ask(ctx context.Context, req AskRequest) AskResponse {
	question := strings.TrimSpace(req.Question)
	if len(question) == 0 {
		return AskResponse{Answer: emptyQuestionAnswer}
	}

	session := a.sessions.Get(req.key())

	lang, err := a.translator.Detect(ctx, question)
	if err != nil {
		return a.fail(ctx, session, req, question, "", fmt.Errorf("language detection failed: %w", err))
	}

	normalized := question
	if lang != english {
		normalized, err = a.translator.ToEnglish(ctx, question)
		if err != nil {
			return a.fail(ctx, session, req, question, lang, fmt.Errorf("translation to english failed: %w", err))
		}
	}

	transcript := FormatTranscript(session.Turns())
	session.Append(history.RoleUser, normalized)

	records, err := a.retriever.Retrieve(ctx, normalized)
	if err != nil {
		return a.fail(ctx, session, req, question, lang, fmt.Errorf("retrieval failed: %w", err))
	}

	prompt := BuildPrompt(PromptInput{
		LegalText:  FormatLegalText(records),
		Transcript: transcript,
		Question:   normalized,
	})

	answer, err := a.generator.Generate(ctx, prompt)
	if err != nil {
		return a.fail(ctx, session, req, question, lang, fmt.Errorf("generation failed: %w", err))
	}

	delivered := answer
	if lang != english {
		delivered, err = a.translator.FromEnglish(ctx, answer, lang)
		if err != nil {
			return a.fail(ctx, session, req, question, lang, fmt.Errorf("translation back failed: %w", err))
		}
	}

	session.Append(history.RoleAssistant, answer)

	a.archive(ctx, req.UserId, question, delivered)

	return AskResponse{
		Answer:   delivered,
		Context:  records,
		Language: lang,
	}
}

// ResetConversation clears the in-memory transcript for the given session
// key (user id or anonymous session key). Archived rows are untouched.
func (a *Assistant) ResetConversation(key string) {
	a.sessions.Get(AskRequest{UserId: key}.key()).Reset()
}

// History loads the archived turns for a user, oldest first.
func (a *Assistant) History(ctx context.Context, userId string) ([]history.Turn, error) {
	return a.archiver.Load(ctx, userId)
}

// TranscriptText renders archived turns as a plain-text export.
func TranscriptText(turns []history.Turn) string {
	var b strings.Builder

	for _, turn := range turns {
		label := strings.ToUpper(turn.Role[:1]) + turn.Role[1:]
		b.WriteString(fmt.Sprintf("%s: %s\n\n", label, turn.Content))
	}

	return b.String()
}

// fail terminates the exchange with the fallback answer. The exchange is
// still recorded and archived so the transcript reflects what the caller
// saw.
func (a *Assistant) fail(ctx context.Context, session *history.Session, req AskRequest, question string, lang string, err error) AskResponse {
	slog.ErrorContext(ctx, "exchange failed", "user_id", req.UserId, "error", err)

	session.Append(history.RoleAssistant, FallbackAnswer)

	a.archive(ctx, req.UserId, question, FallbackAnswer)

	return AskResponse{
		Answer:   FallbackAnswer,
		Language: lang,
	}
}

// archive persists the caller-language exchange. Archival failures are
// logged but do not fail an already-generated answer.
func (a *Assistant) archive(ctx context.Context, userId string, question string, answer string) {
	if len(userId) == 0 {
		return
	}

	if err := a.archiver.Save(ctx, userId, history.RoleUser, question); err != nil {
		slog.WarnContext(ctx, "failed to archive user turn", "user_id", userId, "error", err)
	}

	if err := a.archiver.Save(ctx, userId, history.RoleAssistant, answer); err != nil {
		slog.WarnContext(ctx, "failed to archive assistant turn", "user_id", userId, "error", err)
	}
}

func New(
	translator translator.Translator,
	retriever Retriever,
	generator generator.Generator,
	archiver history.Archiver,
) *Assistant {
	if translator == nil {
		panic("translator is required")
	}

	if retriever == nil {
		panic("retriever is required")
	}

	if generator == nil {
		panic("generator is required")
	}

	if archiver == nil {
		panic("archiver is required")
	}

	return &Assistant{
		translator: translator,
		retriever:  retriever,
		generator:  generator,
		sessions:   history.NewSessions(),
		archiver:   archiver,
	}
}
