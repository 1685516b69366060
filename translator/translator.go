package translator

import "context"

// Translator detects the language of a question and moves text between the
// caller's language and English. Implementations must surface failures
// rather than passing text through untranslated.
type Translator interface {
	Detect(ctx context.Context, text string) (string, error)
	ToEnglish(ctx context.Context, text string) (string, error)
	FromEnglish(ctx context.Context, text string, target string) (string, error)
}
