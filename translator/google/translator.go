package google

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/translate"
	"github.com/w-h-a/counsel/translator"
	"golang.org/x/text/language"
	genaiopt "google.golang.org/api/option"
)

type googleTranslator struct {
	options translator.Options
	client  *translate.Client
}

func (t *googleTranslator) Detect(ctx context.Context, text string) (string, error) {
	detections, err := t.client.DetectLanguage(ctx, []string{text})
	if err != nil {
		return "", err
	}

	if len(detections) == 0 || len(detections[0]) == 0 {
		return "", errors.New("no detection from Google")
	}

	return detections[0][0].Language.String(), nil
}

func (t *googleTranslator) ToEnglish(ctx context.Context, text string) (string, error) {
	return t.translate(ctx, text, language.English)
}

func (t *googleTranslator) FromEnglish(ctx context.Context, text string, target string) (string, error) {
	tag, err := language.Parse(target)
	if err != nil {
		return "", fmt.Errorf("invalid target language %q: %w", target, err)
	}

	return t.translate(ctx, text, tag)
}

func (t *googleTranslator) translate(ctx context.Context, text string, target language.Tag) (string, error) {
	translations, err := t.client.Translate(ctx, []string{text}, target, &translate.Options{
		Format: translate.Text,
	})
	if err != nil {
		return "", err
	}

	if len(translations) == 0 || len(translations[0].Text) == 0 {
		return "", errors.New("no translation from Google")
	}

	return translations[0].Text, nil
}

func NewTranslator(opts ...translator.Option) translator.Translator {
	options := translator.NewOptions(opts...)

	t := &googleTranslator{
		options: options,
	}

	client, err := translate.NewClient(
		context.Background(),
		genaiopt.WithAPIKey(options.ApiKey),
	)
	if err != nil {
		panic(err)
	}

	t.client = client

	return t
}
