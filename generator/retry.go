package generator

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

type retryGenerator struct {
	next        Generator
	maxInterval time.Duration
	maxRetries  uint64
}

func (g *retryGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	policy := backoff.NewExponentialBackOff()
	policy.MaxInterval = g.maxInterval

	var result string

	operation := func() error {
		rsp, err := g.next.Generate(ctx, prompt)
		if err != nil {
			return err
		}
		result = rsp
		return nil
	}

	if err := backoff.Retry(
		operation,
		backoff.WithContext(backoff.WithMaxRetries(policy, g.maxRetries), ctx),
	); err != nil {
		return "", err
	}

	return result, nil
}

// NewRetryGenerator wraps a generator with bounded exponential backoff on
// transient provider errors. Cancellation of ctx aborts the retry loop.
func NewRetryGenerator(next Generator, maxRetries uint64, maxInterval time.Duration) Generator {
	if maxInterval <= 0 {
		maxInterval = 5 * time.Second
	}

	return &retryGenerator{
		next:        next,
		maxInterval: maxInterval,
		maxRetries:  maxRetries,
	}
}
