package index

import (
	"context"
	"os"
	"path/filepath"
)

type Option func(*Options)

type Options struct {
	LockFile     string
	ForceRebuild bool
	Concurrency  int
	Context      context.Context
}

func WithLockFile(path string) Option {
	return func(o *Options) {
		o.LockFile = path
	}
}

func WithForceRebuild(force bool) Option {
	return func(o *Options) {
		o.ForceRebuild = force
	}
}

func WithConcurrency(n int) Option {
	return func(o *Options) {
		o.Concurrency = n
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		LockFile:    filepath.Join(os.TempDir(), "counsel-index.lock"),
		Concurrency: 4,
		Context:     context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Concurrency < 1 {
		options.Concurrency = 1
	}
	return options
}
