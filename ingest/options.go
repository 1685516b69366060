package ingest

import "context"

type Option func(*Options)

type Options struct {
	ChunkSize    int
	ChunkOverlap int
	Separators   []string
	Context      context.Context
}

func WithChunkSize(size int) Option {
	return func(o *Options) {
		o.ChunkSize = size
	}
}

func WithChunkOverlap(overlap int) Option {
	return func(o *Options) {
		o.ChunkOverlap = overlap
	}
}

func WithSeparators(separators []string) Option {
	return func(o *Options) {
		o.Separators = separators
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		ChunkSize:    1000,
		ChunkOverlap: 150,
		Separators:   []string{"\n", ". ", " "},
		Context:      context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.ChunkOverlap >= options.ChunkSize {
		options.ChunkOverlap = options.ChunkSize - 1
	}
	return options
}
