package server

import (
	"context"
	"time"
)

type Option func(*Options)

type Options struct {
	Address        string
	RequestTimeout time.Duration
	Context        context.Context
}

func WithAddress(address string) Option {
	return func(o *Options) {
		o.Address = address
	}
}

func WithRequestTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.RequestTimeout = timeout
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Address:        ":8080",
		RequestTimeout: 60 * time.Second,
		Context:        context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
