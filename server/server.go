package server

import "context"

type Server interface {
	Run() error
	Stop(ctx context.Context) error
}
