// Package memory is an in-process archiver used where no durable storage
// is configured, and as the test double for the postgres archiver.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/w-h-a/counsel/history"
)

type memoryArchiver struct {
	options history.Options
	rows    map[string][]history.Turn
	mtx     sync.RWMutex
}

func (a *memoryArchiver) Save(ctx context.Context, userId string, role string, content string) error {
	if len(userId) == 0 {
		return nil
	}

	a.mtx.Lock()
	defer a.mtx.Unlock()

	a.rows[userId] = append(a.rows[userId], history.Turn{
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	})

	return nil
}

func (a *memoryArchiver) Load(ctx context.Context, userId string) ([]history.Turn, error) {
	a.mtx.RLock()
	defer a.mtx.RUnlock()

	cpy := make([]history.Turn, len(a.rows[userId]))
	copy(cpy, a.rows[userId])

	return cpy, nil
}

func NewArchiver(opts ...history.Option) history.Archiver {
	options := history.NewOptions(opts...)

	return &memoryArchiver{
		options: options,
		rows:    map[string][]history.Turn{},
		mtx:     sync.RWMutex{},
	}
}
