// Package history holds conversation turns: a per-session in-memory
// transcript plus append-only archival keyed by user identity.
package history

import (
	"context"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message in a conversation, ordered strictly by creation.
type Turn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Archiver persists turns durably. Save is append-only — there is no
// update or delete path — and must be a no-op when userId is empty
// (anonymous callers keep in-memory history only).
type Archiver interface {
	Save(ctx context.Context, userId string, role string, content string) error
	Load(ctx context.Context, userId string) ([]Turn, error)
}
