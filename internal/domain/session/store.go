package session

import (
	"context"
	"time"
)

// Store keeps live session state. Entries expire after ttl.
type Store interface {
	Get(ctx context.Context, id string) (State, bool, error)
	Save(ctx context.Context, state State, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
