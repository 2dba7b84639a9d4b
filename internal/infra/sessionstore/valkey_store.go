package sessionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/vibe-weather/internal/domain/session"
)

// ValkeyStore persists live sessions in a Valkey-compatible database so
// several instances can share them.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "vibe-weather:session"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context, id string) (session.State, bool, error) {
	if id == "" {
		return session.State{}, false, nil
	}
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(s.key(id)).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return session.State{}, false, nil
		}
		return session.State{}, false, err
	}
	return decodeState(payload)
}

func (s *ValkeyStore) Save(ctx context.Context, state session.State, ttl time.Duration) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.key(state.ID)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) Delete(ctx context.Context, id string) error {
	return s.client.Do(ctx, s.client.B().Del().Key(s.key(id)).Build()).Error()
}

func (s *ValkeyStore) key(id string) string {
	return fmt.Sprintf("%s:%s", s.prefix, id)
}

func decodeState(payload string) (session.State, bool, error) {
	var state session.State
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return session.State{}, false, fmt.Errorf("decode session: %w", err)
	}
	return state, true, nil
}

var _ session.Store = (*ValkeyStore)(nil)
