package sessionstore

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/vibe-weather/internal/domain/chat"
	"github.com/yanqian/vibe-weather/internal/domain/session"
	"github.com/yanqian/vibe-weather/internal/domain/weather"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	state := session.State{
		ID:       "abc",
		Place:    weather.Place{DisplayName: "Lisbon, Portugal"},
		Status:   session.StatusReady,
		Messages: []chat.Message{{Sender: chat.SenderUser, Text: "hi"}},
	}
	require.NoError(t, store.Save(ctx, state, time.Hour))

	got, ok, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Lisbon, Portugal", got.Place.DisplayName)

	got.Messages[0].Text = "changed"
	again, _, _ := store.Get(ctx, "abc")
	require.Equal(t, "hi", again.Messages[0].Text)

	require.NoError(t, store.Delete(ctx, "abc"))
	_, ok, err = store.Get(ctx, "abc")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2024, 7, 16, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, session.State{ID: "short"}, time.Minute))
	require.NoError(t, store.Save(ctx, session.State{ID: "forever"}, 0))

	now = now.Add(2 * time.Minute)

	_, ok, err := store.Get(ctx, "short")
	require.NoError(t, err)
	require.False(t, ok)
	_, ok, err = store.Get(ctx, "forever")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, store.Len())
}

func TestDecodeState(t *testing.T) {
	forecast := &weather.Forecast{Timezone: "Europe/Lisbon", Current: weather.Current{Temperature: 22.5}}
	payload, err := json.Marshal(session.State{ID: "abc", ThemeIndex: 3, Forecast: forecast, Generation: 7})
	require.NoError(t, err)

	state, ok, err := decodeState(string(payload))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 3, state.ThemeIndex)
	require.Equal(t, uint64(7), state.Generation)
	require.Equal(t, 22.5, state.Forecast.Current.Temperature)

	_, _, err = decodeState("{")
	require.Error(t, err)
}

func TestValkeyKey(t *testing.T) {
	require.Equal(t, "vibe-weather:session:abc", NewValkeyStore(nil, "").key("abc"))
	require.Equal(t, "custom:abc", NewValkeyStore(nil, "custom").key("abc"))
}
