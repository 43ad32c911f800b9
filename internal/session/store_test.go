package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/carebridge/medchat/internal/dialogue"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() dialogue.State {
	return dialogue.State{
		Stage:             dialogue.StageSelectDoctor,
		UserName:          "John",
		UserEmail:         "john@example.com",
		SelectedSpecialty: "Cardiology",
	}
}

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	state, err := store.Load(ctx, "unknown")
	require.NoError(t, err)
	assert.Equal(t, dialogue.State{}, state)

	require.NoError(t, store.Save(ctx, "abc", sampleState()))
	state, err = store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, sampleState(), state)

	other, err := store.Load(ctx, "xyz")
	require.NoError(t, err)
	assert.Equal(t, dialogue.State{}, other)

	require.NoError(t, store.Delete(ctx, "abc"))
	state, err = store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, dialogue.State{}, state)

	_, err = store.Load(ctx, "")
	assert.ErrorIs(t, err, ErrSessionIDRequired)
	assert.ErrorIs(t, store.Save(ctx, "", sampleState()), ErrSessionIDRequired)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore(time.Hour))
}

func TestMemoryStoreExpiresEntries(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(context.Background(), "abc", sampleState()))
	now = now.Add(2 * time.Minute)

	state, err := store.Load(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, dialogue.State{}, state)
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStoreSweepsAbandonedSessions(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	ctx := context.Background()
	for i := 0; i < 1000; i++ {
		require.NoError(t, store.Save(ctx, fmt.Sprintf("abandoned-%d", i), sampleState()))
	}
	require.Equal(t, 1000, store.Len())

	now = now.Add(24 * time.Hour)
	require.NoError(t, store.Save(ctx, "fresh", sampleState()))

	assert.Equal(t, 1, store.Len())
	state, err := store.Load(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, sampleState(), state)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	exerciseStore(t, NewRedisStore(client, time.Hour))
}

func TestRedisStoreKeyAndTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStore(client, 30*time.Minute)
	require.NoError(t, store.Save(context.Background(), "abc", sampleState()))

	require.True(t, mr.Exists("chat_session:abc"))
	assert.Equal(t, 30*time.Minute, mr.TTL("chat_session:abc"))

	raw, err := mr.Get("chat_session:abc")
	require.NoError(t, err)
	assert.Contains(t, raw, `"selectedSpecialty":"Cardiology"`)

	mr.FastForward(31 * time.Minute)
	state, err := store.Load(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, dialogue.State{}, state)
}

func TestRedisStoreRejectsCorruptState(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, mr.Set("chat_session:abc", "{not json"))
	_, err := NewRedisStore(client, time.Hour).Load(context.Background(), "abc")
	assert.Error(t, err)
}
