package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	locker := NewRedisLocker(client, time.Minute)
	locker.retry = 5 * time.Millisecond
	return locker, mr
}

func TestRedisLockerExcludesSecondHolder(t *testing.T) {
	locker, mr := newTestLocker(t)
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, mr.Exists("chat_session_lock:abc"))
	assert.Equal(t, time.Minute, mr.TTL("chat_session_lock:abc"))

	waitCtx, cancel := context.WithTimeout(ctx, 30*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(waitCtx, "abc")
	assert.ErrorIs(t, err, ErrLockNotAcquired)

	other, err := locker.Lock(ctx, "other")
	require.NoError(t, err)
	other()

	unlock()
	assert.False(t, mr.Exists("chat_session_lock:abc"))

	again, err := locker.Lock(ctx, "abc")
	require.NoError(t, err)
	again()
}

func TestRedisLockerWaitsForRelease(t *testing.T) {
	locker, _ := newTestLocker(t)
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "abc")
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		second, err := locker.Lock(ctx, "abc")
		if err == nil {
			second()
		}
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second holder acquired a held lock")
	case <-time.After(30 * time.Millisecond):
	}
	unlock()

	select {
	case <-acquired:
	case <-time.After(2 * time.Second):
		t.Fatal("second holder never acquired the released lock")
	}
}

func TestRedisLockerUnlockKeepsForeignToken(t *testing.T) {
	locker, mr := newTestLocker(t)

	unlock, err := locker.Lock(context.Background(), "abc")
	require.NoError(t, err)

	// Simulate expiry and takeover by another replica.
	require.NoError(t, mr.Set("chat_session_lock:abc", "someone-else"))
	unlock()

	got, err := mr.Get("chat_session_lock:abc")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}

func TestRedisLockerRequiresSessionID(t *testing.T) {
	locker, _ := newTestLocker(t)
	_, err := locker.Lock(context.Background(), "")
	assert.ErrorIs(t, err, ErrSessionIDRequired)
}
