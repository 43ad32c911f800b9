package bootstrap

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/carebridge/medchat/internal/booking"
	appconfig "github.com/carebridge/medchat/internal/config"
	"github.com/carebridge/medchat/internal/conversation"
	"github.com/carebridge/medchat/internal/directory"
	"github.com/carebridge/medchat/internal/session"
	"github.com/carebridge/medchat/pkg/logging"
)

// BuildRedisClient returns a configured Redis client or nil when disabled.
// When verify is true, a ping is issued and failures return nil.
func BuildRedisClient(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, verify bool) *redis.Client {
	if cfg == nil || strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	redisOptions := &redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	}
	if cfg.RedisTLS {
		redisOptions.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(redisOptions)
	if !verify {
		return client
	}
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis not available", "error", err)
		_ = client.Close()
		return nil
	}
	return client
}

// BuildSessionStore picks Redis when SESSION_BACKEND=redis and a client is
// available, else the in-process store.
func BuildSessionStore(cfg *appconfig.Config, redisClient *redis.Client, logger *logging.Logger) session.Store {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg != nil && cfg.UseRedisSessions() {
		if redisClient != nil {
			logger.Info("using redis session store", "ttl", cfg.SessionTTL.String())
			return session.NewRedisStore(redisClient, cfg.SessionTTL)
		}
		logger.Warn("redis session backend requested but redis unavailable; falling back to memory")
	}
	ttl := session.DefaultTTL
	if cfg != nil && cfg.SessionTTL > 0 {
		ttl = cfg.SessionTTL
	}
	return session.NewMemoryStore(ttl)
}

// BuildSessionLocker returns the cross-replica session lock, or nil when
// sessions live in process memory. The lock outlives the slowest turn.
func BuildSessionLocker(cfg *appconfig.Config, redisClient *redis.Client) *session.RedisLocker {
	if cfg == nil || !cfg.UseRedisSessions() || redisClient == nil {
		return nil
	}
	ttl := session.DefaultLockTTL
	if floor := 2 * cfg.LLMTimeout; floor > ttl {
		ttl = floor
	}
	return session.NewRedisLocker(redisClient, ttl)
}

// BuildTranscriptStore returns the Redis-backed chat transcript, or nil when
// Redis is not configured.
func BuildTranscriptStore(cfg *appconfig.Config, redisClient *redis.Client) *conversation.TranscriptStore {
	if redisClient == nil {
		return nil
	}
	ttl := session.DefaultTTL
	if cfg != nil && cfg.SessionTTL > 0 {
		ttl = cfg.SessionTTL
	}
	return conversation.NewTranscriptStore(redisClient, ttl)
}

// BuildDirectory loads DIRECTORY_FILE when set, else the built-in directory.
func BuildDirectory(cfg *appconfig.Config) (*directory.Directory, error) {
	if cfg == nil || strings.TrimSpace(cfg.DirectoryFile) == "" {
		return directory.Default(), nil
	}
	dir, err := directory.LoadFile(cfg.DirectoryFile)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: load directory: %w", err)
	}
	return dir, nil
}

// BuildLedger connects the appointment ledger when DATABASE_URL is set. The
// returned pool must be closed by the caller.
func BuildLedger(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (*booking.Repository, *pgxpool.Pool, error) {
	if cfg == nil || strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, nil, nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("bootstrap: connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("bootstrap: ping postgres: %w", err)
	}
	logger.Info("appointment ledger enabled")
	return booking.NewRepository(pool), pool, nil
}
