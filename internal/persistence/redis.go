package persistence

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tasky-suite/workspace-service/internal/config"
	"github.com/tasky-suite/workspace-service/internal/projects"
)

// Redis wraps the go-redis client backing the project snapshot.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// RedisSnapshot stores the full project blob under a single key.
type RedisSnapshot struct {
	client *redis.Client
	key    string
}

// NewRedisSnapshot builds the snapshot collaborator used by the project
// store.
func NewRedisSnapshot(r *Redis, key string) *RedisSnapshot {
	return &RedisSnapshot{client: r.Client, key: key}
}

// Load reads the blob; a missing key reports projects.ErrSnapshotEmpty so
// the store falls back to its seed dataset.
func (s *RedisSnapshot) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, projects.ErrSnapshotEmpty
		}
		return nil, err
	}
	return data, nil
}

// Save rewrites the blob. No TTL: the snapshot is the durable store.
func (s *RedisSnapshot) Save(ctx context.Context, data []byte) error {
	return s.client.Set(ctx, s.key, data, 0).Err()
}
