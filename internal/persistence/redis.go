package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// DefaultNamespace prefixes every key written by quill.
const DefaultNamespace = "quill"

// WorkspaceKey returns the Redis key holding the workspace blob.
func WorkspaceKey(namespace string) string {
	namespace = strings.TrimSuffix(strings.TrimSpace(namespace), ":")
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return namespace + ":workspace"
}

// RedisBackend stores the blob under a single key with no expiry.
type RedisBackend struct {
	client *redis.Client
	key    string
}

// NewRedisBackend creates a Redis backend. The client is owned by the backend
// and closed by Close.
func NewRedisBackend(client *redis.Client, namespace string) *RedisBackend {
	return &RedisBackend{
		client: client,
		key:    WorkspaceKey(namespace),
	}
}

func (b *RedisBackend) Get(ctx context.Context) ([]byte, error) {
	data, err := b.client.Get(ctx, b.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrAbsent
		}
		return nil, fmt.Errorf("failed to get workspace: %w", err)
	}
	return data, nil
}

func (b *RedisBackend) Put(ctx context.Context, data []byte) error {
	if err := b.client.Set(ctx, b.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set workspace: %w", err)
	}
	return nil
}

func (b *RedisBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

func (b *RedisBackend) Close() error { return b.client.Close() }
func (b *RedisBackend) Name() string { return "redis" }
