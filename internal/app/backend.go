package app

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/quill/internal/config"
	"github.com/MrSnakeDoc/quill/internal/logger"
	"github.com/MrSnakeDoc/quill/internal/persistence"
	"github.com/MrSnakeDoc/quill/internal/redis"
)

// openBackend builds the storage backend selected by cfg.Store.
func openBackend(ctx context.Context, cfg *config.Config, log logger.Logger) (persistence.Backend, error) {
	switch cfg.Store {
	case config.StoreRedis:
		// Initialize Redis early - fail fast if unavailable
		log.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.Connect(ctx, redis.Options{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		log.Info("Redis initialized successfully")
		return persistence.NewRedisBackend(client, cfg.Namespace), nil

	case config.StorePostgres:
		b, err := persistence.NewPostgresBackend(cfg.PostgresDSN, cfg.Namespace)
		if err != nil {
			return nil, err
		}
		return b, nil

	case config.StoreFile:
		log.Info("using file storage", logger.String("path", cfg.DataFile))
		b, err := persistence.NewFileBackend(cfg.DataFile)
		if err != nil {
			return nil, err
		}
		return b, nil

	case config.StoreMemory:
		log.Warn("using in-memory storage, the workspace is lost on restart")
		return persistence.NewMemoryBackend(), nil

	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
