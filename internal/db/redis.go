package db

import (
	"github.com/redis/go-redis/v9"

	"github.com/faazahm/backend-camping/internal/config"
)

// ConnectRedis returns nil when no address is configured; the realtime hub
// and the notifier both degrade to single-instance, in-process behaviour.
func ConnectRedis(cfg config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
}
