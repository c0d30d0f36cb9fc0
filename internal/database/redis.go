package database

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"participation-api/internal/config"
)

var redisClient *redis.Client

// InitRedis establishes the Redis connection used for notification fan-out
func InitRedis(cfg config.RedisConfig, log *zap.Logger) error {
	var client *redis.Client

	// A redis:// URL takes precedence over discrete settings
	if cfg.URL != "" {
		opts, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return err
		}
		client = redis.NewClient(opts)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	}

	if err := client.Ping(context.Background()).Err(); err != nil {
		return err
	}

	redisClient = client
	log.Info("Redis connection established successfully",
		zap.String("addr", client.Options().Addr),
		zap.Int("db", cfg.DB))
	return nil
}

// GetRedis returns the shared Redis client, or nil when Redis is not
// connected. Callers degrade gracefully on nil.
func GetRedis() *redis.Client {
	return redisClient
}
