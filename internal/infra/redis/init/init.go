package infra_redis_init

import (
	"fmt"
	"net"

	"github.com/go-redis/redis"
	"github.com/humanbelnik/kinopick/internal/config"
)

// Connect returns a pinged client.
func Connect(cfg config.RedisCache) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       0,
	})

	if err := client.Ping().Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s:%s failed: %w", cfg.Host, cfg.Port, err)
	}

	return client, nil
}
