// file: db/redis.go

package db

import (
	"context"
	"fmt"

	"go-bank-ledger/config"
	"go-bank-ledger/logger"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis initializes the account snapshot cache client and checks it answers.
func ConnectRedis(ctx context.Context, cfg config.Config) (*redis.Client, error) {
	redisAddr := fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port)

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: cfg.Redis.Password,
		DB:       0,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		logger.Log.WithError(err).Error("Failed to ping Redis")
		rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Log.WithField("address", redisAddr).Info("Redis connection established successfully")
	return rdb, nil
}
