package cache

import (
	"errors"

	"certschool.io/infrastructure/env"
	"certschool.io/infrastructure/logger"
	"github.com/redis/go-redis/v9"
)

type RedisClient struct {
	Client *redis.Client
}

var instance *RedisClient

func ConnectToCache(cfg *env.Config) {
	if cfg.RedisAddr == "" {
		logger.Warning("redis address missing. cache disabled")
		return
	}
	instance = &RedisClient{Client: redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
		PoolSize: 10,
	})}
	logger.Info("connected to redis successfully")
}

func GetInstance() (*RedisClient, error) {
	if instance == nil {
		return nil, errors.New("redis client not initialised")
	}
	return instance, nil
}
