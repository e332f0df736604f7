package di

import (
	"context"
	"log/slog"

	redisv9 "github.com/redis/go-redis/v9"

	vinyleusecase "vinyle_backend/internal/feature/vinyle/usecase"
	"vinyle_backend/internal/platform/cache"
	"vinyle_backend/internal/platform/config"
	infraredis "vinyle_backend/internal/platform/redis"
)

// NewRedisClient connects to Redis when REDIS_HOST is set. It returns nil,
// meaning no cache, when Redis is disabled or unreachable.
func NewRedisClient(ctx context.Context, cfg config.Config) *redisv9.Client {
	if !cfg.RedisEnabled() {
		slog.Info("Redis not configured. Running without cache.")
		return nil
	}
	rdb, err := infraredis.NewRedisClient(ctx, infraredis.Options{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		slog.Warn("Redis unavailable. Running without cache.", "error", err)
		return nil
	}
	return rdb
}

// NewVinyleRepository wraps the store repository with the Redis read cache.
func NewVinyleRepository(rdb *redisv9.Client, cfg config.Config, inner vinyleusecase.VinyleRepository) vinyleusecase.VinyleRepository {
	return cache.NewCachingVinyleRepository(rdb, cfg.CacheTTL, inner, "vinyles")
}
