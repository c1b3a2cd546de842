package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	sessionstore "github.com/yungbote/neurobridge-disguise/internal/data/session"
	"github.com/yungbote/neurobridge-disguise/internal/platform/config"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
)

// wireSessionStore uses Redis when REDIS_ADDR is set and an in-process
// cache otherwise.
func wireSessionStore(ctx context.Context, log *logger.Logger, cfg config.RedisConfig) (sessionstore.Store, *goredis.Client, error) {
	if cfg.Addr == "" {
		log.Warn("REDIS_ADDR not set, sessions are kept in memory")
		return sessionstore.NewMemoryStore(log, cfg.SessionTTL), nil, nil
	}
	rdb, err := sessionstore.NewRedisClient(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init redis: %w", err)
	}
	return sessionstore.NewRedisStore(log, rdb, cfg.SessionTTL), rdb, nil
}
