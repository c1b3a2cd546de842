package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/platform/config"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
)

const redisKeyPrefix = "disguise:session:"

type redisStore struct {
	log *logger.Logger
	rdb goredis.UniversalClient
	ttl time.Duration
}

// NewRedisClient dials and pings Redis.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func NewRedisStore(log *logger.Logger, rdb goredis.UniversalClient, ttl time.Duration) Store {
	return &redisStore{
		log: log.With("service", "RedisSessionStore"),
		rdb: rdb,
		ttl: ttl,
	}
}

func (s *redisStore) key(id string) string { return redisKeyPrefix + id }

func (s *redisStore) Create(ctx context.Context, user *types.SessionUser) (*types.Session, error) {
	sess := newSession(user)
	if err := s.Replace(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *redisStore) Load(ctx context.Context, id string) (*types.Session, error) {
	raw, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	sess, err := decode(raw)
	if err != nil {
		s.log.Warn("rejecting stored session", "session_id", id, "error", err)
		return nil, err
	}
	return sess, nil
}

func (s *redisStore) Replace(ctx context.Context, sess *types.Session) error {
	raw, err := encode(sess)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, s.key(sess.ID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}
