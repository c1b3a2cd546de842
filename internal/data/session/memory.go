package session

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
)

// memoryStore keeps encoded payloads so callers never share pointers with
// the stored value.
type memoryStore struct {
	log   *logger.Logger
	cache *gocache.Cache
}

func NewMemoryStore(log *logger.Logger, ttl time.Duration) Store {
	return &memoryStore{
		log:   log.With("service", "MemorySessionStore"),
		cache: gocache.New(ttl, 10*time.Minute),
	}
}

func (s *memoryStore) Create(ctx context.Context, user *types.SessionUser) (*types.Session, error) {
	sess := newSession(user)
	if err := s.Replace(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *memoryStore) Load(_ context.Context, id string) (*types.Session, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	raw, ok := v.([]byte)
	if !ok {
		return nil, ErrCorruptSession
	}
	return decode(raw)
}

func (s *memoryStore) Replace(_ context.Context, sess *types.Session) error {
	raw, err := encode(sess)
	if err != nil {
		return err
	}
	s.cache.SetDefault(sess.ID, raw)
	return nil
}

func (s *memoryStore) Delete(_ context.Context, id string) error {
	s.cache.Delete(id)
	return nil
}
