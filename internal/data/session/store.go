package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	sessiondomain "github.com/yungbote/neurobridge-disguise/internal/domain/session"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	// ErrCorruptSession is returned for payloads with half-written disguise state.
	ErrCorruptSession = sessiondomain.ErrCorrupt
)

// Store persists whole sessions. Replace is the only mutation: every
// identity change writes a complete new value.
type Store interface {
	Create(ctx context.Context, user *types.SessionUser) (*types.Session, error)
	Load(ctx context.Context, id string) (*types.Session, error)
	Replace(ctx context.Context, sess *types.Session) error
	Delete(ctx context.Context, id string) error
}

func newSession(user *types.SessionUser) *types.Session {
	return sessiondomain.New(uuid.NewString(), user.Clone())
}

func encode(sess *types.Session) ([]byte, error) {
	if sess == nil || sess.ID == "" {
		return nil, errors.New("session id required")
	}
	if err := sess.Validate(); err != nil {
		return nil, err
	}
	raw, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return raw, nil
}

func decode(raw []byte) (*types.Session, error) {
	var sess types.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if err := sess.Validate(); err != nil {
		return nil, err
	}
	// Empty maps are dropped on encode; callers write into Values directly.
	if sess.Values == nil {
		sess.Values = map[string]string{}
	}
	return &sess, nil
}
