package session

import (
	"errors"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
)

// ErrCorrupt marks a session whose disguise state is partially populated.
var ErrCorrupt = errors.New("corrupt session disguise state")

// SessionUser is the identity loaded into a session. RealUser is only set on
// a disguise identity and points at the real user it stands in for.
type SessionUser struct {
	ID        uuid.UUID    `json:"id"`
	Username  string       `json:"username"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	Auth      string       `json:"auth"`
	RealUser  *SessionUser `json:"real_user,omitempty"`
}

func (u *SessionUser) Clone() *SessionUser {
	if u == nil {
		return nil
	}
	out := *u
	out.RealUser = u.RealUser.Clone()
	return &out
}

// Snapshot is the part of a session preserved across a disguise.
type Snapshot struct {
	Values          map[string]string `json:"values,omitempty"`
	IgnoredContexts []uuid.UUID       `json:"ignored_contexts,omitempty"`
}

func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	return &Snapshot{
		Values:          maps.Clone(s.Values),
		IgnoredContexts: slices.Clone(s.IgnoredContexts),
	}
}

// DisguiseState exists only while the session is disguised. Its three
// fields are written and cleared together.
type DisguiseState struct {
	OriginalSession *Snapshot    `json:"original_session"`
	OriginalUser    *SessionUser `json:"original_user"`
	ContextID       uuid.UUID    `json:"context_id"`
}

func (d *DisguiseState) Clone() *DisguiseState {
	if d == nil {
		return nil
	}
	return &DisguiseState{
		OriginalSession: d.OriginalSession.Clone(),
		OriginalUser:    d.OriginalUser.Clone(),
		ContextID:       d.ContextID,
	}
}

func (d *DisguiseState) complete() bool {
	return d.OriginalSession != nil && d.OriginalUser != nil && d.ContextID != uuid.Nil
}

type Session struct {
	ID              string            `json:"id"`
	CreatedAt       time.Time         `json:"created_at"`
	User            *SessionUser      `json:"user,omitempty"`
	Values          map[string]string `json:"values,omitempty"`
	IgnoredContexts []uuid.UUID       `json:"ignored_contexts,omitempty"`
	Disguise        *DisguiseState    `json:"disguise,omitempty"`
}

func New(id string, u *SessionUser) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		User:      u,
		Values:    map[string]string{},
	}
}

// Clone returns a deep copy. Nil maps and slices stay nil.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	return &Session{
		ID:              s.ID,
		CreatedAt:       s.CreatedAt,
		User:            s.User.Clone(),
		Values:          maps.Clone(s.Values),
		IgnoredContexts: slices.Clone(s.IgnoredContexts),
		Disguise:        s.Disguise.Clone(),
	}
}

func (s *Session) IsDisguised() bool {
	return s != nil && s.Disguise != nil
}

// RealUserID is the id of whoever is really logged in.
func (s *Session) RealUserID() uuid.UUID {
	if s == nil || s.User == nil {
		return uuid.Nil
	}
	if s.User.RealUser != nil {
		return s.User.RealUser.ID
	}
	return s.User.ID
}

func (s *Session) IsIgnored(contextID uuid.UUID) bool {
	return s != nil && slices.Contains(s.IgnoredContexts, contextID)
}

// Snapshot captures values and ignore list for later restore.
func (s *Session) Snapshot() *Snapshot {
	return &Snapshot{
		Values:          maps.Clone(s.Values),
		IgnoredContexts: slices.Clone(s.IgnoredContexts),
	}
}

// Validate rejects half-written disguise state.
func (s *Session) Validate() error {
	if s == nil {
		return errors.New("nil session")
	}
	if s.Disguise != nil && !s.Disguise.complete() {
		return ErrCorrupt
	}
	if s.Disguise != nil && s.User != nil && s.User.RealUser == nil {
		return ErrCorrupt
	}
	return nil
}
