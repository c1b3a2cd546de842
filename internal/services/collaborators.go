package services

import (
	"context"

	"github.com/google/uuid"

	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/platform/dbctx"
)

// ContextInfo is a resolved context. CourseID is set for course and module
// contexts.
type ContextInfo struct {
	ID         uuid.UUID
	Level      types.ContextLevel
	InstanceID uuid.UUID
	CourseID   uuid.UUID
}

type ContextStore interface {
	Resolve(ctx context.Context, contextID uuid.UUID) (*ContextInfo, error)
	CourseOf(ctx context.Context, moduleContextID uuid.UUID) (uuid.UUID, error)
	ContextFor(ctx context.Context, level types.ContextLevel, instanceID uuid.UUID) (uuid.UUID, error)
}

// UserStore takes a dbctx so account creation can join the mapping transaction.
type UserStore interface {
	CreateUser(dbc dbctx.Context, u *types.User) (*types.User, error)
	GetUser(dbc dbctx.Context, userID uuid.UUID) (*types.User, error)
}

type EnrollmentService interface {
	CoursesOf(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	Enroll(ctx context.Context, methodID, courseID, userID uuid.UUID, role string) error
	GetOrCreateEnrollmentMethod(ctx context.Context, courseID uuid.UUID, name string) (*types.EnrolMethod, error)
	FindEnrollmentMethod(ctx context.Context, courseID uuid.UUID, name string) (*types.EnrolMethod, error)
	SetMethodStatus(ctx context.Context, methodID uuid.UUID, enabled bool) error
}

type RoleService interface {
	CourseContacts(ctx context.Context, courseID uuid.UUID) ([]uuid.UUID, error)
	IsSiteAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

// SessionStore is the write side the substitution engine needs.
type SessionStore interface {
	Replace(ctx context.Context, sess *types.Session) error
}

type RandomNameProvider interface {
	BuildName(ctx context.Context, keywords []string) (string, error)
	// NameParts returns the drawn items unjoined, one per usable keyword.
	NameParts(ctx context.Context, keywords []string) ([]string, error)
}
