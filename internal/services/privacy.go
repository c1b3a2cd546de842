package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/yungbote/neurobridge-disguise/internal/data/repos"
	"github.com/yungbote/neurobridge-disguise/internal/platform/dbctx"
)

// PrivacyService answers data-subject lookups over disguise mappings.
type PrivacyService interface {
	ContextsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	UsersInContext(ctx context.Context, contextID uuid.UUID) ([]uuid.UUID, error)
}

type privacyService struct {
	userMap repos.UserMapRepo
}

func NewPrivacyService(userMap repos.UserMapRepo) PrivacyService {
	return &privacyService{userMap: userMap}
}

func (s *privacyService) ContextsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.userMap.ContextIDsForUser(dbctx.Context{Ctx: ctx}, userID)
}

func (s *privacyService) UsersInContext(ctx context.Context, contextID uuid.UUID) ([]uuid.UUID, error) {
	return s.userMap.UserIDsForContext(dbctx.Context{Ctx: ctx}, contextID)
}
