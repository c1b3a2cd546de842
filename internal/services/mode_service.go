package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
)

// ContextModeView is a context's mode as the admin surface sees it.
type ContextModeView struct {
	ContextID uuid.UUID          `json:"context_id"`
	Level     types.ContextLevel `json:"level"`
	Mode      string             `json:"mode"`
	Value     int                `json:"value"`
	Explicit  bool               `json:"explicit"`
}

// ModeService handles course and module settings changes.
type ModeService interface {
	Get(ctx context.Context, contextID uuid.UUID) (*ContextModeView, error)
	Set(ctx context.Context, contextID uuid.UUID, mode types.Mode) (*ContextModeView, error)
}

type modeService struct {
	log       *logger.Logger
	policy    PolicyService
	registry  ModeRegistry
	enrolSync EnrolSync
}

func NewModeService(log *logger.Logger, policy PolicyService, registry ModeRegistry, enrolSync EnrolSync) ModeService {
	return &modeService{
		log:       log.With("service", "ModeService"),
		policy:    policy,
		registry:  registry,
		enrolSync: enrolSync,
	}
}

func (s *modeService) Get(ctx context.Context, contextID uuid.UUID) (*ContextModeView, error) {
	level, err := s.registry.Level(ctx, contextID)
	if err != nil {
		return nil, err
	}
	m, present, err := s.registry.Lookup(ctx, contextID)
	if err != nil {
		return nil, err
	}
	return &ContextModeView{ContextID: contextID, Level: level, Mode: m.String(), Value: int(m), Explicit: present}, nil
}

func (s *modeService) Set(ctx context.Context, contextID uuid.UUID, mode types.Mode) (*ContextModeView, error) {
	if !s.policy.IsEnabled() {
		return nil, fmt.Errorf("disguises are disabled site-wide: %w", ErrPolicyViolation)
	}
	level, err := s.registry.Level(ctx, contextID)
	if err != nil {
		return nil, err
	}
	if err := s.registry.SetMode(ctx, contextID, mode); err != nil {
		return nil, err
	}
	if level == types.LevelCourse && mode == types.ModeDisabled {
		if err := s.enrolSync.Disable(ctx, contextID); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, contextID)
}
