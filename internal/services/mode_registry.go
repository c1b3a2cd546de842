package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/neurobridge-disguise/internal/data/repos"
	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/domain/disguise"
	"github.com/yungbote/neurobridge-disguise/internal/platform/dbctx"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
)

// CourseContext identifies the course owning a context.
type CourseContext struct {
	ContextID uuid.UUID
	CourseID  uuid.UUID
}

// ModeRegistry stores one mode per context and is the only place that walks
// from a module context up to its course.
type ModeRegistry interface {
	EffectiveCourseContext(ctx context.Context, contextID uuid.UUID) (*CourseContext, error)
	Mode(ctx context.Context, contextID uuid.UUID) (types.Mode, error)
	// Lookup also reports whether a row exists, so an explicit DISABLED can
	// be told apart from no row.
	Lookup(ctx context.Context, contextID uuid.UUID) (types.Mode, bool, error)
	SetMode(ctx context.Context, contextID uuid.UUID, mode types.Mode) error
	// CourseMode returns the owning course's mode as a validated CourseMode.
	CourseMode(ctx context.Context, contextID uuid.UUID) (types.CourseMode, *CourseContext, error)
	Level(ctx context.Context, contextID uuid.UUID) (types.ContextLevel, error)
}

type modeRegistry struct {
	log      *logger.Logger
	contexts ContextStore
	modes    repos.ContextModeRepo
}

func NewModeRegistry(log *logger.Logger, contexts ContextStore, modes repos.ContextModeRepo) ModeRegistry {
	return &modeRegistry{
		log:      log.With("service", "ModeRegistry"),
		contexts: contexts,
		modes:    modes,
	}
}

func (r *modeRegistry) EffectiveCourseContext(ctx context.Context, contextID uuid.UUID) (*CourseContext, error) {
	info, err := r.contexts.Resolve(ctx, contextID)
	if err != nil {
		return nil, err
	}
	switch info.Level {
	case types.LevelCourse:
		return &CourseContext{ContextID: info.ID, CourseID: info.CourseID}, nil
	case types.LevelModule:
		courseCtx, err := r.contexts.CourseOf(ctx, contextID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, fmt.Errorf("module context %s: %w", contextID, ErrInvalidState)
			}
			return nil, err
		}
		return &CourseContext{ContextID: courseCtx, CourseID: info.CourseID}, nil
	default:
		return nil, fmt.Errorf("context %s (%s): %w", contextID, info.Level, ErrOutsideCourse)
	}
}

func (r *modeRegistry) Mode(ctx context.Context, contextID uuid.UUID) (types.Mode, error) {
	m, _, err := r.Lookup(ctx, contextID)
	return m, err
}

func (r *modeRegistry) Lookup(ctx context.Context, contextID uuid.UUID) (types.Mode, bool, error) {
	row, err := r.modes.GetByContextID(dbctx.Context{Ctx: ctx}, contextID)
	if err != nil {
		return types.ModeDisabled, false, err
	}
	if row == nil {
		return types.ModeDisabled, false, nil
	}
	return row.Mode, true, nil
}

func (r *modeRegistry) SetMode(ctx context.Context, contextID uuid.UUID, mode types.Mode) error {
	level, err := r.Level(ctx, contextID)
	if err != nil {
		return err
	}
	switch level {
	case types.LevelCourse:
		if _, err := disguise.AsCourseMode(mode); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
	case types.LevelModule:
		if _, err := disguise.AsModuleMode(mode); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
	default:
		return fmt.Errorf("set mode on %s context: %w", level, ErrOutsideCourse)
	}

	current, present, err := r.Lookup(ctx, contextID)
	if err != nil {
		return err
	}
	if present && current == mode {
		return nil
	}
	if err := r.modes.Upsert(dbctx.Context{Ctx: ctx}, contextID, mode); err != nil {
		return err
	}
	r.log.Info("disguise mode set", "context_id", contextID, "mode", mode.String())
	return nil
}

func (r *modeRegistry) CourseMode(ctx context.Context, contextID uuid.UUID) (types.CourseMode, *CourseContext, error) {
	cc, err := r.EffectiveCourseContext(ctx, contextID)
	if err != nil {
		return disguise.CourseDisabled, nil, err
	}
	raw, err := r.Mode(ctx, cc.ContextID)
	if err != nil {
		return disguise.CourseDisabled, nil, err
	}
	cm, err := disguise.AsCourseMode(raw)
	if err != nil {
		return disguise.CourseDisabled, nil, fmt.Errorf("course context %s: %w: %v", cc.ContextID, ErrInvalidState, err)
	}
	return cm, cc, nil
}

func (r *modeRegistry) Level(ctx context.Context, contextID uuid.UUID) (types.ContextLevel, error) {
	info, err := r.contexts.Resolve(ctx, contextID)
	if err != nil {
		return "", err
	}
	return info.Level, nil
}
