package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/domain/disguise"
	"github.com/yungbote/neurobridge-disguise/internal/platform/dbctx"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
)

type PolicyService interface {
	// IsEnabled is the site-wide kill switch.
	IsEnabled() bool
	IsEnabledForContext(ctx context.Context, sess *types.Session, contextID uuid.UUID) (bool, error)
	IsEnabledForUser(ctx context.Context, sess *types.Session, contextID, userID uuid.UUID) (bool, error)
	IsAllowedForSubcontext(ctx context.Context, contextID uuid.UUID) (bool, error)
	IsForcedForSubcontext(ctx context.Context, contextID uuid.UUID) (bool, error)
	IsOptionalForContext(ctx context.Context, contextID uuid.UUID) (bool, error)
	// CanIgnore reports whether a session may opt out of the disguise here.
	CanIgnore(ctx context.Context, contextID uuid.UUID) (bool, error)
}

type policyService struct {
	log      *logger.Logger
	enabled  bool
	registry ModeRegistry
	users    UserStore
	enrol    EnrollmentService
	roles    RoleService
}

func NewPolicyService(
	log *logger.Logger,
	enabled bool,
	registry ModeRegistry,
	users UserStore,
	enrol EnrollmentService,
	roles RoleService,
) PolicyService {
	return &policyService{
		log:      log.With("service", "PolicyService"),
		enabled:  enabled,
		registry: registry,
		users:    users,
		enrol:    enrol,
		roles:    roles,
	}
}

func (p *policyService) IsEnabled() bool { return p.enabled }

func (p *policyService) IsEnabledForContext(ctx context.Context, sess *types.Session, contextID uuid.UUID) (bool, error) {
	if !p.enabled {
		return false, nil
	}
	courseMode, cc, err := p.registry.CourseMode(ctx, contextID)
	if errors.Is(err, ErrOutsideCourse) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if courseMode == disguise.CourseOptional && sess.IsIgnored(contextID) {
		return false, nil
	}

	switch courseMode {
	case disguise.CourseDisabled:
		return false, nil
	case disguise.CourseEverywhere:
		return true, nil
	case disguise.CourseModulesOnly, disguise.CourseOptional:
		if contextID == cc.ContextID {
			return false, nil
		}
		return p.moduleEnabled(ctx, contextID)
	default:
		return false, fmt.Errorf("course mode %d: %w", int(courseMode), ErrInvalidState)
	}
}

// moduleEnabled is true unless the module carries an explicit DISABLED row.
func (p *policyService) moduleEnabled(ctx context.Context, contextID uuid.UUID) (bool, error) {
	raw, present, err := p.registry.Lookup(ctx, contextID)
	if err != nil {
		return false, err
	}
	if !present {
		return true, nil
	}
	mm, err := disguise.AsModuleMode(raw)
	if err != nil {
		return false, fmt.Errorf("module context %s: %w: %v", contextID, ErrInvalidState, err)
	}
	switch mm {
	case disguise.ModuleDisabled:
		return false, nil
	case disguise.ModulePeerSafe, disguise.ModuleInstructorSafe:
		return true, nil
	default:
		return false, fmt.Errorf("module mode %d: %w", int(mm), ErrInvalidState)
	}
}

func (p *policyService) IsEnabledForUser(ctx context.Context, sess *types.Session, contextID, userID uuid.UUID) (bool, error) {
	ok, err := p.IsEnabledForContext(ctx, sess, contextID)
	if err != nil || !ok {
		return false, err
	}
	cc, err := p.registry.EffectiveCourseContext(ctx, contextID)
	if err != nil {
		return false, err
	}

	u, err := p.users.GetUser(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return false, err
	}
	if u.IsDisguise() {
		return false, nil
	}
	admin, err := p.roles.IsSiteAdmin(ctx, userID)
	if err != nil {
		return false, err
	}
	if admin {
		return false, nil
	}
	courses, err := p.enrol.CoursesOf(ctx, userID)
	if err != nil {
		return false, err
	}
	if !slices.Contains(courses, cc.CourseID) {
		return false, nil
	}
	contacts, err := p.roles.CourseContacts(ctx, cc.CourseID)
	if err != nil {
		return false, err
	}
	if slices.Contains(contacts, userID) {
		return false, nil
	}
	return true, nil
}

func (p *policyService) IsAllowedForSubcontext(ctx context.Context, contextID uuid.UUID) (bool, error) {
	if !p.enabled {
		return false, nil
	}
	m, _, err := p.registry.CourseMode(ctx, contextID)
	if err != nil {
		return false, err
	}
	return m != disguise.CourseDisabled, nil
}

func (p *policyService) IsForcedForSubcontext(ctx context.Context, contextID uuid.UUID) (bool, error) {
	m, _, err := p.registry.CourseMode(ctx, contextID)
	if err != nil {
		return false, err
	}
	return m == disguise.CourseEverywhere, nil
}

func (p *policyService) IsOptionalForContext(ctx context.Context, contextID uuid.UUID) (bool, error) {
	m, _, err := p.registry.CourseMode(ctx, contextID)
	if err != nil {
		return false, err
	}
	return m == disguise.CourseOptional, nil
}

func (p *policyService) CanIgnore(ctx context.Context, contextID uuid.UUID) (bool, error) {
	if !p.enabled {
		return false, nil
	}
	return p.IsOptionalForContext(ctx, contextID)
}
