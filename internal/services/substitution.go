package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/observability"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
)

// SubstitutionEngine moves a session between its real identity and a
// disguise. Every transition returns a new session value that has already
// been persisted; the session passed in is never modified.
type SubstitutionEngine interface {
	SwapIn(ctx context.Context, sess *types.Session, contextID, realUserID uuid.UUID) (*types.Session, error)
	// SwapOut restores the real identity when newContextID is outside the
	// active disguise's course. The bool reports whether it did.
	SwapOut(ctx context.Context, sess *types.Session, newContextID uuid.UUID) (*types.Session, bool, error)
	// Restore leaves the disguise regardless of context.
	Restore(ctx context.Context, sess *types.Session) (*types.Session, error)
	IgnoreForContext(ctx context.Context, sess *types.Session, contextID uuid.UUID) (*types.Session, error)
}

type substitutionEngine struct {
	log      *logger.Logger
	policy   PolicyService
	registry ModeRegistry
	identity IdentityPool
	enrol    EnrolSync
	store    SessionStore
}

func NewSubstitutionEngine(
	log *logger.Logger,
	policy PolicyService,
	registry ModeRegistry,
	identity IdentityPool,
	enrol EnrolSync,
	store SessionStore,
) SubstitutionEngine {
	return &substitutionEngine{
		log:      log.With("service", "SubstitutionEngine"),
		policy:   policy,
		registry: registry,
		identity: identity,
		enrol:    enrol,
		store:    store,
	}
}

// SessionUserFrom projects a stored user onto the identity a session carries.
func SessionUserFrom(u *types.User) *types.SessionUser {
	if u == nil {
		return nil
	}
	return &types.SessionUser{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Auth:      u.Auth,
	}
}

func spanFail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func (e *substitutionEngine) SwapIn(ctx context.Context, sess *types.Session, contextID, realUserID uuid.UUID) (*types.Session, error) {
	ctx, span := otel.Tracer(observability.TracerName).Start(ctx, "disguise.swap_in")
	defer span.End()
	span.SetAttributes(attribute.String("disguise.context_id", contextID.String()))

	if sess == nil || sess.User == nil {
		return nil, spanFail(span, fmt.Errorf("swap in without a session user: %w", ErrInvalidArgument))
	}
	if sess.IsDisguised() {
		if sess.Disguise.ContextID == contextID && sess.RealUserID() == realUserID {
			return sess, nil
		}
		return nil, spanFail(span, fmt.Errorf("session already disguised in %s: %w", sess.Disguise.ContextID, ErrInvalidState))
	}
	if sess.User.ID != realUserID {
		return nil, spanFail(span, fmt.Errorf("swap in for %s from session of %s: %w", realUserID, sess.User.ID, ErrPolicyViolation))
	}

	ok, err := e.policy.IsEnabledForUser(ctx, sess, contextID, realUserID)
	if err != nil {
		return nil, spanFail(span, err)
	}
	if !ok {
		return nil, spanFail(span, fmt.Errorf("user not eligible for disguise in %s: %w", contextID, ErrPolicyViolation))
	}

	disguiseUser, err := e.identity.GetOrCreateMapping(ctx, contextID, realUserID)
	if err != nil {
		return nil, spanFail(span, err)
	}
	if err := e.enrol.EnsureEnrolled(ctx, contextID, disguiseUser.ID); err != nil {
		return nil, spanFail(span, err)
	}

	original := sess.User.Clone()
	identity := SessionUserFrom(disguiseUser)
	identity.RealUser = original.Clone()

	next := &types.Session{
		ID:        sess.ID,
		CreatedAt: sess.CreatedAt,
		User:      identity,
		Values:    map[string]string{},
		Disguise: &types.DisguiseState{
			OriginalSession: sess.Snapshot(),
			OriginalUser:    original,
			ContextID:       contextID,
		},
	}
	if err := e.store.Replace(ctx, next); err != nil {
		return nil, spanFail(span, err)
	}
	e.log.Info("swapped in", "session_id", sess.ID, "context_id", contextID, "user_id", realUserID, "disguise_id", disguiseUser.ID)
	return next, nil
}

func (e *substitutionEngine) SwapOut(ctx context.Context, sess *types.Session, newContextID uuid.UUID) (*types.Session, bool, error) {
	if !sess.IsDisguised() {
		return sess, false, nil
	}
	active := sess.Disguise.ContextID
	if newContextID == active {
		return sess, false, nil
	}

	ctx, span := otel.Tracer(observability.TracerName).Start(ctx, "disguise.swap_out")
	defer span.End()
	span.SetAttributes(
		attribute.String("disguise.context_id", active.String()),
		attribute.String("disguise.new_context_id", newContextID.String()),
	)

	newCC, err := e.registry.EffectiveCourseContext(ctx, newContextID)
	switch {
	case errors.Is(err, ErrOutsideCourse):
		newCC = nil
	case err != nil:
		return nil, false, spanFail(span, err)
	}

	if newCC != nil {
		if newCC.ContextID == active {
			return sess, false, nil
		}
		activeCC, err := e.registry.EffectiveCourseContext(ctx, active)
		if err != nil {
			e.log.Warn("active disguise context unresolved, restoring", "context_id", active, "error", err)
		} else if activeCC.ContextID == newCC.ContextID {
			return sess, false, nil
		}
	}

	next, err := e.restore(ctx, sess)
	if err != nil {
		return nil, false, spanFail(span, err)
	}
	return next, true, nil
}

func (e *substitutionEngine) Restore(ctx context.Context, sess *types.Session) (*types.Session, error) {
	if !sess.IsDisguised() {
		return sess, nil
	}
	ctx, span := otel.Tracer(observability.TracerName).Start(ctx, "disguise.restore")
	defer span.End()
	next, err := e.restore(ctx, sess)
	if err != nil {
		return nil, spanFail(span, err)
	}
	return next, nil
}

func (e *substitutionEngine) restore(ctx context.Context, sess *types.Session) (*types.Session, error) {
	if err := sess.Validate(); err != nil {
		return nil, fmt.Errorf("restore session %s: %w: %v", sess.ID, ErrInvalidState, err)
	}
	snap := sess.Disguise.OriginalSession.Clone()
	if snap.Values == nil {
		snap.Values = map[string]string{}
	}
	next := &types.Session{
		ID:              sess.ID,
		CreatedAt:       sess.CreatedAt,
		User:            sess.Disguise.OriginalUser.Clone(),
		Values:          snap.Values,
		IgnoredContexts: snap.IgnoredContexts,
	}
	if err := e.store.Replace(ctx, next); err != nil {
		return nil, err
	}
	e.log.Info("restored real identity", "session_id", sess.ID, "context_id", sess.Disguise.ContextID, "user_id", next.User.ID)
	return next, nil
}

func (e *substitutionEngine) IgnoreForContext(ctx context.Context, sess *types.Session, contextID uuid.UUID) (*types.Session, error) {
	if sess == nil {
		return nil, fmt.Errorf("ignore without a session: %w", ErrInvalidArgument)
	}
	ok, err := e.policy.CanIgnore(ctx, contextID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("disguise in %s cannot be ignored: %w", contextID, ErrPolicyViolation)
	}
	if sess.IsIgnored(contextID) {
		return sess, nil
	}
	next := sess.Clone()
	next.IgnoredContexts = append(slices.Clone(next.IgnoredContexts), contextID)
	if err := e.store.Replace(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}
