package services

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
)

// DisguiseEnrolMethod names the enrolment method disguise accounts use.
const DisguiseEnrolMethod = "disguise"

type EnrolSync interface {
	// EnsureEnrolled enrols disguiseUserID in the course owning contextID.
	EnsureEnrolled(ctx context.Context, contextID, disguiseUserID uuid.UUID) error
	// Disable turns off the disguise method of the course owning contextID.
	Disable(ctx context.Context, contextID uuid.UUID) error
}

type enrolSync struct {
	log         *logger.Logger
	registry    ModeRegistry
	enrol       EnrollmentService
	defaultRole string
}

func NewEnrolSync(log *logger.Logger, registry ModeRegistry, enrol EnrollmentService, defaultRole string) EnrolSync {
	if defaultRole == "" {
		defaultRole = "student"
	}
	return &enrolSync{
		log:         log.With("service", "EnrolSync"),
		registry:    registry,
		enrol:       enrol,
		defaultRole: defaultRole,
	}
}

func (s *enrolSync) EnsureEnrolled(ctx context.Context, contextID, disguiseUserID uuid.UUID) error {
	cc, err := s.registry.EffectiveCourseContext(ctx, contextID)
	if err != nil {
		return err
	}
	method, err := s.enrol.GetOrCreateEnrollmentMethod(ctx, cc.CourseID, DisguiseEnrolMethod)
	if err != nil {
		return err
	}
	if !method.Enabled {
		if err := s.enrol.SetMethodStatus(ctx, method.ID, true); err != nil {
			return err
		}
		s.log.Info("disguise enrol method enabled", "course_id", cc.CourseID)
	}

	courses, err := s.enrol.CoursesOf(ctx, disguiseUserID)
	if err != nil {
		return err
	}
	if slices.Contains(courses, cc.CourseID) {
		return nil
	}
	if err := s.enrol.Enroll(ctx, method.ID, cc.CourseID, disguiseUserID, s.defaultRole); err != nil {
		return err
	}
	s.log.Debug("disguise enrolled", "course_id", cc.CourseID, "disguise_id", disguiseUserID)
	return nil
}

func (s *enrolSync) Disable(ctx context.Context, contextID uuid.UUID) error {
	cc, err := s.registry.EffectiveCourseContext(ctx, contextID)
	if err != nil {
		return err
	}
	method, err := s.enrol.FindEnrollmentMethod(ctx, cc.CourseID, DisguiseEnrolMethod)
	if err != nil {
		return err
	}
	if method == nil || !method.Enabled {
		return nil
	}
	if err := s.enrol.SetMethodStatus(ctx, method.ID, false); err != nil {
		return err
	}
	s.log.Info("disguise enrol method disabled", "course_id", cc.CourseID)
	return nil
}
