package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/neurobridge-disguise/internal/data/repos"
	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/platform/dbctx"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
)

// Host adapters back the collaborator interfaces with this service's own
// tables so it can run standalone.

type hostContextStore struct {
	log      *logger.Logger
	contexts repos.ContextRepo
	modules  repos.CourseModuleRepo
	courses  repos.CourseRepo
}

func NewHostContextStore(log *logger.Logger, contexts repos.ContextRepo, modules repos.CourseModuleRepo, courses repos.CourseRepo) ContextStore {
	return &hostContextStore{
		log:      log.With("service", "HostContextStore"),
		contexts: contexts,
		modules:  modules,
		courses:  courses,
	}
}

func (s *hostContextStore) Resolve(ctx context.Context, contextID uuid.UUID) (*ContextInfo, error) {
	dbc := dbctx.Context{Ctx: ctx}
	row, err := s.contexts.GetByID(dbc, contextID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, fmt.Errorf("context %s: %w", contextID, ErrNotFound)
	}
	info := &ContextInfo{ID: row.ID, Level: row.Level, InstanceID: row.InstanceID}
	switch row.Level {
	case types.LevelCourse:
		info.CourseID = row.InstanceID
	case types.LevelModule:
		cm, err := s.modules.GetByID(dbc, row.InstanceID)
		if err != nil {
			return nil, err
		}
		if cm == nil {
			return nil, fmt.Errorf("module context %s has no course module: %w", contextID, ErrInvalidState)
		}
		c, err := s.courses.GetByID(dbc, cm.CourseID)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, fmt.Errorf("module context %s has no parent course: %w", contextID, ErrInvalidState)
		}
		info.CourseID = c.ID
	}
	return info, nil
}

func (s *hostContextStore) CourseOf(ctx context.Context, moduleContextID uuid.UUID) (uuid.UUID, error) {
	info, err := s.Resolve(ctx, moduleContextID)
	if err != nil {
		return uuid.Nil, err
	}
	if info.Level != types.LevelModule {
		return uuid.Nil, fmt.Errorf("context %s is %s, not a module: %w", moduleContextID, info.Level, ErrInvalidArgument)
	}
	courseCtx, err := s.ContextFor(ctx, types.LevelCourse, info.CourseID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("course of %s: %w", moduleContextID, ErrInvalidState)
	}
	return courseCtx, nil
}

func (s *hostContextStore) ContextFor(ctx context.Context, level types.ContextLevel, instanceID uuid.UUID) (uuid.UUID, error) {
	row, err := s.contexts.GetByInstance(dbctx.Context{Ctx: ctx}, level, instanceID)
	if err != nil {
		return uuid.Nil, err
	}
	if row == nil {
		return uuid.Nil, fmt.Errorf("%s context for %s: %w", level, instanceID, ErrNotFound)
	}
	return row.ID, nil
}

type hostUserStore struct {
	users repos.UserRepo
}

func NewHostUserStore(users repos.UserRepo) UserStore {
	return &hostUserStore{users: users}
}

func (s *hostUserStore) CreateUser(dbc dbctx.Context, u *types.User) (*types.User, error) {
	created, err := s.users.Create(dbc, []*types.User{u})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

func (s *hostUserStore) GetUser(dbc dbctx.Context, userID uuid.UUID) (*types.User, error) {
	u, err := s.users.GetByID(dbc, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	return u, nil
}

type hostEnrollment struct {
	methods    repos.EnrolMethodRepo
	enrolments repos.UserEnrolmentRepo
}

func NewHostEnrollment(methods repos.EnrolMethodRepo, enrolments repos.UserEnrolmentRepo) EnrollmentService {
	return &hostEnrollment{methods: methods, enrolments: enrolments}
}

func (s *hostEnrollment) CoursesOf(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.enrolments.CourseIDsForUser(dbctx.Context{Ctx: ctx}, userID)
}

func (s *hostEnrollment) Enroll(ctx context.Context, methodID, courseID, userID uuid.UUID, role string) error {
	return s.enrolments.Enrol(dbctx.Context{Ctx: ctx}, methodID, courseID, userID, role)
}

func (s *hostEnrollment) GetOrCreateEnrollmentMethod(ctx context.Context, courseID uuid.UUID, name string) (*types.EnrolMethod, error) {
	m, err := s.methods.Ensure(dbctx.Context{Ctx: ctx}, courseID, name)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("enrol method %q for course %s: %w", name, courseID, ErrInvalidState)
	}
	return m, nil
}

func (s *hostEnrollment) FindEnrollmentMethod(ctx context.Context, courseID uuid.UUID, name string) (*types.EnrolMethod, error) {
	return s.methods.GetByCourseAndName(dbctx.Context{Ctx: ctx}, courseID, name)
}

func (s *hostEnrollment) SetMethodStatus(ctx context.Context, methodID uuid.UUID, enabled bool) error {
	return s.methods.SetEnabled(dbctx.Context{Ctx: ctx}, methodID, enabled)
}

type hostRoles struct {
	contexts     repos.ContextRepo
	roles        repos.RoleAssignmentRepo
	users        repos.UserRepo
	contactRoles []string
}

// NewHostRoles treats holders of contactRoles at the course context as
// course contacts.
func NewHostRoles(contexts repos.ContextRepo, roles repos.RoleAssignmentRepo, users repos.UserRepo, contactRoles []string) RoleService {
	return &hostRoles{contexts: contexts, roles: roles, users: users, contactRoles: contactRoles}
}

func (s *hostRoles) CourseContacts(ctx context.Context, courseID uuid.UUID) ([]uuid.UUID, error) {
	dbc := dbctx.Context{Ctx: ctx}
	cctx, err := s.contexts.GetByInstance(dbc, types.LevelCourse, courseID)
	if err != nil {
		return nil, err
	}
	if cctx == nil {
		return nil, fmt.Errorf("course context for %s: %w", courseID, ErrNotFound)
	}
	return s.roles.UserIDsWithRoles(dbc, cctx.ID, s.contactRoles)
}

func (s *hostRoles) IsSiteAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	u, err := s.users.GetByID(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return false, err
	}
	return u != nil && u.SiteAdmin, nil
}
