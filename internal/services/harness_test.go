package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/neurobridge-disguise/internal/data/repos"
	"github.com/yungbote/neurobridge-disguise/internal/data/repos/testutil"
	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/platform/dbctx"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
)

const testPromptPath = "/api/disguise/prompt"

type memSessions struct {
	mu       sync.Mutex
	byID     map[string]*types.Session
	replaces int
	err      error
}

func newMemSessions() *memSessions {
	return &memSessions{byID: map[string]*types.Session{}}
}

func (m *memSessions) Replace(ctx context.Context, sess *types.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.byID[sess.ID] = sess.Clone()
	m.replaces++
	return nil
}

func (m *memSessions) get(id string) *types.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[id].Clone()
}

type harness struct {
	db  *gorm.DB
	log *logger.Logger

	sessions *memSessions

	contextRepo repos.ContextRepo
	userRepo    repos.UserRepo
	methodRepo  repos.EnrolMethodRepo
	roleRepo    repos.RoleAssignmentRepo
	modeRepo    repos.ContextModeRepo
	userMap     repos.UserMapRepo
	unmapped    repos.UnmappedPoolRepo

	contexts ContextStore
	users    UserStore
	enrol    EnrollmentService
	roles    RoleService

	registry  ModeRegistry
	policy    PolicyService
	naming    NamingService
	pool      IdentityPool
	enrolSync EnrolSync
	engine    SubstitutionEngine
	guard     NavigationGuard
	prompt    PromptService
	modes     ModeService
	privacy   PrivacyService
}

func newHarness(t *testing.T) *harness {
	return newHarnessWith(t, true, nil)
}

// newHarnessWith builds the service graph on a fresh database. users, when
// set, replaces the host user store.
func newHarnessWith(t *testing.T, enabled bool, users UserStore) *harness {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	h := &harness{db: db, log: log, sessions: newMemSessions()}
	h.contextRepo = repos.NewContextRepo(db, log)
	h.userRepo = repos.NewUserRepo(db, log)
	h.methodRepo = repos.NewEnrolMethodRepo(db, log)
	h.roleRepo = repos.NewRoleAssignmentRepo(db, log)
	h.modeRepo = repos.NewContextModeRepo(db, log)
	h.userMap = repos.NewUserMapRepo(db, log)
	h.unmapped = repos.NewUnmappedPoolRepo(db, log)

	h.contexts = NewHostContextStore(log, h.contextRepo, repos.NewCourseModuleRepo(db, log), repos.NewCourseRepo(db, log))
	h.users = users
	if h.users == nil {
		h.users = NewHostUserStore(h.userRepo)
	}
	h.enrol = NewHostEnrollment(h.methodRepo, repos.NewUserEnrolmentRepo(db, log))
	h.roles = NewHostRoles(h.contextRepo, h.roleRepo, h.userRepo, []string{"editingteacher"})

	h.registry = NewModeRegistry(log, h.contexts, h.modeRepo)
	h.policy = NewPolicyService(log, enabled, h.registry, h.users, h.enrol, h.roles)
	h.naming = NewNamingService(
		db, log,
		repos.NewNamingKeywordRepo(db, log),
		repos.NewNamingItemRepo(db, log),
		repos.NewNamingSetRepo(db, log),
		repos.NewNamingContextRepo(db, log),
		"",
	)
	h.pool = h.newPool()
	h.enrolSync = NewEnrolSync(log, h.registry, h.enrol, "student")
	h.engine = NewSubstitutionEngine(log, h.policy, h.registry, h.pool, h.enrolSync, h.sessions)
	h.guard = NewNavigationGuard(log, h.contexts, h.policy, h.engine, testPromptPath)
	h.prompt = NewPromptService(log, h.policy, h.engine)
	h.modes = NewModeService(log, h.policy, h.registry, h.enrolSync)
	h.privacy = NewPrivacyService(h.userMap)
	return h
}

// newPool returns an independent identity pool over the same tables.
func (h *harness) newPool() IdentityPool {
	return NewIdentityPool(h.db, h.log, h.users, h.naming, h.naming, h.registry, h.userMap, h.unmapped)
}

type courseFixture struct {
	Course    *types.Course
	CourseCtx *types.Context
	Module    *types.CourseModule
	ModuleCtx *types.Context
}

func (h *harness) course(t *testing.T, mode types.Mode) courseFixture {
	t.Helper()
	ctx := context.Background()
	c, cctx := testutil.SeedCourse(t, ctx, h.db)
	m, mctx := testutil.SeedModule(t, ctx, h.db, c.ID)
	if err := h.modeRepo.Upsert(dbctx.Context{Ctx: ctx}, cctx.ID, mode); err != nil {
		t.Fatalf("set course mode: %v", err)
	}
	return courseFixture{Course: c, CourseCtx: cctx, Module: m, ModuleCtx: mctx}
}

// student seeds a user enrolled in courseID as a student.
func (h *harness) student(t *testing.T, courseID uuid.UUID) *types.User {
	t.Helper()
	u := testutil.SeedUser(t, context.Background(), h.db, "student")
	testutil.SeedEnrolment(t, context.Background(), h.db, courseID, u.ID, "student")
	return u
}

func sessionFor(u *types.User) *types.Session {
	return &types.Session{
		ID:              uuid.NewString(),
		User:            SessionUserFrom(u),
		Values:          map[string]string{"lang": "en", "theme": "dark"},
		IgnoredContexts: []uuid.UUID{},
	}
}

func (h *harness) contextOf(t *testing.T, level types.ContextLevel) uuid.UUID {
	t.Helper()
	return testutil.SeedContext(t, context.Background(), h.db, level).ID
}

func dbcOf(ctx context.Context) dbctx.Context { return dbctx.Context{Ctx: ctx} }
