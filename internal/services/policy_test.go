package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/neurobridge-disguise/internal/data/repos/testutil"
	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/platform/dbctx"
)

func TestIsEnabledForContextByCourseMode(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		mode       types.Mode
		moduleMode *types.Mode
		wantCourse bool
		wantModule bool
	}{
		{name: "disabled", mode: types.ModeDisabled},
		{name: "everywhere", mode: types.ModeCourseEverywhere, wantCourse: true, wantModule: true},
		{name: "everywhere ignores module row", mode: types.ModeCourseEverywhere, moduleMode: ptr(types.ModeDisabled), wantCourse: true, wantModule: true},
		{name: "modules only", mode: types.ModeCourseModulesOnly, wantModule: true},
		{name: "modules only with disabled module", mode: types.ModeCourseModulesOnly, moduleMode: ptr(types.ModeDisabled)},
		{name: "modules only with peer safe module", mode: types.ModeCourseModulesOnly, moduleMode: ptr(types.ModeModulePeerSafe), wantModule: true},
		{name: "optional", mode: types.ModeCourseOptional, wantModule: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := h.course(t, tc.mode)
			if tc.moduleMode != nil {
				if err := h.modeRepo.Upsert(dbctx.Context{Ctx: ctx}, f.ModuleCtx.ID, *tc.moduleMode); err != nil {
					t.Fatalf("module mode: %v", err)
				}
			}
			got, err := h.policy.IsEnabledForContext(ctx, nil, f.CourseCtx.ID)
			if err != nil {
				t.Fatalf("course: %v", err)
			}
			if got != tc.wantCourse {
				t.Fatalf("course context: want %v, got %v", tc.wantCourse, got)
			}
			got, err = h.policy.IsEnabledForContext(ctx, nil, f.ModuleCtx.ID)
			if err != nil {
				t.Fatalf("module: %v", err)
			}
			if got != tc.wantModule {
				t.Fatalf("module context: want %v, got %v", tc.wantModule, got)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestIsEnabledForContextOutsideCourse(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	sys := testutil.SeedContext(t, ctx, h.db, types.LevelCategory)

	got, err := h.policy.IsEnabledForContext(ctx, nil, sys.ID)
	if err != nil {
		t.Fatalf("IsEnabledForContext: %v", err)
	}
	if got {
		t.Fatalf("category context must not be enabled")
	}

	_, err = h.policy.IsEnabledForContext(ctx, nil, uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown context: want ErrNotFound, got %v", err)
	}
}

func TestKillSwitchShortCircuits(t *testing.T) {
	h := newHarnessWith(t, false, nil)
	ctx := context.Background()
	f := h.course(t, types.ModeCourseEverywhere)

	if h.policy.IsEnabled() {
		t.Fatalf("kill switch should be off")
	}
	got, err := h.policy.IsEnabledForContext(ctx, nil, f.ModuleCtx.ID)
	if err != nil || got {
		t.Fatalf("want false,nil got %v,%v", got, err)
	}
	got, err = h.policy.IsEnabledForContext(ctx, nil, uuid.New())
	if err != nil || got {
		t.Fatalf("disabled site must not look up contexts, got %v,%v", got, err)
	}
}

func TestIgnoredContextOnlyCountsWhenOptional(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	optional := h.course(t, types.ModeCourseOptional)
	sess := &types.Session{IgnoredContexts: []uuid.UUID{optional.ModuleCtx.ID}}
	got, err := h.policy.IsEnabledForContext(ctx, sess, optional.ModuleCtx.ID)
	if err != nil || got {
		t.Fatalf("ignored optional module: want false,nil got %v,%v", got, err)
	}

	forced := h.course(t, types.ModeCourseEverywhere)
	sess = &types.Session{IgnoredContexts: []uuid.UUID{forced.ModuleCtx.ID}}
	got, err = h.policy.IsEnabledForContext(ctx, sess, forced.ModuleCtx.ID)
	if err != nil || !got {
		t.Fatalf("ignore has no effect when forced: want true,nil got %v,%v", got, err)
	}
}

func TestIsEnabledForUserFollowsCourseContactRole(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := h.course(t, types.ModeCourseEverywhere)
	u := h.student(t, f.Course.ID)
	sess := sessionFor(u)

	check := func(want bool) {
		t.Helper()
		got, err := h.policy.IsEnabledForUser(ctx, sess, f.ModuleCtx.ID, u.ID)
		if err != nil {
			t.Fatalf("IsEnabledForUser: %v", err)
		}
		if got != want {
			t.Fatalf("want %v, got %v", want, got)
		}
	}

	check(true)
	if err := h.roleRepo.Assign(dbctx.Context{Ctx: ctx}, f.CourseCtx.ID, u.ID, "editingteacher"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	check(false)
	if err := h.roleRepo.Unassign(dbctx.Context{Ctx: ctx}, f.CourseCtx.ID, u.ID, "editingteacher"); err != nil {
		t.Fatalf("unassign: %v", err)
	}
	check(true)
}

func TestIsEnabledForUserExclusions(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := h.course(t, types.ModeCourseEverywhere)

	admin := h.student(t, f.Course.ID)
	if err := h.userRepo.SetSiteAdmin(dbctx.Context{Ctx: ctx}, admin.ID, true); err != nil {
		t.Fatalf("set admin: %v", err)
	}
	outsider := testutil.SeedUser(t, ctx, h.db, "outsider")
	disguised := h.student(t, f.Course.ID)
	if err := h.userRepo.SetAuth(dbctx.Context{Ctx: ctx}, disguised.ID, types.AuthDisguise); err != nil {
		t.Fatalf("set auth: %v", err)
	}

	for name, id := range map[string]uuid.UUID{
		"site admin":       admin.ID,
		"not enrolled":     outsider.ID,
		"disguise account": disguised.ID,
	} {
		got, err := h.policy.IsEnabledForUser(ctx, nil, f.ModuleCtx.ID, id)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if got {
			t.Fatalf("%s must not be offered a disguise", name)
		}
	}
}

func TestSubcontextQueries(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	tests := []struct {
		mode                        types.Mode
		allowed, forced, optional bool
	}{
		{mode: types.ModeDisabled},
		{mode: types.ModeCourseOptional, allowed: true, optional: true},
		{mode: types.ModeCourseModulesOnly, allowed: true},
		{mode: types.ModeCourseEverywhere, allowed: true, forced: true},
	}
	for _, tc := range tests {
		t.Run(tc.mode.String(), func(t *testing.T) {
			f := h.course(t, tc.mode)
			allowed, err := h.policy.IsAllowedForSubcontext(ctx, f.ModuleCtx.ID)
			if err != nil || allowed != tc.allowed {
				t.Fatalf("allowed: want %v got %v (%v)", tc.allowed, allowed, err)
			}
			forced, err := h.policy.IsForcedForSubcontext(ctx, f.ModuleCtx.ID)
			if err != nil || forced != tc.forced {
				t.Fatalf("forced: want %v got %v (%v)", tc.forced, forced, err)
			}
			optional, err := h.policy.IsOptionalForContext(ctx, f.ModuleCtx.ID)
			if err != nil || optional != tc.optional {
				t.Fatalf("optional: want %v got %v (%v)", tc.optional, optional, err)
			}
			canIgnore, err := h.policy.CanIgnore(ctx, f.ModuleCtx.ID)
			if err != nil || canIgnore != tc.optional {
				t.Fatalf("can ignore: want %v got %v (%v)", tc.optional, canIgnore, err)
			}
		})
	}
}
