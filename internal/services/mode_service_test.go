package services

import (
	"context"
	"errors"
	"testing"

	types "github.com/yungbote/neurobridge-disguise/internal/domain"
)

func TestModeServiceDisablingCourseDisablesEnrolMethod(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	f := h.course(t, types.ModeCourseEverywhere)
	u := h.student(t, f.Course.ID)

	if _, err := h.engine.SwapIn(ctx, sessionFor(u), f.ModuleCtx.ID, u.ID); err != nil {
		t.Fatalf("SwapIn: %v", err)
	}
	method, err := h.enrol.FindEnrollmentMethod(ctx, f.Course.ID, DisguiseEnrolMethod)
	if err != nil || method == nil || !method.Enabled {
		t.Fatalf("swap in should leave an enabled method, got %+v (%v)", method, err)
	}

	view, err := h.modes.Set(ctx, f.CourseCtx.ID, types.ModeDisabled)
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if view.Mode != types.ModeDisabled.String() || !view.Explicit || view.Level != types.LevelCourse {
		t.Fatalf("unexpected view %+v", view)
	}
	method, err = h.enrol.FindEnrollmentMethod(ctx, f.Course.ID, DisguiseEnrolMethod)
	if err != nil || method == nil || method.Enabled {
		t.Fatalf("method should be disabled but kept, got %+v (%v)", method, err)
	}

	if _, err := h.modes.Set(ctx, f.CourseCtx.ID, types.ModeCourseOptional); err != nil {
		t.Fatalf("re-enable: %v", err)
	}
	u2 := h.student(t, f.Course.ID)
	if _, err := h.engine.SwapIn(ctx, sessionFor(u2), f.ModuleCtx.ID, u2.ID); err != nil {
		t.Fatalf("SwapIn after re-enable: %v", err)
	}
	methods, err := h.methodRepo.ListByCourseID(dbcOf(ctx), f.Course.ID)
	if err != nil {
		t.Fatalf("list methods: %v", err)
	}
	disguiseMethods := 0
	for _, m := range methods {
		if m.Name == DisguiseEnrolMethod {
			disguiseMethods++
			if !m.Enabled {
				t.Fatalf("swap in should re-enable the method")
			}
		}
	}
	if disguiseMethods != 1 {
		t.Fatalf("want one disguise method, got %d", disguiseMethods)
	}
}

func TestModeServiceRefusesWhenSiteDisabled(t *testing.T) {
	h := newHarnessWith(t, false, nil)
	f := h.course(t, types.ModeDisabled)
	if _, err := h.modes.Set(context.Background(), f.CourseCtx.ID, types.ModeCourseEverywhere); !errors.Is(err, ErrPolicyViolation) {
		t.Fatalf("want ErrPolicyViolation, got %v", err)
	}
}
