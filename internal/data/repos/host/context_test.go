package host

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/neurobridge-disguise/internal/data/repos/testutil"
	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/platform/dbctx"
)

func TestContextRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewContextRepo(db, testutil.Logger(t))
	course, cctx := testutil.SeedCourse(t, ctx, tx)

	got, err := repo.GetByID(dbc, cctx.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.Level != types.LevelCourse || got.InstanceID != course.ID {
		t.Fatalf("GetByID: unexpected result: %+v", got)
	}

	byInstance, err := repo.GetByInstance(dbc, types.LevelCourse, course.ID)
	if err != nil {
		t.Fatalf("GetByInstance: %v", err)
	}
	if byInstance == nil || byInstance.ID != cctx.ID {
		t.Fatalf("GetByInstance: unexpected result: %+v", byInstance)
	}

	ensured, err := repo.Ensure(dbc, types.LevelCourse, course.ID)
	if err != nil {
		t.Fatalf("Ensure (existing): %v", err)
	}
	if ensured.ID != cctx.ID {
		t.Fatalf("Ensure (existing): want %s, got %s", cctx.ID, ensured.ID)
	}

	instance := uuid.New()
	first, err := repo.Ensure(dbc, types.LevelModule, instance)
	if err != nil {
		t.Fatalf("Ensure (new): %v", err)
	}
	second, err := repo.Ensure(dbc, types.LevelModule, instance)
	if err != nil {
		t.Fatalf("Ensure (again): %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("Ensure should be idempotent: %s vs %s", first.ID, second.ID)
	}

	missing, err := repo.GetByID(dbc, uuid.New())
	if err != nil {
		t.Fatalf("GetByID (missing): %v", err)
	}
	if missing != nil {
		t.Fatalf("GetByID (missing): expected nil")
	}
}

func TestCourseModuleRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	courses := NewCourseRepo(db, testutil.Logger(t))
	modules := NewCourseModuleRepo(db, testutil.Logger(t))

	created, err := courses.Create(dbc, []*types.Course{{ShortName: "c101", FullName: "Course 101"}})
	if err != nil {
		t.Fatalf("Create course: %v", err)
	}
	courseID := created[0].ID

	if _, err := modules.Create(dbc, []*types.CourseModule{
		{CourseID: courseID, ModName: "forum"},
		{CourseID: courseID, ModName: "quiz"},
	}); err != nil {
		t.Fatalf("Create modules: %v", err)
	}

	list, err := modules.ListByCourseID(dbc, courseID)
	if err != nil {
		t.Fatalf("ListByCourseID: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("ListByCourseID: want 2, got %d", len(list))
	}
	got, err := modules.GetByID(dbc, list[0].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got == nil || got.CourseID != courseID {
		t.Fatalf("GetByID: unexpected result: %+v", got)
	}
	c, err := courses.GetByID(dbc, courseID)
	if err != nil || c == nil || c.ShortName != "c101" {
		t.Fatalf("course GetByID: %+v %v", c, err)
	}
}
