package enrol

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/neurobridge-disguise/internal/data/repos/testutil"
	"github.com/yungbote/neurobridge-disguise/internal/platform/dbctx"
)

func TestEnrolMethodEnsureIsIdempotent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewEnrolMethodRepo(db, testutil.Logger(t))
	course, _ := testutil.SeedCourse(t, ctx, tx)

	first, err := repo.Ensure(dbc, course.ID, "disguise")
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	if first.Enabled {
		t.Fatalf("new method should start disabled")
	}
	second, err := repo.Ensure(dbc, course.ID, "disguise")
	if err != nil {
		t.Fatalf("Ensure again: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("duplicate method created: %s vs %s", first.ID, second.ID)
	}

	if err := repo.SetEnabled(dbc, first.ID, true); err != nil {
		t.Fatalf("SetEnabled: %v", err)
	}
	got, err := repo.GetByCourseAndName(dbc, course.ID, "disguise")
	if err != nil {
		t.Fatalf("GetByCourseAndName: %v", err)
	}
	if got == nil || !got.Enabled {
		t.Fatalf("method should be enabled: %+v", got)
	}

	all, err := repo.ListByCourseID(dbc, course.ID)
	if err != nil {
		t.Fatalf("ListByCourseID: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("want 1 method, got %d", len(all))
	}
}

func TestUserEnrolmentRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	methods := NewEnrolMethodRepo(db, testutil.Logger(t))
	repo := NewUserEnrolmentRepo(db, testutil.Logger(t))
	course, _ := testutil.SeedCourse(t, ctx, tx)
	u := testutil.SeedUser(t, ctx, tx, "learner")

	m, err := methods.Ensure(dbc, course.ID, "manual")
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	enrolled, err := repo.IsEnrolled(dbc, u.ID, course.ID)
	if err != nil || enrolled {
		t.Fatalf("IsEnrolled before: %v %v", enrolled, err)
	}
	for i := 0; i < 2; i++ {
		if err := repo.Enrol(dbc, m.ID, course.ID, u.ID, "student"); err != nil {
			t.Fatalf("Enrol #%d: %v", i, err)
		}
	}
	enrolled, err = repo.IsEnrolled(dbc, u.ID, course.ID)
	if err != nil || !enrolled {
		t.Fatalf("IsEnrolled after: %v %v", enrolled, err)
	}

	rows, err := repo.ListByCourseID(dbc, course.ID)
	if err != nil {
		t.Fatalf("ListByCourseID: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Enrol should be idempotent, got %d rows", len(rows))
	}

	ids, err := repo.CourseIDsForUser(dbc, u.ID)
	if err != nil {
		t.Fatalf("CourseIDsForUser: %v", err)
	}
	if len(ids) != 1 || ids[0] != course.ID {
		t.Fatalf("CourseIDsForUser: unexpected %v", ids)
	}
}

func TestRoleAssignmentRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewRoleAssignmentRepo(db, testutil.Logger(t))
	_, cctx := testutil.SeedCourse(t, ctx, tx)
	teacher := uuid.New()
	student := uuid.New()

	if err := repo.Assign(dbc, cctx.ID, teacher, "editingteacher"); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if err := repo.Assign(dbc, cctx.ID, teacher, "editingteacher"); err != nil {
		t.Fatalf("Assign twice: %v", err)
	}
	if err := repo.Assign(dbc, cctx.ID, student, "student"); err != nil {
		t.Fatalf("Assign student: %v", err)
	}

	ids, err := repo.UserIDsWithRoles(dbc, cctx.ID, []string{"editingteacher", "manager"})
	if err != nil {
		t.Fatalf("UserIDsWithRoles: %v", err)
	}
	if len(ids) != 1 || ids[0] != teacher {
		t.Fatalf("UserIDsWithRoles: unexpected %v", ids)
	}

	if err := repo.Unassign(dbc, cctx.ID, teacher, "editingteacher"); err != nil {
		t.Fatalf("Unassign: %v", err)
	}
	ids, err = repo.UserIDsWithRoles(dbc, cctx.ID, []string{"editingteacher"})
	if err != nil {
		t.Fatalf("UserIDsWithRoles after unassign: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no contacts, got %v", ids)
	}
}
