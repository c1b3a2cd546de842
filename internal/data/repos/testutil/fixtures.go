package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/neurobridge-disguise/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *types.User {
	tb.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Username:  username + "-" + uuid.NewString()[:8],
		Email:     username + "@example.com",
		FirstName: "A",
		LastName:  "B",
		Auth:      types.AuthManual,
		Confirmed: true,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

// SeedCourse creates a course and its course-level context.
func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB) (*types.Course, *types.Context) {
	tb.Helper()
	c := &types.Course{ID: uuid.New(), ShortName: "c-" + uuid.NewString()[:8], FullName: "Course"}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	cctx := &types.Context{ID: uuid.New(), Level: types.LevelCourse, InstanceID: c.ID}
	if err := tx.WithContext(ctx).Create(cctx).Error; err != nil {
		tb.Fatalf("seed course context: %v", err)
	}
	return c, cctx
}

// SeedModule creates a module in the course and its module-level context.
func SeedModule(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (*types.CourseModule, *types.Context) {
	tb.Helper()
	m := &types.CourseModule{ID: uuid.New(), CourseID: courseID, ModName: "forum"}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed module: %v", err)
	}
	mctx := &types.Context{ID: uuid.New(), Level: types.LevelModule, InstanceID: m.ID}
	if err := tx.WithContext(ctx).Create(mctx).Error; err != nil {
		tb.Fatalf("seed module context: %v", err)
	}
	return m, mctx
}

func SeedContext(tb testing.TB, ctx context.Context, tx *gorm.DB, level types.ContextLevel) *types.Context {
	tb.Helper()
	c := &types.Context{ID: uuid.New(), Level: level, InstanceID: uuid.New()}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed context: %v", err)
	}
	return c
}

// SeedEnrolment enrols a user through a "manual" method on the course.
func SeedEnrolment(tb testing.TB, ctx context.Context, tx *gorm.DB, courseID, userID uuid.UUID, role string) {
	tb.Helper()
	var method types.EnrolMethod
	if err := tx.WithContext(ctx).
		Where(types.EnrolMethod{CourseID: courseID, Name: "manual"}).
		Attrs(types.EnrolMethod{ID: uuid.New(), Enabled: true}).
		FirstOrCreate(&method).Error; err != nil {
		tb.Fatalf("seed enrol method: %v", err)
	}
	ue := &types.UserEnrolment{ID: uuid.New(), MethodID: method.ID, CourseID: courseID, UserID: userID, Role: role}
	if err := tx.WithContext(ctx).Create(ue).Error; err != nil {
		tb.Fatalf("seed enrolment: %v", err)
	}
}

func SeedRole(tb testing.TB, ctx context.Context, tx *gorm.DB, contextID, userID uuid.UUID, role string) {
	tb.Helper()
	ra := &types.RoleAssignment{ID: uuid.New(), ContextID: contextID, UserID: userID, Role: role}
	if err := tx.WithContext(ctx).Create(ra).Error; err != nil {
		tb.Fatalf("seed role: %v", err)
	}
}
