package enrol

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/platform/dbctx"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
)

type UserEnrolmentRepo interface {
	// Enrol is idempotent per (method, user).
	Enrol(dbc dbctx.Context, methodID, courseID, userID uuid.UUID, role string) error
	IsEnrolled(dbc dbctx.Context, userID, courseID uuid.UUID) (bool, error)
	CourseIDsForUser(dbc dbctx.Context, userID uuid.UUID) ([]uuid.UUID, error)
	ListByCourseID(dbc dbctx.Context, courseID uuid.UUID) ([]*types.UserEnrolment, error)
}

type userEnrolmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserEnrolmentRepo(db *gorm.DB, baseLog *logger.Logger) UserEnrolmentRepo {
	return &userEnrolmentRepo{db: db, log: baseLog.With("repo", "UserEnrolmentRepo")}
}

func (r *userEnrolmentRepo) Enrol(dbc dbctx.Context, methodID, courseID, userID uuid.UUID, role string) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	row := &types.UserEnrolment{
		MethodID: methodID,
		CourseID: courseID,
		UserID:   userID,
		Role:     role,
	}
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row).Error
}

func (r *userEnrolmentRepo) IsEnrolled(dbc dbctx.Context, userID, courseID uuid.UUID) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var count int64
	if err := t.WithContext(dbc.Ctx).
		Model(&types.UserEnrolment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userEnrolmentRepo) CourseIDsForUser(dbc dbctx.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var ids []uuid.UUID
	if err := t.WithContext(dbc.Ctx).
		Model(&types.UserEnrolment{}).
		Where("user_id = ?", userID).
		Distinct().
		Pluck("course_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *userEnrolmentRepo) ListByCourseID(dbc dbctx.Context, courseID uuid.UUID) ([]*types.UserEnrolment, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.UserEnrolment
	if err := t.WithContext(dbc.Ctx).
		Where("course_id = ?", courseID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
