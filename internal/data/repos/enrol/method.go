package enrol

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/platform/dbctx"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
)

type EnrolMethodRepo interface {
	GetByCourseAndName(dbc dbctx.Context, courseID uuid.UUID, name string) (*types.EnrolMethod, error)
	// Ensure returns the single (course, name) method, creating it disabled if absent.
	Ensure(dbc dbctx.Context, courseID uuid.UUID, name string) (*types.EnrolMethod, error)
	SetEnabled(dbc dbctx.Context, id uuid.UUID, enabled bool) error
	ListByCourseID(dbc dbctx.Context, courseID uuid.UUID) ([]*types.EnrolMethod, error)
}

type enrolMethodRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEnrolMethodRepo(db *gorm.DB, baseLog *logger.Logger) EnrolMethodRepo {
	return &enrolMethodRepo{db: db, log: baseLog.With("repo", "EnrolMethodRepo")}
}

func (r *enrolMethodRepo) GetByCourseAndName(dbc dbctx.Context, courseID uuid.UUID, name string) (*types.EnrolMethod, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var row types.EnrolMethod
	if err := t.WithContext(dbc.Ctx).
		Where("course_id = ? AND name = ?", courseID, name).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *enrolMethodRepo) Ensure(dbc dbctx.Context, courseID uuid.UUID, name string) (*types.EnrolMethod, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	inner := dbctx.Context{Ctx: dbc.Ctx, Tx: t}
	existing, err := r.GetByCourseAndName(inner, courseID, name)
	if err != nil || existing != nil {
		return existing, err
	}
	row := &types.EnrolMethod{CourseID: courseID, Name: name, Enabled: false}
	if err := t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row).Error; err != nil {
		return nil, err
	}
	return r.GetByCourseAndName(inner, courseID, name)
}

func (r *enrolMethodRepo) SetEnabled(dbc dbctx.Context, id uuid.UUID, enabled bool) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).
		Model(&types.EnrolMethod{}).
		Where("id = ?", id).
		Update("enabled", enabled).Error
}

func (r *enrolMethodRepo) ListByCourseID(dbc dbctx.Context, courseID uuid.UUID) ([]*types.EnrolMethod, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.EnrolMethod
	if err := t.WithContext(dbc.Ctx).
		Where("course_id = ?", courseID).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
