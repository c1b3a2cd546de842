package disguise

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/platform/dbctx"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
)

type ContextModeRepo interface {
	GetByContextID(dbc dbctx.Context, contextID uuid.UUID) (*types.ContextMode, error)
	Upsert(dbc dbctx.Context, contextID uuid.UUID, mode types.Mode) error
}

type contextModeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContextModeRepo(db *gorm.DB, baseLog *logger.Logger) ContextModeRepo {
	return &contextModeRepo{db: db, log: baseLog.With("repo", "ContextModeRepo")}
}

func (r *contextModeRepo) GetByContextID(dbc dbctx.Context, contextID uuid.UUID) (*types.ContextMode, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if contextID == uuid.Nil {
		return nil, nil
	}
	var row types.ContextMode
	if err := t.WithContext(dbc.Ctx).
		Where("context_id = ?", contextID).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ContextID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *contextModeRepo) Upsert(dbc dbctx.Context, contextID uuid.UUID, mode types.Mode) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	now := time.Now().UTC()
	row := &types.ContextMode{
		ContextID: contextID,
		Mode:      mode,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "context_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"mode", "updated_at"}),
		}).
		Create(row).Error
}
