package host

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/platform/dbctx"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
)

type ContextRepo interface {
	Create(dbc dbctx.Context, rows []*types.Context) ([]*types.Context, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Context, error)
	GetByInstance(dbc dbctx.Context, level types.ContextLevel, instanceID uuid.UUID) (*types.Context, error)
	// Ensure returns the context for (level, instance), creating it on first use.
	Ensure(dbc dbctx.Context, level types.ContextLevel, instanceID uuid.UUID) (*types.Context, error)
}

type contextRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContextRepo(db *gorm.DB, baseLog *logger.Logger) ContextRepo {
	return &contextRepo{db: db, log: baseLog.With("repo", "ContextRepo")}
}

func (r *contextRepo) Create(dbc dbctx.Context, rows []*types.Context) ([]*types.Context, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Context{}, nil
	}
	if err := t.WithContext(dbc.Ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *contextRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Context, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var row types.Context
	if err := t.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *contextRepo) GetByInstance(dbc dbctx.Context, level types.ContextLevel, instanceID uuid.UUID) (*types.Context, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var row types.Context
	if err := t.WithContext(dbc.Ctx).
		Where("level = ? AND instance_id = ?", level, instanceID).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *contextRepo) Ensure(dbc dbctx.Context, level types.ContextLevel, instanceID uuid.UUID) (*types.Context, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	row := &types.Context{Level: level, InstanceID: instanceID}
	if err := t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row).Error; err != nil {
		return nil, err
	}
	return r.GetByInstance(dbctx.Context{Ctx: dbc.Ctx, Tx: t}, level, instanceID)
}
