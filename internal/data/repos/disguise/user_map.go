package disguise

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/platform/dbctx"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
)

type UserMapRepo interface {
	GetByContextAndUser(dbc dbctx.Context, contextID, userID uuid.UUID) (*types.UserMap, error)
	GetByContextAndDisguise(dbc dbctx.Context, contextID, disguiseID uuid.UUID) (*types.UserMap, error)
	// Insert reports false when another mapping already holds the key.
	Insert(dbc dbctx.Context, row *types.UserMap) (bool, error)
	CountByContextAndUser(dbc dbctx.Context, contextID, userID uuid.UUID) (int64, error)
	ContextIDsForUser(dbc dbctx.Context, userID uuid.UUID) ([]uuid.UUID, error)
	UserIDsForContext(dbc dbctx.Context, contextID uuid.UUID) ([]uuid.UUID, error)
}

type userMapRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserMapRepo(db *gorm.DB, baseLog *logger.Logger) UserMapRepo {
	return &userMapRepo{db: db, log: baseLog.With("repo", "UserMapRepo")}
}

func (r *userMapRepo) GetByContextAndUser(dbc dbctx.Context, contextID, userID uuid.UUID) (*types.UserMap, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var row types.UserMap
	if err := t.WithContext(dbc.Ctx).
		Where("context_id = ? AND user_id = ?", contextID, userID).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *userMapRepo) GetByContextAndDisguise(dbc dbctx.Context, contextID, disguiseID uuid.UUID) (*types.UserMap, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var row types.UserMap
	if err := t.WithContext(dbc.Ctx).
		Where("context_id = ? AND disguise_id = ?", contextID, disguiseID).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *userMapRepo) Insert(dbc dbctx.Context, row *types.UserMap) (bool, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	res := t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *userMapRepo) CountByContextAndUser(dbc dbctx.Context, contextID, userID uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(dbc.Ctx).
		Model(&types.UserMap{}).
		Where("context_id = ? AND user_id = ?", contextID, userID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *userMapRepo) ContextIDsForUser(dbc dbctx.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var ids []uuid.UUID
	if err := t.WithContext(dbc.Ctx).
		Model(&types.UserMap{}).
		Where("user_id = ?", userID).
		Order("context_id ASC").
		Pluck("context_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *userMapRepo) UserIDsForContext(dbc dbctx.Context, contextID uuid.UUID) ([]uuid.UUID, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var ids []uuid.UUID
	if err := t.WithContext(dbc.Ctx).
		Model(&types.UserMap{}).
		Where("context_id = ?", contextID).
		Order("user_id ASC").
		Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
