package disguise

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/platform/dbctx"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
)

const maxClaimAttempts = 5

type UnmappedPoolRepo interface {
	Add(dbc dbctx.Context, contextID, disguiseID uuid.UUID) (*types.UnmappedDisguise, error)
	// Claim removes and returns one pool entry for the context, or nil when
	// the pool is empty.
	Claim(dbc dbctx.Context, contextID uuid.UUID) (*types.UnmappedDisguise, error)
	CountByContextID(dbc dbctx.Context, contextID uuid.UUID) (int64, error)
}

type unmappedPoolRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUnmappedPoolRepo(db *gorm.DB, baseLog *logger.Logger) UnmappedPoolRepo {
	return &unmappedPoolRepo{db: db, log: baseLog.With("repo", "UnmappedPoolRepo")}
}

func (r *unmappedPoolRepo) Add(dbc dbctx.Context, contextID, disguiseID uuid.UUID) (*types.UnmappedDisguise, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	row := &types.UnmappedDisguise{ContextID: contextID, DisguiseID: disguiseID}
	if err := t.WithContext(dbc.Ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// Claim picks a candidate and deletes it conditionally. A zero-row delete
// means a concurrent caller got there first, so it tries the next one.
func (r *unmappedPoolRepo) Claim(dbc dbctx.Context, contextID uuid.UUID) (*types.UnmappedDisguise, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	for attempt := 0; attempt < maxClaimAttempts; attempt++ {
		var row types.UnmappedDisguise
		if err := t.WithContext(dbc.Ctx).
			Where("context_id = ?", contextID).
			Order("created_at ASC, id ASC").
			Limit(1).
			Find(&row).Error; err != nil {
			return nil, err
		}
		if row.ID == uuid.Nil {
			return nil, nil
		}
		res := t.WithContext(dbc.Ctx).
			Where("id = ? AND context_id = ?", row.ID, contextID).
			Delete(&types.UnmappedDisguise{})
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 1 {
			return &row, nil
		}
		r.log.Debug("pool claim lost race, retrying", "context_id", contextID, "attempt", attempt+1)
	}
	r.log.Warn("pool claim gave up after contention", "context_id", contextID)
	return nil, nil
}

func (r *unmappedPoolRepo) CountByContextID(dbc dbctx.Context, contextID uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(dbc.Ctx).
		Model(&types.UnmappedDisguise{}).
		Where("context_id = ?", contextID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
