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

// KeywordCount is a keyword with the number of items it holds.
type KeywordCount struct {
	ID      uuid.UUID `json:"id"`
	Keyword string    `json:"keyword"`
	Items   int64     `json:"items"`
}

type NamingKeywordRepo interface {
	Create(dbc dbctx.Context, keyword string) (*types.NamingKeyword, error)
	GetByKeyword(dbc dbctx.Context, keyword string) (*types.NamingKeyword, error)
	GetByKeywords(dbc dbctx.Context, keywords []string) ([]*types.NamingKeyword, error)
	ListWithCounts(dbc dbctx.Context) ([]KeywordCount, error)
}

type namingKeywordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNamingKeywordRepo(db *gorm.DB, baseLog *logger.Logger) NamingKeywordRepo {
	return &namingKeywordRepo{db: db, log: baseLog.With("repo", "NamingKeywordRepo")}
}

func (r *namingKeywordRepo) Create(dbc dbctx.Context, keyword string) (*types.NamingKeyword, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	row := &types.NamingKeyword{Keyword: keyword}
	if err := t.WithContext(dbc.Ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *namingKeywordRepo) GetByKeyword(dbc dbctx.Context, keyword string) (*types.NamingKeyword, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var row types.NamingKeyword
	if err := t.WithContext(dbc.Ctx).
		Where("keyword = ?", keyword).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *namingKeywordRepo) GetByKeywords(dbc dbctx.Context, keywords []string) ([]*types.NamingKeyword, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.NamingKeyword
	if len(keywords) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("keyword IN ?", keywords).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *namingKeywordRepo) ListWithCounts(dbc dbctx.Context) ([]KeywordCount, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []KeywordCount
	if err := t.WithContext(dbc.Ctx).
		Table(types.NamingKeyword{}.TableName()+" AS k").
		Select("k.id AS id, k.keyword AS keyword, COUNT(i.id) AS items").
		Joins("LEFT JOIN "+types.NamingItem{}.TableName()+" AS i ON i.keyword_id = k.id").
		Group("k.id, k.keyword").
		Order("k.keyword ASC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type NamingItemRepo interface {
	Create(dbc dbctx.Context, keywordID uuid.UUID, names []string) ([]*types.NamingItem, error)
	ListByKeywordID(dbc dbctx.Context, keywordID uuid.UUID) ([]*types.NamingItem, error)
	ListByKeywordIDs(dbc dbctx.Context, keywordIDs []uuid.UUID) ([]*types.NamingItem, error)
	CountByKeywordID(dbc dbctx.Context, keywordID uuid.UUID) (int64, error)
}

type namingItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNamingItemRepo(db *gorm.DB, baseLog *logger.Logger) NamingItemRepo {
	return &namingItemRepo{db: db, log: baseLog.With("repo", "NamingItemRepo")}
}

func (r *namingItemRepo) Create(dbc dbctx.Context, keywordID uuid.UUID, names []string) ([]*types.NamingItem, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	rows := make([]*types.NamingItem, 0, len(names))
	for _, n := range names {
		rows = append(rows, &types.NamingItem{KeywordID: keywordID, Name: n})
	}
	if len(rows) == 0 {
		return rows, nil
	}
	if err := t.WithContext(dbc.Ctx).CreateInBatches(&rows, 200).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *namingItemRepo) ListByKeywordID(dbc dbctx.Context, keywordID uuid.UUID) ([]*types.NamingItem, error) {
	return r.ListByKeywordIDs(dbc, []uuid.UUID{keywordID})
}

func (r *namingItemRepo) ListByKeywordIDs(dbc dbctx.Context, keywordIDs []uuid.UUID) ([]*types.NamingItem, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var out []*types.NamingItem
	if len(keywordIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Where("keyword_id IN ?", keywordIDs).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *namingItemRepo) CountByKeywordID(dbc dbctx.Context, keywordID uuid.UUID) (int64, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(dbc.Ctx).
		Model(&types.NamingItem{}).
		Where("keyword_id = ?", keywordID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

type NamingSetRepo interface {
	// Ensure returns the set with this exact naming string, creating it if needed.
	Ensure(dbc dbctx.Context, naming string) (*types.NamingSet, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.NamingSet, error)
}

type namingSetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNamingSetRepo(db *gorm.DB, baseLog *logger.Logger) NamingSetRepo {
	return &namingSetRepo{db: db, log: baseLog.With("repo", "NamingSetRepo")}
}

func (r *namingSetRepo) Ensure(dbc dbctx.Context, naming string) (*types.NamingSet, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&types.NamingSet{Naming: naming}).Error; err != nil {
		return nil, err
	}
	var row types.NamingSet
	if err := t.WithContext(dbc.Ctx).
		Where("naming = ?", naming).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, nil
	}
	return &row, nil
}

func (r *namingSetRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.NamingSet, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var row types.NamingSet
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

type NamingContextRepo interface {
	GetByContextID(dbc dbctx.Context, contextID uuid.UUID) (*types.NamingContext, error)
	Upsert(dbc dbctx.Context, contextID, namingSetID uuid.UUID) error
}

type namingContextRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNamingContextRepo(db *gorm.DB, baseLog *logger.Logger) NamingContextRepo {
	return &namingContextRepo{db: db, log: baseLog.With("repo", "NamingContextRepo")}
}

func (r *namingContextRepo) GetByContextID(dbc dbctx.Context, contextID uuid.UUID) (*types.NamingContext, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var row types.NamingContext
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

func (r *namingContextRepo) Upsert(dbc dbctx.Context, contextID, namingSetID uuid.UUID) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	row := &types.NamingContext{
		ContextID:   contextID,
		NamingSetID: namingSetID,
		UpdatedAt:   time.Now().UTC(),
	}
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "context_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"naming_set_id", "updated_at"}),
		}).
		Create(row).Error
}
