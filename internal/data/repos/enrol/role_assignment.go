package enrol

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/neurobridge-disguise/internal/domain"
	"github.com/yungbote/neurobridge-disguise/internal/platform/dbctx"
	"github.com/yungbote/neurobridge-disguise/internal/platform/logger"
)

type RoleAssignmentRepo interface {
	Assign(dbc dbctx.Context, contextID, userID uuid.UUID, role string) error
	Unassign(dbc dbctx.Context, contextID, userID uuid.UUID, role string) error
	UserIDsWithRoles(dbc dbctx.Context, contextID uuid.UUID, roles []string) ([]uuid.UUID, error)
}

type roleAssignmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoleAssignmentRepo(db *gorm.DB, baseLog *logger.Logger) RoleAssignmentRepo {
	return &roleAssignmentRepo{db: db, log: baseLog.With("repo", "RoleAssignmentRepo")}
}

func (r *roleAssignmentRepo) Assign(dbc dbctx.Context, contextID, userID uuid.UUID, role string) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&types.RoleAssignment{ContextID: contextID, UserID: userID, Role: role}).Error
}

func (r *roleAssignmentRepo) Unassign(dbc dbctx.Context, contextID, userID uuid.UUID, role string) error {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Ctx).
		Where("context_id = ? AND user_id = ? AND role = ?", contextID, userID, role).
		Delete(&types.RoleAssignment{}).Error
}

func (r *roleAssignmentRepo) UserIDsWithRoles(dbc dbctx.Context, contextID uuid.UUID, roles []string) ([]uuid.UUID, error) {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	var ids []uuid.UUID
	if len(roles) == 0 {
		return ids, nil
	}
	if err := t.WithContext(dbc.Ctx).
		Model(&types.RoleAssignment{}).
		Where("context_id = ? AND role IN ?", contextID, roles).
		Distinct().
		Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
