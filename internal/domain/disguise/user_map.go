package disguise

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserMap links a real user to their disguise inside one context.
type UserMap struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ContextID  uuid.UUID `gorm:"type:uuid;column:context_id;not null;uniqueIndex:idx_disguise_user_map_ctx_user;uniqueIndex:idx_disguise_user_map_ctx_disguise" json:"context_id"`
	UserID     uuid.UUID `gorm:"type:uuid;column:user_id;not null;uniqueIndex:idx_disguise_user_map_ctx_user;index" json:"user_id"`
	DisguiseID uuid.UUID `gorm:"type:uuid;column:disguise_id;not null;uniqueIndex:idx_disguise_user_map_ctx_disguise" json:"disguise_id"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (UserMap) TableName() string { return "disguise_user_map" }

func (m *UserMap) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// UnmappedDisguise is a spare disguise account reserved for a context.
type UnmappedDisguise struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ContextID  uuid.UUID `gorm:"type:uuid;column:context_id;not null;uniqueIndex:idx_disguise_unmapped_ctx_disguise" json:"context_id"`
	DisguiseID uuid.UUID `gorm:"type:uuid;column:disguise_id;not null;uniqueIndex:idx_disguise_unmapped_ctx_disguise" json:"disguise_id"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (UnmappedDisguise) TableName() string { return "disguise_unmapped_pool" }

func (u *UnmappedDisguise) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
