package disguise

import (
	"time"

	"github.com/google/uuid"
)

// ContextMode stores the policy for exactly one context. No row means disabled.
type ContextMode struct {
	ContextID uuid.UUID `gorm:"type:uuid;primaryKey;column:context_id" json:"context_id"`
	Mode      Mode      `gorm:"column:mode;not null;default:0" json:"mode"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (ContextMode) TableName() string { return "disguise_ctx_mode" }
