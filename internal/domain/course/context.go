package course

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContextLevel string

const (
	LevelSystem   ContextLevel = "system"
	LevelUser     ContextLevel = "user"
	LevelCategory ContextLevel = "category"
	LevelCourse   ContextLevel = "course"
	LevelModule   ContextLevel = "module"
	LevelBlock    ContextLevel = "block"
)

// Context is a scope in the host hierarchy. InstanceID points at the course
// or course module the context belongs to (uuid.Nil for the system context).
type Context struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Level      ContextLevel `gorm:"column:level;not null;uniqueIndex:idx_context_level_instance" json:"level"`
	InstanceID uuid.UUID    `gorm:"type:uuid;column:instance_id;not null;uniqueIndex:idx_context_level_instance" json:"instance_id"`
	CreatedAt  time.Time    `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Context) TableName() string { return "context" }

func (c *Context) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
