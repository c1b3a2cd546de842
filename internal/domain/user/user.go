package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AuthManual   = "manual"
	AuthDisguise = "disguise"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null;column:username" json:"username"`
	Email     string    `gorm:"not null;column:email" json:"email"`
	Password  string    `gorm:"not null;default:'';column:password" json:"-"`
	FirstName string    `gorm:"not null;column:first_name" json:"first_name"`
	LastName  string    `gorm:"not null;column:last_name" json:"last_name"`
	Auth      string    `gorm:"not null;default:'manual';column:auth;index" json:"auth"`
	SiteAdmin bool      `gorm:"not null;default:false;column:site_admin" json:"site_admin"`
	Confirmed bool      `gorm:"not null;default:false;column:confirmed" json:"confirmed"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "user" }

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) IsDisguise() bool {
	return u != nil && u.Auth == AuthDisguise
}
