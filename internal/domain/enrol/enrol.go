package enrol

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnrolMethod is one enrolment plugin instance attached to a course.
type EnrolMethod struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID  uuid.UUID `gorm:"type:uuid;column:course_id;not null;uniqueIndex:idx_enrol_method_course_name" json:"course_id"`
	Name      string    `gorm:"column:name;not null;uniqueIndex:idx_enrol_method_course_name" json:"name"`
	Enabled   bool      `gorm:"column:enabled;not null;default:false" json:"enabled"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (EnrolMethod) TableName() string { return "enrol_method" }

func (m *EnrolMethod) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type UserEnrolment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	MethodID  uuid.UUID `gorm:"type:uuid;column:method_id;not null;uniqueIndex:idx_user_enrolment_method_user" json:"method_id"`
	CourseID  uuid.UUID `gorm:"type:uuid;column:course_id;not null;index" json:"course_id"`
	UserID    uuid.UUID `gorm:"type:uuid;column:user_id;not null;uniqueIndex:idx_user_enrolment_method_user;index" json:"user_id"`
	Role      string    `gorm:"column:role;not null" json:"role"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (UserEnrolment) TableName() string { return "user_enrolment" }

func (e *UserEnrolment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

type RoleAssignment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ContextID uuid.UUID `gorm:"type:uuid;column:context_id;not null;uniqueIndex:idx_role_assignment_ctx_user_role" json:"context_id"`
	UserID    uuid.UUID `gorm:"type:uuid;column:user_id;not null;uniqueIndex:idx_role_assignment_ctx_user_role" json:"user_id"`
	Role      string    `gorm:"column:role;not null;uniqueIndex:idx_role_assignment_ctx_user_role" json:"role"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (RoleAssignment) TableName() string { return "role_assignment" }

func (a *RoleAssignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
