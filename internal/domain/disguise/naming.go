package disguise

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NamingKeyword struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Keyword   string    `gorm:"column:keyword;not null;uniqueIndex" json:"keyword"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (NamingKeyword) TableName() string { return "disguise_naming_keyword" }

func (k *NamingKeyword) BeforeCreate(tx *gorm.DB) error {
	if k.ID == uuid.Nil {
		k.ID = uuid.New()
	}
	return nil
}

type NamingItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	KeywordID uuid.UUID `gorm:"type:uuid;column:keyword_id;not null;index" json:"keyword_id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (NamingItem) TableName() string { return "disguise_naming_item" }

func (i *NamingItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// NamingSet is an ordered keyword list such as "color animal".
type NamingSet struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Naming    string    `gorm:"column:naming;not null;uniqueIndex" json:"naming"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (NamingSet) TableName() string { return "disguise_naming_set" }

func (s *NamingSet) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Keywords splits the stored naming on spaces and commas.
func (s NamingSet) Keywords() []string {
	return SplitKeywords(s.Naming)
}

func SplitKeywords(naming string) []string {
	return strings.FieldsFunc(naming, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
}

type NamingContext struct {
	ContextID   uuid.UUID `gorm:"type:uuid;primaryKey;column:context_id" json:"context_id"`
	NamingSetID uuid.UUID `gorm:"type:uuid;column:naming_set_id;not null;index" json:"naming_set_id"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (NamingContext) TableName() string { return "disguise_naming_context" }
