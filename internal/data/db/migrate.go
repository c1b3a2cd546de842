package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/neurobridge-disguise/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(types.Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return EnsureDisguiseIndexes(db)
}

// EnsureDisguiseIndexes adds lookup indexes that gorm tags do not express.
// Statements are valid on both Postgres and sqlite.
func EnsureDisguiseIndexes(db *gorm.DB) error {
	stmts := []string{
		`CREATE INDEX IF NOT EXISTS idx_disguise_user_map_disguise ON disguise_user_map(disguise_id);`,
		`CREATE INDEX IF NOT EXISTS idx_disguise_unmapped_ctx_created ON disguise_unmapped_pool(context_id, created_at);`,
		`CREATE INDEX IF NOT EXISTS idx_role_assignment_ctx_role ON role_assignment(context_id, role);`,
		`CREATE INDEX IF NOT EXISTS idx_user_enrolment_user_course ON user_enrolment(user_id, course_id);`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("ensure disguise indexes: %w", err)
		}
	}
	return nil
}
