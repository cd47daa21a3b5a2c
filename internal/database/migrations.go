package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Plan indexes for organizer scoping and the cancelled-plan sweep
		{"plans", "idx_plans_organizer_id", "organizer_id"},
		{"plans", "idx_plans_status_canceled_at", "status, canceled_at"},

		// Participant indexes for membership checks and token lookup
		{"participants", "idx_participants_plan_id", "plan_id"},
		{"participants", "idx_participants_user_id", "user_id"},
		{"participants", "idx_participants_invite_token", "invite_token"},

		// Task indexes for plan and assignee listings
		{"tasks", "idx_tasks_plan_id", "plan_id"},
		{"tasks", "idx_tasks_user_id", "user_id"},
		{"tasks", "idx_tasks_status", "status"},
	}

	for _, idx := range indexes {
		// Check if index already exists
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
