package database

import (
	"fmt"

	"github.com/yukikurage/todo-web/internal/models"
	"gorm.io/gorm"
)

// taskIndexes back the per-user filter and sort queries of the task listing.
var taskIndexes = []struct {
	name    string
	columns string
}{
	{"idx_tasks_user_status", "user_id, status"},
	{"idx_tasks_user_priority", "user_id, priority"},
	{"idx_tasks_user_category", "user_id, category"},
	{"idx_tasks_user_due_date", "user_id, due_date"},
}

// AddIndexes creates the composite task indexes that are missing.
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range taskIndexes {
		if migrator.HasIndex(&models.Task{}, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON tasks (%s)", idx.name, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
