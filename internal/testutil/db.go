// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/todo-web/internal/database"
	"github.com/yukikurage/todo-web/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB returns a migrated in-memory SQLite database that is closed when the
// test ends. It is also installed as database.DB.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(":memory:"), zerolog.Nop(), gormlogger.Silent)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every new connection to ":memory:" is a fresh, empty database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	database.SetDB(db)

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

// CreateUser inserts a user whose password is password.
func CreateUser(t *testing.T, db *gorm.DB, username, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{Username: username, PasswordHash: string(hash)}
	require.NoError(t, db.Create(user).Error)
	return user
}

// TaskOption customizes a task created by CreateTask.
type TaskOption func(*models.Task)

func WithStatus(s models.TaskStatus) TaskOption {
	return func(t *models.Task) { t.Status = s }
}

func WithPriority(p models.TaskPriority) TaskOption {
	return func(t *models.Task) { t.Priority = p }
}

func WithCategory(c models.TaskCategory) TaskOption {
	return func(t *models.Task) { t.Category = c }
}

func WithDueDate(d time.Time) TaskOption {
	return func(t *models.Task) { t.DueDate = d }
}

func CreateTask(t *testing.T, db *gorm.DB, ownerID uint64, title string, opts ...TaskOption) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:    title,
		DueDate:  Date(2030, time.January, 1),
		Status:   models.TaskStatusNotStarted,
		Priority: models.TaskPriorityMedium,
		Category: models.TaskCategoryOther,
		UserID:   ownerID,
	}
	for _, opt := range opts {
		opt(task)
	}
	require.NoError(t, db.Create(task).Error)
	return task
}

// Date returns midnight UTC of the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
