package repository

import (
	"context"

	"github.com/yukikurage/todo-web/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(ctx context.Context, task *models.Task) error

	// FindByID finds a task by ID regardless of owner
	FindByID(ctx context.Context, id uint64) (*models.Task, error)

	// List retrieves one user's tasks matching the filter
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)

	// Count counts one user's tasks, optionally restricted to a status
	Count(ctx context.Context, userID uint64, status *models.TaskStatus) (int64, error)

	// Update saves every column of the task
	Update(ctx context.Context, task *models.Task) error

	// Delete permanently deletes a task
	Delete(ctx context.Context, id uint64) error
}

// TaskOrder selects the ordering of a task listing.
type TaskOrder int

const (
	OrderDefault TaskOrder = iota
	OrderByDueDate
	OrderByStatus
)

// TaskFilter holds filtering options for listing tasks. UserID is mandatory;
// nil pointers and an empty keyword mean the filter is not applied.
type TaskFilter struct {
	UserID   uint64
	Status   *models.TaskStatus
	Priority *models.TaskPriority
	Category *models.TaskCategory
	Keyword  string
	Order    TaskOrder
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// UpdatePassword overwrites a user's password hash
	UpdatePassword(ctx context.Context, id uint64, passwordHash string) error
}
