package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yukikurage/todo-web/internal/metrics"
	"github.com/yukikurage/todo-web/internal/models"
	"github.com/yukikurage/todo-web/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrTaskForbidden = errors.New("task belongs to another user")
)

// TaskService handles task business logic. Every method that reads or mutates
// a single task on behalf of a user checks ownership; GetTaskByID is the one
// exception and must be paired with a check by its caller.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// CreateTaskInput represents input for creating a task. Field validation is
// done by the HTTP binding layer.
type CreateTaskInput struct {
	Title    string
	DueDate  time.Time
	Status   models.TaskStatus
	Priority models.TaskPriority
	Category models.TaskCategory
	OwnerID  uint64
}

// UpdateTaskInput carries the editable fields. There is deliberately no owner
// field: a task never changes hands.
type UpdateTaskInput struct {
	Title    string
	DueDate  time.Time
	Status   models.TaskStatus
	Priority models.TaskPriority
	Category models.TaskCategory
}

// ListTasksInput carries the listing query. At most one axis is honored, in
// the order Keyword, Status, Priority, Category, Sort.
type ListTasksInput struct {
	Keyword  string
	Status   *models.TaskStatus
	Priority *models.TaskPriority
	Category *models.TaskCategory
	Sort     string
}

const (
	SortByDate   = "date"
	SortByStatus = "status"
)

// TaskStats summarizes a user's progress.
type TaskStats struct {
	Total           int64
	Completed       int64
	ProgressPercent int
}

// CreateTask creates a new task owned by input.OwnerID
func (s *TaskService) CreateTask(ctx context.Context, input CreateTaskInput) (*models.Task, error) {
	task := &models.Task{
		Title:    input.Title,
		DueDate:  input.DueDate,
		Status:   input.Status,
		Priority: input.Priority,
		Category: input.Category,
		UserID:   input.OwnerID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	metrics.TaskMutations.WithLabelValues("create", "ok").Inc()
	return task, nil
}

// GetTaskByID returns a task without checking who owns it.
func (s *TaskService) GetTaskByID(ctx context.Context, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// GetOwnedTask returns the task only if requesterID owns it.
func (s *TaskService) GetOwnedTask(ctx context.Context, taskID, requesterID uint64) (*models.Task, error) {
	task, err := s.GetTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.OwnedBy(requesterID) {
		return nil, ErrTaskForbidden
	}
	return task, nil
}

// UpdateTask overwrites the editable fields of an owned task. It returns
// ErrTaskNotFound or ErrTaskForbidden without touching the store otherwise;
// callers decide whether to surface the distinction.
func (s *TaskService) UpdateTask(ctx context.Context, taskID uint64, input UpdateTaskInput, requesterID uint64) error {
	task, err := s.GetOwnedTask(ctx, taskID, requesterID)
	if err != nil {
		s.recordRejected(ctx, "update", taskID, requesterID, err)
		return err
	}

	task.Title = input.Title
	task.DueDate = input.DueDate
	task.Status = input.Status
	task.Priority = input.Priority
	task.Category = input.Category

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	metrics.TaskMutations.WithLabelValues("update", "ok").Inc()
	return nil
}

// DeleteTask permanently deletes an owned task, with the same outcomes as
// UpdateTask.
func (s *TaskService) DeleteTask(ctx context.Context, taskID, requesterID uint64) error {
	if _, err := s.GetOwnedTask(ctx, taskID, requesterID); err != nil {
		s.recordRejected(ctx, "delete", taskID, requesterID, err)
		return err
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	metrics.TaskMutations.WithLabelValues("delete", "ok").Inc()
	return nil
}

func (s *TaskService) recordRejected(ctx context.Context, op string, taskID, requesterID uint64, err error) {
	var outcome string
	switch {
	case errors.Is(err, ErrTaskNotFound):
		outcome = "not_found"
	case errors.Is(err, ErrTaskForbidden):
		outcome = "forbidden"
	default:
		return
	}

	metrics.TaskMutations.WithLabelValues(op, outcome).Inc()
	zerolog.Ctx(ctx).Debug().
		Str("op", op).
		Str("outcome", outcome).
		Uint64("task_id", taskID).
		Uint64("user_id", requesterID).
		Msg("task mutation rejected")
}

// ListTasks resolves the listing query to a single filter axis.
func (s *TaskService) ListTasks(ctx context.Context, userID uint64, input ListTasksInput) ([]models.Task, error) {
	switch {
	case input.Keyword != "":
		return s.SearchTasks(ctx, userID, input.Keyword)
	case input.Status != nil:
		return s.GetTasksByStatus(ctx, userID, *input.Status)
	case input.Priority != nil:
		return s.GetTasksByPriority(ctx, userID, *input.Priority)
	case input.Category != nil:
		return s.GetTasksByCategory(ctx, userID, *input.Category)
	case input.Sort == SortByDate:
		return s.GetTasksSortedByDate(ctx, userID)
	case input.Sort == SortByStatus:
		return s.GetTasksSortedByStatus(ctx, userID)
	default:
		return s.GetAllTasksByUser(ctx, userID)
	}
}

func (s *TaskService) GetAllTasksByUser(ctx context.Context, userID uint64) ([]models.Task, error) {
	return s.list(ctx, repository.TaskFilter{UserID: userID})
}

func (s *TaskService) GetTasksByStatus(ctx context.Context, userID uint64, status models.TaskStatus) ([]models.Task, error) {
	return s.list(ctx, repository.TaskFilter{UserID: userID, Status: &status})
}

func (s *TaskService) GetTasksByPriority(ctx context.Context, userID uint64, priority models.TaskPriority) ([]models.Task, error) {
	return s.list(ctx, repository.TaskFilter{UserID: userID, Priority: &priority})
}

func (s *TaskService) GetTasksByCategory(ctx context.Context, userID uint64, category models.TaskCategory) ([]models.Task, error) {
	return s.list(ctx, repository.TaskFilter{UserID: userID, Category: &category})
}

func (s *TaskService) GetTasksSortedByDate(ctx context.Context, userID uint64) ([]models.Task, error) {
	return s.list(ctx, repository.TaskFilter{UserID: userID, Order: repository.OrderByDueDate})
}

func (s *TaskService) GetTasksSortedByStatus(ctx context.Context, userID uint64) ([]models.Task, error) {
	return s.list(ctx, repository.TaskFilter{UserID: userID, Order: repository.OrderByStatus})
}

// SearchTasks matches keyword against titles only.
func (s *TaskService) SearchTasks(ctx context.Context, userID uint64, keyword string) ([]models.Task, error) {
	return s.list(ctx, repository.TaskFilter{UserID: userID, Keyword: keyword})
}

func (s *TaskService) list(ctx context.Context, filter repository.TaskFilter) ([]models.Task, error) {
	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	count, err := s.taskRepo.Count(ctx, userID, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

func (s *TaskService) CountByUserAndStatus(ctx context.Context, userID uint64, status models.TaskStatus) (int64, error) {
	count, err := s.taskRepo.Count(ctx, userID, &status)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

// Stats returns the user's total and completed counts with the derived
// progress percentage.
func (s *TaskService) Stats(ctx context.Context, userID uint64) (TaskStats, error) {
	total, err := s.CountByUser(ctx, userID)
	if err != nil {
		return TaskStats{}, err
	}
	completed, err := s.CountByUserAndStatus(ctx, userID, models.TaskStatusCompleted)
	if err != nil {
		return TaskStats{}, err
	}

	return TaskStats{
		Total:           total,
		Completed:       completed,
		ProgressPercent: ProgressPercent(completed, total),
	}, nil
}

// ProgressPercent is completed*100/total rounded down, or 0 when total is 0.
func ProgressPercent(completed, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(completed * 100 / total)
}
