package dto

import (
	"time"

	"github.com/yukikurage/todo-web/internal/constants"
	"github.com/yukikurage/todo-web/internal/models"
	"github.com/yukikurage/todo-web/internal/services"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskDTO represents a task in API responses. The due date is a calendar day.
type TaskDTO struct {
	ID        uint64              `json:"id"`
	Title     string              `json:"title"`
	DueDate   string              `json:"due_date"`
	Status    models.TaskStatus   `json:"status"`
	Priority  models.TaskPriority `json:"priority"`
	Category  models.TaskCategory `json:"category"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// TaskListResponse is the JSON rendering of the task listing page
type TaskListResponse struct {
	Tasks           []TaskDTO `json:"tasks"`
	TotalTasks      int64     `json:"totalTasks"`
	CompletedTasks  int64     `json:"completedTasks"`
	ProgressPercent int       `json:"progressPercent"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:        task.ID,
		Title:     task.Title,
		DueDate:   task.DueDate.Format(constants.DateLayout),
		Status:    task.Status,
		Priority:  task.Priority,
		Category:  task.Category,
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

// ToTaskListResponse converts tasks and their owner's stats to TaskListResponse
func ToTaskListResponse(tasks []models.Task, stats services.TaskStats) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	return TaskListResponse{
		Tasks:           items,
		TotalTasks:      stats.Total,
		CompletedTasks:  stats.Completed,
		ProgressPercent: stats.ProgressPercent,
	}
}
