package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yukikurage/todo-web/internal/constants"
	"github.com/yukikurage/todo-web/internal/dto"
	apierrors "github.com/yukikurage/todo-web/internal/errors"
	"github.com/yukikurage/todo-web/internal/middleware"
	"github.com/yukikurage/todo-web/internal/models"
	"github.com/yukikurage/todo-web/internal/services"
	"github.com/yukikurage/todo-web/internal/utils"
	"github.com/yukikurage/todo-web/internal/validation"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// TaskRequest is the create/edit form. It has no owner field: the owner is
// always the current user on create and never changes on update.
type TaskRequest struct {
	Title    string              `form:"title" json:"title" binding:"required,notblank,min=3,max=255"`
	DueDate  string              `form:"dueDate" json:"dueDate" binding:"required,datetime=2006-01-02"`
	Status   models.TaskStatus   `form:"status" json:"status" binding:"omitempty,task_status"`
	Priority models.TaskPriority `form:"priority" json:"priority" binding:"omitempty,task_priority"`
	Category models.TaskCategory `form:"category" json:"category" binding:"omitempty,max=32,task_category"`
}

// withDefaults fills the enum fields a form left out.
func (r TaskRequest) withDefaults() TaskRequest {
	if r.Status == "" {
		r.Status = models.TaskStatusNotStarted
	}
	if r.Priority == "" {
		r.Priority = models.TaskPriorityMedium
	}
	if r.Category == "" {
		r.Category = models.TaskCategoryOther
	}
	return r
}

func (r TaskRequest) dueDate() time.Time {
	// already checked by the datetime rule; stored as UTC midnight
	d, _ := time.ParseInLocation(constants.DateLayout, r.DueDate, time.UTC)
	return d
}

func bindTask(c *gin.Context) (TaskRequest, error) {
	var req TaskRequest
	if err := c.ShouldBind(&req); err != nil {
		return req, err
	}
	return req.withDefaults(), nil
}

// ListTasks renders the current user's tasks with one filter axis applied and
// the user's progress stats.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.AbortWithErrorPage(c)
		return
	}
	ctx := c.Request.Context()

	input := services.ListTasksInput{
		Keyword:  c.Query("keyword"),
		Status:   utils.QueryStatus(c),
		Priority: utils.QueryPriority(c),
		Category: utils.QueryCategory(c),
		Sort:     c.Query("sort"),
	}

	tasks, err := h.taskService.ListTasks(ctx, user.ID, input)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to list tasks")
		middleware.AbortWithErrorPage(c)
		return
	}

	stats, err := h.taskService.Stats(ctx, user.ID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to compute task stats")
		middleware.AbortWithErrorPage(c)
		return
	}

	if utils.WantsJSON(c) {
		c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, stats))
		return
	}

	c.HTML(http.StatusOK, "tasks.html", choices(gin.H{
		"User":    user,
		"Tasks":   tasks,
		"Stats":   stats,
		"Flashes": takeFlashes(c),
		"Filter": gin.H{
			"Keyword":  input.Keyword,
			"Status":   c.Query("status"),
			"Priority": c.Query("priority"),
			"Category": c.Query("category"),
		},
	}))
}

// CreateTask creates a task owned by the current user
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		middleware.AbortWithErrorPage(c)
		return
	}
	ctx := c.Request.Context()

	req, err := bindTask(c)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("invalid task form")
		if utils.WantsJSON(c) {
			apierrors.BadRequestWithDetails(c, constants.MsgInvalidTaskForm, validation.Messages(err))
			return
		}
		redirectWithFlash(c, "/tasks", constants.FlashError, constants.MsgInvalidTaskForm)
		return
	}

	task, err := h.taskService.CreateTask(ctx, services.CreateTaskInput{
		Title:    req.Title,
		DueDate:  req.dueDate(),
		Status:   req.Status,
		Priority: req.Priority,
		Category: req.Category,
		OwnerID:  userID,
	})
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to create task")
		middleware.AbortWithErrorPage(c)
		return
	}

	if utils.WantsJSON(c) {
		c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
		return
	}
	redirectWithFlash(c, "/tasks", constants.FlashSuccess, constants.MsgTaskCreated)
}

// EditTask shows the edit form of a task resolved by RequireOwnedTask.
func (h *TaskHandler) EditTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		redirect(c, "/tasks")
		return
	}

	if utils.WantsJSON(c) {
		c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
		return
	}

	user, _ := middleware.CurrentUser(c)
	data := choices(gin.H{
		"User": user,
		"Task": task,
	})
	data["Categories"] = categoriesWith(task.Category)
	c.HTML(http.StatusOK, "edit-task.html", data)
}

// categoriesWith keeps a custom category selectable on the edit form.
func categoriesWith(current models.TaskCategory) []models.TaskCategory {
	for _, c := range models.TaskCategories {
		if c == current {
			return models.TaskCategories
		}
	}
	out := make([]models.TaskCategory, 0, len(models.TaskCategories)+1)
	out = append(out, models.TaskCategories...)
	return append(out, current)
}

// UpdateTask applies the edit form. Updating a missing task, someone else's
// task and one's own task all answer with the same redirect and message.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		middleware.AbortWithErrorPage(c)
		return
	}
	ctx := c.Request.Context()

	req, err := bindTask(c)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("invalid task form")
		redirectWithFlash(c, "/tasks", constants.FlashError, constants.MsgInvalidTaskForm)
		return
	}

	taskID, ok := utils.ParseID(c, "id")
	if !ok {
		redirectWithFlash(c, "/tasks", constants.FlashSuccess, constants.MsgTaskUpdated)
		return
	}

	err = h.taskService.UpdateTask(ctx, taskID, services.UpdateTaskInput{
		Title:    req.Title,
		DueDate:  req.dueDate(),
		Status:   req.Status,
		Priority: req.Priority,
		Category: req.Category,
	}, userID)
	if err != nil && !isMaskedTaskError(err) {
		zerolog.Ctx(ctx).Error().Err(err).Uint64("task_id", taskID).Msg("failed to update task")
		middleware.AbortWithErrorPage(c)
		return
	}

	redirectWithFlash(c, "/tasks", constants.FlashSuccess, constants.MsgTaskUpdated)
}

// DeleteTask deletes an owned task. Like UpdateTask, the response does not
// reveal whether anything was deleted.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		middleware.AbortWithErrorPage(c)
		return
	}
	ctx := c.Request.Context()

	taskID, ok := utils.ParseID(c, "id")
	if !ok {
		redirect(c, "/tasks")
		return
	}

	if err := h.taskService.DeleteTask(ctx, taskID, userID); err != nil && !isMaskedTaskError(err) {
		zerolog.Ctx(ctx).Error().Err(err).Uint64("task_id", taskID).Msg("failed to delete task")
		middleware.AbortWithErrorPage(c)
		return
	}

	redirect(c, "/tasks")
}

func isMaskedTaskError(err error) bool {
	return errors.Is(err, services.ErrTaskNotFound) || errors.Is(err, services.ErrTaskForbidden)
}

// ExportTasks downloads all of the current user's tasks as CSV.
func (h *TaskHandler) ExportTasks(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		middleware.AbortWithErrorPage(c)
		return
	}
	ctx := c.Request.Context()

	tasks, err := h.taskService.GetAllTasksByUser(ctx, userID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to load tasks for export")
		middleware.AbortWithErrorPage(c)
		return
	}

	var buf bytes.Buffer
	if err := services.WriteTasksCSV(&buf, tasks); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to write csv")
		middleware.AbortWithErrorPage(c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="my_tasks.csv"`)
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}
