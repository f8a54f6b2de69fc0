package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yukikurage/todo-web/internal/constants"
	apierrors "github.com/yukikurage/todo-web/internal/errors"
	"github.com/yukikurage/todo-web/internal/models"
	"github.com/yukikurage/todo-web/internal/services"
	"github.com/yukikurage/todo-web/internal/utils"
)

// OwnedTaskGetter resolves a task on behalf of a user.
type OwnedTaskGetter interface {
	GetOwnedTask(ctx context.Context, taskID, requesterID uint64) (*models.Task, error)
}

// RequireOwnedTask loads the task named by :id if the current user owns it.
// A malformed id, a missing task and someone else's task all get the same
// response so the caller cannot tell them apart.
// Must run after RequireAuth.
func RequireOwnedTask(tasks OwnedTaskGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			abortUnauthenticated(c)
			return
		}

		taskID, ok := utils.ParseID(c, "id")
		if !ok {
			abortTaskUnavailable(c)
			return
		}

		task, err := tasks.GetOwnedTask(c.Request.Context(), taskID, userID)
		if err != nil {
			if errors.Is(err, services.ErrTaskNotFound) || errors.Is(err, services.ErrTaskForbidden) {
				abortTaskUnavailable(c)
				return
			}
			zerolog.Ctx(c.Request.Context()).Error().Err(err).Uint64("task_id", taskID).Msg("failed to load task")
			AbortWithErrorPage(c)
			return
		}

		c.Set(constants.ContextKeyTask, task)
		c.Next()
	}
}

func abortTaskUnavailable(c *gin.Context) {
	if utils.WantsJSON(c) {
		apierrors.NotFound(c, "Task not found")
		return
	}
	c.Redirect(http.StatusFound, "/tasks")
	c.Abort()
}

// GetTask returns the task set by RequireOwnedTask.
func GetTask(c *gin.Context) (*models.Task, bool) {
	v, exists := c.Get(constants.ContextKeyTask)
	if !exists {
		return nil, false
	}
	task, ok := v.(*models.Task)
	return task, ok && task != nil
}
