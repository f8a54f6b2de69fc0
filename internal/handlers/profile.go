package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yukikurage/todo-web/internal/constants"
	"github.com/yukikurage/todo-web/internal/dto"
	"github.com/yukikurage/todo-web/internal/middleware"
	"github.com/yukikurage/todo-web/internal/services"
	"github.com/yukikurage/todo-web/internal/utils"
)

type ProfileHandler struct {
	authService *services.AuthService
	taskService *services.TaskService
}

func NewProfileHandler(authService *services.AuthService, taskService *services.TaskService) *ProfileHandler {
	return &ProfileHandler{
		authService: authService,
		taskService: taskService,
	}
}

// ShowProfile renders the current user's account page.
func (h *ProfileHandler) ShowProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		middleware.AbortWithErrorPage(c)
		return
	}

	if utils.WantsJSON(c) {
		c.JSON(http.StatusOK, dto.ToUserDTO(*user))
		return
	}

	stats, err := h.taskService.Stats(c.Request.Context(), user.ID)
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("failed to compute task stats")
		middleware.AbortWithErrorPage(c)
		return
	}

	c.HTML(http.StatusOK, "profile.html", gin.H{
		"User":    user,
		"Stats":   stats,
		"Flashes": takeFlashes(c),
	})
}

// UpdatePassword changes the password and ends the session, so the user
// logs in again with the new one.
func (h *ProfileHandler) UpdatePassword(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		middleware.AbortWithErrorPage(c)
		return
	}
	ctx := c.Request.Context()

	err := h.authService.UpdatePassword(ctx, userID, c.PostForm("newPassword"))
	switch {
	case err == nil:
	case errors.Is(err, services.ErrPasswordRequired):
		redirectWithFlash(c, "/profile", constants.FlashError, constants.MsgPasswordEmpty)
		return
	case errors.Is(err, services.ErrUserNotFound):
		// account vanished mid-session
		redirect(c, "/login")
		return
	default:
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to update password")
		middleware.AbortWithErrorPage(c)
		return
	}

	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to clear session after password change")
	}

	zerolog.Ctx(ctx).Info().Msg("password updated")
	redirect(c, "/login?updated")
}
