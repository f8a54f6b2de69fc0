package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yukikurage/todo-web/internal/constants"
	"github.com/yukikurage/todo-web/internal/models"
)

// addFlash queues a one-shot message for the next rendered page.
func addFlash(c *gin.Context, kind, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, kind)
	if err := session.Save(); err != nil {
		zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("failed to save flash message")
	}
}

// takeFlashes drains the queued messages for a page.
func takeFlashes(c *gin.Context) gin.H {
	session := sessions.Default(c)
	errs := flashStrings(session.Flashes(constants.FlashError))
	successes := flashStrings(session.Flashes(constants.FlashSuccess))
	if len(errs)+len(successes) > 0 {
		if err := session.Save(); err != nil {
			zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("failed to clear flash messages")
		}
	}
	return gin.H{"Error": errs, "Success": successes}
}

func flashStrings(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

func redirectWithFlash(c *gin.Context, location, kind, message string) {
	addFlash(c, kind, message)
	redirect(c, location)
}

// choices are the enum values offered by task forms.
func choices(data gin.H) gin.H {
	data["Statuses"] = models.TaskStatuses
	data["Priorities"] = models.TaskPriorities
	data["Categories"] = models.TaskCategories
	return data
}
