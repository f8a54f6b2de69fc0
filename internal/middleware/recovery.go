package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yukikurage/todo-web/internal/constants"
	apierrors "github.com/yukikurage/todo-web/internal/errors"
	"github.com/yukikurage/todo-web/internal/utils"
)

// ErrorTemplate is the page rendered for unexpected failures.
const ErrorTemplate = "error.html"

// AbortWithErrorPage ends the request with a generic 500. No error detail
// reaches the client.
func AbortWithErrorPage(c *gin.Context) {
	if utils.WantsJSON(c) {
		apierrors.InternalError(c, "")
		return
	}
	c.HTML(http.StatusInternalServerError, ErrorTemplate, gin.H{
		"Message": constants.MsgGenericError,
	})
	c.Abort()
}

// Recovery turns a panic into the generic error page and logs it.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		zerolog.Ctx(c.Request.Context()).Error().
			Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Msg("recovered from panic")
		AbortWithErrorPage(c)
	})
}
