package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yukikurage/todo-web/internal/constants"
	apierrors "github.com/yukikurage/todo-web/internal/errors"
	"github.com/yukikurage/todo-web/internal/models"
	"github.com/yukikurage/todo-web/internal/services"
	"github.com/yukikurage/todo-web/internal/utils"
)

// UserLoader resolves the user stored in a session.
type UserLoader interface {
	GetUser(ctx context.Context, id uint64) (*models.User, error)
}

// RequireAuth loads the session's user and makes it the current principal of
// the request. Browsers without a valid session are sent to the login page,
// JSON clients get a 401.
func RequireAuth(users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := toUserID(session.Get(constants.ContextKeyUserID))
		if !ok {
			abortUnauthenticated(c)
			return
		}

		user, err := users.GetUser(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				// the account behind this session no longer exists
				session.Clear()
				if err := session.Save(); err != nil {
					zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("failed to clear stale session")
				}
				abortUnauthenticated(c)
				return
			}
			zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("failed to load session user")
			AbortWithErrorPage(c)
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyCurrentUser, user)

		ctx := c.Request.Context()
		l := zerolog.Ctx(ctx).With().Uint64("user_id", user.ID).Logger()
		c.Request = c.Request.WithContext(l.WithContext(ctx))

		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context) {
	if utils.WantsJSON(c) {
		apierrors.Unauthorized(c, "")
		return
	}
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}

func toUserID(v interface{}) (uint64, bool) {
	switch id := v.(type) {
	case uint64:
		return id, id != 0
	case uint:
		return uint64(id), id != 0
	case int:
		if id <= 0 {
			return 0, false
		}
		return uint64(id), true
	case int64:
		if id <= 0 {
			return 0, false
		}
		return uint64(id), true
	default:
		return 0, false
	}
}

// CurrentUser returns the principal set by RequireAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(constants.ContextKeyCurrentUser)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUserID(userID)
}
