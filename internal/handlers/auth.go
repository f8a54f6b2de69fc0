package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yukikurage/todo-web/internal/constants"
	"github.com/yukikurage/todo-web/internal/dto"
	apierrors "github.com/yukikurage/todo-web/internal/errors"
	"github.com/yukikurage/todo-web/internal/middleware"
	"github.com/yukikurage/todo-web/internal/services"
	"github.com/yukikurage/todo-web/internal/utils"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Home sends visitors to their task list; RequireAuth on /tasks takes care of
// anonymous ones.
func (h *AuthHandler) Home(c *gin.Context) {
	redirect(c, "/tasks")
}

// LoginPage renders the login form. Query flags select the banner shown.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	_, failed := c.GetQuery("error")
	_, loggedOut := c.GetQuery("logout")
	_, updated := c.GetQuery("updated")
	_, blocked := c.GetQuery("blocked")

	c.HTML(http.StatusOK, "login.html", gin.H{
		"Flashes": takeFlashes(c),
		"Error":   failed,
		"Logout":  loggedOut,
		"Updated": updated,
		"Blocked": blocked,
	})
}

// LoginRequest is the login form.
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.loginFailed(c)
		return
	}

	user, err := h.authService.Authenticate(ctx, services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			zerolog.Ctx(ctx).Error().Err(err).Msg("login failed")
			middleware.AbortWithErrorPage(c)
			return
		}
		h.loginFailed(c)
		return
	}

	session := sessions.Default(c)
	// drop anything from a previous identity before binding the new one
	session.Clear()
	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to save session")
		middleware.AbortWithErrorPage(c)
		return
	}

	zerolog.Ctx(ctx).Info().Uint64("user_id", user.ID).Msg("user logged in")
	if utils.WantsJSON(c) {
		c.JSON(http.StatusOK, dto.ToUserDTO(*user))
		return
	}
	redirect(c, "/tasks")
}

func (h *AuthHandler) loginFailed(c *gin.Context) {
	if utils.WantsJSON(c) {
		apierrors.InvalidCredentials(c)
		return
	}
	redirect(c, "/login?error")
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("failed to clear session")
		middleware.AbortWithErrorPage(c)
		return
	}

	if utils.WantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Logged out successfully",
		})
		return
	}
	redirect(c, "/login?logout")
}

// RegisterPage renders the registration form.
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{
		"Flashes": takeFlashes(c),
	})
}

// RegisterRequest is the registration form.
type RegisterRequest struct {
	Username string `form:"username" json:"username" binding:"required,notblank,max=50"`
	Password string `form:"password" json:"password" binding:"required,notblank"`
}

// Register creates an account. The new user still has to log in.
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectWithFlash(c, "/register", constants.FlashError, constants.MsgInvalidRegistration)
		return
	}

	user, err := h.authService.Register(ctx, services.RegisterInput{
		Username: req.Username,
		Password: req.Password,
	})
	switch {
	case err == nil:
	case errors.Is(err, services.ErrUsernameTaken):
		redirectWithFlash(c, "/register", constants.FlashError, constants.MsgUsernameTaken)
		return
	case errors.Is(err, services.ErrUsernameRequired), errors.Is(err, services.ErrPasswordRequired):
		redirectWithFlash(c, "/register", constants.FlashError, constants.MsgInvalidRegistration)
		return
	default:
		zerolog.Ctx(ctx).Error().Err(err).Msg("registration failed")
		middleware.AbortWithErrorPage(c)
		return
	}

	zerolog.Ctx(ctx).Info().Uint64("user_id", user.ID).Msg("user registered")
	redirectWithFlash(c, "/login?success", constants.FlashSuccess, constants.MsgRegistered)
}
