package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/todo-web/internal/models"
	"github.com/yukikurage/todo-web/internal/repository"
	dbtest "github.com/yukikurage/todo-web/internal/testutil"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(t *testing.T) (*AuthService, func() int64) {
	t.Helper()
	db := dbtest.NewDB(t)
	svc := NewAuthService(repository.NewUserRepository(db)).WithHashCost(bcrypt.MinCost)
	countUsers := func() int64 {
		var n int64
		require.NoError(t, db.Model(&models.User{}).Count(&n).Error)
		return n
	}
	return svc, countUsers
}

func TestRegister(t *testing.T) {
	svc, countUsers := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Username: "  alice ", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "secret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("secret")))

	_, err = svc.Register(ctx, RegisterInput{Username: "alice", Password: "other"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.Equal(t, int64(1), countUsers())

	_, err = svc.Register(ctx, RegisterInput{Username: " ", Password: "x"})
	assert.ErrorIs(t, err, ErrUsernameRequired)

	_, err = svc.Register(ctx, RegisterInput{Username: "carol", Password: ""})
	assert.ErrorIs(t, err, ErrPasswordRequired)
	assert.Equal(t, int64(1), countUsers())
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Username: "Alice", Password: "secret"})
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, LoginInput{Username: "Alice", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = svc.Authenticate(ctx, LoginInput{Username: "Alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, LoginInput{Username: "alice", Password: "secret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, LoginInput{Username: "nobody", Password: "secret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdatePassword(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "old"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdatePassword(ctx, user.ID, "new"))

	_, err = svc.Authenticate(ctx, LoginInput{Username: "alice", Password: "old"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, LoginInput{Username: "alice", Password: "new"})
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.UpdatePassword(ctx, user.ID, "  "), ErrPasswordRequired)
	assert.ErrorIs(t, svc.UpdatePassword(ctx, 999, "new"), ErrUserNotFound)
}

func TestGetUser(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.GetUser(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
