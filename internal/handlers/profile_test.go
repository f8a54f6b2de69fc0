package handlers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/todo-web/internal/models"
	"github.com/yukikurage/todo-web/internal/testutil"
)

func TestProfilePage(t *testing.T) {
	app := newTestApp(t)
	b := app.browser()
	id := b.login("alice")
	testutil.CreateTask(t, app.db, id, "done", testutil.WithStatus(models.TaskStatusCompleted))
	testutil.CreateTask(t, app.db, id, "open")

	for _, path := range []string{"/profile", "/tasks/profile"} {
		res := b.get(path)
		assert.Equal(t, http.StatusOK, res.Code, path)
		assert.Contains(t, res.Body, "alice", path)
		assert.Contains(t, res.Body, "2 tasks, 1 completed (50%)", path)
	}
}

func TestUpdatePassword_Empty(t *testing.T) {
	app := newTestApp(t)
	b := app.browser()
	b.login("alice")

	res := b.post("/profile/update", url.Values{"newPassword": {"   "}})
	assert.Equal(t, http.StatusFound, res.Code)
	assert.Equal(t, "/profile", res.Location)
	assert.Contains(t, b.get("/profile").Body, "Password cannot be empty")
}

func TestUpdatePassword(t *testing.T) {
	app := newTestApp(t)
	b := app.browser()
	b.login("alice")

	res := b.post("/tasks/profile/update", url.Values{"newPassword": {"n3w-password"}})
	assert.Equal(t, http.StatusFound, res.Code)
	assert.Equal(t, "/login?updated", res.Location)
	assert.Contains(t, b.get(res.Location).Body, "Password updated.")

	// the session ends with the old password
	assert.Equal(t, "/login", b.get("/tasks").Location)

	old := b.post("/login", url.Values{"username": {"alice"}, "password": {"password"}})
	assert.Equal(t, "/login?error", old.Location)

	fresh := b.post("/login", url.Values{"username": {"alice"}, "password": {"n3w-password"}})
	assert.Equal(t, "/tasks", fresh.Location)
}

func TestStaleSession_IsCleared(t *testing.T) {
	app := newTestApp(t)
	b := app.browser()
	id := b.login("ghost")

	require.NoError(t, app.db.Delete(&models.User{}, id).Error)

	assert.Equal(t, "/login", b.get("/tasks").Location)
	assert.Equal(t, "/login", b.get("/profile").Location)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	res := app.browser().getJSON("/health", nil)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body, `"status":"ok"`)
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t)
	b := app.browser()
	b.get("/login")

	res := b.get("/metrics")
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body, "http_requests_total")
	assert.Contains(t, res.Body, `route="/login"`)
}
