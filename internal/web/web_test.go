package web

import (
	"bytes"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/todo-web/internal/models"
)

func TestTemplates_RenderEveryPage(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	user := &models.User{ID: 1, Username: "alice", CreatedAt: time.Date(2030, 1, 2, 0, 0, 0, 0, time.UTC)}
	task := models.Task{
		ID:       7,
		Title:    "<b>Pay rent</b>",
		DueDate:  time.Date(2030, 2, 1, 0, 0, 0, 0, time.UTC),
		Status:   models.TaskStatusInProgress,
		Priority: models.TaskPriorityHigh,
		Category: models.TaskCategoryPersonal,
	}
	flashes := gin.H{"Error": []string{"bad"}, "Success": []string{}}
	stats := gin.H{"Total": 4, "Completed": 3, "ProgressPercent": 75}
	choices := gin.H{
		"Statuses":   models.TaskStatuses,
		"Priorities": models.TaskPriorities,
		"Categories": models.TaskCategories,
	}

	pages := map[string]gin.H{
		"login.html":    {"Flashes": flashes, "Error": true},
		"register.html": {"Flashes": flashes},
		"tasks.html": merge(choices, gin.H{
			"User": user, "Flashes": flashes, "Stats": stats, "Tasks": []models.Task{task},
			"Filter": gin.H{"Keyword": "rent", "Status": "IN_PROGRESS", "Priority": "", "Category": ""},
		}),
		"edit-task.html": merge(choices, gin.H{"User": user, "Task": task}),
		"profile.html":   {"User": user, "Flashes": flashes, "Stats": stats},
		"error.html":     {"Message": "Something went wrong. Please try again."},
	}

	for name, data := range pages {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, tmpl.ExecuteTemplate(&buf, name, data))
			assert.Contains(t, buf.String(), "</html>")
		})
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "tasks.html", pages["tasks.html"]))
	out := buf.String()
	assert.Contains(t, out, "&lt;b&gt;Pay rent&lt;/b&gt;")
	assert.Contains(t, out, "2030-02-01")
	assert.Contains(t, out, "In Progress")
	assert.Contains(t, out, `<option value="IN_PROGRESS" selected>`)
}

func merge(a, b gin.H) gin.H {
	out := gin.H{}
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
