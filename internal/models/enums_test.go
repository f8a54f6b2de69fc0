package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskStatus_Valid(t *testing.T) {
	assert.True(t, TaskStatusNotStarted.Valid())
	assert.True(t, TaskStatusInProgress.Valid())
	assert.True(t, TaskStatusCompleted.Valid())
	assert.False(t, TaskStatus("DONE").Valid())
	assert.False(t, TaskStatus("").Valid())
	assert.False(t, TaskStatus("completed").Valid())
}

func TestTaskPriority_Valid(t *testing.T) {
	for _, p := range TaskPriorities {
		assert.True(t, p.Valid(), p)
	}
	assert.False(t, TaskPriority("URGENT").Valid())
}

func TestTaskCategory_OpenSet(t *testing.T) {
	for _, c := range TaskCategories {
		assert.True(t, c.Valid(), c)
	}
	assert.True(t, TaskCategory("GARDENING").Valid())
	assert.True(t, TaskCategory("SIDE_PROJECT_2").Valid())

	assert.False(t, TaskCategory("").Valid())
	assert.False(t, TaskCategory("work").Valid())
	assert.False(t, TaskCategory("_WORK").Valid())
	assert.False(t, TaskCategory("WORK,HOME").Valid())
	assert.False(t, TaskCategory("ABCDEFGHIJKLMNOPQRSTUVWXYZABCDEFG").Valid())
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Not Started", TaskStatusNotStarted.Label())
	assert.Equal(t, "In Progress", TaskStatusInProgress.Label())
	assert.Equal(t, "High", TaskPriorityHigh.Label())
	assert.Equal(t, "Shopping", TaskCategoryShopping.Label())
}

func TestTask_OwnedBy(t *testing.T) {
	task := Task{UserID: 7}
	assert.True(t, task.OwnedBy(7))
	assert.False(t, task.OwnedBy(8))
}
