package models

import (
	"regexp"
	"strings"
)

type TaskStatus string

// Declaration order is also the "sort by status" order.
const (
	TaskStatusNotStarted TaskStatus = "NOT_STARTED"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

// TaskStatuses lists every status in declaration order.
var TaskStatuses = []TaskStatus{
	TaskStatusNotStarted,
	TaskStatusInProgress,
	TaskStatusCompleted,
}

func (s TaskStatus) Valid() bool {
	for _, v := range TaskStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s TaskStatus) Label() string {
	return enumLabel(string(s))
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
)

var TaskPriorities = []TaskPriority{
	TaskPriorityLow,
	TaskPriorityMedium,
	TaskPriorityHigh,
}

func (p TaskPriority) Valid() bool {
	for _, v := range TaskPriorities {
		if p == v {
			return true
		}
	}
	return false
}

func (p TaskPriority) Label() string {
	return enumLabel(string(p))
}

// TaskCategory is an open set: the constants below are the categories offered
// by the UI, but any well-formed upper-case token is accepted and stored.
type TaskCategory string

const (
	TaskCategoryWork     TaskCategory = "WORK"
	TaskCategoryPersonal TaskCategory = "PERSONAL"
	TaskCategoryStudy    TaskCategory = "STUDY"
	TaskCategoryShopping TaskCategory = "SHOPPING"
	TaskCategoryHealth   TaskCategory = "HEALTH"
	TaskCategoryOther    TaskCategory = "OTHER"
)

var TaskCategories = []TaskCategory{
	TaskCategoryWork,
	TaskCategoryPersonal,
	TaskCategoryStudy,
	TaskCategoryShopping,
	TaskCategoryHealth,
	TaskCategoryOther,
}

var categoryPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]{0,31}$`)

func (c TaskCategory) Valid() bool {
	return categoryPattern.MatchString(string(c))
}

func (c TaskCategory) Label() string {
	return enumLabel(string(c))
}

// enumLabel turns IN_PROGRESS into "In Progress".
func enumLabel(name string) string {
	words := strings.Split(strings.ToLower(name), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
