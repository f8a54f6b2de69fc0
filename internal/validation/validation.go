// Package validation registers the form rules used by request binding.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/todo-web/internal/models"
)

var (
	once    sync.Once
	initErr error
)

// Register installs the custom rules on gin's validator. Safe to call more
// than once.
func Register() error {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			initErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		initErr = RegisterOn(v)
	})
	return initErr
}

// RegisterOn installs the custom rules on v.
func RegisterOn(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"notblank":      notBlank,
		"task_status":   taskStatus,
		"task_priority": taskPriority,
		"task_category": taskCategory,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s: %w", tag, err)
		}
	}
	return nil
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func taskStatus(fl validator.FieldLevel) bool {
	return models.TaskStatus(fl.Field().String()).Valid()
}

func taskPriority(fl validator.FieldLevel) bool {
	return models.TaskPriority(fl.Field().String()).Valid()
}

func taskCategory(fl validator.FieldLevel) bool {
	return models.TaskCategory(fl.Field().String()).Valid()
}

// Messages flattens validation errors into field -> rule, for JSON clients.
func Messages(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}
