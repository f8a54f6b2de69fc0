package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type taskForm struct {
	Title    string `validate:"required,notblank,min=3"`
	Status   string `validate:"task_status"`
	Priority string `validate:"task_priority"`
	Category string `validate:"task_category"`
}

func TestRules(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterOn(v))

	valid := taskForm{Title: "Read", Status: "IN_PROGRESS", Priority: "HIGH", Category: "GARDENING"}
	assert.NoError(t, v.Struct(valid))

	cases := map[string]taskForm{
		"Title":    {Title: "   ", Status: "COMPLETED", Priority: "LOW", Category: "WORK"},
		"Status":   {Title: "Read", Status: "DONE", Priority: "LOW", Category: "WORK"},
		"Priority": {Title: "Read", Status: "COMPLETED", Priority: "urgent", Category: "WORK"},
		"Category": {Title: "Read", Status: "COMPLETED", Priority: "LOW", Category: "lower case"},
	}
	for field, form := range cases {
		t.Run(field, func(t *testing.T) {
			err := v.Struct(form)
			require.Error(t, err)
			assert.Contains(t, Messages(err), field)
		})
	}
}

func TestRegister_Idempotent(t *testing.T) {
	require.NoError(t, Register())
	require.NoError(t, Register())
}
