package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-web/internal/models"
)

// WantsJSON reports whether the client prefers JSON over an HTML page. A
// missing or wildcard Accept header means HTML.
func WantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

// ParseID extracts a positive numeric path parameter.
func ParseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// The Query* helpers return nil for a missing, empty or unknown value so the
// listing falls back to the next filter instead of failing.

func QueryStatus(c *gin.Context) *models.TaskStatus {
	s := models.TaskStatus(c.Query("status"))
	if !s.Valid() {
		return nil
	}
	return &s
}

func QueryPriority(c *gin.Context) *models.TaskPriority {
	p := models.TaskPriority(c.Query("priority"))
	if !p.Valid() {
		return nil
	}
	return &p
}

func QueryCategory(c *gin.Context) *models.TaskCategory {
	cat := models.TaskCategory(c.Query("category"))
	if !cat.Valid() {
		return nil
	}
	return &cat
}
