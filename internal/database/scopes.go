package database

import (
	"fmt"
	"strings"

	"github.com/yukikurage/todo-web/internal/models"
	"gorm.io/gorm"
)

// likeEscape is portable across MySQL, PostgreSQL and SQLite; backslash is not
// (MySQL treats it as a string-literal escape).
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

// OwnedBy restricts a task query to a single owner.
func OwnedBy(userID uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

// TitleContains matches keyword literally anywhere in the title. Case
// sensitivity follows the column collation.
func TitleContains(keyword string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		pattern := "%" + likeReplacer.Replace(keyword) + "%"
		return db.Where("title LIKE ? ESCAPE '"+likeEscape+"'", pattern)
	}
}

// OrderByDueDate sorts ascending by due date.
func OrderByDueDate() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("due_date ASC").Order("id ASC")
	}
}

// OrderByStatus sorts by the declaration order of models.TaskStatuses rather
// than alphabetically.
func OrderByStatus() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(statusOrder).Order("id ASC")
	}
}

// statusOrder renders e.g. CASE status WHEN 'NOT_STARTED' THEN 0 ... ELSE 3 END.
var statusOrder = func() string {
	var b strings.Builder
	b.WriteString("CASE status")
	for i, s := range models.TaskStatuses {
		fmt.Fprintf(&b, " WHEN '%s' THEN %d", s, i)
	}
	fmt.Fprintf(&b, " ELSE %d END", len(models.TaskStatuses))
	return b.String()
}()
