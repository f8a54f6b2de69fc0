package models

import (
	"time"
)

type Task struct {
	ID        uint64       `gorm:"primarykey" json:"id"`
	Title     string       `gorm:"type:varchar(255);not null" json:"title"`
	DueDate   time.Time    `gorm:"type:date;not null" json:"due_date"`
	Status    TaskStatus   `gorm:"type:varchar(20);not null;default:'NOT_STARTED'" json:"status"`
	Priority  TaskPriority `gorm:"type:varchar(20);not null;default:'MEDIUM'" json:"priority"`
	Category  TaskCategory `gorm:"type:varchar(32);not null;default:'OTHER'" json:"category"`
	UserID    uint64       `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// OwnedBy reports whether userID owns the task.
func (t *Task) OwnedBy(userID uint64) bool {
	return t.UserID == userID
}
