package models

import "time"

type TaskStatus string

const (
	TaskStatusOpen    TaskStatus = "open"
	TaskStatusDone    TaskStatus = "done"
	TaskStatusDeleted TaskStatus = "deleted"
)

// Task rows are never physically removed. Deleting flips Status to
// "deleted" so the activity log and past-due reporting keep their history.
type Task struct {
	ID        uint64     `gorm:"primarykey" json:"id"`
	UserID    uint64     `gorm:"not null;index" json:"user_id"`
	Name      string     `gorm:"not null" json:"name"`
	DueDate   *time.Time `gorm:"index" json:"due_date"`
	Priority  string     `gorm:"type:varchar(100)" json:"priority"`
	Category  string     `gorm:"type:varchar(100)" json:"category"`
	CreatedAt time.Time  `json:"created_at"`
	Status    TaskStatus `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
