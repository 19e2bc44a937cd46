package models

import "time"

// UserActivity is an append-only audit row. Writes are best-effort: a
// failed append never rolls back the mutation that produced it.
type UserActivity struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	UserID       uint64    `gorm:"not null;index" json:"user_id"`
	ActivityType string    `gorm:"type:varchar(50);not null" json:"activity_type"`
	CreatedAt    time.Time `json:"created_at"`
	Status       string    `gorm:"type:varchar(20)" json:"status,omitempty"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
