package models

import "time"

type RecordStatus string

const (
	RecordStatusActive  RecordStatus = "active"
	RecordStatusDeleted RecordStatus = "deleted"
)

// Category names are unique per user, not globally.
type Category struct {
	ID        uint64       `gorm:"primarykey" json:"id"`
	UserID    uint64       `gorm:"not null;uniqueIndex:idx_categories_user_name" json:"user_id"`
	Name      string       `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_user_name" json:"name"`
	CreatedAt time.Time    `json:"created_at"`
	Status    RecordStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
