package models

import "time"

type Priority struct {
	ID        uint64       `gorm:"primarykey" json:"id"`
	UserID    uint64       `gorm:"not null;uniqueIndex:idx_priorities_user_name" json:"user_id"`
	Name      string       `gorm:"type:varchar(100);not null;uniqueIndex:idx_priorities_user_name" json:"name"`
	Color     string       `gorm:"type:varchar(20);not null" json:"color"`
	CreatedAt time.Time    `json:"created_at"`
	Status    RecordStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
