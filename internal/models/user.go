package models

import "time"

type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
)

type User struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	Name         string     `gorm:"type:varchar(255)" json:"name"`
	Username     string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"type:varchar(255)" json:"email,omitempty"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	Salt         string     `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	Status       UserStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`

	// Relations
	Tasks       []Task       `gorm:"foreignKey:UserID" json:"-"`
	Categories  []Category   `gorm:"foreignKey:UserID" json:"-"`
	Priorities  []Priority   `gorm:"foreignKey:UserID" json:"-"`
	Preferences []Preference `gorm:"foreignKey:UserID" json:"-"`
}
