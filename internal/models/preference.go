package models

import "time"

// Preference is a per-user key/value setting. The uniqueness constraint is
// on (user_id, key) so two users can hold the same key independently.
type Preference struct {
	ID        uint64       `gorm:"primarykey" json:"id"`
	UserID    uint64       `gorm:"not null;uniqueIndex:idx_preferences_user_key" json:"user_id"`
	Key       string       `gorm:"type:varchar(100);not null;uniqueIndex:idx_preferences_user_key" json:"key"`
	Value     string       `gorm:"type:text" json:"value"`
	CreatedAt time.Time    `json:"created_at"`
	Status    RecordStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}
