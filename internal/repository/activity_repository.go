package repository

import (
	"github.com/hanamura/taskdesk/internal/models"
	"gorm.io/gorm"
)

// GormActivityRepository is a GORM implementation of ActivityRepository
type GormActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &GormActivityRepository{db: db}
}

// Append adds one row to the activity log. Callers treat failures as
// observability loss, not as a reason to roll anything back.
func (r *GormActivityRepository) Append(activity *models.UserActivity) error {
	return r.db.Create(activity).Error
}
