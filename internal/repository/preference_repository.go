package repository

import (
	"github.com/hanamura/taskdesk/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPreferenceRepository is a GORM implementation of PreferenceRepository
type GormPreferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository creates a new PreferenceRepository
func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &GormPreferenceRepository{db: db}
}

// Upsert creates the preference or overwrites its value. The conflict
// target is (user_id, key), so users never collide on shared key names.
// created_at is immutable and deliberately not in the update set.
func (r *GormPreferenceRepository) Upsert(pref *models.Preference) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "status"}),
		}).
		Create(pref).Error
}

// Get finds one preference by key
func (r *GormPreferenceRepository) Get(userID uint64, key string) (*models.Preference, error) {
	var pref models.Preference
	err := r.db.
		Where("user_id = ? AND key = ? AND status = ?", userID, key, models.RecordStatusActive).
		First(&pref).Error
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

// ListByUser returns all of a user's active preferences
func (r *GormPreferenceRepository) ListByUser(userID uint64) ([]models.Preference, error) {
	var prefs []models.Preference
	err := r.db.
		Where("user_id = ? AND status = ?", userID, models.RecordStatusActive).
		Find(&prefs).Error
	if err != nil {
		return nil, err
	}
	return prefs, nil
}
