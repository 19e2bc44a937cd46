package database

import (
	"fmt"
	"strings"

	"github.com/hanamura/taskdesk/internal/models"
	"gorm.io/gorm"
)

// SeedDefaults inserts the configured default priorities and categories for
// a newly registered user. Priorities are "name:color" pairs; a missing
// color falls back to a neutral grey. Runs once per user: if the user
// already owns any rows the seed is a no-op.
func SeedDefaults(db *gorm.DB, userID uint64, priorities, categories []string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Priority{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check existing priorities: %w", err)
		}
		if count == 0 {
			for _, entry := range priorities {
				name, color := splitPriority(entry)
				p := models.Priority{UserID: userID, Name: name, Color: color, Status: models.RecordStatusActive}
				if err := tx.Create(&p).Error; err != nil {
					return fmt.Errorf("failed to seed priority %q: %w", name, err)
				}
			}
		}

		if err := tx.Model(&models.Category{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check existing categories: %w", err)
		}
		if count == 0 {
			for _, name := range categories {
				c := models.Category{UserID: userID, Name: name, Status: models.RecordStatusActive}
				if err := tx.Create(&c).Error; err != nil {
					return fmt.Errorf("failed to seed category %q: %w", name, err)
				}
			}
		}

		return nil
	})
}

func splitPriority(entry string) (name, color string) {
	if i := strings.IndexByte(entry, ':'); i >= 0 {
		return entry[:i], entry[i+1:]
	}
	return entry, "#9e9e9e"
}
