package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/hanamura/taskdesk/internal/constants"
	"github.com/hanamura/taskdesk/internal/models"
	"github.com/hanamura/taskdesk/internal/repository"
)

var ErrPreferenceKeyRequired = errors.New("preference key is required")

// Defaults applied when a user has not set a preference yet.
var defaultPreferences = map[string]string{
	constants.PrefTheme:               "Light",
	constants.PrefFontSize:            "10",
	constants.PrefEnableNotifications: "true",
	constants.PrefEmailNotification:   "true",
}

// PreferenceService handles per-user key/value settings.
type PreferenceService struct {
	prefRepo     repository.PreferenceRepository
	activityRepo repository.ActivityRepository
}

// NewPreferenceService creates a new PreferenceService
func NewPreferenceService(prefRepo repository.PreferenceRepository, activityRepo repository.ActivityRepository) *PreferenceService {
	return &PreferenceService{prefRepo: prefRepo, activityRepo: activityRepo}
}

// GetAll returns the user's preferences with defaults filled in for keys
// they have not set.
func (s *PreferenceService) GetAll(userID uint64) (map[string]string, error) {
	stored, err := s.prefRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	prefs := make(map[string]string, len(defaultPreferences)+len(stored))
	for k, v := range defaultPreferences {
		prefs[k] = v
	}
	for _, p := range stored {
		prefs[p.Key] = p.Value
	}
	return prefs, nil
}

// Upsert creates or overwrites one preference, unique on (user_id, key).
func (s *PreferenceService) Upsert(userID uint64, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrPreferenceKeyRequired
	}

	pref := &models.Preference{
		UserID: userID,
		Key:    key,
		Value:  value,
		Status: models.RecordStatusActive,
	}
	if err := s.prefRepo.Upsert(pref); err != nil {
		return fmt.Errorf("failed to save preference: %w", err)
	}

	entry := &models.UserActivity{UserID: userID, ActivityType: constants.ActivityPrefUpdated}
	if err := s.activityRepo.Append(entry); err != nil {
		// Audit only; the preference is already saved.
		log.Printf("Failed to record preference activity for user %d: %v", userID, err)
	}
	return nil
}
