package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/hanamura/taskdesk/internal/constants"
	"github.com/hanamura/taskdesk/internal/models"
	"github.com/hanamura/taskdesk/internal/repository"
	"github.com/hanamura/taskdesk/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidUsername    = errors.New("username must be at least 4 characters")
	ErrInvalidPassword    = errors.New("password does not meet the policy")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrUserNotFound       = errors.New("user not found")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

// SeedFunc provisions a new user's default priorities and categories.
type SeedFunc func(userID uint64) error

// AuthService handles registration, login, and profile maintenance.
type AuthService struct {
	userRepo     repository.UserRepository
	activityRepo repository.ActivityRepository
	seed         SeedFunc
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, activityRepo repository.ActivityRepository, seed SeedFunc) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		activityRepo: activityRepo,
		seed:         seed,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	Name     string
}

// Register creates a new user with a salted password hash and seeds their
// default priorities and categories.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if !utils.IsValidUsername(username) {
		return nil, ErrInvalidUsername
	}
	if !utils.IsValidPassword(input.Password) {
		return nil, ErrInvalidPassword
	}
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return nil, ErrInvalidEmail
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	salt, err := utils.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to prepare password hash: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(input.Name),
		Username:     username,
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: utils.HashPassword(input.Password, salt),
		Salt:         salt,
		Status:       models.UserStatusActive,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if s.seed != nil {
		if err := s.seed(user.ID); err != nil {
			// The account exists; missing defaults are an inconvenience,
			// not a registration failure.
			log.Printf("Failed to seed defaults for user %d: %v", user.ID, err)
		}
	}

	s.logActivity(user.ID, constants.ActivityRegistered, "")

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns the authenticated user. Failed
// attempts against an existing account are recorded in the activity log.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !utils.VerifyPassword(input.Password, user.Salt, user.PasswordHash) {
		s.logActivity(user.ID, constants.ActivityLogin, constants.ActivityStatusFailure)
		return nil, ErrInvalidCredentials
	}

	s.logActivity(user.ID, constants.ActivityLogin, constants.ActivityStatusSuccess)
	return user, nil
}

// Logout records the end of a session.
func (s *AuthService) Logout(userID uint64) {
	s.logActivity(userID, constants.ActivityLogout, "")
}

// GetUser retrieves an active user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateProfileInput holds the editable profile fields.
type UpdateProfileInput struct {
	Name     string
	Username string
	Email    string
}

// UpdateProfile changes name, username, and email for the user.
func (s *AuthService) UpdateProfile(userID uint64, input UpdateProfileInput) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(input.Username)
	if !utils.IsValidUsername(username) {
		return nil, ErrInvalidUsername
	}
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return nil, ErrInvalidEmail
	}

	if username != user.Username {
		if _, err := s.userRepo.FindByUsername(username); err == nil {
			return nil, ErrUsernameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
	}

	user.Name = strings.TrimSpace(input.Name)
	user.Username = username
	user.Email = strings.TrimSpace(input.Email)

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logActivity(userID, constants.ActivityProfileUpdated, "")
	return user, nil
}

// ChangePassword replaces the user's password after verifying the current one.
func (s *AuthService) ChangePassword(userID uint64, current, next string) error {
	user, err := s.GetUser(userID)
	if err != nil {
		return err
	}

	if !utils.VerifyPassword(current, user.Salt, user.PasswordHash) {
		return ErrWrongPassword
	}
	if !utils.IsValidPassword(next) {
		return ErrInvalidPassword
	}

	salt, err := utils.GenerateSalt()
	if err != nil {
		return fmt.Errorf("failed to prepare password hash: %w", err)
	}
	user.Salt = salt
	user.PasswordHash = utils.HashPassword(next, salt)

	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logActivity(userID, constants.ActivityPasswordChange, "")
	return nil
}

// Deactivate disables the account. The row survives so task history and
// the activity log keep their foreign keys.
func (s *AuthService) Deactivate(userID uint64) error {
	user, err := s.GetUser(userID)
	if err != nil {
		return err
	}

	user.Status = models.UserStatusDisabled
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to deactivate user: %w", err)
	}
	return nil
}

// logActivity appends to the audit log. Failures are logged and swallowed.
func (s *AuthService) logActivity(userID uint64, activityType, status string) {
	entry := &models.UserActivity{UserID: userID, ActivityType: activityType, Status: status}
	if err := s.activityRepo.Append(entry); err != nil {
		log.Printf("Failed to record %s activity for user %d: %v", activityType, userID, err)
	}
}
