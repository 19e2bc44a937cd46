package repository

import (
	"github.com/hanamura/taskdesk/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds an active user by ID. Disabled users stay in the table
// for task history but cannot be looked up.
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	err := r.db.Where("id = ? AND status = ?", id, models.UserStatusActive).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds an active user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ? AND status = ?", username, models.UserStatusActive).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update persists changes to a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}
