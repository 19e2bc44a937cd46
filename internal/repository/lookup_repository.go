package repository

import (
	"github.com/hanamura/taskdesk/internal/models"
	"gorm.io/gorm"
)

// GormCategoryRepository is a GORM implementation of CategoryRepository
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &GormCategoryRepository{db: db}
}

// Create creates a new category
func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// FindByName finds an active category by name for the user
func (r *GormCategoryRepository) FindByName(userID uint64, name string) (*models.Category, error) {
	var category models.Category
	err := r.db.
		Where("user_id = ? AND name = ? AND status = ?", userID, name, models.RecordStatusActive).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ListByUser returns the user's active categories
func (r *GormCategoryRepository) ListByUser(userID uint64) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.
		Where("user_id = ? AND status = ?", userID, models.RecordStatusActive).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// GormPriorityRepository is a GORM implementation of PriorityRepository
type GormPriorityRepository struct {
	db *gorm.DB
}

// NewPriorityRepository creates a new PriorityRepository
func NewPriorityRepository(db *gorm.DB) PriorityRepository {
	return &GormPriorityRepository{db: db}
}

// Create creates a new priority
func (r *GormPriorityRepository) Create(priority *models.Priority) error {
	return r.db.Create(priority).Error
}

// FindByName finds an active priority by name for the user
func (r *GormPriorityRepository) FindByName(userID uint64, name string) (*models.Priority, error) {
	var priority models.Priority
	err := r.db.
		Where("user_id = ? AND name = ? AND status = ?", userID, name, models.RecordStatusActive).
		First(&priority).Error
	if err != nil {
		return nil, err
	}
	return &priority, nil
}

// ListByUser returns the user's active priorities
func (r *GormPriorityRepository) ListByUser(userID uint64) ([]models.Priority, error) {
	var priorities []models.Priority
	err := r.db.
		Where("user_id = ? AND status = ?", userID, models.RecordStatusActive).
		Order("name ASC").
		Find(&priorities).Error
	if err != nil {
		return nil, err
	}
	return priorities, nil
}
