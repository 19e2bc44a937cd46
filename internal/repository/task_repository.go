package repository

import (
	"context"
	"strings"
	"time"

	"github.com/hanamura/taskdesk/internal/database"
	"github.com/hanamura/taskdesk/internal/models"
	"github.com/hanamura/taskdesk/internal/utils"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a non-deleted task owned by the user
func (r *GormTaskRepository) FindByID(id, userID uint64) (*models.Task, error) {
	var task models.Task
	err := r.db.
		Where("id = ? AND user_id = ? AND status <> ?", id, userID, models.TaskStatusDeleted).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// FindAnyByID finds a task owned by the user regardless of status
func (r *GormTaskRepository) FindAnyByID(id, userID uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves the user's tasks with filtering and pagination
func (r *GormTaskRepository) List(userID uint64, filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{}).Where("user_id = ?", userID)

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	} else {
		query = query.Where("status <> ?", models.TaskStatusDeleted)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.DueBefore != nil {
		query = query.Where("due_date < ?", *filter.DueBefore)
	}
	if filter.DueAfter != nil {
		query = query.Where("due_date >= ?", *filter.DueAfter)
	}
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filter.Search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END, due_date ASC, created_at ASC")

	if filter.Page > 0 && filter.PageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   filter.Page,
			Limit:  filter.PageSize,
			Offset: (filter.Page - 1) * filter.PageSize,
		}))
	}

	if err := listQuery.Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update persists changes to a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// SoftDelete flips a task's status to deleted. Rows that are already
// deleted match nothing, which makes repeated deletes a no-op.
func (r *GormTaskRepository) SoftDelete(id, userID uint64) error {
	return r.db.Model(&models.Task{}).
		Where("id = ? AND user_id = ? AND status <> ?", id, userID, models.TaskStatusDeleted).
		Update("status", models.TaskStatusDeleted).Error
}

// ListDue returns open tasks due at or before the given instant
func (r *GormTaskRepository) ListDue(ctx context.Context, userID uint64, before time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.TaskStatusOpen).
		Where("due_date IS NOT NULL AND due_date <= ?", before).
		Order("due_date ASC, created_at ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// CountByStatus counts the user's tasks per status
func (r *GormTaskRepository) CountByStatus(userID uint64, status models.TaskStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("user_id = ? AND status = ?", userID, status).
		Count(&count).Error
	return count, err
}
