package repository

import (
	"context"
	"time"

	"github.com/hanamura/taskdesk/internal/models"
)

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	Status    *models.TaskStatus
	Category  *string
	Priority  *string
	DueBefore *time.Time
	DueAfter  *time.Time
	// Search matches case-insensitively against the task name.
	Search   string
	Page     int
	PageSize int
}

// TaskRepository defines the interface for task data access. Every query is
// scoped by the owning user; a row belonging to someone else behaves as if
// it did not exist.
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a non-deleted task owned by the user
	FindByID(id, userID uint64) (*models.Task, error)

	// FindAnyByID finds a task owned by the user regardless of status
	FindAnyByID(id, userID uint64) (*models.Task, error)

	// List retrieves the user's tasks with filtering, ordered by due date
	// ascending with null due dates last, ties broken by creation time
	List(userID uint64, filter TaskFilter) ([]models.Task, int64, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// SoftDelete flips a task's status to deleted; already-deleted rows
	// are left untouched
	SoftDelete(id, userID uint64) error

	// ListDue returns open tasks due at or before the given instant, so
	// a task due exactly at the edge of the look-ahead window is still
	// picked up. The context bounds the query so a locked store cannot
	// stall a tracker poll.
	ListDue(ctx context.Context, userID uint64, before time.Time) ([]models.Task, error)

	// CountByStatus counts the user's tasks per status
	CountByStatus(userID uint64, status models.TaskStatus) (int64, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds an active user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds an active user by username
	FindByUsername(username string) (*models.User, error)

	// Update persists changes to a user
	Update(user *models.User) error
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(category *models.Category) error
	FindByName(userID uint64, name string) (*models.Category, error)
	ListByUser(userID uint64) ([]models.Category, error)
}

// PriorityRepository defines the interface for priority data access
type PriorityRepository interface {
	Create(priority *models.Priority) error
	FindByName(userID uint64, name string) (*models.Priority, error)
	ListByUser(userID uint64) ([]models.Priority, error)
}

// PreferenceRepository defines the interface for preference data access
type PreferenceRepository interface {
	// Upsert creates the preference or overwrites its value, unique on
	// (user_id, key)
	Upsert(pref *models.Preference) error

	// Get finds one preference by key
	Get(userID uint64, key string) (*models.Preference, error)

	// ListByUser returns all of a user's preferences
	ListByUser(userID uint64) ([]models.Preference, error)
}

// ActivityRepository appends to the user activity log
type ActivityRepository interface {
	Append(activity *models.UserActivity) error
}
