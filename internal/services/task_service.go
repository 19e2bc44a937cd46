package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/hanamura/taskdesk/internal/constants"
	"github.com/hanamura/taskdesk/internal/models"
	"github.com/hanamura/taskdesk/internal/repository"
	"github.com/hanamura/taskdesk/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskNameRequired     = errors.New("task name is required")
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrCategoryExists       = errors.New("category already exists")
	ErrPriorityNameRequired = errors.New("priority name is required")
	ErrPriorityExists       = errors.New("priority already exists")
)

// TaskService handles task, category, and priority business logic.
type TaskService struct {
	taskRepo     repository.TaskRepository
	categoryRepo repository.CategoryRepository
	priorityRepo repository.PriorityRepository
	activityRepo repository.ActivityRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, categoryRepo repository.CategoryRepository,
	priorityRepo repository.PriorityRepository, activityRepo repository.ActivityRepository) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		categoryRepo: categoryRepo,
		priorityRepo: priorityRepo,
		activityRepo: activityRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	UserID   uint64
	Name     string
	DueDate  *time.Time
	Priority string
	Category string
}

// UpdateTaskInput represents input for updating a task. Nil fields are
// left unchanged; ClearDueDate removes the due date entirely.
type UpdateTaskInput struct {
	Name         *string
	DueDate      *time.Time
	ClearDueDate bool
	Priority     *string
	Category     *string
	Status       *models.TaskStatus
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	Status    *models.TaskStatus
	Category  *string
	Priority  *string
	DueBefore *time.Time
	DueAfter  *time.Time
	Search    string
	Page      int
	PageSize  int
}

// CreateTask creates a new task owned by the user, defaulting to open status.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if !utils.IsValidTaskName(input.Name) {
		return nil, ErrTaskNameRequired
	}

	task := &models.Task{
		UserID:   input.UserID,
		Name:     strings.TrimSpace(input.Name),
		DueDate:  input.DueDate,
		Priority: input.Priority,
		Category: input.Category,
		Status:   models.TaskStatusOpen,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logActivity(input.UserID, constants.ActivityTaskCreated)
	return task, nil
}

// GetTask returns a non-deleted task owned by the user.
func (s *TaskService) GetTask(taskID, userID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// UpdateTask updates an existing task. The lookup is scoped by owner, so a
// task belonging to another user surfaces as not found.
func (s *TaskService) UpdateTask(taskID, userID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(taskID, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if !utils.IsValidTaskName(*input.Name) {
			return nil, ErrTaskNameRequired
		}
		task.Name = strings.TrimSpace(*input.Name)
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.Category != nil {
		task.Category = *input.Category
	}
	if input.Status != nil {
		task.Status = *input.Status
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logActivity(userID, constants.ActivityTaskUpdated)
	return task, nil
}

// DeleteTask soft-deletes a task. Deleting an already-deleted task is a
// no-op; a task owned by another user is reported as not found.
func (s *TaskService) DeleteTask(taskID, userID uint64) error {
	task, err := s.taskRepo.FindAnyByID(taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if task.Status == models.TaskStatusDeleted {
		return nil
	}

	if err := s.taskRepo.SoftDelete(taskID, userID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logActivity(userID, constants.ActivityTaskDeleted)
	return nil
}

// ListTasks returns the user's tasks matching the filters, ordered by due
// date ascending with undated tasks last.
func (s *TaskService) ListTasks(userID uint64, input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		Status:    input.Status,
		Category:  input.Category,
		Priority:  input.Priority,
		DueBefore: input.DueBefore,
		DueAfter:  input.DueAfter,
		Search:    input.Search,
		Page:      input.Page,
		PageSize:  input.PageSize,
	}

	tasks, total, err := s.taskRepo.List(userID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// AddCategory creates a category for the user; names are unique per user.
func (s *TaskService) AddCategory(userID uint64, name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryNameRequired
	}

	if _, err := s.categoryRepo.FindByName(userID, name); err == nil {
		return nil, ErrCategoryExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check category: %w", err)
	}

	category := &models.Category{UserID: userID, Name: name, Status: models.RecordStatusActive}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// AddPriority creates a priority for the user; names are unique per user.
func (s *TaskService) AddPriority(userID uint64, name, color string) (*models.Priority, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPriorityNameRequired
	}
	if color == "" {
		color = "#9e9e9e"
	}

	if _, err := s.priorityRepo.FindByName(userID, name); err == nil {
		return nil, ErrPriorityExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check priority: %w", err)
	}

	priority := &models.Priority{UserID: userID, Name: name, Color: color, Status: models.RecordStatusActive}
	if err := s.priorityRepo.Create(priority); err != nil {
		return nil, fmt.Errorf("failed to create priority: %w", err)
	}
	return priority, nil
}

// ListCategories returns the user's active categories.
func (s *TaskService) ListCategories(userID uint64) ([]models.Category, error) {
	return s.categoryRepo.ListByUser(userID)
}

// ListPriorities returns the user's active priorities.
func (s *TaskService) ListPriorities(userID uint64) ([]models.Priority, error) {
	return s.priorityRepo.ListByUser(userID)
}

// Stats summarizes the user's task counts.
type Stats struct {
	Open    int64 `json:"open"`
	Done    int64 `json:"done"`
	Overdue int64 `json:"overdue"`
}

// GetStats computes open/done/overdue counts for the user.
func (s *TaskService) GetStats(userID uint64) (*Stats, error) {
	open, err := s.taskRepo.CountByStatus(userID, models.TaskStatusOpen)
	if err != nil {
		return nil, fmt.Errorf("failed to count open tasks: %w", err)
	}
	done, err := s.taskRepo.CountByStatus(userID, models.TaskStatusDone)
	if err != nil {
		return nil, fmt.Errorf("failed to count done tasks: %w", err)
	}

	now := time.Now()
	status := models.TaskStatusOpen
	_, overdue, err := s.taskRepo.List(userID, repository.TaskFilter{Status: &status, DueBefore: &now})
	if err != nil {
		return nil, fmt.Errorf("failed to count overdue tasks: %w", err)
	}

	return &Stats{Open: open, Done: done, Overdue: overdue}, nil
}

// logActivity appends to the audit log. Failures are logged and swallowed;
// the primary mutation has already committed.
func (s *TaskService) logActivity(userID uint64, activityType string) {
	entry := &models.UserActivity{UserID: userID, ActivityType: activityType}
	if err := s.activityRepo.Append(entry); err != nil {
		log.Printf("Failed to record %s activity for user %d: %v", activityType, userID, err)
	}
}
