package dto

import (
	"time"

	"github.com/hanamura/taskdesk/internal/models"
	"github.com/hanamura/taskdesk/internal/utils"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID        uint64            `json:"id"`
	Name      string            `json:"name"`
	DueDate   *time.Time        `json:"due_date"`
	Priority  string            `json:"priority,omitempty"`
	Category  string            `json:"category,omitempty"`
	Status    models.TaskStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// TaskListResponse represents a paginated list of tasks
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// CategoryDTO represents a category in API responses
type CategoryDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// PriorityDTO represents a priority in API responses
type PriorityDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Name:     user.Name,
		Username: user.Username,
		Email:    user.Email,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:        task.ID,
		Name:      task.Name,
		DueDate:   task.DueDate,
		Priority:  task.Priority,
		Category:  task.Category,
		Status:    task.Status,
		CreatedAt: task.CreatedAt,
	}
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, page, limit int, total int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}
	return TaskListResponse{
		Tasks: items,
		Pagination: utils.PaginationResponse{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	}
}

// ToCategoryDTOs converts categories for API responses
func ToCategoryDTOs(categories []models.Category) []CategoryDTO {
	out := make([]CategoryDTO, len(categories))
	for i, c := range categories {
		out[i] = CategoryDTO{ID: c.ID, Name: c.Name}
	}
	return out
}

// ToPriorityDTOs converts priorities for API responses
func ToPriorityDTOs(priorities []models.Priority) []PriorityDTO {
	out := make([]PriorityDTO, len(priorities))
	for i, p := range priorities {
		out[i] = PriorityDTO{ID: p.ID, Name: p.Name, Color: p.Color}
	}
	return out
}
