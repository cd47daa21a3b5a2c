package dto

import (
	"time"

	"github.com/planhive/planhive-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID        string            `json:"id"`
	Task      string            `json:"task"`
	Status    models.TaskStatus `json:"status"`
	Cost      float64           `json:"cost"`
	PlanID    string            `json:"plan_id"`
	UserID    *string           `json:"user_id"`
	User      *UserSummaryDTO   `json:"user,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// TaskWithPlanDTO represents a task with its plan summary
type TaskWithPlanDTO struct {
	ID        string            `json:"id"`
	Task      string            `json:"task"`
	Status    models.TaskStatus `json:"status"`
	Cost      float64           `json:"cost"`
	Plan      PlanSummaryDTO    `json:"plan"`
	CreatedAt time.Time         `json:"created_at"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:        task.ID,
		Task:      task.Task,
		Status:    task.Status,
		Cost:      task.Cost,
		PlanID:    task.PlanID,
		UserID:    task.UserID,
		CreatedAt: task.CreatedAt,
	}

	// Include assignee if preloaded
	if task.User != nil && task.User.ID != "" {
		user := ToUserSummaryDTO(*task.User)
		dto.User = &user
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// ToTaskWithPlanDTO converts a Task with preloaded plan
func ToTaskWithPlanDTO(task models.Task) TaskWithPlanDTO {
	return TaskWithPlanDTO{
		ID:        task.ID,
		Task:      task.Task,
		Status:    task.Status,
		Cost:      task.Cost,
		Plan:      ToPlanSummaryDTO(task.Plan),
		CreatedAt: task.CreatedAt,
	}
}

// ToTaskWithPlanDTOs converts a slice of tasks with preloaded plans
func ToTaskWithPlanDTOs(tasks []models.Task) []TaskWithPlanDTO {
	dtos := make([]TaskWithPlanDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskWithPlanDTO(task)
	}
	return dtos
}
