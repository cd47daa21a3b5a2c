package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/planhive/planhive-api/internal/models"
	"github.com/planhive/planhive-api/internal/repository"
)

var (
	ErrTaskNotFound        = errors.New("task not found")
	ErrTaskNotYours        = errors.New("task not found or not assigned to you")
	ErrTaskNotAvailable    = errors.New("task is not available")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrTaskAlreadyAssigned = errors.New("task already assigned to the participant")
)

// TaskService handles task business logic.
type TaskService struct {
	taskRepo        repository.TaskRepository
	planRepo        repository.PlanRepository
	participantRepo repository.ParticipantRepository
	userRepo        repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	taskRepo repository.TaskRepository,
	planRepo repository.PlanRepository,
	participantRepo repository.ParticipantRepository,
	userRepo repository.UserRepository,
) *TaskService {
	return &TaskService{
		taskRepo:        taskRepo,
		planRepo:        planRepo,
		participantRepo: participantRepo,
		userRepo:        userRepo,
	}
}

// AssignTaskInput represents input for assigning a task to a participant.
type AssignTaskInput struct {
	PlanID string
	UserID string
	Task   string
	Cost   float64
}

// AssignTask creates a task pre-assigned to a plan participant. The same
// task text cannot be assigned to the same participant twice.
func (s *TaskService) AssignTask(input AssignTaskInput) (*models.Task, error) {
	if _, err := s.participantRepo.FindByPlanAndUser(input.PlanID, input.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to find participant: %w", err)
	}

	if _, err := s.taskRepo.FindAssigned(input.PlanID, input.UserID, input.Task); err == nil {
		return nil, ErrTaskAlreadyAssigned
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing task: %w", err)
	}

	userID := input.UserID
	task := &models.Task{
		PlanID: input.PlanID,
		UserID: &userID,
		Task:   input.Task,
		Cost:   input.Cost,
		Status: models.TaskStatusAssigned,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// CreateTaskList bulk-creates unowned tasks for a plan from plain task
// texts; they enter the pool as available.
func (s *TaskService) CreateTaskList(planID string, texts []string) ([]models.Task, error) {
	if _, err := s.planRepo.FindByID(planID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to find plan: %w", err)
	}

	tasks := make([]models.Task, len(texts))
	for i, text := range texts {
		tasks[i] = models.Task{
			PlanID: planID,
			Task:   text,
			Status: models.TaskStatusAvailable,
		}
	}

	if err := s.taskRepo.CreateBatch(tasks); err != nil {
		return nil, fmt.Errorf("failed to create tasks: %w", err)
	}

	return tasks, nil
}

// PickTask lets a caller claim an available task. The claim itself is a
// conditional write, so of two simultaneous pickers only one succeeds; the
// loser sees the task as not available.
func (s *TaskService) PickTask(planID, taskID, userID string) (*models.Task, error) {
	if _, err := s.planRepo.FindByID(planID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to find plan: %w", err)
	}

	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	claimed, err := s.taskRepo.ClaimAvailable(taskID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to claim task: %w", err)
	}
	if claimed == 0 {
		return nil, ErrTaskNotAvailable
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload task: %w", err)
	}

	return task, nil
}

// CompleteTask marks one of the caller's own tasks as completed.
func (s *TaskService) CompleteTask(taskID, userID string) (*models.Task, error) {
	task, err := s.taskRepo.FindByIDAndUser(taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotYours
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	task.Status = models.TaskStatusCompleted
	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	return task, nil
}

// ListPlanTasks returns all tasks of a plan with assignee summaries.
func (s *TaskService) ListPlanTasks(planID string) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByPlan(planID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListUserTasks returns the caller's tasks with plan summaries, newest first.
func (s *TaskService) ListUserTasks(userID string) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}
