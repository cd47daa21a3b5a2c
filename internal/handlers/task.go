package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/planhive/planhive-api/internal/dto"
	apierrors "github.com/planhive/planhive-api/internal/errors"
	"github.com/planhive/planhive-api/internal/logger"
	"github.com/planhive/planhive-api/internal/middleware"
	"github.com/planhive/planhive-api/internal/services"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// AssignTask creates a task pre-assigned to a plan participant. The plan
// is loaded and ownership-checked by the route middleware.
func (h *TaskHandler) AssignTask(c *gin.Context) {
	plan, exists := middleware.GetPlan(c)
	if !exists {
		apierrors.NotFound(c, "Plan not found or authorized.")
		return
	}

	type AssignTaskRequest struct {
		UserID string  `json:"user_id" binding:"required"`
		Task   string  `json:"task" binding:"required"`
		Cost   float64 `json:"cost"`
	}

	var req AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "user_id and task are required.")
		return
	}

	task, err := h.taskService.AssignTask(services.AssignTaskInput{
		PlanID: plan.ID,
		UserID: req.UserID,
		Task:   req.Task,
		Cost:   req.Cost,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task assigned successfully!",
		"task":    task,
	})
}

// CreateTaskList bulk-creates available tasks for a plan.
func (h *TaskHandler) CreateTaskList(c *gin.Context) {
	type BulkTasksRequest struct {
		Tasks []string `json:"tasks" binding:"required,min=1,dive,required"`
	}

	var req BulkTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Tasks should be a non-empty array.")
		return
	}

	tasks, err := h.taskService.CreateTaskList(c.Param("planId"), req.Tasks)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Tasks created successfully!",
		"tasks":   tasks,
	})
}

// PickTask lets the caller claim an available task from the plan's pool.
func (h *TaskHandler) PickTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type PickTaskRequest struct {
		TaskID string `json:"task_id" binding:"required"`
	}

	var req PickTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "task_id is required.")
		return
	}

	task, err := h.taskService.PickTask(c.Param("planId"), req.TaskID, userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task picked!",
		"task":    task,
	})
}

// CompleteTask marks one of the caller's own tasks as completed.
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	task, err := h.taskService.CompleteTask(c.Param("taskId"), userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task marked as completed.",
		"task":    task,
	})
}

// ListPlanTasks returns all tasks of a plan with assignee summaries.
func (h *TaskHandler) ListPlanTasks(c *gin.Context) {
	tasks, err := h.taskService.ListPlanTasks(c.Param("planId"))
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tasks retrieved successfully.",
		"tasks":   dto.ToTaskDTOs(tasks),
	})
}

// ListMyTasks returns the caller's tasks across plans, newest first.
func (h *TaskHandler) ListMyTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	tasks, err := h.taskService.ListUserTasks(userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tasks retrieved successfully.",
		"tasks":   dto.ToTaskWithPlanDTOs(tasks),
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPlanNotFound):
		apierrors.NotFound(c, "Plan not found.")
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found.")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found.")
	case errors.Is(err, services.ErrParticipantNotFound):
		apierrors.NotFound(c, "Participant not found in this plan.")
	case errors.Is(err, services.ErrTaskNotYours):
		apierrors.NotFound(c, "Task not found or not assigned to you.")
	case errors.Is(err, services.ErrTaskNotAvailable):
		apierrors.BadRequest(c, "Task is not available.")
	case errors.Is(err, services.ErrTaskAlreadyAssigned):
		apierrors.Conflict(c, "Task already assigned to this participant.")
	default:
		logger.Get().Error("task handler failure", zap.Error(err))
		apierrors.InternalError(c)
	}
}
