package repository

import (
	"github.com/planhive/planhive-api/internal/models"
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

// CreateBatch creates several tasks at once
func (r *GormTaskRepository) CreateBatch(tasks []models.Task) error {
	return r.db.Create(&tasks).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id string) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindAssigned finds a task already assigned to a user in a plan with the
// exact same text. The de-dup key is text equality, nothing stronger.
func (r *GormTaskRepository) FindAssigned(planID, userID, text string) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("plan_id = ? AND user_id = ? AND task = ?", planID, userID, text).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByIDAndUser finds a task by ID that is assigned to the given user
func (r *GormTaskRepository) FindByIDAndUser(id, userID string) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ClaimAvailable assigns an available task to a user with a conditional
// write keyed on the expected prior status. Two racing pickers can both
// pass the handler-level checks; only one row update will take effect.
func (r *GormTaskRepository) ClaimAvailable(taskID, userID string) (int64, error) {
	res := r.db.Model(&models.Task{}).
		Where("id = ? AND status = ?", taskID, models.TaskStatusAvailable).
		Updates(map[string]interface{}{
			"user_id": userID,
			"status":  models.TaskStatusAssigned,
		})
	return res.RowsAffected, res.Error
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// ListByPlan lists a plan's tasks with assignee summaries
func (r *GormTaskRepository) ListByPlan(planID string) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.
		Preload("User").
		Where("plan_id = ?", planID).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByUser lists a user's tasks with plan summaries, newest first
func (r *GormTaskRepository) ListByUser(userID string) ([]models.Task, error) {
	var tasks []models.Task
	if err := r.db.
		Preload("Plan").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}
