package repository

import (
	"time"

	"github.com/planhive/planhive-api/internal/models"
	"gorm.io/gorm"
)

// GormPlanRepository is a GORM implementation of PlanRepository
type GormPlanRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new PlanRepository
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &GormPlanRepository{db: db}
}

// CreateWithOrganizer creates the plan and its organizer participant row
// atomically. A crash between the two writes can never leave an
// organizer-less plan behind.
func (r *GormPlanRepository) CreateWithOrganizer(plan *models.Plan, organizer *models.Participant) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(plan).Error; err != nil {
			return err
		}

		organizer.PlanID = plan.ID

		return tx.Create(organizer).Error
	})
}

// FindByID finds a plan by ID
func (r *GormPlanRepository) FindByID(id string) (*models.Plan, error) {
	var plan models.Plan
	if err := r.db.Where("id = ?", id).First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// FindByIDAndOrganizer finds a plan owned by the given organizer
func (r *GormPlanRepository) FindByIDAndOrganizer(id, organizerID string) (*models.Plan, error) {
	var plan models.Plan
	if err := r.db.Where("id = ? AND organizer_id = ?", id, organizerID).
		First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// FindByNameAndOrganizer finds a plan by name scoped to an organizer
func (r *GormPlanRepository) FindByNameAndOrganizer(name, organizerID string) (*models.Plan, error) {
	var plan models.Plan
	if err := r.db.Where("name = ? AND organizer_id = ?", name, organizerID).
		First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// FindDetailed finds a plan with participants, their users, and the organizer
func (r *GormPlanRepository) FindDetailed(id string) (*models.Plan, error) {
	var plan models.Plan
	if err := r.db.
		Preload("Participants").
		Preload("Participants.User").
		Preload("Organizer").
		Where("id = ?", id).
		First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// FindWithParticipants finds a plan with participants and their users
func (r *GormPlanRepository) FindWithParticipants(id string) (*models.Plan, error) {
	var plan models.Plan
	if err := r.db.
		Preload("Participants").
		Preload("Participants.User").
		Where("id = ?", id).
		First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListDetailed lists all plans with participants and organizer
func (r *GormPlanRepository) ListDetailed() ([]models.Plan, error) {
	var plans []models.Plan
	if err := r.db.
		Preload("Participants").
		Preload("Participants.User").
		Preload("Organizer").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// ListByOrganizer lists plans organized by a user
func (r *GormPlanRepository) ListByOrganizer(organizerID string) ([]models.Plan, error) {
	var plans []models.Plan
	if err := r.db.Where("organizer_id = ?", organizerID).Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// Update updates a plan
func (r *GormPlanRepository) Update(plan *models.Plan) error {
	return r.db.Save(plan).Error
}

// DeleteExpiredCancelled hard-deletes cancelled plans past the retention
// cutoff together with their participants and tasks.
func (r *GormPlanRepository) DeleteExpiredCancelled(cutoff time.Time) (int64, error) {
	var deleted int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var planIDs []string
		if err := tx.Model(&models.Plan{}).
			Where("status = ? AND canceled_at < ?", models.PlanStatusCancelled, cutoff).
			Pluck("id", &planIDs).Error; err != nil {
			return err
		}

		if len(planIDs) == 0 {
			return nil
		}

		if err := tx.Where("plan_id IN ?", planIDs).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("plan_id IN ?", planIDs).Delete(&models.Participant{}).Error; err != nil {
			return err
		}

		res := tx.Where("id IN ?", planIDs).Delete(&models.Plan{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected

		return nil
	})

	return deleted, err
}
