package repository

import (
	"github.com/planhive/planhive-api/internal/models"
	"gorm.io/gorm"
)

// GormParticipantRepository is a GORM implementation of ParticipantRepository
type GormParticipantRepository struct {
	db *gorm.DB
}

// NewParticipantRepository creates a new ParticipantRepository
func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &GormParticipantRepository{db: db}
}

// Create creates a new participant
func (r *GormParticipantRepository) Create(participant *models.Participant) error {
	return r.db.Create(participant).Error
}

// FindByPlanAndUser finds a participant row for a plan/user pair
func (r *GormParticipantRepository) FindByPlanAndUser(planID, userID string) (*models.Participant, error) {
	var participant models.Participant
	if err := r.db.Where("plan_id = ? AND user_id = ?", planID, userID).
		First(&participant).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

// FindByInviteToken finds a participant by its live invite token. Consumed
// tokens are set to NULL and can never match again.
func (r *GormParticipantRepository) FindByInviteToken(token string) (*models.Participant, error) {
	var participant models.Participant
	if err := r.db.Where("invite_token = ?", token).
		First(&participant).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

// Update updates a participant
func (r *GormParticipantRepository) Update(participant *models.Participant) error {
	return r.db.Save(participant).Error
}

// ListPendingByUser lists a user's pending invitations with plan summaries
func (r *GormParticipantRepository) ListPendingByUser(userID string) ([]models.Participant, error) {
	var participants []models.Participant
	if err := r.db.
		Preload("Plan").
		Where("user_id = ? AND status = ?", userID, models.ParticipantStatusPending).
		Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}

// ListAcceptedByUser lists a user's accepted participations with plans
func (r *GormParticipantRepository) ListAcceptedByUser(userID string) ([]models.Participant, error) {
	var participants []models.Participant
	if err := r.db.
		Preload("Plan").
		Where("user_id = ? AND status = ?", userID, models.ParticipantStatusAccepted).
		Find(&participants).Error; err != nil {
		return nil, err
	}
	return participants, nil
}
