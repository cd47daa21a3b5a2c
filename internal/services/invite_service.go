package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/planhive/planhive-api/internal/constants"
	"github.com/planhive/planhive-api/internal/models"
	"github.com/planhive/planhive-api/internal/repository"
	"github.com/planhive/planhive-api/internal/utils"
)

var (
	ErrInviteeNotFound     = errors.New("user not found")
	ErrAlreadyParticipant  = errors.New("user is already a participant")
	ErrInviteNotFound      = errors.New("invitation not found")
	ErrInviteExpired       = errors.New("invitation has expired")
	ErrInvalidInviteStatus = errors.New("invalid response status")
	ErrTokenGeneration     = errors.New("failed to generate invite token")
)

// InviteService handles invitation issuance and responses.
type InviteService struct {
	participantRepo repository.ParticipantRepository
	userRepo        repository.UserRepository
	baseURL         string
}

// NewInviteService creates a new InviteService. baseURL is the externally
// reachable prefix embedded in invite links.
func NewInviteService(participantRepo repository.ParticipantRepository, userRepo repository.UserRepository, baseURL string) *InviteService {
	return &InviteService{
		participantRepo: participantRepo,
		userRepo:        userRepo,
		baseURL:         baseURL,
	}
}

// InviteByEmail invites an existing user to a plan by exact email match.
// Only registered users can be invited. The pending participant row holds
// a single-use token valid for 24 hours.
func (s *InviteService) InviteByEmail(planID, email string) (*models.Participant, error) {
	invitee, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteeNotFound
		}
		return nil, fmt.Errorf("failed to find invitee: %w", err)
	}

	if _, err := s.participantRepo.FindByPlanAndUser(planID, invitee.ID); err == nil {
		return nil, ErrAlreadyParticipant
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check participant: %w", err)
	}

	token, err := utils.GenerateInviteToken()
	if err != nil {
		return nil, ErrTokenGeneration
	}

	expiresAt := time.Now().Add(constants.InviteTokenTTL)
	link := s.baseURL + "/api/plan/invite/" + token

	participant := &models.Participant{
		PlanID:      planID,
		UserID:      invitee.ID,
		Role:        models.RoleParticipant,
		Status:      models.ParticipantStatusPending,
		InviteToken: &token,
		ExpiresAt:   &expiresAt,
		InviteLink:  &link,
	}

	if err := s.participantRepo.Create(participant); err != nil {
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}

	return participant, nil
}

// Respond consumes an invite token, setting the participant's status and
// clearing the token, expiry, and link so the invitation can never be
// answered twice. Possession of the token is the only credential checked.
func (s *InviteService) Respond(token, status string) (*models.Participant, error) {
	if status != string(models.ParticipantStatusAccepted) && status != string(models.ParticipantStatusRejected) {
		return nil, ErrInvalidInviteStatus
	}

	participant, err := s.participantRepo.FindByInviteToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to find invitation: %w", err)
	}

	if participant.ExpiresAt != nil && participant.ExpiresAt.Before(time.Now()) {
		return nil, ErrInviteExpired
	}

	participant.Status = models.ParticipantStatus(status)
	participant.InviteToken = nil
	participant.ExpiresAt = nil
	participant.InviteLink = nil

	if err := s.participantRepo.Update(participant); err != nil {
		return nil, fmt.Errorf("failed to update invitation: %w", err)
	}

	return participant, nil
}

// ListPendingInvites returns the caller's pending invitations with plan
// summaries attached.
func (s *InviteService) ListPendingInvites(userID string) ([]models.Participant, error) {
	invitations, err := s.participantRepo.ListPendingByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	return invitations, nil
}
