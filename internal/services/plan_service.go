package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/planhive/planhive-api/internal/models"
	"github.com/planhive/planhive-api/internal/repository"
)

var (
	ErrPlanNotFound      = errors.New("plan not found or authorized")
	ErrDuplicatePlanName = errors.New("you already have a plan with that name")
	ErrNoParticipants    = errors.New("no participants found for this plan")
)

// PlanService provides business logic for plan lifecycle operations.
type PlanService struct {
	planRepo        repository.PlanRepository
	participantRepo repository.ParticipantRepository
}

// NewPlanService creates a new PlanService.
func NewPlanService(planRepo repository.PlanRepository, participantRepo repository.ParticipantRepository) *PlanService {
	return &PlanService{
		planRepo:        planRepo,
		participantRepo: participantRepo,
	}
}

// CreatePlanInput represents parameters to create a new plan.
type CreatePlanInput struct {
	Name          string
	Description   string
	TotalExpenses float64
	Date          time.Time
	Location      string
	OrganizerID   string
}

// CreatePlan creates a plan and registers the organizer as an accepted
// participant in the same transaction. Plan names are unique per organizer,
// not globally.
func (s *PlanService) CreatePlan(input CreatePlanInput) (*models.Plan, error) {
	if _, err := s.planRepo.FindByNameAndOrganizer(input.Name, input.OrganizerID); err == nil {
		return nil, ErrDuplicatePlanName
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check plan name: %w", err)
	}

	plan := &models.Plan{
		Name:          input.Name,
		Description:   input.Description,
		TotalExpenses: input.TotalExpenses,
		Date:          input.Date,
		Location:      input.Location,
		Status:        models.PlanStatusActive,
		OrganizerID:   input.OrganizerID,
	}

	organizer := &models.Participant{
		UserID: input.OrganizerID,
		Role:   models.RoleOrganizer,
		Status: models.ParticipantStatusAccepted,
	}

	if err := s.planRepo.CreateWithOrganizer(plan, organizer); err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	return plan, nil
}

// UpdatePlanInput carries the optional plan fields. Empty or zero values
// count as absent, preserving the partial-update contract.
type UpdatePlanInput struct {
	Name          string
	Description   string
	Date          time.Time
	Location      string
	TotalExpenses float64
}

// UpdatePlan applies the provided fields to a plan owned by the organizer.
func (s *PlanService) UpdatePlan(planID, organizerID string, input UpdatePlanInput) (*models.Plan, error) {
	plan, err := s.planRepo.FindByIDAndOrganizer(planID, organizerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to find plan: %w", err)
	}

	if input.Name != "" {
		plan.Name = input.Name
	}
	if input.Description != "" {
		plan.Description = input.Description
	}
	if !input.Date.IsZero() {
		plan.Date = input.Date
	}
	if input.Location != "" {
		plan.Location = input.Location
	}
	if input.TotalExpenses != 0 {
		plan.TotalExpenses = input.TotalExpenses
	}

	if err := s.planRepo.Update(plan); err != nil {
		return nil, fmt.Errorf("failed to update plan: %w", err)
	}

	return plan, nil
}

// CancelPlan soft-cancels a plan: the status flips to cancelled and
// canceledAt is stamped. Participants and tasks stay in place until the
// background sweep removes the plan for good.
func (s *PlanService) CancelPlan(planID, organizerID string) (*models.Plan, error) {
	plan, err := s.planRepo.FindByIDAndOrganizer(planID, organizerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to find plan: %w", err)
	}

	now := time.Now()
	plan.Status = models.PlanStatusCancelled
	plan.CanceledAt = &now

	if err := s.planRepo.Update(plan); err != nil {
		return nil, fmt.Errorf("failed to cancel plan: %w", err)
	}

	return plan, nil
}

// ListPlans returns all plans with participants and organizer summaries.
func (s *PlanService) ListPlans() ([]models.Plan, error) {
	plans, err := s.planRepo.ListDetailed()
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	return plans, nil
}

// GetPlan returns one plan with participants and organizer summaries.
func (s *PlanService) GetPlan(planID string) (*models.Plan, error) {
	plan, err := s.planRepo.FindDetailed(planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("failed to find plan: %w", err)
	}
	return plan, nil
}

// ListUserPlans returns the union of plans the user organizes and plans
// where the user is an accepted participant, de-duplicated by plan ID.
func (s *PlanService) ListUserPlans(userID string) ([]models.Plan, error) {
	plans, err := s.planRepo.ListByOrganizer(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organized plans: %w", err)
	}

	participations, err := s.participantRepo.ListAcceptedByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participations: %w", err)
	}

	seen := make(map[string]bool, len(plans))
	for _, plan := range plans {
		seen[plan.ID] = true
	}

	for _, participation := range participations {
		if seen[participation.PlanID] {
			continue
		}
		seen[participation.PlanID] = true
		plans = append(plans, participation.Plan)
	}

	return plans, nil
}

// ExpenseShare is one participant's slice of a plan's total expenses.
type ExpenseShare struct {
	UserID     string
	Name       string
	AmountOwed float64
}

// GetPlanExpenses splits the plan's total expenses evenly across all
// participants, organizer included.
func (s *PlanService) GetPlanExpenses(planID string) (*models.Plan, []ExpenseShare, error) {
	plan, err := s.planRepo.FindWithParticipants(planID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrPlanNotFound
		}
		return nil, nil, fmt.Errorf("failed to find plan: %w", err)
	}

	if len(plan.Participants) == 0 {
		return nil, nil, ErrNoParticipants
	}

	costPerParticipant := plan.TotalExpenses / float64(len(plan.Participants))

	shares := make([]ExpenseShare, len(plan.Participants))
	for i, participant := range plan.Participants {
		shares[i] = ExpenseShare{
			UserID:     participant.User.ID,
			Name:       participant.User.Name,
			AmountOwed: costPerParticipant,
		}
	}

	return plan, shares, nil
}
