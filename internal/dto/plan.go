package dto

import (
	"time"

	"github.com/planhive/planhive-api/internal/models"
)

// PlanSummaryDTO represents a plan in list responses
type PlanSummaryDTO struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Date        time.Time         `json:"date"`
	Location    string            `json:"location"`
	Status      models.PlanStatus `json:"status"`
}

// ParticipantDTO represents a participant with a user summary
type ParticipantDTO struct {
	ID   string                 `json:"id"`
	Role models.ParticipantRole `json:"role"`
	User UserSummaryDTO         `json:"user"`
}

// PlanDetailDTO represents a plan with participants and organizer
type PlanDetailDTO struct {
	PlanSummaryDTO
	Participants []ParticipantDTO `json:"participants"`
	CreatedBy    UserSummaryDTO   `json:"created_by"`
}

// InvitationDTO represents a pending invitation with its plan summary
type InvitationDTO struct {
	ID     string                   `json:"id"`
	Status models.ParticipantStatus `json:"status"`
	Plan   PlanSummaryDTO           `json:"plan"`
}

// ExpenseEntryDTO is one participant's share of a plan's total expenses
type ExpenseEntryDTO struct {
	UserID     string  `json:"user_id"`
	Name       string  `json:"name"`
	AmountOwed float64 `json:"amount_owed"`
}

// ToPlanSummaryDTO converts a Plan model to PlanSummaryDTO
func ToPlanSummaryDTO(plan models.Plan) PlanSummaryDTO {
	return PlanSummaryDTO{
		ID:          plan.ID,
		Name:        plan.Name,
		Description: plan.Description,
		Date:        plan.Date,
		Location:    plan.Location,
		Status:      plan.Status,
	}
}

// ToPlanSummaryDTOs converts a slice of plans to summaries
func ToPlanSummaryDTOs(plans []models.Plan) []PlanSummaryDTO {
	summaries := make([]PlanSummaryDTO, len(plans))
	for i, plan := range plans {
		summaries[i] = ToPlanSummaryDTO(plan)
	}
	return summaries
}

// ToParticipantDTO converts a Participant model to ParticipantDTO
func ToParticipantDTO(participant models.Participant) ParticipantDTO {
	return ParticipantDTO{
		ID:   participant.ID,
		Role: participant.Role,
		User: ToUserSummaryDTO(participant.User),
	}
}

// ToPlanDetailDTO converts a preloaded Plan model to PlanDetailDTO
func ToPlanDetailDTO(plan models.Plan) PlanDetailDTO {
	participants := make([]ParticipantDTO, len(plan.Participants))
	for i, participant := range plan.Participants {
		participants[i] = ToParticipantDTO(participant)
	}

	return PlanDetailDTO{
		PlanSummaryDTO: ToPlanSummaryDTO(plan),
		Participants:   participants,
		CreatedBy:      ToUserSummaryDTO(plan.Organizer),
	}
}

// ToPlanDetailDTOs converts a slice of preloaded plans to details
func ToPlanDetailDTOs(plans []models.Plan) []PlanDetailDTO {
	details := make([]PlanDetailDTO, len(plans))
	for i, plan := range plans {
		details[i] = ToPlanDetailDTO(plan)
	}
	return details
}

// ToInvitationDTO converts a pending Participant with preloaded plan
func ToInvitationDTO(participant models.Participant) InvitationDTO {
	return InvitationDTO{
		ID:     participant.ID,
		Status: participant.Status,
		Plan:   ToPlanSummaryDTO(participant.Plan),
	}
}

// ToInvitationDTOs converts a slice of pending participants
func ToInvitationDTOs(participants []models.Participant) []InvitationDTO {
	invitations := make([]InvitationDTO, len(participants))
	for i, participant := range participants {
		invitations[i] = ToInvitationDTO(participant)
	}
	return invitations
}
