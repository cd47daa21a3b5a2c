package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/planhive/planhive-api/internal/dto"
	apierrors "github.com/planhive/planhive-api/internal/errors"
	"github.com/planhive/planhive-api/internal/logger"
	"github.com/planhive/planhive-api/internal/middleware"
	"github.com/planhive/planhive-api/internal/services"
)

// PlanHandler coordinates plan and invitation HTTP handlers.
type PlanHandler struct {
	planService   *services.PlanService
	inviteService *services.InviteService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService *services.PlanService, inviteService *services.InviteService) *PlanHandler {
	return &PlanHandler{
		planService:   planService,
		inviteService: inviteService,
	}
}

// CreatePlan creates a plan owned by the caller.
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreatePlanRequest struct {
		Name          string    `json:"name" binding:"required"`
		Description   string    `json:"description" binding:"required"`
		TotalExpenses float64   `json:"totalexpenses" binding:"required"`
		Date          time.Time `json:"date" binding:"required"`
		Location      string    `json:"location" binding:"required"`
	}

	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "All fields are required.")
		return
	}

	plan, err := h.planService.CreatePlan(services.CreatePlanInput{
		Name:          req.Name,
		Description:   req.Description,
		TotalExpenses: req.TotalExpenses,
		Date:          req.Date,
		Location:      req.Location,
		OrganizerID:   userID,
	})
	if err != nil {
		respondPlanError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Plan created successfully!",
		"plan":    plan,
	})
}

// UpdatePlan applies a partial update to a plan the caller organizes.
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdatePlanRequest struct {
		Name          string    `json:"name"`
		Description   string    `json:"description"`
		Date          time.Time `json:"date"`
		Location      string    `json:"location"`
		TotalExpenses float64   `json:"totalexpenses"`
	}

	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	plan, err := h.planService.UpdatePlan(c.Param("planId"), userID, services.UpdatePlanInput{
		Name:          req.Name,
		Description:   req.Description,
		Date:          req.Date,
		Location:      req.Location,
		TotalExpenses: req.TotalExpenses,
	})
	if err != nil {
		respondPlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Plan updated successfully.",
		"plan":    plan,
	})
}

// CancelPlan flips a plan the caller organizes to cancelled.
func (h *PlanHandler) CancelPlan(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	plan, err := h.planService.CancelPlan(c.Param("planId"), userID)
	if err != nil {
		respondPlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Plan cancelled successfully.",
		"plan":    plan,
	})
}

// ListPlans returns every plan with participants and organizer.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans, err := h.planService.ListPlans()
	if err != nil {
		respondPlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Plans retrieved successfully.",
		"plans":   dto.ToPlanDetailDTOs(plans),
	})
}

// GetPlan returns one plan with participants and organizer.
func (h *PlanHandler) GetPlan(c *gin.Context) {
	plan, err := h.planService.GetPlan(c.Param("planId"))
	if err != nil {
		if errors.Is(err, services.ErrPlanNotFound) {
			apierrors.NotFound(c, "Plan not found.")
			return
		}
		respondPlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Plan retrieved successfully.",
		"plan":    dto.ToPlanDetailDTO(*plan),
	})
}

// ListUserPlans returns the plans the caller organizes or participates in.
func (h *PlanHandler) ListUserPlans(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	plans, err := h.planService.ListUserPlans(userID)
	if err != nil {
		respondPlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Plans retrieved successfully.",
		"plans":   dto.ToPlanSummaryDTOs(plans),
	})
}

// GetPlanExpenses splits the plan's total expenses evenly across its
// participants.
func (h *PlanHandler) GetPlanExpenses(c *gin.Context) {
	plan, shares, err := h.planService.GetPlanExpenses(c.Param("planId"))
	if err != nil {
		if errors.Is(err, services.ErrPlanNotFound) {
			apierrors.NotFound(c, "Plan not found.")
			return
		}
		respondPlanError(c, err)
		return
	}

	expenses := make([]dto.ExpenseEntryDTO, len(shares))
	for i, share := range shares {
		expenses[i] = dto.ExpenseEntryDTO{
			UserID:     share.UserID,
			Name:       share.Name,
			AmountOwed: share.AmountOwed,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Expenses calculated successfully.",
		"plan_id":        plan.ID,
		"plan_name":      plan.Name,
		"total_expenses": plan.TotalExpenses,
		"expenses":       expenses,
	})
}

// InviteFriend invites a registered user to a plan the caller organizes.
// The plan is loaded and ownership-checked by the route middleware.
func (h *PlanHandler) InviteFriend(c *gin.Context) {
	plan, exists := middleware.GetPlan(c)
	if !exists {
		apierrors.NotFound(c, "Plan not found or authorized.")
		return
	}

	type InviteRequest struct {
		Email string `json:"emails" binding:"required,email"`
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "A valid email is required.")
		return
	}

	participant, err := h.inviteService.InviteByEmail(plan.ID, req.Email)
	if err != nil {
		respondInviteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Invitation sent successfully!",
		"participant": participant,
	})
}

// RespondToInvite consumes an invite token. Possession of the token is the
// only credential, so this route is public.
func (h *PlanHandler) RespondToInvite(c *gin.Context) {
	participant, err := h.inviteService.Respond(c.Param("inviteToken"), c.Query("status"))
	if err != nil {
		respondInviteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Invitation " + string(participant.Status) + " successfully!",
		"participant": participant,
	})
}

// ListInvitations returns the caller's pending invitations.
func (h *PlanHandler) ListInvitations(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	invitations, err := h.inviteService.ListPendingInvites(userID)
	if err != nil {
		respondInviteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Invitations retrieved successfully.",
		"invitations": dto.ToInvitationDTOs(invitations),
	})
}

func respondPlanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPlanNotFound):
		apierrors.NotFound(c, "Plan not found or authorized.")
	case errors.Is(err, services.ErrDuplicatePlanName):
		apierrors.Conflict(c, "You already have a plan with that name.")
	case errors.Is(err, services.ErrNoParticipants):
		apierrors.BadRequest(c, "No participants found for this plan.")
	default:
		logger.Get().Error("plan handler failure", zap.Error(err))
		apierrors.InternalError(c)
	}
}

func respondInviteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInviteeNotFound):
		apierrors.NotFound(c, "User not found.")
	case errors.Is(err, services.ErrAlreadyParticipant):
		apierrors.Conflict(c, "User is already a participant in this plan.")
	case errors.Is(err, services.ErrInviteNotFound):
		apierrors.NotFound(c, "Invitation not found.")
	case errors.Is(err, services.ErrInviteExpired):
		apierrors.BadRequest(c, "Invitation has expired.")
	case errors.Is(err, services.ErrInvalidInviteStatus):
		apierrors.BadRequest(c, "Invalid response status. Must be 'accepted' or 'rejected'.")
	default:
		logger.Get().Error("invite handler failure", zap.Error(err))
		apierrors.InternalError(c)
	}
}
