package repository

import (
	"time"

	"github.com/planhive/planhive-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// DeleteCascade deletes a user and all data that would otherwise be
	// orphaned: organized plans (with their participants and tasks), the
	// user's own participant rows, and the user's task claims.
	DeleteCascade(id string) error
}

// PlanRepository defines the interface for plan data access
type PlanRepository interface {
	// CreateWithOrganizer creates a plan and its organizer participant row
	// within a single transaction.
	CreateWithOrganizer(plan *models.Plan, organizer *models.Participant) error

	// FindByID finds a plan by ID
	FindByID(id string) (*models.Plan, error)

	// FindByIDAndOrganizer finds a plan owned by the given organizer
	FindByIDAndOrganizer(id, organizerID string) (*models.Plan, error)

	// FindByNameAndOrganizer finds a plan by name scoped to an organizer
	FindByNameAndOrganizer(name, organizerID string) (*models.Plan, error)

	// FindDetailed finds a plan with participants, their users, and the organizer
	FindDetailed(id string) (*models.Plan, error)

	// FindWithParticipants finds a plan with participants and their users
	FindWithParticipants(id string) (*models.Plan, error)

	// ListDetailed lists all plans with participants and organizer
	ListDetailed() ([]models.Plan, error)

	// ListByOrganizer lists plans organized by a user
	ListByOrganizer(organizerID string) ([]models.Plan, error)

	// Update updates a plan
	Update(plan *models.Plan) error

	// DeleteExpiredCancelled hard-deletes cancelled plans whose canceledAt
	// is before the cutoff, along with their participants and tasks.
	// Returns the number of plans removed.
	DeleteExpiredCancelled(cutoff time.Time) (int64, error)
}

// ParticipantRepository defines the interface for participant data access
type ParticipantRepository interface {
	// Create creates a new participant
	Create(participant *models.Participant) error

	// FindByPlanAndUser finds a participant row for a plan/user pair
	FindByPlanAndUser(planID, userID string) (*models.Participant, error)

	// FindByInviteToken finds a participant by its live invite token
	FindByInviteToken(token string) (*models.Participant, error)

	// Update updates a participant
	Update(participant *models.Participant) error

	// ListPendingByUser lists a user's pending invitations with plan summaries
	ListPendingByUser(userID string) ([]models.Participant, error)

	// ListAcceptedByUser lists a user's accepted participations with plans
	ListAcceptedByUser(userID string) ([]models.Participant, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// CreateBatch creates several tasks at once
	CreateBatch(tasks []models.Task) error

	// FindByID finds a task by ID
	FindByID(id string) (*models.Task, error)

	// FindAssigned finds a task already assigned to a user in a plan with
	// the exact same text
	FindAssigned(planID, userID, text string) (*models.Task, error)

	// FindByIDAndUser finds a task by ID that is assigned to the given user
	FindByIDAndUser(id, userID string) (*models.Task, error)

	// ClaimAvailable atomically assigns an available task to a user.
	// Returns the number of rows updated; zero means the task was not
	// available at write time.
	ClaimAvailable(taskID, userID string) (int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// ListByPlan lists a plan's tasks with assignee summaries
	ListByPlan(planID string) ([]models.Task, error)

	// ListByUser lists a user's tasks with plan summaries, newest first
	ListByUser(userID string) ([]models.Task, error)
}
