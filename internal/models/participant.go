package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ParticipantRole string

const (
	RoleOrganizer   ParticipantRole = "organizer"
	RoleParticipant ParticipantRole = "participant"
)

type ParticipantStatus string

const (
	ParticipantStatusPending  ParticipantStatus = "pending"
	ParticipantStatusAccepted ParticipantStatus = "accepted"
	ParticipantStatusRejected ParticipantStatus = "rejected"
)

// Participant links a user to a plan. A pending participant carries the
// invite token until the invitation is accepted or rejected; responding
// clears the token, expiry and link for good.
type Participant struct {
	ID          string            `gorm:"type:uuid;primaryKey" json:"id"`
	PlanID      string            `gorm:"type:uuid;not null;index" json:"plan_id"`
	UserID      string            `gorm:"type:uuid;not null;index" json:"user_id"`
	Role        ParticipantRole   `gorm:"type:varchar(20);not null" json:"role"`
	Status      ParticipantStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	InviteToken *string           `gorm:"type:varchar(80);index" json:"invite_token,omitempty"`
	ExpiresAt   *time.Time        `json:"expires_at,omitempty"`
	InviteLink  *string           `gorm:"type:varchar(255)" json:"invite_link,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`

	// Relations
	Plan Plan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (p *Participant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
