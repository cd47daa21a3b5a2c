package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PlanStatus string

const (
	PlanStatusActive    PlanStatus = "active"
	PlanStatusCancelled PlanStatus = "cancelled"
)

type Plan struct {
	ID            string     `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string     `gorm:"type:varchar(255);not null" json:"name"`
	Description   string     `gorm:"type:varchar(255);not null" json:"description"`
	TotalExpenses float64    `gorm:"type:decimal(10,2);not null" json:"totalexpenses"`
	Date          time.Time  `gorm:"not null" json:"date"`
	Location      string     `gorm:"type:varchar(255);not null" json:"location"`
	Status        PlanStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CanceledAt    *time.Time `json:"canceled_at"`
	OrganizerID   string     `gorm:"type:uuid;not null;index" json:"organizer_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Relations
	Organizer    User          `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
	Participants []Participant `gorm:"foreignKey:PlanID" json:"participants,omitempty"`
	Tasks        []Task        `gorm:"foreignKey:PlanID" json:"tasks,omitempty"`
}

func (p *Plan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
