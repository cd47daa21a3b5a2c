package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusAvailable TaskStatus = "available"
	TaskStatusAssigned  TaskStatus = "assigned"
	TaskStatusCompleted TaskStatus = "completed"
)

// Task is a unit of plan-related work. UserID is nil while the task is
// unclaimed; once set via pick or assign the status is at least assigned.
type Task struct {
	ID        string     `gorm:"type:uuid;primaryKey" json:"id"`
	Task      string     `gorm:"type:text;not null" json:"task"`
	Status    TaskStatus `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	Cost      float64    `gorm:"type:decimal(10,2);not null;default:0" json:"cost"`
	PlanID    string     `gorm:"type:uuid;not null;index" json:"plan_id"`
	UserID    *string    `gorm:"type:uuid;index" json:"user_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Relations
	Plan Plan  `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
