package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProjectStatusNotStarted = "NOT_STARTED"
	ProjectStatusInProgress = "IN_PROGRESS"
	ProjectStatusOnHold     = "ON_HOLD"
	ProjectStatusCompleted  = "COMPLETED"
	ProjectStatusCancelled  = "CANCELLED"
)

func ProjectStatuses() []string {
	return []string{
		ProjectStatusNotStarted,
		ProjectStatusInProgress,
		ProjectStatusOnHold,
		ProjectStatusCompleted,
		ProjectStatusCancelled,
	}
}

type Project struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   string `gorm:"type:uuid;index;not null" json:"userId"`
	ClientID string `gorm:"type:uuid;index;not null" json:"clientId"`

	Title       string     `gorm:"size:150;not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description"`
	Budget      *float64   `json:"budget"`
	Deadline    *time.Time `json:"deadline"`
	Status      string     `gorm:"size:20;not null;default:'NOT_STARTED'" json:"status"`

	Client *Client `gorm:"constraint:OnDelete:CASCADE" json:"client,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
