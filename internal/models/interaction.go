package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	InteractionTypeCall    = "CALL"
	InteractionTypeEmail   = "EMAIL"
	InteractionTypeMeeting = "MEETING"
	InteractionTypeOther   = "OTHER"
)

func InteractionTypes() []string {
	return []string{
		InteractionTypeCall,
		InteractionTypeEmail,
		InteractionTypeMeeting,
		InteractionTypeOther,
	}
}

// An interaction must reference a client, a project, or both.
type Interaction struct {
	ID        string  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string  `gorm:"type:uuid;index;not null" json:"userId"`
	ClientID  *string `gorm:"type:uuid;index" json:"clientId"`
	ProjectID *string `gorm:"type:uuid;index" json:"projectId"`

	Date  time.Time `gorm:"not null" json:"date"`
	Type  string    `gorm:"size:20;not null" json:"type"`
	Notes *string   `gorm:"type:text" json:"notes"`

	Client  *Client  `gorm:"constraint:OnDelete:CASCADE" json:"client,omitempty"`
	Project *Project `gorm:"constraint:OnDelete:CASCADE" json:"project,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (i *Interaction) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
