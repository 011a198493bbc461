package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// A reminder must reference a client, a project, or both.
type Reminder struct {
	ID        string  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string  `gorm:"type:uuid;index;not null" json:"userId"`
	ClientID  *string `gorm:"type:uuid;index" json:"clientId"`
	ProjectID *string `gorm:"type:uuid;index" json:"projectId"`

	Title       string    `gorm:"size:150;not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	DueDate     time.Time `gorm:"not null" json:"dueDate"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`

	Client  *Client  `gorm:"constraint:OnDelete:CASCADE" json:"client,omitempty"`
	Project *Project `gorm:"constraint:OnDelete:CASCADE" json:"project,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Reminder) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
