package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;index;not null" json:"userId"`

	Name    string  `gorm:"size:100;not null" json:"name"`
	Email   string  `gorm:"size:100;not null" json:"email"`
	Phone   string  `gorm:"size:30;not null" json:"phone"`
	Company *string `gorm:"size:100" json:"company"`
	Notes   *string `gorm:"type:text" json:"notes"`

	Projects     []Project     `gorm:"foreignKey:ClientID" json:"projects,omitempty"`
	Interactions []Interaction `gorm:"foreignKey:ClientID" json:"interactions,omitempty"`
	Reminders    []Reminder    `gorm:"foreignKey:ClientID" json:"reminders,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
