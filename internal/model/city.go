package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// City is the root of the content hierarchy. Its categories and attractions
// are owned-children views computed from the foreign keys on the child rows.
type City struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null;index"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Image       string    `json:"image" gorm:"size:512;not null"` // Opaque reference from the upload collaborator
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Categories  []Category   `json:"categories,omitempty" gorm:"foreignKey:CityID"`
	Attractions []Attraction `json:"attractions,omitempty" gorm:"foreignKey:CityID"`
}

// BeforeCreate sets UUID before creating the record.
func (c *City) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
