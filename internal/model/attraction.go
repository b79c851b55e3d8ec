package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Attraction is a point of interest belonging to one category and one city.
// Coordinates are stored as exact decimals to avoid float drift in MySQL.
type Attraction struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string          `json:"name" gorm:"size:255;not null;index"`
	Description string          `json:"description" gorm:"type:text;not null"`
	Image       string          `json:"image" gorm:"size:512;not null"`
	CategoryID  uuid.UUID       `json:"category_id" gorm:"type:char(36);not null;index"`
	CityID      uuid.UUID       `json:"city_id" gorm:"type:char(36);not null;index"`
	Latitude    decimal.Decimal `json:"latitude" gorm:"type:decimal(10,7);not null"`
	Longitude   decimal.Decimal `json:"longitude" gorm:"type:decimal(11,7);not null"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relations
	Category Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	City     City     `json:"city,omitempty" gorm:"foreignKey:CityID"`
	Reviews  []Review `json:"reviews,omitempty" gorm:"foreignKey:AttractionID"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Attraction) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
