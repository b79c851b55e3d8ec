package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// RatingMin is the lowest accepted review rating.
	RatingMin = 1
	// RatingMax is the highest accepted review rating.
	RatingMax = 5
)

// Review is an end-user rating of an attraction.
type Review struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	UserID       uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	AttractionID uuid.UUID `json:"attraction_id" gorm:"type:char(36);not null;index"`
	Rating       int       `json:"rating" gorm:"not null"`
	Comment      string    `json:"comment" gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"index"`

	// Relations
	User       User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Attraction Attraction `json:"attraction,omitempty" gorm:"foreignKey:AttractionID"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// RatingInBounds reports whether the rating is within [RatingMin, RatingMax].
func (r *Review) RatingInBounds() bool {
	return r.Rating >= RatingMin && r.Rating <= RatingMax
}
