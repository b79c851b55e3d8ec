package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role controls access to the admin surface.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// OTP is the one-time password sub-record used by the password reset flow.
type OTP struct {
	Value    string     `json:"-" gorm:"column:otp_value;size:6"`
	ExpireAt *time.Time `json:"-" gorm:"column:otp_expire_at"`
	Verified bool       `json:"-" gorm:"column:otp_verified;default:false"`
}

// User is a registered account, either an admin or an end user.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	ProfileImage string    `json:"profile_image" gorm:"size:512;not null"`
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
	OTP          OTP       `json:"-" gorm:"embedded"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
