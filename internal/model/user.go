package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gender values accepted at registration.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// User represents a registered account. Users are immutable after
// registration; there are no update or delete endpoints for them.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	FirstName    string    `json:"firstName" gorm:"size:50;not null"`
	LastName     string    `json:"lastName" gorm:"size:50;not null"`
	DOB          time.Time `json:"DOB" gorm:"not null"`
	Gender       string    `json:"gender" gorm:"size:10;not null"`
	Phone        string    `json:"phone" gorm:"size:10;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:30;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserSnapshot is the slice of a user carried by a session and attached to
// authenticated requests. It never includes the password hash.
type UserSnapshot struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
}

// Snapshot projects a user into its session snapshot.
func (u *User) Snapshot() UserSnapshot {
	return UserSnapshot{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Username:  u.Username,
	}
}
