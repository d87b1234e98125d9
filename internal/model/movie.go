package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Movie is a watchlist entry: a film the owner intends to watch. The owner
// reference is fixed at creation; every mutating query filters on it.
type Movie struct {
	ID           uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Title        string     `json:"title" gorm:"size:255;not null"`
	Description  string     `json:"description" gorm:"size:2000;not null"`
	Genres       StringList `json:"genres" gorm:"type:json;not null"`
	ReleaseYear  int        `json:"releaseYear" gorm:"not null"`
	Rating       float64    `json:"rating" gorm:"default:0"`
	PosterImage  string     `json:"posterImage" gorm:"size:1024"`
	OTTPlatforms StringList `json:"ottPlatforms" gorm:"type:json"`
	AddedBy      uuid.UUID  `json:"addedBy" gorm:"type:char(36);not null;index:idx_movies_owner_added,priority:1"`
	AddedAt      time.Time  `json:"addedAt" gorm:"index:idx_movies_owner_added,priority:2"`
	IsWatched    bool       `json:"isWatched" gorm:"default:false"`
	Notes        string     `json:"notes" gorm:"size:1000"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// BeforeCreate sets UUID and the watchlist timestamp before creating the record.
func (m *Movie) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.AddedAt.IsZero() {
		m.AddedAt = time.Now()
	}
	return nil
}
