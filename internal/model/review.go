package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Review is a completed opinion about a movie, created standalone or by
// moving a watchlist entry. SourceMovieID is a weak back-reference: the
// move operation deletes the source movie, so it may point at nothing.
// It is lookup-only and never consulted for ownership checks.
type Review struct {
	ID            uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Title         string          `json:"title" gorm:"size:255;not null"`
	Description   string          `json:"description" gorm:"size:2000"`
	Genres        StringList      `json:"genres" gorm:"type:json"`
	ReleaseYear   int             `json:"releaseYear" gorm:"not null"`
	PosterImage   string          `json:"posterImage" gorm:"size:1024"`
	OTTPlatforms  StringList      `json:"ottPlatforms" gorm:"type:json"`
	ReviewText    string          `json:"reviewText" gorm:"size:5000"`
	RatingStars   int             `json:"ratingStars" gorm:"not null"`
	ImdbRating    decimal.Decimal `json:"imdbRating" gorm:"type:decimal(4,2);default:0"`
	ReviewedBy    uuid.UUID       `json:"reviewedBy" gorm:"type:char(36);not null;index:idx_reviews_owner_created,priority:1"`
	SourceMovieID *uuid.UUID      `json:"sourceMovieId" gorm:"type:char(36)"`
	ReviewPros    string          `json:"reviewPros" gorm:"size:2000"`
	ReviewCons    string          `json:"reviewCons" gorm:"size:2000"`
	IsSpoiler     bool            `json:"isSpoiler" gorm:"default:false"`
	Recommended   bool            `json:"recommended" gorm:"default:true"`
	CreatedAt     time.Time       `json:"createdAt" gorm:"index:idx_reviews_owner_created,priority:2"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
