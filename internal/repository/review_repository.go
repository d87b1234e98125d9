package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"movievault/internal/model"
)

// ReviewRepository defines review persistence operations, with the same
// (id, owner) scoping as the watchlist.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]model.Review, error)
	FindByIDAndOwner(ctx context.Context, id, owner uuid.UUID) (*model.Review, error)
	UpdateOwned(ctx context.Context, id, owner uuid.UUID, fields map[string]interface{}) (int64, error)
	DeleteOwned(ctx context.Context, id, owner uuid.UUID) (int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository builds a GORM-backed repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// ListByOwner returns the owner's reviews, newest first.
func (r *reviewRepository) ListByOwner(ctx context.Context, owner uuid.UUID) ([]model.Review, error) {
	reviews := make([]model.Review, 0)
	if err := r.db.WithContext(ctx).
		Where("reviewed_by = ?", owner).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindByIDAndOwner(ctx context.Context, id, owner uuid.UUID) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).
		Where("id = ? AND reviewed_by = ?", id, owner).
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) UpdateOwned(ctx context.Context, id, owner uuid.UUID, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("id = ? AND reviewed_by = ?", id, owner).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *reviewRepository) DeleteOwned(ctx context.Context, id, owner uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND reviewed_by = ?", id, owner).
		Delete(&model.Review{})
	return res.RowsAffected, res.Error
}
