package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"movievault/internal/model"
)

// MovieRepository defines watchlist persistence operations. Every read or
// mutation of a single entry is scoped by the (id, owner) compound filter;
// a zero rows-affected result means not-found-or-not-owned and the two are
// never told apart.
type MovieRepository interface {
	Create(ctx context.Context, movie *model.Movie) error
	ListByOwner(ctx context.Context, owner uuid.UUID) ([]model.Movie, error)
	FindByIDAndOwner(ctx context.Context, id, owner uuid.UUID) (*model.Movie, error)
	UpdateOwned(ctx context.Context, id, owner uuid.UUID, fields map[string]interface{}) (int64, error)
	DeleteOwned(ctx context.Context, id, owner uuid.UUID) (int64, error)
}

type movieRepository struct {
	db *gorm.DB
}

// NewMovieRepository builds a GORM-backed repository.
func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepository{db: db}
}

func (r *movieRepository) Create(ctx context.Context, movie *model.Movie) error {
	return r.db.WithContext(ctx).Create(movie).Error
}

// ListByOwner returns the owner's watchlist, newest first.
func (r *movieRepository) ListByOwner(ctx context.Context, owner uuid.UUID) ([]model.Movie, error) {
	movies := make([]model.Movie, 0)
	if err := r.db.WithContext(ctx).
		Where("added_by = ?", owner).
		Order("added_at DESC").
		Find(&movies).Error; err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *movieRepository) FindByIDAndOwner(ctx context.Context, id, owner uuid.UUID) (*model.Movie, error) {
	var movie model.Movie
	if err := r.db.WithContext(ctx).
		Where("id = ? AND added_by = ?", id, owner).
		First(&movie).Error; err != nil {
		return nil, err
	}
	return &movie, nil
}

// UpdateOwned applies a full-field update behind the owner filter and
// reports how many rows matched.
func (r *movieRepository) UpdateOwned(ctx context.Context, id, owner uuid.UUID, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Movie{}).
		Where("id = ? AND added_by = ?", id, owner).
		Updates(fields)
	return res.RowsAffected, res.Error
}

// DeleteOwned removes an entry behind the owner filter and reports how many
// rows matched.
func (r *movieRepository) DeleteOwned(ctx context.Context, id, owner uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND added_by = ?", id, owner).
		Delete(&model.Movie{})
	return res.RowsAffected, res.Error
}
