package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"movievault/internal/cache"
	"movievault/internal/errors"
	"movievault/internal/model"
	"movievault/internal/repository"
)

const listCacheTTL = 5 * time.Minute

// MovieInput carries the editable fields of a watchlist entry. Rating is a
// pointer so "absent" and an explicit 0 can be told apart during validation;
// an absent rating is stored as 0.
type MovieInput struct {
	Title        string
	Description  string
	Genres       []string
	ReleaseYear  int
	Rating       *float64
	PosterImage  string
	OTTPlatforms []string
	Notes        string
}

// WatchlistService handles watchlist CRUD. Every operation is scoped to the
// calling owner.
type WatchlistService interface {
	Create(ctx context.Context, owner uuid.UUID, in MovieInput) (*model.Movie, error)
	List(ctx context.Context, owner uuid.UUID) ([]model.Movie, error)
	Update(ctx context.Context, owner, id uuid.UUID, in MovieInput) (*model.Movie, error)
	Delete(ctx context.Context, owner, id uuid.UUID) error
}

type watchlistService struct {
	movieRepo repository.MovieRepository
	cache     *cache.Client
}

// NewWatchlistService creates a new watchlist service.
func NewWatchlistService(movieRepo repository.MovieRepository, cache *cache.Client) WatchlistService {
	return &watchlistService{movieRepo: movieRepo, cache: cache}
}

func watchlistCacheKey(owner uuid.UUID) string {
	return fmt.Sprintf("watchlist:%s", owner)
}

// validateMovieInput applies the shared create/update rules.
func validateMovieInput(in MovieInput) error {
	if in.Title == "" || in.Description == "" || in.Genres == nil || in.ReleaseYear == 0 {
		return errors.Validation("Title, description, genres, and release year are required")
	}
	if len(in.Genres) == 0 || len(in.Genres) > 5 {
		return errors.Validation("Genres must be an array with 1-5 genres")
	}
	if in.ReleaseYear < 1800 || in.ReleaseYear > 2100 {
		return errors.Validation("Release year must be between 1800 and 2100")
	}
	if in.Rating != nil && (*in.Rating < 0 || *in.Rating > 11) {
		return errors.Validation("Rating must be between 0 and 11")
	}
	if len(in.Description) > 2000 {
		return errors.Validation("Description cannot exceed 2000 characters")
	}
	if len(in.Notes) > 1000 {
		return errors.Validation("Notes cannot exceed 1000 characters")
	}
	return nil
}

// Create validates the input and persists a new entry owned by the caller.
func (s *watchlistService) Create(ctx context.Context, owner uuid.UUID, in MovieInput) (*model.Movie, error) {
	if err := validateMovieInput(in); err != nil {
		return nil, err
	}

	movie := &model.Movie{
		Title:        in.Title,
		Description:  in.Description,
		Genres:       in.Genres,
		ReleaseYear:  in.ReleaseYear,
		Rating:       ratingOrZero(in.Rating),
		PosterImage:  in.PosterImage,
		OTTPlatforms: platformsOrEmpty(in.OTTPlatforms),
		AddedBy:      owner,
		Notes:        in.Notes,
	}
	if err := s.movieRepo.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	_ = s.cache.Delete(ctx, watchlistCacheKey(owner))
	return movie, nil
}

// List returns the caller's watchlist, newest first, with cache-aside.
func (s *watchlistService) List(ctx context.Context, owner uuid.UUID) ([]model.Movie, error) {
	key := watchlistCacheKey(owner)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached []model.Movie
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	movies, err := s.movieRepo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	if payload, err := json.Marshal(movies); err == nil {
		_ = s.cache.Set(ctx, key, payload, listCacheTTL)
	}
	return movies, nil
}

// Update replaces every editable field of an owned entry. A miss on the
// (id, owner) filter is reported as not found regardless of cause.
func (s *watchlistService) Update(ctx context.Context, owner, id uuid.UUID, in MovieInput) (*model.Movie, error) {
	if err := validateMovieInput(in); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"title":         in.Title,
		"description":   in.Description,
		"genres":        model.StringList(in.Genres),
		"release_year":  in.ReleaseYear,
		"rating":        ratingOrZero(in.Rating),
		"poster_image":  in.PosterImage,
		"ott_platforms": model.StringList(platformsOrEmpty(in.OTTPlatforms)),
		"notes":         in.Notes,
	}
	rows, err := s.movieRepo.UpdateOwned(ctx, id, owner, fields)
	if err != nil {
		return nil, fmt.Errorf("update movie: %w", err)
	}
	if rows == 0 {
		return nil, errors.NotFound("Movie not found or you do not have permission to update it")
	}

	_ = s.cache.Delete(ctx, watchlistCacheKey(owner))
	movie, err := s.movieRepo.FindByIDAndOwner(ctx, id, owner)
	if err != nil {
		return nil, fmt.Errorf("reload movie: %w", err)
	}
	return movie, nil
}

// Delete removes an owned entry.
func (s *watchlistService) Delete(ctx context.Context, owner, id uuid.UUID) error {
	rows, err := s.movieRepo.DeleteOwned(ctx, id, owner)
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("Movie not found or you do not have permission to delete it")
	}

	_ = s.cache.Delete(ctx, watchlistCacheKey(owner))
	return nil
}

func ratingOrZero(r *float64) float64 {
	if r == nil {
		return 0
	}
	return *r
}

func platformsOrEmpty(p []string) []string {
	if p == nil {
		return []string{}
	}
	return p
}
