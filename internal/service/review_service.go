package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"movievault/internal/cache"
	"movievault/internal/errors"
	"movievault/internal/model"
	"movievault/internal/repository"
)

// ReviewInput carries the editable fields of a review. RatingStars and
// ImdbRating are pointers so absent values fail or default cleanly.
type ReviewInput struct {
	Title        string
	Description  string
	Genres       []string
	ReleaseYear  int
	PosterImage  string
	OTTPlatforms []string
	ReviewText   string
	RatingStars  *int
	ImdbRating   *float64
	ReviewPros   string
	ReviewCons   string
	IsSpoiler    bool
	Recommended  *bool
}

// MoveParams carries the review-specific fields supplied when a watchlist
// entry is converted into a review.
type MoveParams struct {
	RatingStars *int
	ReviewText  string
	ReviewPros  string
	ReviewCons  string
	IsSpoiler   bool
	Recommended *bool
}

// ReviewService handles review CRUD and the move-to-review transition.
type ReviewService interface {
	Create(ctx context.Context, owner uuid.UUID, in ReviewInput) (*model.Review, error)
	List(ctx context.Context, owner uuid.UUID) ([]model.Review, error)
	Update(ctx context.Context, owner, id uuid.UUID, in ReviewInput) (*model.Review, error)
	Delete(ctx context.Context, owner, id uuid.UUID) error
	MoveToReview(ctx context.Context, owner, movieID uuid.UUID, params MoveParams) (*model.Review, error)
}

type reviewService struct {
	movieRepo  repository.MovieRepository
	reviewRepo repository.ReviewRepository
	cache      *cache.Client
}

// NewReviewService creates a new review service.
func NewReviewService(movieRepo repository.MovieRepository, reviewRepo repository.ReviewRepository, cache *cache.Client) ReviewService {
	return &reviewService{movieRepo: movieRepo, reviewRepo: reviewRepo, cache: cache}
}

func reviewCacheKey(owner uuid.UUID) string {
	return fmt.Sprintf("reviews:%s", owner)
}

// validateReviewInput applies the create/update rules. The star range here
// is [0,10] while the move endpoint enforces [1,10]; the stored column
// carries no constraint, so both ranges persist.
func validateReviewInput(in ReviewInput, requireTitle bool) error {
	if requireTitle && (in.Title == "" || in.ReleaseYear == 0) {
		return errors.Validation("Title and release year are required")
	}
	if in.ReleaseYear < 1800 || in.ReleaseYear > 2100 {
		return errors.Validation("Release year must be between 1800 and 2100")
	}
	if in.RatingStars == nil || *in.RatingStars < 0 || *in.RatingStars > 10 {
		return errors.Validation("ratingStars must be 0-10")
	}
	if in.ImdbRating != nil && (*in.ImdbRating < 0 || *in.ImdbRating > 10) {
		return errors.Validation("IMDb rating must be between 0 and 10")
	}
	if len(in.ReviewText) > 5000 {
		return errors.Validation("Review text cannot exceed 5000 characters")
	}
	if len(in.ReviewPros) > 2000 || len(in.ReviewCons) > 2000 {
		return errors.Validation("Pros and cons cannot exceed 2000 characters")
	}
	return nil
}

// Create validates the input and persists a standalone review owned by the
// caller. SourceMovieID stays nil for standalone reviews.
func (s *reviewService) Create(ctx context.Context, owner uuid.UUID, in ReviewInput) (*model.Review, error) {
	if err := validateReviewInput(in, true); err != nil {
		return nil, err
	}

	review := &model.Review{
		Title:        in.Title,
		Description:  in.Description,
		Genres:       genresOrEmpty(in.Genres),
		ReleaseYear:  in.ReleaseYear,
		PosterImage:  in.PosterImage,
		OTTPlatforms: platformsOrEmpty(in.OTTPlatforms),
		ReviewText:   in.ReviewText,
		RatingStars:  *in.RatingStars,
		ImdbRating:   imdbOrZero(in.ImdbRating),
		ReviewedBy:   owner,
		ReviewPros:   in.ReviewPros,
		ReviewCons:   in.ReviewCons,
		IsSpoiler:    in.IsSpoiler,
		Recommended:  recommendedOrTrue(in.Recommended),
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	_ = s.cache.Delete(ctx, reviewCacheKey(owner))
	return review, nil
}

// List returns the caller's reviews, newest first, with cache-aside.
func (s *reviewService) List(ctx context.Context, owner uuid.UUID) ([]model.Review, error) {
	key := reviewCacheKey(owner)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached []model.Review
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	reviews, err := s.reviewRepo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	if payload, err := json.Marshal(reviews); err == nil {
		_ = s.cache.Set(ctx, key, payload, listCacheTTL)
	}
	return reviews, nil
}

// Update replaces every editable field of an owned review.
func (s *reviewService) Update(ctx context.Context, owner, id uuid.UUID, in ReviewInput) (*model.Review, error) {
	if err := validateReviewInput(in, false); err != nil {
		return nil, err
	}

	fields := map[string]interface{}{
		"title":         in.Title,
		"description":   in.Description,
		"genres":        model.StringList(genresOrEmpty(in.Genres)),
		"release_year":  in.ReleaseYear,
		"poster_image":  in.PosterImage,
		"ott_platforms": model.StringList(platformsOrEmpty(in.OTTPlatforms)),
		"review_text":   in.ReviewText,
		"rating_stars":  *in.RatingStars,
		"imdb_rating":   imdbOrZero(in.ImdbRating),
		"review_pros":   in.ReviewPros,
		"review_cons":   in.ReviewCons,
		"is_spoiler":    in.IsSpoiler,
		"recommended":   recommendedOrTrue(in.Recommended),
	}
	rows, err := s.reviewRepo.UpdateOwned(ctx, id, owner, fields)
	if err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	if rows == 0 {
		return nil, errors.NotFound("Review not found or no permission")
	}

	_ = s.cache.Delete(ctx, reviewCacheKey(owner))
	review, err := s.reviewRepo.FindByIDAndOwner(ctx, id, owner)
	if err != nil {
		return nil, fmt.Errorf("reload review: %w", err)
	}
	return review, nil
}

// Delete removes an owned review.
func (s *reviewService) Delete(ctx context.Context, owner, id uuid.UUID) error {
	rows, err := s.reviewRepo.DeleteOwned(ctx, id, owner)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if rows == 0 {
		return errors.NotFound("Review not found or no permission")
	}

	_ = s.cache.Delete(ctx, reviewCacheKey(owner))
	return nil
}

// MoveToReview converts an owned watchlist entry into a review. The review
// is persisted before the movie is deleted, so a failure in between leaves
// the watchlist entry intact rather than losing data. There is no rollback
// if the delete itself fails; the error is surfaced and both records remain.
func (s *reviewService) MoveToReview(ctx context.Context, owner, movieID uuid.UUID, params MoveParams) (*model.Review, error) {
	// The error text overshoots the enforced upper bound; clients already
	// match on it, so it stays as-is.
	if params.RatingStars == nil || *params.RatingStars < 1 || *params.RatingStars > 10 {
		return nil, errors.Validation("ratingStars must be an integer between 1 and 11")
	}

	movie, err := s.movieRepo.FindByIDAndOwner(ctx, movieID, owner)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NotFound("Movie not found or you do not have permission to move it")
		}
		return nil, fmt.Errorf("find movie: %w", err)
	}

	sourceID := movie.ID
	review := &model.Review{
		Title:         movie.Title,
		Description:   movie.Description,
		Genres:        movie.Genres,
		ReleaseYear:   movie.ReleaseYear,
		PosterImage:   movie.PosterImage,
		OTTPlatforms:  platformsOrEmpty(movie.OTTPlatforms),
		ReviewText:    params.ReviewText,
		RatingStars:   *params.RatingStars,
		ImdbRating:    decimal.Zero,
		ReviewedBy:    owner,
		SourceMovieID: &sourceID,
		ReviewPros:    params.ReviewPros,
		ReviewCons:    params.ReviewCons,
		IsSpoiler:     params.IsSpoiler,
		Recommended:   recommendedOrTrue(params.Recommended),
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	if _, err := s.movieRepo.DeleteOwned(ctx, movieID, owner); err != nil {
		// Accepted gap: the review already exists and is not compensated.
		return nil, fmt.Errorf("delete moved movie: %w", err)
	}

	_ = s.cache.Delete(ctx, watchlistCacheKey(owner))
	_ = s.cache.Delete(ctx, reviewCacheKey(owner))
	return review, nil
}

func genresOrEmpty(g []string) []string {
	if g == nil {
		return []string{}
	}
	return g
}

func imdbOrZero(r *float64) decimal.Decimal {
	if r == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*r)
}

func recommendedOrTrue(r *bool) bool {
	if r == nil {
		return true
	}
	return *r
}
