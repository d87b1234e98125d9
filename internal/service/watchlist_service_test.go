package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"movievault/internal/errors"
	"movievault/internal/model"
)

// MockMovieRepository is a mock implementation of MovieRepository.
type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) Create(ctx context.Context, movie *model.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *MockMovieRepository) ListByOwner(ctx context.Context, owner uuid.UUID) ([]model.Movie, error) {
	args := m.Called(ctx, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Movie), args.Error(1)
}

func (m *MockMovieRepository) FindByIDAndOwner(ctx context.Context, id, owner uuid.UUID) (*model.Movie, error) {
	args := m.Called(ctx, id, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Movie), args.Error(1)
}

func (m *MockMovieRepository) UpdateOwned(ctx context.Context, id, owner uuid.UUID, fields map[string]interface{}) (int64, error) {
	args := m.Called(ctx, id, owner, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMovieRepository) DeleteOwned(ctx context.Context, id, owner uuid.UUID) (int64, error) {
	args := m.Called(ctx, id, owner)
	return args.Get(0).(int64), args.Error(1)
}

func validMovieInput() MovieInput {
	return MovieInput{
		Title:       "The Shawshank Redemption",
		Description: "Two imprisoned men bond over a number of years.",
		Genres:      []string{"Drama", "Crime"},
		ReleaseYear: 1994,
	}
}

func TestWatchlistCreate_Validation(t *testing.T) {
	rating := 11.5
	tests := []struct {
		name    string
		mutate  func(*MovieInput)
		message string
	}{
		{
			name:    "missing title",
			mutate:  func(in *MovieInput) { in.Title = "" },
			message: "Title, description, genres, and release year are required",
		},
		{
			name:    "missing genres",
			mutate:  func(in *MovieInput) { in.Genres = nil },
			message: "Title, description, genres, and release year are required",
		},
		{
			name:    "empty genres array",
			mutate:  func(in *MovieInput) { in.Genres = []string{} },
			message: "Genres must be an array with 1-5 genres",
		},
		{
			name:    "too many genres",
			mutate:  func(in *MovieInput) { in.Genres = []string{"a", "b", "c", "d", "e", "f"} },
			message: "Genres must be an array with 1-5 genres",
		},
		{
			name:    "year too early",
			mutate:  func(in *MovieInput) { in.ReleaseYear = 1799 },
			message: "Release year must be between 1800 and 2100",
		},
		{
			name:    "year too late",
			mutate:  func(in *MovieInput) { in.ReleaseYear = 2101 },
			message: "Release year must be between 1800 and 2100",
		},
		{
			name:    "rating out of range",
			mutate:  func(in *MovieInput) { in.Rating = &rating },
			message: "Rating must be between 0 and 11",
		},
		{
			name:    "description too long",
			mutate:  func(in *MovieInput) { in.Description = strings.Repeat("x", 2001) },
			message: "Description cannot exceed 2000 characters",
		},
		{
			name:    "notes too long",
			mutate:  func(in *MovieInput) { in.Notes = strings.Repeat("x", 1001) },
			message: "Notes cannot exceed 1000 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockMovieRepository)
			svc := NewWatchlistService(repo, nil)

			in := validMovieInput()
			tt.mutate(&in)

			_, err := svc.Create(context.Background(), uuid.New(), in)
			de, ok := errors.AsDomain(err)
			assert.True(t, ok, "expected a validation error")
			assert.Equal(t, 400, de.Status)
			assert.Equal(t, tt.message, de.Message)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestWatchlistCreate_SetsOwnerAndDefaults(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	var created *model.Movie
	repo := new(MockMovieRepository)
	repo.On("Create", ctx, mock.AnythingOfType("*model.Movie")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*model.Movie)
		}).
		Return(nil)

	svc := NewWatchlistService(repo, nil)
	movie, err := svc.Create(ctx, owner, validMovieInput())

	assert.NoError(t, err)
	assert.Equal(t, owner, created.AddedBy)
	assert.Equal(t, float64(0), movie.Rating)
	assert.NotNil(t, movie.OTTPlatforms)
	assert.Empty(t, movie.OTTPlatforms)
	assert.False(t, movie.IsWatched)
}

func TestWatchlistList_PassesThrough(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	want := []model.Movie{{Title: "Newest"}, {Title: "Oldest"}}

	repo := new(MockMovieRepository)
	repo.On("ListByOwner", ctx, owner).Return(want, nil)

	svc := NewWatchlistService(repo, nil)
	got, err := svc.List(ctx, owner)

	assert.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWatchlistUpdate_NotFoundOrForeign(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	id := uuid.New()

	repo := new(MockMovieRepository)
	repo.On("UpdateOwned", ctx, id, owner, mock.Anything).Return(int64(0), nil)

	svc := NewWatchlistService(repo, nil)
	_, err := svc.Update(ctx, owner, id, validMovieInput())

	de, ok := errors.AsDomain(err)
	assert.True(t, ok)
	assert.Equal(t, 404, de.Status)
	assert.Equal(t, "Movie not found or you do not have permission to update it", de.Message)
}

func TestWatchlistUpdate_Success(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	id := uuid.New()
	updated := &model.Movie{ID: id, Title: "The Shawshank Redemption", AddedBy: owner}

	repo := new(MockMovieRepository)
	repo.On("UpdateOwned", ctx, id, owner, mock.Anything).Return(int64(1), nil)
	repo.On("FindByIDAndOwner", ctx, id, owner).Return(updated, nil)

	svc := NewWatchlistService(repo, nil)
	movie, err := svc.Update(ctx, owner, id, validMovieInput())

	assert.NoError(t, err)
	assert.Equal(t, updated, movie)
	repo.AssertExpectations(t)
}

func TestWatchlistUpdate_ReplacesUnsetFields(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	id := uuid.New()

	var fields map[string]interface{}
	repo := new(MockMovieRepository)
	repo.On("UpdateOwned", ctx, id, owner, mock.Anything).
		Run(func(args mock.Arguments) {
			fields = args.Get(3).(map[string]interface{})
		}).
		Return(int64(1), nil)
	repo.On("FindByIDAndOwner", ctx, id, owner).Return(&model.Movie{ID: id}, nil)

	svc := NewWatchlistService(repo, nil)
	in := validMovieInput() // no rating, no notes, no platforms
	_, err := svc.Update(ctx, owner, id, in)

	assert.NoError(t, err)
	// Full replace: omitted optional fields are overwritten, not merged.
	assert.Equal(t, float64(0), fields["rating"])
	assert.Equal(t, "", fields["notes"])
	assert.Equal(t, model.StringList{}, fields["ott_platforms"])
}

func TestWatchlistDelete(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	id := uuid.New()

	t.Run("not found or foreign", func(t *testing.T) {
		repo := new(MockMovieRepository)
		repo.On("DeleteOwned", ctx, id, owner).Return(int64(0), nil)

		svc := NewWatchlistService(repo, nil)
		err := svc.Delete(ctx, owner, id)

		de, ok := errors.AsDomain(err)
		assert.True(t, ok)
		assert.Equal(t, 404, de.Status)
		assert.Equal(t, "Movie not found or you do not have permission to delete it", de.Message)
	})

	t.Run("success", func(t *testing.T) {
		repo := new(MockMovieRepository)
		repo.On("DeleteOwned", ctx, id, owner).Return(int64(1), nil)

		svc := NewWatchlistService(repo, nil)
		assert.NoError(t, svc.Delete(ctx, owner, id))
	})
}
