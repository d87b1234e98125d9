package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"movievault/internal/errors"
	"movievault/internal/model"
	"movievault/internal/session"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmailOrUsername(ctx context.Context, email, username string) (*model.User, error) {
	args := m.Called(ctx, email, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func registerParams() RegisterParams {
	return RegisterParams{
		FirstName: "John",
		LastName:  "Doe",
		DOB:       time.Date(1990, time.March, 14, 0, 0, 0, 0, time.UTC),
		Gender:    model.GenderMale,
		Phone:     "5550001234",
		Email:     "John.Doe@Example.com",
		Username:  "johndoe",
		Password:  "password123",
	}
}

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	repo.On("FindByEmailOrUsername", ctx, "john.doe@example.com", "johndoe").
		Return(nil, gorm.ErrRecordNotFound)

	var created *model.User
	repo.On("Create", ctx, mock.AnythingOfType("*model.User")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*model.User)
		}).
		Return(nil)

	svc := NewAuthService(repo, session.NewMemoryRegistry(0))
	user, err := svc.Register(ctx, registerParams())

	assert.NoError(t, err)
	assert.NotNil(t, created)
	assert.Equal(t, "john.doe@example.com", user.Email, "email should be lowercased")
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
	repo.AssertExpectations(t)
}

func TestRegister_DuplicateEmailOrUsername(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	repo.On("FindByEmailOrUsername", ctx, "john.doe@example.com", "johndoe").
		Return(&model.User{Username: "johndoe"}, nil)

	svc := NewAuthService(repo, session.NewMemoryRegistry(0))
	_, err := svc.Register(ctx, registerParams())

	assert.ErrorIs(t, err, errors.ErrUserExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_UnknownUser(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	repo.On("FindByUsername", ctx, "ghost").Return(nil, gorm.ErrRecordNotFound)

	svc := NewAuthService(repo, session.NewMemoryRegistry(0))
	_, _, err := svc.Login(ctx, "ghost", "whatever")

	assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
}

func TestLogin_StoreFailureIsNotInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	repo.On("FindByUsername", ctx, "johndoe").
		Return(nil, fmt.Errorf("dial tcp 127.0.0.1:3306: connection refused"))

	svc := NewAuthService(repo, session.NewMemoryRegistry(0))
	_, _, err := svc.Login(ctx, "johndoe", "password123")

	// A persistence outage must surface as an internal error, not a 401.
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errors.ErrInvalidCredentials)
	_, ok := errors.AsDomain(err)
	assert.False(t, ok)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	assert.NoError(t, err)

	repo := new(MockUserRepository)
	repo.On("FindByUsername", ctx, "johndoe").
		Return(&model.User{Username: "johndoe", PasswordHash: string(hashed)}, nil)

	svc := NewAuthService(repo, session.NewMemoryRegistry(0))
	_, _, err = svc.Login(ctx, "johndoe", "wrong-password")

	// Same error as the unknown-user case, so callers cannot enumerate accounts.
	assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
}

func TestLogin_CreatesResolvableSession(t *testing.T) {
	ctx := context.Background()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	assert.NoError(t, err)

	userID := uuid.New()
	repo := new(MockUserRepository)
	repo.On("FindByUsername", ctx, "johndoe").
		Return(&model.User{
			ID:           userID,
			FirstName:    "John",
			LastName:     "Doe",
			Email:        "john.doe@example.com",
			Username:     "johndoe",
			PasswordHash: string(hashed),
		}, nil)

	registry := session.NewMemoryRegistry(0)
	svc := NewAuthService(repo, registry)

	token, snapshot, err := svc.Login(ctx, "johndoe", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, userID, snapshot.ID)

	sess, err := registry.Resolve(ctx, token)
	assert.NoError(t, err)
	assert.NotNil(t, sess)
	assert.Equal(t, "johndoe", sess.User.Username)
}

func TestLogout_Idempotent(t *testing.T) {
	ctx := context.Background()
	registry := session.NewMemoryRegistry(0)
	svc := NewAuthService(new(MockUserRepository), registry)

	token, err := registry.Create(ctx, model.UserSnapshot{Username: "johndoe"})
	assert.NoError(t, err)

	assert.NoError(t, svc.Logout(ctx, token))
	assert.NoError(t, svc.Logout(ctx, token))
	assert.NoError(t, svc.Logout(ctx, "never-issued"))
	assert.NoError(t, svc.Logout(ctx, ""))

	sess, err := registry.Resolve(ctx, token)
	assert.NoError(t, err)
	assert.Nil(t, sess)
}
