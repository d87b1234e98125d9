package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"movievault/internal/errors"
	"movievault/internal/model"
	"movievault/internal/repository"
	"movievault/internal/session"
)

const bcryptCost = 10

// RegisterParams carries validated registration input.
type RegisterParams struct {
	FirstName string
	LastName  string
	DOB       time.Time
	Gender    string
	Phone     string
	Email     string
	Username  string
	Password  string
}

// AuthService handles registration, login and logout.
type AuthService interface {
	Register(ctx context.Context, params RegisterParams) (*model.User, error)
	Login(ctx context.Context, username, password string) (token string, user model.UserSnapshot, err error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo repository.UserRepository
	registry session.Registry
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, registry session.Registry) AuthService {
	return &authService{userRepo: userRepo, registry: registry}
}

// Register persists a new user with a bcrypt-hashed password. Email is
// lowercased before the uniqueness check so casing cannot mint duplicates.
func (s *authService) Register(ctx context.Context, params RegisterParams) (*model.User, error) {
	email := strings.ToLower(params.Email)

	existing, err := s.userRepo.FindByEmailOrUsername(ctx, email, params.Username)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}
	if existing != nil {
		return nil, errors.ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		DOB:          params.DOB,
		Gender:       params.Gender,
		Phone:        params.Phone,
		Email:        email,
		Username:     params.Username,
		PasswordHash: string(hashed),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and opens a session. Unknown username and wrong
// password collapse into the same error; a store failure is not a credential
// problem and surfaces as an internal error instead.
func (s *authService) Login(ctx context.Context, username, password string) (string, model.UserSnapshot, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", model.UserSnapshot{}, errors.ErrInvalidCredentials
		}
		return "", model.UserSnapshot{}, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", model.UserSnapshot{}, errors.ErrInvalidCredentials
	}

	snapshot := user.Snapshot()
	token, err := s.registry.Create(ctx, snapshot)
	if err != nil {
		return "", model.UserSnapshot{}, fmt.Errorf("create session: %w", err)
	}
	return token, snapshot, nil
}

// Logout revokes the session. Unknown tokens are not an error, so calling
// logout twice, or with a token that was never issued, still succeeds.
func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.registry.Revoke(ctx, token)
}
