package errors

import (
	"errors"
	"net/http"
)

// DomainError is an error whose message is safe to surface to the client as-is.
type DomainError struct {
	Status  int
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Validation builds a 400 error for malformed or missing input.
func Validation(message string) *DomainError {
	return &DomainError{Status: http.StatusBadRequest, Message: message}
}

// Conflict builds a 400 error for uniqueness violations.
func Conflict(message string) *DomainError {
	return &DomainError{Status: http.StatusBadRequest, Message: message}
}

// Unauthenticated builds a 401 error.
func Unauthenticated(message string) *DomainError {
	return &DomainError{Status: http.StatusUnauthorized, Message: message}
}

// NotFound builds a 404 error. Missing id and foreign owner are deliberately
// indistinguishable so callers cannot probe other users' entities.
func NotFound(message string) *DomainError {
	return &DomainError{Status: http.StatusNotFound, Message: message}
}

var (
	// ErrUserExists is returned when registration hits a taken email or username.
	ErrUserExists = Conflict("User with this email or username already exists")
	// ErrInvalidCredentials is returned on login failure. The message is uniform
	// for unknown-user and wrong-password to avoid account enumeration.
	ErrInvalidCredentials = Unauthenticated("Invalid credentials")
)

// AsDomain unwraps err into a DomainError if it is one.
func AsDomain(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}
