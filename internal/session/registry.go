package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"movievault/internal/model"
)

const tokenBytes = 32

// Session is the value held for an issued bearer token.
type Session struct {
	User      model.UserSnapshot `json:"user"`
	CreatedAt time.Time          `json:"createdAt"`
}

// Registry owns the token -> session mapping. Sessions are created on login
// and revoked on logout; Resolve is a pure lookup. Nothing outside the
// registry mutates session state.
type Registry interface {
	// Create issues a fresh token for the given user snapshot.
	Create(ctx context.Context, user model.UserSnapshot) (string, error)
	// Resolve returns the session for a token, or nil if the token is
	// unknown or expired. An absent token is not an error.
	Resolve(ctx context.Context, token string) (*Session, error)
	// Revoke removes a session. Revoking an unknown token is a no-op.
	Revoke(ctx context.Context, token string) error
}

// NewToken returns a 256-bit random token, hex encoded.
func NewToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
