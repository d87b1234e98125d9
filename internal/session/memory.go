package session

import (
	"context"
	"sync"
	"time"

	"movievault/internal/model"
)

// MemoryRegistry keeps sessions in a process-wide map. Contents are lost on
// restart, which invalidates every outstanding token. With ttl == 0 sessions
// never expire and the map grows for the process lifetime.
type MemoryRegistry struct {
	mu       sync.RWMutex
	sessions map[string]Session
	ttl      time.Duration
}

var _ Registry = (*MemoryRegistry)(nil)

// NewMemoryRegistry creates an empty in-process registry. ttl of zero
// disables expiry.
func NewMemoryRegistry(ttl time.Duration) *MemoryRegistry {
	return &MemoryRegistry{
		sessions: make(map[string]Session),
		ttl:      ttl,
	}
}

// Create issues a token and stores the session.
func (r *MemoryRegistry) Create(ctx context.Context, user model.UserSnapshot) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", err
	}
	r.mu.Lock()
	r.sessions[token] = Session{User: user, CreatedAt: time.Now()}
	r.mu.Unlock()
	return token, nil
}

// Resolve looks up a token. Expired sessions are dropped lazily.
func (r *MemoryRegistry) Resolve(ctx context.Context, token string) (*Session, error) {
	r.mu.RLock()
	sess, ok := r.sessions[token]
	r.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if r.ttl > 0 && time.Since(sess.CreatedAt) > r.ttl {
		r.mu.Lock()
		delete(r.sessions, token)
		r.mu.Unlock()
		return nil, nil
	}
	return &sess, nil
}

// Revoke removes a session. Idempotent.
func (r *MemoryRegistry) Revoke(ctx context.Context, token string) error {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
	return nil
}

// Len reports the number of live sessions.
func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
