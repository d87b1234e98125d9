package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"movievault/internal/model"
)

const sessionKeyPrefix = "session:"

// RedisRegistry stores sessions in Redis so they survive process restarts
// and are shared across instances. Unlike the read cache, Redis failures
// here are surfaced: a session silently dropped on write would lock the
// user out, and a swallowed read error would reject a valid token.
type RedisRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

var _ Registry = (*RedisRegistry)(nil)

// NewRedisRegistry creates a Redis-backed registry. ttl of zero stores
// sessions without expiry.
func NewRedisRegistry(client *redis.Client, ttl time.Duration) *RedisRegistry {
	return &RedisRegistry{client: client, ttl: ttl}
}

// Create issues a token and stores the session as a JSON value.
func (r *RedisRegistry) Create(ctx context.Context, user model.UserSnapshot) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(Session{User: user, CreatedAt: time.Now()})
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+token, payload, r.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Resolve looks up a token.
func (r *RedisRegistry) Resolve(ctx context.Context, token string) (*Session, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &sess, nil
}

// Revoke removes a session. Deleting an absent key is a no-op in Redis,
// which keeps revocation idempotent.
func (r *RedisRegistry) Revoke(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
