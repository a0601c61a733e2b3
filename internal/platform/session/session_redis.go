// Package session provides the Redis-backed session store.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mono_backend/internal/feature/auth/domain/entity"
	"mono_backend/internal/feature/auth/usecase"
)

// flashTTL bounds how long an unconsumed flash message may linger,
// e.g. when a redirect target is never loaded.
const flashTTL = 24 * time.Hour

// SessionRedis implements usecase.SessionRepository using Redis.
// Session expiry is enforced by Redis TTL; no sweeper is needed.
type SessionRedis struct {
	client *redis.Client
	prefix string
}

// NewSessionRedis creates a new SessionRedis instance.
func NewSessionRedis(client *redis.Client, prefix string) *SessionRedis {
	return &SessionRedis{
		client: client,
		prefix: prefix,
	}
}

// sessionKey returns the Redis key for a session.
func (r *SessionRedis) sessionKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

// flashKey returns the Redis key for a token's flash message list.
func (r *SessionRedis) flashKey(id string) string {
	return fmt.Sprintf("%s:flash:%s", r.prefix, id)
}

// Create persists a new session to Redis with a TTL matching its expiry.
func (r *SessionRedis) Create(ctx context.Context, session *entity.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	return r.client.Set(ctx, r.sessionKey(session.ID), data, ttl).Err()
}

// FindByID retrieves a session by its token.
// Unknown or TTL-expired tokens yield usecase.ErrSessionNotFound.
func (r *SessionRedis) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	data, err := r.client.Get(ctx, r.sessionKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// Delete removes a session. Deleting an unknown token is not an error.
func (r *SessionRedis) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, r.sessionKey(id)).Err()
}

// AddFlash appends a one-shot message to the token's flash list.
func (r *SessionRedis) AddFlash(ctx context.Context, sessionID, message string) error {
	key := r.flashKey(sessionID)
	if err := r.client.RPush(ctx, key, message).Err(); err != nil {
		return err
	}
	return r.client.Expire(ctx, key, flashTTL).Err()
}

// ConsumeFlashes returns and removes all pending flash messages for the token.
func (r *SessionRedis) ConsumeFlashes(ctx context.Context, sessionID string) ([]string, error) {
	key := r.flashKey(sessionID)
	messages, err := r.client.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, nil
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return nil, err
	}
	return messages, nil
}
