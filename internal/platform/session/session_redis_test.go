package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mono_backend/internal/feature/auth/domain/entity"
	"mono_backend/internal/feature/auth/usecase"
)

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client, mr
}

// createTestSession creates a session entity for testing.
func createTestSession(id string, userID uint, expiresIn time.Duration) *entity.Session {
	now := time.Now()
	return &entity.Session{
		ID:        id,
		UserID:    userID,
		UserAgent: "test-agent",
		IPAddress: "127.0.0.1",
		CreatedAt: now,
		ExpiresAt: now.Add(expiresIn),
	}
}

func TestNewSessionRedis(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.client, "client is nil")
	assert.Equal(t, "session", repo.prefix)
}

func TestSessionRedis_Create(t *testing.T) {
	tests := []struct {
		name    string
		session *entity.Session
		wantErr bool
	}{
		{
			name:    "success: create session",
			session: createTestSession("session-001", 1, 7*24*time.Hour),
			wantErr: false,
		},
		{
			name:    "failure: expired session",
			session: createTestSession("expired-session", 1, -1*time.Hour),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, mr := setupTestRedis(t)
			repo := NewSessionRedis(client, "session")

			err := repo.Create(context.Background(), tt.session)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)

				// Verify session exists in Redis with a TTL
				data, err := client.Get(context.Background(), repo.sessionKey(tt.session.ID)).Result()
				assert.NoError(t, err)
				assert.NotEmpty(t, data)
				assert.Greater(t, mr.TTL(repo.sessionKey(tt.session.ID)), time.Duration(0))
			}
		})
	}
}

func TestSessionRedis_FindByID(t *testing.T) {
	t.Run("success: find session", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		session := createTestSession("find-token", 5, 7*24*time.Hour)
		require.NoError(t, repo.Create(context.Background(), session))

		found, err := repo.FindByID(context.Background(), "find-token")

		require.NoError(t, err)
		assert.Equal(t, uint(5), found.UserID)
		assert.Equal(t, "test-agent", found.UserAgent)
	})

	t.Run("failure: unknown token", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		found, err := repo.FindByID(context.Background(), "unknown")

		assert.Nil(t, found)
		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	})

	t.Run("failure: TTL-expired token", func(t *testing.T) {
		client, mr := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		session := createTestSession("short-token", 5, time.Minute)
		require.NoError(t, repo.Create(context.Background(), session))

		// Let the Redis TTL elapse
		mr.FastForward(2 * time.Minute)

		found, err := repo.FindByID(context.Background(), "short-token")

		assert.Nil(t, found)
		assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
	})
}

func TestSessionRedis_Delete(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	session := createTestSession("del-token", 1, time.Hour)
	require.NoError(t, repo.Create(context.Background(), session))

	require.NoError(t, repo.Delete(context.Background(), "del-token"))

	_, err := repo.FindByID(context.Background(), "del-token")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)

	// Deleting an unknown token is not an error
	assert.NoError(t, repo.Delete(context.Background(), "del-token"))
}

func TestSessionRedis_Flashes(t *testing.T) {
	t.Run("messages are returned in order and consumed once", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		require.NoError(t, repo.AddFlash(context.Background(), "token-f", "first"))
		require.NoError(t, repo.AddFlash(context.Background(), "token-f", "second"))

		messages, err := repo.ConsumeFlashes(context.Background(), "token-f")

		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, messages)

		messages, err = repo.ConsumeFlashes(context.Background(), "token-f")
		require.NoError(t, err)
		assert.Empty(t, messages)
	})

	t.Run("flash list carries a TTL", func(t *testing.T) {
		client, mr := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		require.NoError(t, repo.AddFlash(context.Background(), "token-ttl", "msg"))

		assert.Greater(t, mr.TTL(repo.flashKey("token-ttl")), time.Duration(0))
	})

	t.Run("no messages yields nil without error", func(t *testing.T) {
		client, _ := setupTestRedis(t)
		repo := NewSessionRedis(client, "session")

		messages, err := repo.ConsumeFlashes(context.Background(), "token-empty")

		assert.NoError(t, err)
		assert.Nil(t, messages)
	})
}
