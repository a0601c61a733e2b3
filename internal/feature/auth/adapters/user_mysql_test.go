package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"mono_backend/internal/feature/auth/domain/entity"
	"mono_backend/internal/feature/auth/usecase"
	itementity "mono_backend/internal/feature/items/domain/entity"
)

// setupTestDB prepares an in-memory SQLite database for testing.
// TranslateError normalizes unique-constraint violations to gorm.ErrDuplicatedKey.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.User{}, &itementity.Item{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func TestNewUserMySQL(t *testing.T) {
	db := setupTestDB(t)

	repo := NewUserMySQL(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestUserMySQL_Create(t *testing.T) {
	t.Run("successful user creation", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		user := &entity.User{
			Name:     "alice",
			Password: "hashed_password",
		}

		err := repo.Create(context.Background(), user)

		assert.NoError(t, err, "failed to create user")
		assert.NotZero(t, user.ID, "ID is not set")
		assert.False(t, user.CreatedAt.IsZero(), "CreatedAt is not set")
	})

	t.Run("duplicate name leaves exactly one row", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		err := repo.Create(context.Background(), &entity.User{Name: "alice", Password: "pass1"})
		require.NoError(t, err, "failed to create first user")

		err = repo.Create(context.Background(), &entity.User{Name: "alice", Password: "pass2"})
		assert.ErrorIs(t, err, usecase.ErrNameAlreadyExists, "should return ErrNameAlreadyExists")

		var count int64
		require.NoError(t, db.Model(&entity.User{}).Where("name = ?", "alice").Count(&count).Error)
		assert.Equal(t, int64(1), count, "exactly one row should remain")
	})
}

func TestUserMySQL_FindByName(t *testing.T) {
	t.Run("find user by name successfully", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		expected := &entity.User{Name: "alice", Password: "hashed_password"}
		err := repo.Create(context.Background(), expected)
		require.NoError(t, err, "failed to create test data")

		found, err := repo.FindByName(context.Background(), "alice")

		assert.NoError(t, err, "failed to find user")
		assert.NotNil(t, found, "user is nil")
		assert.Equal(t, expected.ID, found.ID, "ID does not match")
		assert.Equal(t, expected.Password, found.Password, "password does not match")
	})

	t.Run("name not found error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		found, err := repo.FindByName(context.Background(), "nobody")

		assert.Nil(t, found, "user should be nil")
		assert.ErrorIs(t, err, usecase.ErrUserNotFound, "should return ErrUserNotFound")
	})
}

func TestUserMySQL_FindByID(t *testing.T) {
	t.Run("find user by ID successfully", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		expected := &entity.User{Name: "alice", Password: "hashed_password"}
		err := repo.Create(context.Background(), expected)
		require.NoError(t, err, "failed to create test data")

		found, err := repo.FindByID(context.Background(), expected.ID)

		assert.NoError(t, err, "failed to find user")
		assert.NotNil(t, found, "user is nil")
		assert.Equal(t, expected.Name, found.Name, "name does not match")
	})

	t.Run("ID not found error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		found, err := repo.FindByID(context.Background(), 999)

		assert.Nil(t, found, "user should be nil")
		assert.ErrorIs(t, err, usecase.ErrUserNotFound, "should return ErrUserNotFound")
	})
}

func TestUserMySQL_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserMySQL(db)

	names := []string{"alice", "bob", "carol"}
	for _, name := range names {
		err := repo.Create(context.Background(), &entity.User{Name: name, Password: "pass"})
		require.NoError(t, err, "failed to create test data")
	}

	users, err := repo.List(context.Background())

	require.NoError(t, err, "failed to list users")
	require.Len(t, users, 3)
	// Insertion order
	for i, name := range names {
		assert.Equal(t, name, users[i].Name, "unexpected order at index %d", i)
	}
}

func TestUserMySQL_Update(t *testing.T) {
	t.Run("successful update", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		user := &entity.User{Name: "alice", Password: "old_hash"}
		require.NoError(t, repo.Create(context.Background(), user))

		user.Name = "alice2"
		user.Password = "new_hash"
		err := repo.Update(context.Background(), user)

		assert.NoError(t, err, "failed to update user")

		found, err := repo.FindByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice2", found.Name)
		assert.Equal(t, "new_hash", found.Password)
	})

	t.Run("renaming onto an existing name fails", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserMySQL(db)

		require.NoError(t, repo.Create(context.Background(), &entity.User{Name: "alice", Password: "p"}))
		bob := &entity.User{Name: "bob", Password: "p"}
		require.NoError(t, repo.Create(context.Background(), bob))

		bob.Name = "alice"
		err := repo.Update(context.Background(), bob)

		assert.ErrorIs(t, err, usecase.ErrNameAlreadyExists, "should return ErrNameAlreadyExists")
	})
}
