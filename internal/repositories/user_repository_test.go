package repositories_test

import (
	"testing"

	"shopapi/internal/models"
	"shopapi/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGORMUserRepository(t *testing.T) {
	repo := repositories.NewGORMUserRepository(newTestDB(t))

	user := &models.User{Username: "alice", Email: "alice@example.com", Password: "hash"}
	require.NoError(t, repo.Create(user))
	assert.Len(t, user.ID, 36)

	byName, err := repo.GetByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := repo.GetByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	_, err = repo.GetByUsername("bob")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)

	// Usernames are unique
	err = repo.Create(&models.User{Username: "alice", Email: "other@example.com", Password: "hash"})
	assert.Error(t, err)
}
