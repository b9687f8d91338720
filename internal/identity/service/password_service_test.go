package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPasswordService(t *testing.T) {
	service := NewPasswordService()
	assert.NotNil(t, service)
	assert.IsType(t, &passwordService{}, service)
}

func TestPasswordService_HashPassword(t *testing.T) {
	service := NewPasswordService()

	t.Run("Success_HashPassword", func(t *testing.T) {
		hashed, err := service.HashPassword("CorrectHorse1")

		require.NoError(t, err)
		assert.NotEmpty(t, hashed)
		assert.NotEqual(t, "CorrectHorse1", hashed)
	})

	t.Run("Success_UniqueSalts", func(t *testing.T) {
		hashed1, err := service.HashPassword("CorrectHorse1")
		require.NoError(t, err)

		hashed2, err := service.HashPassword("CorrectHorse1")
		require.NoError(t, err)

		// Same input must not produce the same hash
		assert.NotEqual(t, hashed1, hashed2)
	})
}

func TestPasswordService_ComparePassword(t *testing.T) {
	service := NewPasswordService()
	hashed, err := service.HashPassword("CorrectHorse1")
	require.NoError(t, err)

	t.Run("Success_MatchingPassword", func(t *testing.T) {
		assert.True(t, service.ComparePassword("CorrectHorse1", hashed))
	})

	t.Run("Error_WrongPassword", func(t *testing.T) {
		assert.False(t, service.ComparePassword("WrongHorse1", hashed))
	})

	t.Run("Error_MalformedHash", func(t *testing.T) {
		assert.False(t, service.ComparePassword("CorrectHorse1", "not-a-hash"))
	})
}
