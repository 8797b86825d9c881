package userdomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleForUsername(t *testing.T) {
	const reserved = "Никита"

	tests := []struct {
		username string
		want     Role
	}{
		{"admin", RoleAdmin},
		{"superADMIN42", RoleAdmin},
		{"Admiral", RolePlayer},
		{"player1", RolePlayer},
		{reserved, RoleZeroScore},
		{"никита", RolePlayer},
		{"Никита2", RolePlayer},
	}

	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			assert.Equal(t, tt.want, RoleForUsername(tt.username, reserved))
		})
	}
}

func TestIsAdminUsername(t *testing.T) {
	assert.True(t, IsAdminUsername("NotAdmin"))
	assert.True(t, IsAdminUsername("admin"))
	assert.False(t, IsAdminUsername("Никита"))
	assert.False(t, IsAdminUsername("Admiral"))
}

func TestRoleIsValid(t *testing.T) {
	assert.True(t, RolePlayer.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleZeroScore.IsValid())
	assert.False(t, Role("USER").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestNormalizeUsername(t *testing.T) {
	got, err := NormalizeUsername("  player1 ")
	assert.NoError(t, err)
	assert.Equal(t, "player1", got)

	_, err = NormalizeUsername("ab")
	assert.ErrorIs(t, err, ErrInvalidUsername)

	got, err = NormalizeUsername("Ник")
	assert.NoError(t, err)
	assert.Equal(t, "Ник", got)
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("password123"))
	assert.ErrorIs(t, ValidatePassword("12345"), ErrInvalidPassword)
}
