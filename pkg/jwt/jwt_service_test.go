package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FreshFocus-Backend/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	service := NewJWTService()

	token := service.GenerateTokenUser("some-user-id", "user")
	require.NotEmpty(t, token)

	userID, role, err := service.GetUserIDByToken(token)
	require.NoError(t, err)
	assert.Equal(t, "some-user-id", userID)
	assert.Equal(t, "user", role)
}

func TestInvalidToken(t *testing.T) {
	service := NewJWTService()

	_, _, err := service.GetUserIDByToken("not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
