package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodnest/foodnest/pkg/auth"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := auth.IssueAccessToken("buyer@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", claims.Email)
	assert.Equal(t, "buyer@example.com", claims.Subject)
	assert.Equal(t, auth.KindAccess, claims.Kind)
}

func TestRefreshTokenCarriesKind(t *testing.T) {
	token, err := auth.IssueRefreshToken("buyer@example.com")
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, auth.KindRefresh, claims.Kind)
}

func TestTamperedTokenRejected(t *testing.T) {
	token, err := auth.IssueAccessToken("buyer@example.com")
	require.NoError(t, err)

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	parts[2] = string(sig)

	_, err = auth.ValidateToken(strings.Join(parts, "."))
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, err := auth.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("hunter2hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", hash)

	assert.True(t, auth.CheckPassword(hash, "hunter2hunter2"))
	assert.False(t, auth.CheckPassword(hash, "wrong-password"))
}
