// pkg/auth/auth_test.go
package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenManager() *TokenManager {
	return NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
}

func TestTokenRoundTrip(t *testing.T) {
	tm := newTestTokenManager()

	access, refresh, expiresIn, err := tm.GenerateTokenPair(42, "tech@example.com", "Tech")
	require.NoError(t, err)
	assert.Equal(t, int64(900), expiresIn)

	claims, err := tm.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "tech@example.com", claims.Email)
	assert.Equal(t, "access", claims.Type)

	refreshClaims, err := tm.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "refresh", refreshClaims.Type)
}

func TestTokenTypeMismatch(t *testing.T) {
	tm := newTestTokenManager()

	access, refresh, _, err := tm.GenerateTokenPair(1, "a@example.com", "A")
	require.NoError(t, err)

	// A refresh token is signed with a different secret, so it fails
	// access validation outright.
	_, err = tm.ValidateAccessToken(refresh)
	assert.Error(t, err)
	_, err = tm.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestRefreshAccessToken(t *testing.T) {
	tm := newTestTokenManager()

	_, refresh, _, err := tm.GenerateTokenPair(7, "b@example.com", "B")
	require.NoError(t, err)

	access, expiresIn, err := tm.RefreshAccessToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, int64(900), expiresIn)

	claims, err := tm.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)

	_, _, err = tm.RefreshAccessToken("garbage")
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := ExtractTokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	for _, header := range []string{"", "abc", "Basic abc", "Bearer"} {
		_, err := ExtractTokenFromHeader(header)
		assert.Error(t, err, "header %q", header)
	}
}

func TestPasswordHashAndCompare(t *testing.T) {
	pm := NewPasswordManager()

	hash, err := pm.HashPassword("Sup3rSecret")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret", hash)

	assert.NoError(t, pm.ComparePassword(hash, "Sup3rSecret"))
	assert.Error(t, pm.ComparePassword(hash, "wrong"))
}

func TestValidatePassword(t *testing.T) {
	pm := NewPasswordManager()

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"valid", "Sup3rSecret", true},
		{"too short", "Ab1", false},
		{"no uppercase", "sup3rsecret", false},
		{"no lowercase", "SUP3RSECRET", false},
		{"no number", "SuperSecret", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pm.ValidatePassword(tt.password)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrWeakPassword)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("tech@example.com"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("missing@domain"))
}
