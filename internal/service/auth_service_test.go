package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serviceops/maintdesk/internal/store"
	"github.com/serviceops/maintdesk/pkg/auth"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	st, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	tm := auth.NewTokenManager("access", "refresh", 15*time.Minute, 24*time.Hour)
	return NewAuthService(st, tm)
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Email:      "tech@example.com",
		Password:   "Sup3rSecret",
		Name:       "Tech",
		Department: "Service",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "Sup3rSecret", user.PasswordHash)

	loggedIn, tokens, err := svc.Login(ctx, "tech@example.com", "Sup3rSecret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	profile, err := svc.Profile(ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, profile.LastLogin)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	bad := validRegistration()
	bad.Email = "not-an-email"
	_, err := svc.Register(ctx, bad)
	assert.ErrorIs(t, err, ErrValidation)

	bad = validRegistration()
	bad.Password = "weak"
	_, err = svc.Register(ctx, bad)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	// Same address in a different case still collides.
	dup := validRegistration()
	dup.Email = "TECH@example.com"
	_, err = svc.Register(ctx, dup)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "tech@example.com", "WrongPass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "Sup3rSecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, user.ID, "WrongPass1", "N3wSecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "Sup3rSecret", "N3wSecretPass"))

	_, _, err = svc.Login(ctx, "tech@example.com", "Sup3rSecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = svc.Login(ctx, "tech@example.com", "N3wSecretPass")
	assert.NoError(t, err)
}

func TestRefreshToken(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)
	_, tokens, err := svc.Login(ctx, "tech@example.com", "Sup3rSecret")
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
