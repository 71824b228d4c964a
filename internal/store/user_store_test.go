package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetUser(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	user := createTestUser(t, st, "tech@example.com")
	assert.NotZero(t, user.ID)
	assert.Equal(t, "tech@example.com", user.Email)
	assert.Equal(t, "Service", user.Department)

	byEmail, err := st.GetUserByEmail(ctx, "tech@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = st.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = st.GetUserByID(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	st := newTestStore(t)

	createTestUser(t, st, "dup@example.com")
	_, err := st.CreateUser(context.Background(), "dup@example.com", "hash", "Other", "Service")
	assert.Error(t, err)
}

func TestUpdateUserProfilePartial(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, st, "tech@example.com")

	updated, err := st.UpdateUserProfile(ctx, user.ID, UserUpdateInput{
		Name:  strPtr("New Name"),
		Phone: strPtr("555-0100"),
	})
	require.NoError(t, err)

	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "555-0100", updated.Phone)
	// Untouched fields keep their values.
	assert.Equal(t, "tech@example.com", updated.Email)
	assert.Equal(t, "Service", updated.Department)

	_, err = st.UpdateUserProfile(ctx, 9999, UserUpdateInput{Name: strPtr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTouchLastLogin(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	user := createTestUser(t, st, "tech@example.com")
	require.Nil(t, user.LastLogin)

	require.NoError(t, st.TouchLastLogin(ctx, user.ID))

	reloaded, err := st.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, reloaded.LastLogin)
}
