package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/serviceops/maintdesk/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func createTestUser(t *testing.T, st *SQLiteStore, email string) *models.User {
	t.Helper()
	user, err := st.CreateUser(context.Background(), email, "hash", "Test User", "Service")
	require.NoError(t, err)
	return user
}

func createTestTask(t *testing.T, st *SQLiteStore, input TaskInput) *models.Task {
	t.Helper()
	if input.Title == "" {
		input.Title = "Test Task"
	}
	if input.DueDate == "" {
		input.DueDate = time.Now().UTC().Format(models.DateLayout)
	}
	task, err := st.CreateTask(context.Background(), input)
	require.NoError(t, err)
	return task
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
