package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/serviceops/maintdesk/internal/models"
)

// CreateUser inserts a new user and returns the stored row.
func (s *SQLiteStore) CreateUser(ctx context.Context, email, passwordHash, name, department string) (*models.User, error) {
	if department == "" {
		department = "Service"
	}
	now := time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (email, password_hash, name, department, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		email, passwordHash, name, department, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading user id: %w", err)
	}
	return s.GetUserByID(ctx, id)
}

// GetUserByID retrieves a user by primary key.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, "SELECT * FROM users WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %d: %w", id, err)
	}
	return &u, nil
}

// GetUserByEmail retrieves a user by email address.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, "SELECT * FROM users WHERE email = ?", email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	return &u, nil
}

// UpdateUserProfile applies the non-nil profile fields and returns the
// updated row.
func (s *SQLiteStore) UpdateUserProfile(ctx context.Context, id int64, input UserUpdateInput) (*models.User, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET
			name = COALESCE(?, name),
			email = COALESCE(?, email),
			department = COALESCE(?, department),
			phone = COALESCE(?, phone),
			updated_at = ?
		WHERE id = ?`,
		input.Name, input.Email, input.Department, input.Phone,
		time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("updating user %d: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, ErrNotFound
	}
	return s.GetUserByID(ctx, id)
}

// UpdateUserPassword replaces the stored password hash.
func (s *SQLiteStore) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?",
		passwordHash, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("updating password for user %d: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// TouchLastLogin records a successful login.
func (s *SQLiteStore) TouchLastLogin(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE users SET last_login = ? WHERE id = ?",
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("updating last login for user %d: %w", id, err)
	}
	return nil
}
