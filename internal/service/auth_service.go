// internal/service/auth_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/serviceops/maintdesk/internal/models"
	"github.com/serviceops/maintdesk/internal/store"
	"github.com/serviceops/maintdesk/pkg/auth"
)

// AuthService owns registration, login, and profile management.
type AuthService struct {
	store           store.Store
	tokenManager    *auth.TokenManager
	passwordManager *auth.PasswordManager
}

// NewAuthService creates a new authentication service.
func NewAuthService(st store.Store, tokenManager *auth.TokenManager) *AuthService {
	return &AuthService{
		store:           st,
		tokenManager:    tokenManager,
		passwordManager: auth.NewPasswordManager(),
	}
}

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

// TokenPair is the credential set returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Register creates a new user account.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if err := auth.ValidateEmail(input.Email); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err)
	}
	if len(strings.TrimSpace(input.Name)) < 2 {
		return nil, fmt.Errorf("%w: name must be at least 2 characters", ErrValidation)
	}

	if _, err := s.store.GetUserByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("checking email: %w", err)
	}

	hash, err := s.passwordManager.HashPassword(input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrWeakPassword) {
			return nil, fmt.Errorf("%w: %s", ErrValidation, err)
		}
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, input.Email, hash, input.Name, input.Department)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and returns a token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, fmt.Errorf("loading user: %w", err)
	}

	if err := s.passwordManager.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	access, refresh, expiresIn, err := s.tokenManager.GenerateTokenPair(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, nil, fmt.Errorf("generating tokens: %w", err)
	}

	if err := s.store.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, nil, fmt.Errorf("updating last login: %w", err)
	}

	return user, &TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresIn: expiresIn}, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	access, expiresIn, err := s.tokenManager.RefreshAccessToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, err)
	}
	return &TokenPair{AccessToken: access, ExpiresIn: expiresIn}, nil
}

// Profile returns the user's account.
func (s *AuthService) Profile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading user %d: %w", userID, err)
	}
	return user, nil
}

// UpdateProfile applies a partial profile update.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, input store.UserUpdateInput) (*models.User, error) {
	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if err := auth.ValidateEmail(email); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrValidation, err)
		}
		input.Email = &email
	}
	if input.Name != nil && len(strings.TrimSpace(*input.Name)) < 2 {
		return nil, fmt.Errorf("%w: name must be at least 2 characters", ErrValidation)
	}

	user, err := s.store.UpdateUserProfile(ctx, userID, input)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("updating user %d: %w", userID, err)
	}
	return user, nil
}

// ChangePassword verifies the current password and sets a new one.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	user, err := s.store.GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("loading user %d: %w", userID, err)
	}

	if err := s.passwordManager.ComparePassword(user.PasswordHash, current); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := s.passwordManager.HashPassword(next)
	if err != nil {
		if errors.Is(err, auth.ErrWeakPassword) {
			return fmt.Errorf("%w: %s", ErrValidation, err)
		}
		return fmt.Errorf("hashing password: %w", err)
	}

	if err := s.store.UpdateUserPassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	return nil
}
