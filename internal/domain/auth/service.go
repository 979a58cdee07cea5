package auth

import (
	"context"
	"fmt"

	"github.com/fieldmart/fieldmart-client/internal/api"
	"github.com/fieldmart/fieldmart-client/internal/pkg/logger"
	"github.com/fieldmart/fieldmart-client/internal/pkg/validator"
)

// Service wraps the remote auth endpoints and keeps the bearer token in the
// injected store after a successful login.
type Service struct {
	client *api.Client
	tokens api.TokenStore
}

// NewService creates a new auth service.
func NewService(client *api.Client, tokens api.TokenStore) *Service {
	return &Service{client: client, tokens: tokens}
}

// Login authenticates and stores the returned token.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, fieldErrs)
	}

	var session Session
	if err := s.client.Post(ctx, "/login", req, &session); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	s.tokens.SetToken(session.Token)
	logger.FromContext(ctx).Info().Str("user_id", session.User.ID).Msg("logged in")
	return &session, nil
}

// Register creates a new account. The API does not log the account in, so no
// token is stored.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, fieldErrs)
	}

	var user User
	if err := s.client.Post(ctx, "/register", req, &user); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	return &user, nil
}

// Profile fetches the authenticated account.
func (s *Service) Profile(ctx context.Context) (*User, error) {
	if s.tokens.Token() == "" {
		return nil, ErrNotAuthenticated
	}

	var user User
	if err := s.client.Get(ctx, "/profile", &user); err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &user, nil
}

// UpdateProfile edits the authenticated account.
func (s *Service) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*User, error) {
	if s.tokens.Token() == "" {
		return nil, ErrNotAuthenticated
	}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, fieldErrs)
	}

	var user User
	if err := s.client.Put(ctx, "/profile", req, &user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &user, nil
}

// Logout drops the stored token. Purely client-side.
func (s *Service) Logout() {
	s.tokens.Clear()
}
