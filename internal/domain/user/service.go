package user

import (
	"context"
	"fmt"

	"github.com/fieldmart/fieldmart-client/internal/api"
)

// User represents an account row in the admin back-office.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

// Service wraps the admin /users endpoints.
type Service struct {
	client *api.Client
}

// NewService creates a new user service.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// List fetches all users.
func (s *Service) List(ctx context.Context) ([]User, error) {
	var users []User
	if err := s.client.Get(ctx, "/users", &users); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateRole changes a user's role.
func (s *Service) UpdateRole(ctx context.Context, id, role string) (*User, error) {
	var updated User
	payload := map[string]string{"role": role}
	if err := s.client.Put(ctx, "/users/"+id, payload, &updated); err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", id, err)
	}
	return &updated, nil
}

// Delete removes a user account.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, "/users/"+id, nil); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	return nil
}
