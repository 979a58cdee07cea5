package booking

import (
	"context"
	"fmt"

	"github.com/fieldmart/fieldmart-client/internal/api"
	"github.com/fieldmart/fieldmart-client/internal/pkg/validator"
)

// Service wraps the /booking endpoints.
type Service struct {
	client *api.Client
}

// NewService creates a new booking service.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// ForSubFieldDay fetches the bookings of one sub-field on one day.
func (s *Service) ForSubFieldDay(ctx context.Context, subFieldID, day string) ([]Booking, error) {
	var bookings []Booking
	if err := s.client.Get(ctx, "/booking/"+subFieldID+"/"+day, &bookings); err != nil {
		return nil, fmt.Errorf("failed to fetch bookings for sub-field %s on %s: %w", subFieldID, day, err)
	}
	return bookings, nil
}

// Create submits a reservation for one sub-field.
func (s *Service) Create(ctx context.Context, subFieldID string, req CreateRequest) (*Booking, error) {
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, fieldErrs)
	}

	var created Booking
	if err := s.client.Post(ctx, "/booking/"+subFieldID, req, &created); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	return &created, nil
}

// History fetches a user's past and upcoming bookings.
func (s *Service) History(ctx context.Context, userID string) ([]Booking, error) {
	var bookings []Booking
	if err := s.client.Get(ctx, "/booking/history-booking/"+userID, &bookings); err != nil {
		return nil, fmt.Errorf("failed to fetch booking history: %w", err)
	}
	return bookings, nil
}
