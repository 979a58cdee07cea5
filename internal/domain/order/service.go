package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/fieldmart/fieldmart-client/internal/api"
	"github.com/fieldmart/fieldmart-client/internal/domain/cart"
	"github.com/fieldmart/fieldmart-client/internal/pkg/validator"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrEmptyCart  = errors.New("cart is empty")
)

// CreateRequest represents the checkout payload.
type CreateRequest struct {
	UserID   string   `json:"userId" validate:"required"`
	Items    []Item   `json:"items" validate:"required,min=1"`
	Shipping Shipping `json:"shipping"`
}

// UpdateStatusRequest represents an admin status change.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed shipped delivered cancelled"`
}

// Service wraps the /orders endpoints.
type Service struct {
	client *api.Client
}

// NewService creates a new order service.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// Checkout places an order from the current cart lines. Clearing the cart is
// left to the caller so a failed submission keeps the lines intact.
func (s *Service) Checkout(ctx context.Context, userID string, lines []cart.Item, shipping Shipping) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]Item, len(lines))
	for i, line := range lines {
		items[i] = Item{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Version:   line.Version,
		}
	}

	req := CreateRequest{UserID: userID, Items: items, Shipping: shipping}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, fieldErrs)
	}

	var created Order
	if err := s.client.Post(ctx, "/orders", req, &created); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	return &created, nil
}

// History fetches a user's orders.
func (s *Service) History(ctx context.Context, userID string) ([]Order, error) {
	var orders []Order
	if err := s.client.Get(ctx, "/orders?userId="+userID, &orders); err != nil {
		return nil, fmt.Errorf("failed to fetch order history: %w", err)
	}
	return orders, nil
}

// List fetches all orders. Admin only.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := s.client.Get(ctx, "/orders", &orders); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus changes an order's status. Admin only; cancellation is a
// status update like any other.
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) (*Order, error) {
	req := UpdateStatusRequest{Status: status}
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, fieldErrs)
	}

	var updated Order
	if err := s.client.Put(ctx, "/orders/"+orderID+"/status", req, &updated); err != nil {
		return nil, fmt.Errorf("failed to update order %s status: %w", orderID, err)
	}
	return &updated, nil
}
