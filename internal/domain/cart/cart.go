package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Item is one cart line: one product+version grouping with an aggregated
// quantity.
type Item struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Version   string  `json:"version"`
	Currency  string  `json:"currency"`
}

// AddInput describes a product being added to the cart.
type AddInput struct {
	ProductID string
	Name      string
	Price     float64
	Quantity  int
	Version   string
	Currency  string
}

// Cart holds the items a user intends to purchase, independent of any single
// page's lifetime. Totals are recomputed from scratch on every mutation, so
// they cannot drift from the line items. Every mutation writes through the
// store.
type Cart struct {
	mu    sync.Mutex
	store Store
	items []Item
	total float64
	count int
}

// New creates a cart backed by the given store. A previously stored cart
// replaces the empty initial state before any persist-write, so a just-loaded
// cart is never clobbered by the empty default.
func New(ctx context.Context, store Store) (*Cart, error) {
	c := &Cart{store: store}

	state, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load stored cart: %w", err)
	}
	if state != nil {
		c.items = state.Items
		c.recompute()
	}
	return c, nil
}

// Add puts a product in the cart. Adding a product+version pair that is
// already present increments that line's quantity instead of duplicating it.
func (c *Cart) Add(ctx context.Context, in AddInput) error {
	if in.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	merged := false
	for i := range c.items {
		if c.items[i].ProductID == in.ProductID && c.items[i].Version == in.Version {
			c.items[i].Quantity += in.Quantity
			merged = true
			break
		}
	}
	if !merged {
		c.items = append(c.items, Item{
			ID:        uuid.NewString(),
			ProductID: in.ProductID,
			Name:      in.Name,
			Price:     in.Price,
			Quantity:  in.Quantity,
			Version:   in.Version,
			Currency:  in.Currency,
		})
	}

	c.recompute()
	return c.persist(ctx)
}

// Remove deletes a line by id. Removing an unknown id is a no-op.
func (c *Cart) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLocked(id)
	c.recompute()
	return c.persist(ctx)
}

// UpdateQuantity replaces a line's quantity. A quantity of zero or less is
// equivalent to removal.
func (c *Cart) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.removeLocked(id)
	} else {
		for i := range c.items {
			if c.items[i].ID == id {
				c.items[i].Quantity = quantity
				break
			}
		}
	}

	c.recompute()
	return c.persist(ctx)
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.recompute()
	return c.persist(ctx)
}

// Contains reports whether a product+version pair is already in the cart.
// Used to disable duplicate "add to cart" actions.
func (c *Cart) Contains(productID, version string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range c.items {
		if item.ProductID == productID && item.Version == version {
			return true
		}
	}
	return false
}

// Items returns a copy of the cart lines.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]Item, len(c.items))
	copy(items, c.items)
	return items
}

// Total returns the sum of price x quantity over all lines.
func (c *Cart) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// ItemCount returns the sum of quantities over all lines.
func (c *Cart) ItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

func (c *Cart) removeLocked(id string) {
	for i := range c.items {
		if c.items[i].ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

func (c *Cart) recompute() {
	total := 0.0
	count := 0
	for _, item := range c.items {
		total += item.Price * float64(item.Quantity)
		count += item.Quantity
	}
	c.total = total
	c.count = count
}

func (c *Cart) persist(ctx context.Context) error {
	items := make([]Item, len(c.items))
	copy(items, c.items)

	if err := c.store.Save(ctx, State{Items: items}); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}
