package cart_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/fieldmart/fieldmart-client/internal/domain/cart"
)

func newTestCart(t *testing.T) *cart.Cart {
	t.Helper()
	store := cart.NewFileStore(filepath.Join(t.TempDir(), "cart.json"))
	c, err := cart.New(context.Background(), store)
	if err != nil {
		t.Fatalf("failed to create cart: %v", err)
	}
	return c
}

func addProductA(t *testing.T, c *cart.Cart, qty int) {
	t.Helper()
	err := c.Add(context.Background(), cart.AddInput{
		ProductID: "prod-a",
		Name:      "Product A",
		Price:     100000,
		Quantity:  qty,
		Version:   "physical",
		Currency:  "VND",
	})
	if err != nil {
		t.Fatalf("failed to add: %v", err)
	}
}

func TestAddComputesTotals(t *testing.T) {
	c := newTestCart(t)

	addProductA(t, c, 1)
	if c.Total() != 100000 {
		t.Fatalf("expected total 100000, got %v", c.Total())
	}
	if c.ItemCount() != 1 {
		t.Fatalf("expected item count 1, got %d", c.ItemCount())
	}
}

func TestAddSameProductMergesLines(t *testing.T) {
	c := newTestCart(t)

	addProductA(t, c, 1)
	addProductA(t, c, 2)

	items := c.Items()
	if len(items) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", items[0].Quantity)
	}
	if c.Total() != 300000 {
		t.Fatalf("expected total 300000, got %v", c.Total())
	}
	if c.ItemCount() != 3 {
		t.Fatalf("expected item count 3, got %d", c.ItemCount())
	}
}

func TestDifferentVersionsStaySeparate(t *testing.T) {
	c := newTestCart(t)
	ctx := context.Background()

	addProductA(t, c, 1)
	err := c.Add(ctx, cart.AddInput{ProductID: "prod-a", Name: "Product A", Price: 80000, Quantity: 1, Version: "digital"})
	if err != nil {
		t.Fatalf("failed to add: %v", err)
	}

	if len(c.Items()) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(c.Items()))
	}
	if !c.Contains("prod-a", "digital") || !c.Contains("prod-a", "physical") {
		t.Fatal("expected both versions in cart")
	}
	if c.Contains("prod-a", "") {
		t.Fatal("unexpected membership for empty version")
	}
}

func TestRemoveEmptiesCart(t *testing.T) {
	c := newTestCart(t)
	ctx := context.Background()

	addProductA(t, c, 3)
	if err := c.Remove(ctx, c.Items()[0].ID); err != nil {
		t.Fatalf("failed to remove: %v", err)
	}

	if len(c.Items()) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(c.Items()))
	}
	if c.Total() != 0 || c.ItemCount() != 0 {
		t.Fatalf("expected zero totals, got total=%v count=%d", c.Total(), c.ItemCount())
	}
}

func TestUpdateQuantityZeroOrNegativeRemovesLine(t *testing.T) {
	for _, qty := range []int{0, -5} {
		c := newTestCart(t)
		ctx := context.Background()

		addProductA(t, c, 2)
		if err := c.UpdateQuantity(ctx, c.Items()[0].ID, qty); err != nil {
			t.Fatalf("failed to update quantity: %v", err)
		}
		if len(c.Items()) != 0 {
			t.Fatalf("quantity %d: expected line removed, got %d lines", qty, len(c.Items()))
		}
	}
}

func TestUpdateQuantityReplacesQuantity(t *testing.T) {
	c := newTestCart(t)
	ctx := context.Background()

	addProductA(t, c, 2)
	if err := c.UpdateQuantity(ctx, c.Items()[0].ID, 5); err != nil {
		t.Fatalf("failed to update quantity: %v", err)
	}

	if got := c.Items()[0].Quantity; got != 5 {
		t.Fatalf("expected quantity 5, got %d", got)
	}
	if c.Total() != 500000 {
		t.Fatalf("expected total 500000, got %v", c.Total())
	}
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	c := newTestCart(t)
	err := c.Add(context.Background(), cart.AddInput{ProductID: "p", Quantity: 0})
	if err != cart.ErrInvalidQuantity {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
}

func TestClear(t *testing.T) {
	c := newTestCart(t)
	ctx := context.Background()

	addProductA(t, c, 4)
	if err := c.Clear(ctx); err != nil {
		t.Fatalf("failed to clear: %v", err)
	}
	if c.Total() != 0 || c.ItemCount() != 0 || len(c.Items()) != 0 {
		t.Fatal("expected empty cart after clear")
	}
}

func TestStoredCartSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	store := cart.NewFileStore(path)
	ctx := context.Background()

	first, err := cart.New(ctx, store)
	if err != nil {
		t.Fatalf("failed to create cart: %v", err)
	}
	if err := first.Add(ctx, cart.AddInput{ProductID: "prod-a", Name: "Product A", Price: 100000, Quantity: 2, Version: "physical"}); err != nil {
		t.Fatalf("failed to add: %v", err)
	}

	// A fresh container over the same store must pick up the stored lines
	// instead of starting empty.
	second, err := cart.New(ctx, store)
	if err != nil {
		t.Fatalf("failed to reload cart: %v", err)
	}
	if second.ItemCount() != 2 || second.Total() != 200000 {
		t.Fatalf("expected reloaded cart, got count=%d total=%v", second.ItemCount(), second.Total())
	}
}

func TestFreshCartDoesNotPersistUntilMutated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	store := cart.NewFileStore(path)
	ctx := context.Background()

	if _, err := cart.New(ctx, store); err != nil {
		t.Fatalf("failed to create cart: %v", err)
	}

	state, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	if state != nil {
		t.Fatal("expected nothing persisted before the first mutation")
	}
}
