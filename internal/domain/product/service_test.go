package product_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fieldmart/fieldmart-client/internal/api"
	"github.com/fieldmart/fieldmart-client/internal/domain/product"
	"github.com/fieldmart/fieldmart-client/internal/pkg/imaging"
)

func newProductService(t *testing.T, handler http.HandlerFunc) *product.Service {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := api.NewClient(server.URL, api.NewMemoryTokenStore(), time.Second, "FieldMart/1.0 test")
	return product.NewService(client, imaging.NewProcessor(imaging.DefaultConfig()))
}

func TestListProductsWithCategoryFilter(t *testing.T) {
	svc := newProductService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("category"); got != "cat-1" {
			t.Errorf("unexpected category filter %q", got)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"p1","name":"Ball","price":100000,"versions":["physical"]}]}`))
	})

	products, err := svc.List(context.Background(), "cat-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) != 1 || products[0].Name != "Ball" {
		t.Fatalf("unexpected products: %+v", products)
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc := newProductService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the server")
	})

	_, err := svc.Create(context.Background(), product.CreateRequest{
		Name:       "Ball",
		Price:      100000,
		CategoryID: "cat-1",
		Version:    "holographic",
	})
	if !errors.Is(err, product.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestCategoryCreate(t *testing.T) {
	svc := newProductService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/categories" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"cat-1","name":"Equipment"}}`))
	})

	created, err := svc.Categories().Create(context.Background(), product.CategoryRequest{Name: "Equipment"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID != "cat-1" {
		t.Fatalf("unexpected category: %+v", created)
	}
}
