package product

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/fieldmart/fieldmart-client/internal/api"
	"github.com/fieldmart/fieldmart-client/internal/pkg/imaging"
	"github.com/fieldmart/fieldmart-client/internal/pkg/validator"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrInvalidImage = errors.New("invalid image file")
)

// Service wraps the /products and /categories endpoints.
type Service struct {
	client *api.Client
	images *imaging.Processor
}

// NewService creates a new product service.
func NewService(client *api.Client, images *imaging.Processor) *Service {
	return &Service{client: client, images: images}
}

// List fetches products, optionally filtered by category.
func (s *Service) List(ctx context.Context, categoryID string) ([]Product, error) {
	path := "/products"
	if categoryID != "" {
		path += "?category=" + url.QueryEscape(categoryID)
	}

	var products []Product
	if err := s.client.Get(ctx, path, &products); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// Get fetches one product by id.
func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	var p Product
	if err := s.client.Get(ctx, "/products/"+id, &p); err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", id, err)
	}
	return &p, nil
}

// Create submits a new product as a multipart form.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Product, error) {
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, fieldErrs)
	}

	form, err := s.buildForm(map[string]string{
		"name":        req.Name,
		"description": req.Description,
		"price":       strconv.FormatFloat(req.Price, 'f', -1, 64),
		"currency":    req.Currency,
		"categoryId":  req.CategoryID,
		"version":     req.Version,
		"stock":       strconv.Itoa(req.Stock),
	}, req.Images)
	if err != nil {
		return nil, err
	}

	var created Product
	if err := s.client.PostForm(ctx, "/products", form, &created); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &created, nil
}

// Update edits an existing product.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (*Product, error) {
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, fieldErrs)
	}

	scalars := map[string]string{}
	if req.Name != "" {
		scalars["name"] = req.Name
	}
	if req.Description != "" {
		scalars["description"] = req.Description
	}
	if req.Price > 0 {
		scalars["price"] = strconv.FormatFloat(req.Price, 'f', -1, 64)
	}
	if req.CategoryID != "" {
		scalars["categoryId"] = req.CategoryID
	}
	if req.Version != "" {
		scalars["version"] = req.Version
	}
	if req.Stock > 0 {
		scalars["stock"] = strconv.Itoa(req.Stock)
	}

	form, err := s.buildForm(scalars, req.Images)
	if err != nil {
		return nil, err
	}

	var updated Product
	if err := s.client.PutForm(ctx, "/products/"+id, form, &updated); err != nil {
		return nil, fmt.Errorf("failed to update product %s: %w", id, err)
	}
	return &updated, nil
}

// Delete removes a product.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, "/products/"+id, nil); err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return nil
}

func (s *Service) buildForm(scalars map[string]string, images []ImageUpload) (*api.Form, error) {
	form := api.NewForm()
	if err := form.Fields(scalars); err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}

	for _, img := range images {
		if !imaging.ValidateType(img.Filename) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidImage, img.Filename)
		}
		normalized, err := s.images.Normalize(img.Reader)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
		}
		if err := form.File("images", img.Filename, normalized.ContentType, normalized.Data); err != nil {
			return nil, fmt.Errorf("failed to build form: %w", err)
		}
	}
	return form, nil
}

// Categories returns the category wrapper sharing this service's client.
func (s *Service) Categories() *CategoryService {
	return &CategoryService{client: s.client}
}

// CategoryService wraps the /categories endpoints.
type CategoryService struct {
	client *api.Client
}

// NewCategoryService creates a new category service.
func NewCategoryService(client *api.Client) *CategoryService {
	return &CategoryService{client: client}
}

// List fetches all categories.
func (s *CategoryService) List(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := s.client.Get(ctx, "/categories", &categories); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Create adds a category.
func (s *CategoryService) Create(ctx context.Context, req CategoryRequest) (*Category, error) {
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, fieldErrs)
	}

	var created Category
	if err := s.client.Post(ctx, "/categories", req, &created); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &created, nil
}

// Update renames a category.
func (s *CategoryService) Update(ctx context.Context, id string, req CategoryRequest) (*Category, error) {
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, fieldErrs)
	}

	var updated Category
	if err := s.client.Put(ctx, "/categories/"+id, req, &updated); err != nil {
		return nil, fmt.Errorf("failed to update category %s: %w", id, err)
	}
	return &updated, nil
}

// Delete removes a category.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, "/categories/"+id, nil); err != nil {
		return fmt.Errorf("failed to delete category %s: %w", id, err)
	}
	return nil
}
