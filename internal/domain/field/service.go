package field

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fieldmart/fieldmart-client/internal/api"
	"github.com/fieldmart/fieldmart-client/internal/pkg/imaging"
	"github.com/fieldmart/fieldmart-client/internal/pkg/validator"
)

// Service wraps the /fields and /subFields endpoints.
type Service struct {
	client *api.Client
	images *imaging.Processor
}

// NewService creates a new field service.
func NewService(client *api.Client, images *imaging.Processor) *Service {
	return &Service{client: client, images: images}
}

// List fetches all fields.
func (s *Service) List(ctx context.Context) ([]Field, error) {
	var fields []Field
	if err := s.client.Get(ctx, "/fields", &fields); err != nil {
		return nil, fmt.Errorf("failed to list fields: %w", err)
	}
	return fields, nil
}

// Get fetches one field by id.
func (s *Service) Get(ctx context.Context, id string) (*Field, error) {
	var f Field
	if err := s.client.Get(ctx, "/fields/"+id, &f); err != nil {
		return nil, fmt.Errorf("failed to get field %s: %w", id, err)
	}
	return &f, nil
}

// Create submits a new field as a multipart form, normalizing the image
// before upload.
func (s *Service) Create(ctx context.Context, req CreateFieldRequest) (*Field, error) {
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, fieldErrs)
	}

	form := api.NewForm()
	if err := form.Fields(map[string]string{
		"name":    req.Name,
		"address": req.Address,
		"phone":   req.Phone,
	}); err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}
	for _, amenity := range req.Amenities {
		if err := form.Field("amenities", amenity); err != nil {
			return nil, fmt.Errorf("failed to build form: %w", err)
		}
	}
	for _, slot := range req.Slots {
		if err := form.Field("slots", slot); err != nil {
			return nil, fmt.Errorf("failed to build form: %w", err)
		}
	}
	if err := s.attachImage(form, req.Image); err != nil {
		return nil, err
	}

	var created Field
	if err := s.client.PostForm(ctx, "/fields", form, &created); err != nil {
		return nil, fmt.Errorf("failed to create field: %w", err)
	}
	return &created, nil
}

// Update edits an existing field.
func (s *Service) Update(ctx context.Context, id string, req UpdateFieldRequest) (*Field, error) {
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, fieldErrs)
	}

	form := api.NewForm()
	scalars := map[string]string{}
	if req.Name != "" {
		scalars["name"] = req.Name
	}
	if req.Address != "" {
		scalars["address"] = req.Address
	}
	if req.Phone != "" {
		scalars["phone"] = req.Phone
	}
	if err := form.Fields(scalars); err != nil {
		return nil, fmt.Errorf("failed to build form: %w", err)
	}
	for _, amenity := range req.Amenities {
		if err := form.Field("amenities", amenity); err != nil {
			return nil, fmt.Errorf("failed to build form: %w", err)
		}
	}
	for _, slot := range req.Slots {
		if err := form.Field("slots", slot); err != nil {
			return nil, fmt.Errorf("failed to build form: %w", err)
		}
	}
	if err := s.attachImage(form, req.Image); err != nil {
		return nil, err
	}

	var updated Field
	if err := s.client.PutForm(ctx, "/fields/"+id, form, &updated); err != nil {
		return nil, fmt.Errorf("failed to update field %s: %w", id, err)
	}
	return &updated, nil
}

// Delete removes a field.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, "/fields/"+id, nil); err != nil {
		return fmt.Errorf("failed to delete field %s: %w", id, err)
	}
	return nil
}

func (s *Service) attachImage(form *api.Form, img *ImageUpload) error {
	if img == nil {
		return nil
	}
	if !imaging.ValidateType(img.Filename) {
		return fmt.Errorf("%w: %s", ErrInvalidImage, img.Filename)
	}
	normalized, err := s.images.Normalize(img.Reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if err := form.File("image", img.Filename, normalized.ContentType, normalized.Data); err != nil {
		return fmt.Errorf("failed to build form: %w", err)
	}
	return nil
}

// SubFields returns the sub-field wrapper sharing this service's client.
func (s *Service) SubFields() *SubFieldService {
	return &SubFieldService{client: s.client}
}

// SubFieldService wraps the /subFields endpoints.
type SubFieldService struct {
	client *api.Client
}

// NewSubFieldService creates a new sub-field service.
func NewSubFieldService(client *api.Client) *SubFieldService {
	return &SubFieldService{client: client}
}

// ListByField fetches the sub-fields of one field.
func (s *SubFieldService) ListByField(ctx context.Context, fieldID string) ([]SubField, error) {
	var subFields []SubField
	if err := s.client.Get(ctx, "/subFields/field/"+fieldID, &subFields); err != nil {
		return nil, fmt.Errorf("failed to list sub-fields of field %s: %w", fieldID, err)
	}
	return subFields, nil
}

// Create adds a sub-field to a field.
func (s *SubFieldService) Create(ctx context.Context, req CreateSubFieldRequest) (*SubField, error) {
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, fieldErrs)
	}

	var created SubField
	if err := s.client.Post(ctx, "/subFields", req, &created); err != nil {
		return nil, fmt.Errorf("failed to create sub-field: %w", err)
	}
	return &created, nil
}

// Update edits a sub-field.
func (s *SubFieldService) Update(ctx context.Context, id string, req UpdateSubFieldRequest) (*SubField, error) {
	if fieldErrs := validator.Validate(req); fieldErrs != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, fieldErrs)
	}

	var updated SubField
	if err := s.client.Put(ctx, "/subFields/"+id, req, &updated); err != nil {
		return nil, fmt.Errorf("failed to update sub-field %s: %w", id, err)
	}
	return &updated, nil
}

// Delete removes a sub-field.
func (s *SubFieldService) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, "/subFields/"+id, nil); err != nil {
		return fmt.Errorf("failed to delete sub-field %s: %w", id, err)
	}
	return nil
}

// FormatPrice renders a per-hour price the way the storefront displays it.
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
