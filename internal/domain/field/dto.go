package field

import "io"

// ImageUpload carries a to-be-uploaded image file.
type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

// CreateFieldRequest represents field creation form data.
type CreateFieldRequest struct {
	Name      string   `json:"name" validate:"required,min=2,max=200"`
	Address   string   `json:"address" validate:"required,min=2,max=300"`
	Phone     string   `json:"phone" validate:"required,min=8,max=20"`
	Amenities []string `json:"amenities"`
	Slots     []string `json:"slots" validate:"required,min=1,dive,slot"`
	Image     *ImageUpload
}

// UpdateFieldRequest represents field edit form data. Empty strings leave the
// stored value unchanged; a nil Image keeps the current one.
type UpdateFieldRequest struct {
	Name      string   `json:"name" validate:"omitempty,min=2,max=200"`
	Address   string   `json:"address" validate:"omitempty,min=2,max=300"`
	Phone     string   `json:"phone" validate:"omitempty,min=8,max=20"`
	Amenities []string `json:"amenities"`
	Slots     []string `json:"slots" validate:"omitempty,dive,slot"`
	Image     *ImageUpload
}

// CreateSubFieldRequest represents sub-field creation payload.
type CreateSubFieldRequest struct {
	FieldID      string  `json:"fieldId" validate:"required"`
	Name         string  `json:"name" validate:"required,min=1,max=100"`
	Type         string  `json:"type" validate:"required,min=1,max=100"`
	PricePerHour float64 `json:"pricePerHour" validate:"required,gt=0"`
	Status       string  `json:"status" validate:"omitempty,subfield_status"`
}

// UpdateSubFieldRequest represents sub-field edit payload.
type UpdateSubFieldRequest struct {
	Name         string  `json:"name" validate:"omitempty,min=1,max=100"`
	Type         string  `json:"type" validate:"omitempty,min=1,max=100"`
	PricePerHour float64 `json:"pricePerHour" validate:"omitempty,gt=0"`
	Status       string  `json:"status" validate:"omitempty,subfield_status"`
}
