package product

import "io"

// ImageUpload carries a to-be-uploaded product image.
type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

// CreateRequest represents product creation form data.
type CreateRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Currency    string  `json:"currency" validate:"omitempty,len=3"`
	CategoryID  string  `json:"categoryId" validate:"required"`
	Version     string  `json:"version" validate:"omitempty,product_version"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Images      []ImageUpload
}

// UpdateRequest represents product edit form data.
type UpdateRequest struct {
	Name        string  `json:"name" validate:"omitempty,min=2,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Price       float64 `json:"price" validate:"omitempty,gt=0"`
	CategoryID  string  `json:"categoryId"`
	Version     string  `json:"version" validate:"omitempty,product_version"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Images      []ImageUpload
}

// CategoryRequest represents category create/edit payload.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}
