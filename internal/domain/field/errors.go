package field

import "errors"

var (
	ErrValidation   = errors.New("validation failed")
	ErrInvalidImage = errors.New("invalid image file")
)
