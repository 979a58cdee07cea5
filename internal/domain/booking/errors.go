package booking

import "errors"

var (
	ErrValidation      = errors.New("validation failed")
	ErrNoSelection     = errors.New("no slot selected")
	ErrNotLoaded       = errors.New("availability not loaded")
	ErrUnknownSubField = errors.New("unknown sub-field")
)
