package booking

// CreateRequest represents the reservation submission payload. All visible
// slots are fixed-duration, so the total equals the sub-field's hourly price.
type CreateRequest struct {
	UserID     string  `json:"userId" validate:"required"`
	Date       string  `json:"date" validate:"required,datetime=2006-01-02"`
	Slot       string  `json:"slot" validate:"required,slot"`
	TotalPrice float64 `json:"totalPrice" validate:"required,gt=0"`
}
