package booking

// DateLayout is the wire format for booking dates.
const DateLayout = "2006-01-02"

// Status represents a booking lifecycle state.
type Status string

// The API spells the cancelled state "cancel".
const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancel"
)

// Booking represents a reservation of one sub-field for one date and slot.
// Immutable once created; there is no edit path.
type Booking struct {
	ID           string  `json:"id"`
	SubFieldID   string  `json:"subFieldId"`
	SubFieldName string  `json:"subFieldName"`
	UserID       string  `json:"userId"`
	Date         string  `json:"date"`
	Slot         string  `json:"slot"`
	TotalPrice   float64 `json:"totalPrice"`
	Status       Status  `json:"status"`
}
