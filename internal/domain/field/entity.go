package field

// SubField status values
const (
	StatusAvailable   = "available"
	StatusMaintenance = "maintenance"
	StatusBooked      = "booked"
)

// Field represents a bookable sports facility.
type Field struct {
	ID        string     `json:"id"`
	OwnerID   string     `json:"ownerId"`
	Name      string     `json:"name"`
	Address   string     `json:"address"`
	Phone     string     `json:"phone"`
	Amenities []string   `json:"amenities"`
	Slots     []string   `json:"slots"`
	SubFields []SubField `json:"subFields"`
	Image     string     `json:"image"`
}

// SubField represents an individually bookable unit within a Field.
type SubField struct {
	ID           string  `json:"id"`
	FieldID      string  `json:"fieldId"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	PricePerHour float64 `json:"pricePerHour"`
	Status       string  `json:"status"`
}
