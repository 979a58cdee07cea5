package booking

import (
	"github.com/fieldmart/fieldmart-client/internal/domain/field"
)

// Grid is the availability view model for one date: slot labels down,
// sub-fields across.
type Grid struct {
	Date      string
	Slots     []string
	SubFields []field.SubField

	booked map[cellKey]bool
}

type cellKey struct {
	slot         string
	subFieldName string
}

// BuildGrid derives the grid from a day's booking list. Only bookings with
// status "confirmed" block a cell; "pending" ones do not (matching the
// backend's availability rule).
func BuildGrid(date string, slots []string, subFields []field.SubField, bookings []Booking) *Grid {
	booked := make(map[cellKey]bool)
	for _, b := range bookings {
		if b.Status != StatusConfirmed {
			continue
		}
		if b.Date != date {
			continue
		}
		booked[cellKey{slot: b.Slot, subFieldName: b.SubFieldName}] = true
	}

	return &Grid{
		Date:      date,
		Slots:     slots,
		SubFields: subFields,
		booked:    booked,
	}
}

// Booked reports whether the (slot, sub-field) cell holds a confirmed booking.
func (g *Grid) Booked(slot, subFieldName string) bool {
	return g.booked[cellKey{slot: slot, subFieldName: subFieldName}]
}
