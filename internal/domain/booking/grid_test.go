package booking_test

import (
	"testing"

	"github.com/fieldmart/fieldmart-client/internal/domain/booking"
	"github.com/fieldmart/fieldmart-client/internal/domain/field"
)

var testSubFields = []field.SubField{
	{ID: "sf1", FieldID: "f1", Name: "Court 1", Type: "futsal", PricePerHour: 150000, Status: field.StatusAvailable},
	{ID: "sf2", FieldID: "f1", Name: "Court 2", Type: "futsal", PricePerHour: 120000, Status: field.StatusAvailable},
}

var testSlots = []string{"5:00 - 6:30", "6:30 - 8:00"}

func TestConfirmedBookingDisablesExactCell(t *testing.T) {
	bookings := []booking.Booking{
		{Slot: "5:00 - 6:30", SubFieldName: "Court 1", Date: "2026-09-01", Status: booking.StatusConfirmed},
	}

	grid := booking.BuildGrid("2026-09-01", testSlots, testSubFields, bookings)

	if !grid.Booked("5:00 - 6:30", "Court 1") {
		t.Fatal("expected matching cell to be booked")
	}
	for _, check := range []struct {
		slot, subField string
	}{
		{"5:00 - 6:30", "Court 2"},
		{"6:30 - 8:00", "Court 1"},
		{"6:30 - 8:00", "Court 2"},
	} {
		if grid.Booked(check.slot, check.subField) {
			t.Errorf("expected cell (%s, %s) to be free", check.slot, check.subField)
		}
	}
}

func TestPendingBookingDoesNotBlockCell(t *testing.T) {
	bookings := []booking.Booking{
		{Slot: "5:00 - 6:30", SubFieldName: "Court 1", Date: "2026-09-01", Status: booking.StatusPending},
		{Slot: "6:30 - 8:00", SubFieldName: "Court 1", Date: "2026-09-01", Status: booking.StatusCancelled},
	}

	grid := booking.BuildGrid("2026-09-01", testSlots, testSubFields, bookings)

	if grid.Booked("5:00 - 6:30", "Court 1") {
		t.Fatal("pending booking must not block the cell")
	}
	if grid.Booked("6:30 - 8:00", "Court 1") {
		t.Fatal("cancelled booking must not block the cell")
	}
}

func TestBookingOnOtherDateIsIgnored(t *testing.T) {
	bookings := []booking.Booking{
		{Slot: "5:00 - 6:30", SubFieldName: "Court 1", Date: "2026-09-02", Status: booking.StatusConfirmed},
	}

	grid := booking.BuildGrid("2026-09-01", testSlots, testSubFields, bookings)

	if grid.Booked("5:00 - 6:30", "Court 1") {
		t.Fatal("a booking on another date must not block the cell")
	}
}
