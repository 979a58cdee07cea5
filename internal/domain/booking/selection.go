package booking

import (
	"context"
	"fmt"

	"github.com/fieldmart/fieldmart-client/internal/domain/field"
	"github.com/fieldmart/fieldmart-client/internal/pkg/logger"
)

// Source is the slice of Service the selection flow needs.
type Source interface {
	DayReader
	Create(ctx context.Context, subFieldID string, req CreateRequest) (*Booking, error)
}

// CellRef identifies one (slot, sub-field) cell of the grid.
type CellRef struct {
	Slot         string
	SubFieldID   string
	SubFieldName string
}

// Flow drives the single-selection booking flow for one facility: load the
// day's availability, let the user pick at most one free cell, submit it.
//
// Selection is an optional value, not a collection: at most one cell is
// selected at a time, and selecting another cell replaces it.
type Flow struct {
	source Source
	fld    field.Field
	date   string

	bookings []Booking
	loaded   bool
	loadErr  error
	selected *CellRef
}

// NewFlow creates a selection flow over a facility's sub-fields and slot
// labels for the given date. Call Load before selecting.
func NewFlow(source Source, fld field.Field, date string) *Flow {
	return &Flow{source: source, fld: fld, date: date}
}

// Date returns the currently shown date.
func (f *Flow) Date() string {
	return f.date
}

// Load fetches the day's bookings for every sub-field in parallel. On error
// the flow enters a blocked state: no cell can be selected until a reload
// succeeds. A loaded booking for the currently selected cell drops the
// selection.
func (f *Flow) Load(ctx context.Context) error {
	ids := make([]string, len(f.fld.SubFields))
	for i, sf := range f.fld.SubFields {
		ids[i] = sf.ID
	}

	bookings, err := FetchDay(ctx, f.source, ids, f.date)
	if err != nil {
		f.bookings = nil
		f.loaded = false
		f.loadErr = err
		logger.FromContext(ctx).Error().Err(err).
			Str("field_id", f.fld.ID).
			Str("date", f.date).
			Msg("availability load failed, selection blocked")
		return err
	}

	f.bookings = bookings
	f.loaded = true
	f.loadErr = nil
	if f.selected != nil && f.cellBooked(*f.selected) {
		f.selected = nil
	}
	return nil
}

// SetDate switches the shown date, clears any selection and reloads.
func (f *Flow) SetDate(ctx context.Context, date string) error {
	f.date = date
	f.selected = nil
	return f.Load(ctx)
}

// LoadErr returns the error that blocked the last load, if any.
func (f *Flow) LoadErr() error {
	return f.loadErr
}

// Toggle handles a click on a cell and reports whether the selection changed.
// Clicking a free, unselected cell selects it, replacing any prior selection;
// clicking the selected cell clears it; clicking a booked cell, a cell of a
// sub-field under maintenance, or any cell while availability is not loaded
// is a no-op.
func (f *Flow) Toggle(cell CellRef) bool {
	if !f.loaded {
		return false
	}
	if f.selected != nil && *f.selected == cell {
		f.selected = nil
		return true
	}
	if f.cellBooked(cell) {
		return false
	}
	if f.underMaintenance(cell.SubFieldID) {
		return false
	}
	selected := cell
	f.selected = &selected
	return true
}

// Selected returns a copy of the current selection, or nil.
func (f *Flow) Selected() *CellRef {
	if f.selected == nil {
		return nil
	}
	selected := *f.selected
	return &selected
}

// Confirm submits the selected cell as a reservation for the given user.
// On success the created booking is appended locally with status forced to
// "confirmed" until the next Load reconciles it, and the selection is
// cleared. On failure the selection stays intact.
func (f *Flow) Confirm(ctx context.Context, userID string) (*Booking, error) {
	if f.selected == nil {
		return nil, ErrNoSelection
	}
	if !f.loaded {
		return nil, ErrNotLoaded
	}

	selected := *f.selected
	price, err := f.priceOf(selected.SubFieldID)
	if err != nil {
		return nil, err
	}

	created, err := f.source.Create(ctx, selected.SubFieldID, CreateRequest{
		UserID:     userID,
		Date:       f.date,
		Slot:       selected.Slot,
		TotalPrice: price,
	})
	if err != nil {
		return nil, fmt.Errorf("booking submission failed: %w", err)
	}

	patch := *created
	patch.Status = StatusConfirmed
	if patch.SubFieldID == "" {
		patch.SubFieldID = selected.SubFieldID
	}
	if patch.SubFieldName == "" {
		patch.SubFieldName = selected.SubFieldName
	}
	if patch.Date == "" {
		patch.Date = f.date
	}
	if patch.Slot == "" {
		patch.Slot = selected.Slot
	}

	f.bookings = append(f.bookings, patch)
	f.selected = nil

	logger.FromContext(ctx).Info().
		Str("booking_id", patch.ID).
		Str("sub_field", patch.SubFieldName).
		Str("date", patch.Date).
		Str("slot", patch.Slot).
		Msg("booking confirmed")
	return &patch, nil
}

// Grid returns the availability view model for the loaded day, or nil while
// the flow is blocked.
func (f *Flow) Grid() *Grid {
	if !f.loaded {
		return nil
	}
	return BuildGrid(f.date, f.fld.Slots, f.fld.SubFields, f.bookings)
}

func (f *Flow) cellBooked(cell CellRef) bool {
	for _, b := range f.bookings {
		if b.Status == StatusConfirmed && b.Date == f.date &&
			b.Slot == cell.Slot && b.SubFieldName == cell.SubFieldName {
			return true
		}
	}
	return false
}

func (f *Flow) underMaintenance(subFieldID string) bool {
	for _, sf := range f.fld.SubFields {
		if sf.ID == subFieldID {
			return sf.Status == field.StatusMaintenance
		}
	}
	return false
}

func (f *Flow) priceOf(subFieldID string) (float64, error) {
	for _, sf := range f.fld.SubFields {
		if sf.ID == subFieldID {
			return sf.PricePerHour, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownSubField, subFieldID)
}
