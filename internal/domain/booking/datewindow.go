package booking

import "time"

// windowSize is the number of calendar days shown per page.
const windowSize = 10

// DateWindow pages through the bookable days: up to ten at a time, from
// today to the end of the current month. It does not cross into the next
// month.
type DateWindow struct {
	today  time.Time
	offset int
}

// NewDateWindow creates a window anchored at the given day.
func NewDateWindow(today time.Time) *DateWindow {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return &DateWindow{today: day}
}

// Days returns the current page of days.
func (w *DateWindow) Days() []time.Time {
	start := w.today.AddDate(0, 0, w.offset*windowSize)
	end := endOfMonth(w.today)

	var days []time.Time
	for d := start; !d.After(end) && len(days) < windowSize; d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DayStrings returns the current page formatted in the booking date layout.
func (w *DateWindow) DayStrings() []string {
	days := w.Days()
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.Format(DateLayout)
	}
	return out
}

// HasNext reports whether another page exists within the current month.
func (w *DateWindow) HasNext() bool {
	start := w.today.AddDate(0, 0, (w.offset+1)*windowSize)
	return !start.After(endOfMonth(w.today))
}

// HasPrev reports whether an earlier page exists.
func (w *DateWindow) HasPrev() bool {
	return w.offset > 0
}

// Next advances one page and reports whether it moved.
func (w *DateWindow) Next() bool {
	if !w.HasNext() {
		return false
	}
	w.offset++
	return true
}

// Prev goes back one page and reports whether it moved.
func (w *DateWindow) Prev() bool {
	if !w.HasPrev() {
		return false
	}
	w.offset--
	return true
}

func endOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location())
}
