package booking

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// DayReader is the slice of Service the fan-out fetch needs.
type DayReader interface {
	ForSubFieldDay(ctx context.Context, subFieldID, day string) ([]Booking, error)
}

// FetchDay loads the bookings of every given sub-field on one day with one
// request per sub-field, in parallel, and flattens the results. Each request
// populates a disjoint slice of the combined list, so no ordering is needed
// between them.
//
// Any failed fetch fails the whole load: a grid rendered from partial data
// would show booked slots as free.
func FetchDay(ctx context.Context, reader DayReader, subFieldIDs []string, day string) ([]Booking, error) {
	g, ctx := errgroup.WithContext(ctx)
	results := make([][]Booking, len(subFieldIDs))

	for i, id := range subFieldIDs {
		i, id := i, id
		g.Go(func() error {
			bookings, err := reader.ForSubFieldDay(ctx, id, day)
			if err != nil {
				return err
			}
			results[i] = bookings
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load availability for %s: %w", day, err)
	}

	var all []Booking
	for _, bookings := range results {
		all = append(all, bookings...)
	}
	return all, nil
}
