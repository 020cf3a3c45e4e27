package tickets

import (
	"context"
	"errors"
	"fmt"

	"busly/internal/upstream"
)

// ErrNoMatch is returned when a ticket-number lookup finds no persisted
// record. Distinct from upstream.ErrUnavailable.
var ErrNoMatch = errors.New("no matching ticket")

// Service looks up persisted reservation records by ticket number. The
// remote service may return a superset, so filtering here is
// authoritative.
type Service interface {
	FindByNumbers(ctx context.Context, numbers []string) ([]upstream.SeatRecord, error)
	FindOne(ctx context.Context, number string) (*upstream.SeatRecord, error)
}

type service struct {
	client *upstream.Client
}

func NewService(client *upstream.Client) Service {
	return &service{client: client}
}

// FindByNumbers fetches all records and keeps those whose ticket number
// is in the given set. Used by the confirmation view after a booking.
func (s *service) FindByNumbers(ctx context.Context, numbers []string) ([]upstream.SeatRecord, error) {
	if len(numbers) == 0 {
		return nil, fmt.Errorf("no ticket numbers given: %w", ErrNoMatch)
	}

	all, err := s.client.GetSeats(ctx)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(numbers))
	for _, n := range numbers {
		wanted[n] = true
	}

	var matched []upstream.SeatRecord
	for _, rec := range all {
		if wanted[rec.TicketNumber] {
			matched = append(matched, rec)
		}
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("no records for given ticket numbers: %w", ErrNoMatch)
	}
	return matched, nil
}

// FindOne fetches all records and returns the one with the exact ticket
// number.
func (s *service) FindOne(ctx context.Context, number string) (*upstream.SeatRecord, error) {
	matched, err := s.FindByNumbers(ctx, []string{number})
	if err != nil {
		return nil, err
	}
	return &matched[0], nil
}
