package cancellation

import (
	"context"
	"errors"
	"fmt"

	"busly/internal/tickets"
	"busly/internal/upstream"
	"busly/pkg/logger"
)

// ErrCancelFailed is returned when the delete did not go through. The
// reservation is still on record; this is distinct from a lookup that
// found nothing.
var ErrCancelFailed = errors.New("ticket cancellation failed")

// TicketFinder is the slice of the ticket service the cancellation flow
// needs. Both flows must share one lookup so ticket numbers resolve
// identically.
type TicketFinder interface {
	FindOne(ctx context.Context, number string) (*upstream.SeatRecord, error)
}

// Service looks up reservations by ticket number and cancels them.
type Service interface {
	Search(ctx context.Context, ticketNumber string) (*upstream.SeatRecord, error)
	Cancel(ctx context.Context, ticketNumber string) error
}

type service struct {
	client *upstream.Client
	finder TicketFinder
	log    *logger.Logger
}

func NewService(client *upstream.Client, finder TicketFinder, log *logger.Logger) Service {
	return &service{
		client: client,
		finder: finder,
		log:    log,
	}
}

// Search finds the reservation with the exact ticket number. Zero
// matches surfaces tickets.ErrNoMatch, which callers report differently
// from a network failure.
func (s *service) Search(ctx context.Context, ticketNumber string) (*upstream.SeatRecord, error) {
	return s.finder.FindOne(ctx, ticketNumber)
}

// Cancel deletes the reservation and then refetches the record set to
// confirm the deletion took — the remote service is the source of
// truth, so no optimistic local conclusion is drawn.
func (s *service) Cancel(ctx context.Context, ticketNumber string) error {
	if _, err := s.finder.FindOne(ctx, ticketNumber); err != nil {
		return err
	}

	if err := s.client.DeleteSeat(ctx, ticketNumber); err != nil {
		return fmt.Errorf("%w: %v", ErrCancelFailed, err)
	}

	// Verify against a fresh fetch rather than trusting the delete.
	if _, err := s.finder.FindOne(ctx, ticketNumber); err == nil {
		return fmt.Errorf("%w: record still present after delete", ErrCancelFailed)
	} else if !errors.Is(err, tickets.ErrNoMatch) {
		return fmt.Errorf("%w: could not verify deletion: %v", ErrCancelFailed, err)
	}

	s.log.LogTicketCancelled(ctx, ticketNumber)
	return nil
}
