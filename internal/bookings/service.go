package bookings

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"busly/internal/routes"
	"busly/internal/seats"
	"busly/internal/tickets"
	"busly/internal/upstream"
	"busly/pkg/logger"
)

var (
	// ErrPartialFailure is returned when at least one write of a batch
	// failed. The BookingResult carries the per-item outcomes; seats
	// already written stay written — there is no rollback, the rider
	// resubmits the failed seats.
	ErrPartialFailure = errors.New("one or more reservations failed")

	// ErrSeatNotEligible is returned when a submitted seat is not in
	// the session's newly-selected set (e.g. it was booked by someone
	// else since confirmation, or was never toggled).
	ErrSeatNotEligible = errors.New("seat is not newly selected")
)

// SeatBoard is the slice of the seat service the submitter needs.
type SeatBoard interface {
	NewlySelected(ctx context.Context, sessionID string, key seats.RouteKey) ([]string, error)
	ClearSelection(ctx context.Context, sessionID string, key seats.RouteKey) error
}

// RouteDirectory resolves the route a booking is written against.
type RouteDirectory interface {
	BySlNo(ctx context.Context, slNo int) (*routes.Route, error)
}

// Service submits confirmed selections to the remote reservation
// service, one record per seat.
type Service interface {
	Submit(ctx context.Context, sessionID string, req SubmitBookingRequest) (*BookingResult, error)
}

type service struct {
	client    *upstream.Client
	seatBoard SeatBoard
	directory RouteDirectory
	log       *logger.Logger
}

func NewService(client *upstream.Client, seatBoard SeatBoard, directory RouteDirectory, log *logger.Logger) Service {
	return &service{
		client:    client,
		seatBoard: seatBoard,
		directory: directory,
		log:       log,
	}
}

// Submit validates eligibility, then issues all reservation writes
// concurrently and jointly awaits them. Success is declared only when
// every write completed; otherwise the per-item outcomes are returned
// alongside ErrPartialFailure.
func (s *service) Submit(ctx context.Context, sessionID string, req SubmitBookingRequest) (*BookingResult, error) {
	key := seats.RouteKey{SlNo: req.SlNo, Date: req.Date, Timing: req.Timing}

	route, err := s.directory.BySlNo(ctx, req.SlNo)
	if err != nil {
		return nil, err
	}
	if !route.HasTiming(req.Timing) {
		return nil, fmt.Errorf("route %d has no departure at %q: %w", req.SlNo, req.Timing, routes.ErrNoMatch)
	}

	newly, err := s.seatBoard.NewlySelected(ctx, sessionID, key)
	if err != nil {
		return nil, err
	}
	if len(newly) == 0 {
		return nil, seats.ErrEmptySelection
	}

	eligible := make(map[string]bool, len(newly))
	for _, seat := range newly {
		eligible[seat] = true
	}
	seen := make(map[string]bool, len(req.Passengers))
	for _, p := range req.Passengers {
		if !eligible[p.Seat] {
			return nil, fmt.Errorf("%w: %q", ErrSeatNotEligible, p.Seat)
		}
		if seen[p.Seat] {
			return nil, fmt.Errorf("%w: %q appears twice", ErrSeatNotEligible, p.Seat)
		}
		seen[p.Seat] = true
	}

	pricePerSeat := tickets.PerSeatPrice(route.RouteLength)
	result := &BookingResult{
		SlNo:         req.SlNo,
		FromLocation: route.FromLocation,
		ToLocation:   route.ToLocation,
		Date:         req.Date,
		Timing:       req.Timing,
		PricePerSeat: pricePerSeat,
		TotalPrice:   tickets.TotalPrice(route.RouteLength, len(req.Passengers)),
		Items:        make([]ItemOutcome, len(req.Passengers)),
	}

	// One independent remote write per seat, issued concurrently and
	// jointly awaited. There is no ordering guarantee between them.
	var wg sync.WaitGroup
	for i := range req.Passengers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			p := req.Passengers[i]
			ticketNumber := tickets.Number(req.SlNo, req.Date, req.Timing, p.Seat)
			outcome := ItemOutcome{Seat: p.Seat, TicketNumber: ticketNumber}

			reserveErr := s.client.ReserveSeat(ctx, upstream.ReserveRequest{
				SlNo:                  req.SlNo,
				Date:                  req.Date,
				DepartureTimings:      req.Timing,
				SelectedSeat:          p.Seat,
				PassengerName:         p.Name,
				PassengerAge:          p.Age,
				PassengerGender:       p.Gender,
				PassengerMobileNumber: p.MobileNumber,
				TicketPrice:           pricePerSeat,
				TicketNumber:          ticketNumber,
				FromLocation:          route.FromLocation,
				ToLocation:            route.ToLocation,
			})
			if reserveErr != nil {
				outcome.Status = "FAILED"
				outcome.Error = reserveErr.Error()
			} else {
				outcome.Status = "CONFIRMED"
			}
			result.Items[i] = outcome
		}(i)
	}
	wg.Wait()

	failed := 0
	for _, item := range result.Items {
		if item.Status == "CONFIRMED" {
			result.TicketNumbers = append(result.TicketNumbers, item.TicketNumber)
		} else {
			failed++
		}
	}

	s.log.LogReservationSubmitted(ctx, sessionID, req.SlNo, len(req.Passengers), failed)

	if failed > 0 {
		return result, fmt.Errorf("%d of %d writes failed: %w", failed, len(req.Passengers), ErrPartialFailure)
	}

	result.Confirmed = true
	if err := s.seatBoard.ClearSelection(ctx, sessionID, key); err != nil {
		// The reservation is already persisted remotely; a stale local
		// selection only lingers until its TTL.
		s.log.ErrorWithContext(ctx, "failed to clear selection after booking", err, map[string]interface{}{
			"session_id": sessionID,
			"sl_no":      req.SlNo,
		})
	}
	return result, nil
}
