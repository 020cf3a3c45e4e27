package seats

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"busly/internal/routes"
	"busly/internal/tickets"
	"busly/internal/upstream"
)

var (
	// ErrEmptySelection is returned when confirmation is attempted
	// with zero newly selected seats. No upstream call is made.
	ErrEmptySelection = errors.New("no newly selected seats")

	// ErrInvalidSeat is returned for labels outside the fixed layout.
	ErrInvalidSeat = errors.New("invalid seat label")

	// ErrIncompleteKey is returned when a mutation is attempted
	// before route, date and timing have all been chosen.
	ErrIncompleteKey = errors.New("route, date and timing must all be chosen")
)

// RouteDirectory is the subset of the route directory the seat board
// needs (to price a confirmed selection).
type RouteDirectory interface {
	BySlNo(ctx context.Context, slNo int) (*routes.Route, error)
}

// Service reconciles persisted seat occupancy with the rider's
// transient selection for one route key.
type Service interface {
	Board(ctx context.Context, sessionID string, key RouteKey) (*Board, error)
	Toggle(ctx context.Context, sessionID string, key RouteKey, seatLabel string) (*Board, error)
	Confirm(ctx context.Context, sessionID string, key RouteKey) (*ConfirmDraft, error)

	// NewlySelected and ClearSelection back the booking submitter.
	NewlySelected(ctx context.Context, sessionID string, key RouteKey) ([]string, error)
	ClearSelection(ctx context.Context, sessionID string, key RouteKey) error
}

type service struct {
	client    *upstream.Client
	store     SelectionStore
	directory RouteDirectory
}

func NewService(client *upstream.Client, store SelectionStore, directory RouteDirectory) Service {
	return &service{
		client:    client,
		store:     store,
		directory: directory,
	}
}

// Board returns the reconciled seat state. For an incomplete key both
// sets are empty and upstream is not contacted.
func (s *service) Board(ctx context.Context, sessionID string, key RouteKey) (*Board, error) {
	if !key.Complete() {
		return &Board{Key: key, Decks: BuildDecks(nil, nil)}, nil
	}

	booked, err := s.fetchBooked(ctx, key)
	if err != nil {
		return nil, err
	}

	selected, err := s.store.Get(ctx, sessionID, key)
	if err != nil {
		return nil, fmt.Errorf("load selection: %w", err)
	}

	return s.buildBoard(key, booked, selected), nil
}

// Toggle flips one seat's membership in the selection. Clicking a
// booked seat is a no-op; the board is returned unchanged.
func (s *service) Toggle(ctx context.Context, sessionID string, key RouteKey, seatLabel string) (*Board, error) {
	if !key.Complete() {
		return nil, ErrIncompleteKey
	}
	if !ValidSeatLabel(seatLabel) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSeat, seatLabel)
	}

	booked, err := s.fetchBooked(ctx, key)
	if err != nil {
		return nil, err
	}

	selected, err := s.store.Get(ctx, sessionID, key)
	if err != nil {
		return nil, fmt.Errorf("load selection: %w", err)
	}

	if toSet(booked)[seatLabel] {
		// Booked seats are not interactive.
		return s.buildBoard(key, booked, selected), nil
	}

	if toSet(selected)[seatLabel] {
		next := selected[:0]
		for _, seat := range selected {
			if seat != seatLabel {
				next = append(next, seat)
			}
		}
		selected = next
	} else {
		selected = append(selected, seatLabel)
	}

	if err := s.store.Put(ctx, sessionID, key, selected); err != nil {
		return nil, fmt.Errorf("save selection: %w", err)
	}

	return s.buildBoard(key, booked, selected), nil
}

// Confirm checks eligibility and prices the newly selected seats. With
// zero newly selected seats it fails without touching upstream writes.
func (s *service) Confirm(ctx context.Context, sessionID string, key RouteKey) (*ConfirmDraft, error) {
	if !key.Complete() {
		return nil, ErrIncompleteKey
	}

	newly, err := s.NewlySelected(ctx, sessionID, key)
	if err != nil {
		return nil, err
	}
	if len(newly) == 0 {
		return nil, ErrEmptySelection
	}

	route, err := s.directory.BySlNo(ctx, key.SlNo)
	if err != nil {
		return nil, err
	}

	draft := &ConfirmDraft{
		Key:          key,
		FromLocation: route.FromLocation,
		ToLocation:   route.ToLocation,
		RouteLength:  route.RouteLength,
		TotalPrice:   tickets.TotalPrice(route.RouteLength, len(newly)),
	}
	for _, seat := range newly {
		draft.Seats = append(draft.Seats, DraftSeat{
			Seat:         seat,
			TicketNumber: tickets.Number(key.SlNo, key.Date, key.Timing, seat),
			Price:        tickets.PerSeatPrice(route.RouteLength),
		})
	}
	return draft, nil
}

// NewlySelected returns selected minus booked: the only seats eligible
// for submission.
func (s *service) NewlySelected(ctx context.Context, sessionID string, key RouteKey) ([]string, error) {
	if !key.Complete() {
		return nil, ErrIncompleteKey
	}

	booked, err := s.fetchBooked(ctx, key)
	if err != nil {
		return nil, err
	}

	selected, err := s.store.Get(ctx, sessionID, key)
	if err != nil {
		return nil, fmt.Errorf("load selection: %w", err)
	}

	return subtract(selected, booked), nil
}

func (s *service) ClearSelection(ctx context.Context, sessionID string, key RouteKey) error {
	return s.store.Clear(ctx, sessionID, key)
}

// fetchBooked loads occupancy for the key. The server may return a
// superset; the exact-match filter here is authoritative (sl_no is
// compared as a string, matching how the remote stores it).
func (s *service) fetchBooked(ctx context.Context, key RouteKey) ([]string, error) {
	records, err := s.client.GetSeatsFor(ctx, key.SlNo, key.Date, key.Timing)
	if err != nil {
		return nil, err
	}

	slNo := strconv.Itoa(key.SlNo)
	var booked []string
	for _, rec := range records {
		if string(rec.SlNo) == slNo && rec.Date == key.Date && rec.DepartureTimings == key.Timing {
			booked = append(booked, rec.SelectedSeat)
		}
	}
	return booked, nil
}

func (s *service) buildBoard(key RouteKey, booked, selected []string) *Board {
	return &Board{
		Key:           key,
		Booked:        booked,
		Selected:      selected,
		NewlySelected: subtract(selected, booked),
		Decks:         BuildDecks(booked, selected),
	}
}

// subtract returns the labels in a that are not in b, preserving order.
func subtract(a, b []string) []string {
	bSet := toSet(b)
	var out []string
	for _, label := range a {
		if !bSet[label] {
			out = append(out, label)
		}
	}
	return out
}
