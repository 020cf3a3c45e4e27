package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"busly/internal/routes"
	"busly/internal/seats"
	"busly/internal/shared/config"
	"busly/internal/upstream"
	"busly/pkg/logger"
)

type fakeSeatBoard struct {
	mu      sync.Mutex
	newly   []string
	cleared bool
}

func (b *fakeSeatBoard) NewlySelected(_ context.Context, _ string, _ seats.RouteKey) ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.newly...), nil
}

func (b *fakeSeatBoard) ClearSelection(_ context.Context, _ string, _ seats.RouteKey) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cleared = true
	return nil
}

func (b *fakeSeatBoard) wasCleared() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cleared
}

type fakeDirectory struct{}

func (fakeDirectory) BySlNo(_ context.Context, slNo int) (*routes.Route, error) {
	if slNo != 1 {
		return nil, routes.ErrNoMatch
	}
	return &routes.Route{
		SlNo:             1,
		FromLocation:     "Hyderabad",
		ToLocation:       "Bangalore",
		DepartureTimings: []string{"10.30AM"},
		RouteLength:      12.5,
	}, nil
}

// reserveRecorder is an upstream stub for /api/reserveseats/ that can be
// told to fail specific seats.
type reserveRecorder struct {
	mu       sync.Mutex
	received []upstream.ReserveRequest
	failSeat string
}

func (r *reserveRecorder) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/reserveseats/", func(w http.ResponseWriter, req *http.Request) {
		var body upstream.ReserveRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		r.mu.Lock()
		r.received = append(r.received, body)
		fail := body.SelectedSeat == r.failSeat
		r.mu.Unlock()
		if fail {
			http.Error(w, "conflict", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
	return mux
}

func (r *reserveRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.received)
}

func newTestService(t *testing.T, rec *reserveRecorder, board *fakeSeatBoard) Service {
	t.Helper()
	srv := httptest.NewServer(rec.handler())
	t.Cleanup(srv.Close)

	client := upstream.NewClient(config.UpstreamConfig{
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	}, logger.New())
	return NewService(client, board, fakeDirectory{}, logger.New())
}

func passengers(seatLabels ...string) []PassengerForm {
	out := make([]PassengerForm, 0, len(seatLabels))
	for _, seat := range seatLabels {
		out = append(out, PassengerForm{
			Seat:         seat,
			Name:         "Asha Rao",
			Age:          30,
			Gender:       "female",
			MobileNumber: "9876543210",
		})
	}
	return out
}

func TestSubmitWritesOneRecordPerSeat(t *testing.T) {
	rec := &reserveRecorder{}
	board := &fakeSeatBoard{newly: []string{"U5", "L7"}}
	svc := newTestService(t, rec, board)

	result, err := svc.Submit(context.Background(), "session-a", SubmitBookingRequest{
		SlNo:       1,
		Date:       "2024-03-05",
		Timing:     "10.30AM",
		Passengers: passengers("U5", "L7"),
	})
	if err != nil {
		t.Fatalf("submit error: %v", err)
	}

	if !result.Confirmed {
		t.Fatalf("expected confirmed result: %+v", result)
	}
	if rec.count() != 2 {
		t.Fatalf("expected 2 upstream writes, got %d", rec.count())
	}
	if len(result.TicketNumbers) != 2 {
		t.Fatalf("expected 2 ticket numbers, got %v", result.TicketNumbers)
	}
	if result.PricePerSeat != 25 || result.TotalPrice != 50 {
		t.Fatalf("unexpected pricing: per-seat %v total %v", result.PricePerSeat, result.TotalPrice)
	}
	for _, item := range result.Items {
		if item.Status != "CONFIRMED" {
			t.Fatalf("unexpected item outcome: %+v", item)
		}
	}
	if !board.wasCleared() {
		t.Fatalf("selection must be cleared after a fully successful submit")
	}
}

func TestSubmitPartialFailureKeepsSelection(t *testing.T) {
	rec := &reserveRecorder{failSeat: "L7"}
	board := &fakeSeatBoard{newly: []string{"U5", "L7"}}
	svc := newTestService(t, rec, board)

	result, err := svc.Submit(context.Background(), "session-a", SubmitBookingRequest{
		SlNo:       1,
		Date:       "2024-03-05",
		Timing:     "10.30AM",
		Passengers: passengers("U5", "L7"),
	})
	if !errors.Is(err, ErrPartialFailure) {
		t.Fatalf("expected ErrPartialFailure, got %v", err)
	}
	if result == nil {
		t.Fatalf("partial failure must still return per-item outcomes")
	}
	if result.Confirmed {
		t.Fatalf("partial failure must not be confirmed")
	}

	byStatus := map[string]int{}
	for _, item := range result.Items {
		byStatus[item.Status]++
		if item.Status == "FAILED" && item.Seat != "L7" {
			t.Fatalf("wrong seat failed: %+v", item)
		}
	}
	if byStatus["CONFIRMED"] != 1 || byStatus["FAILED"] != 1 {
		t.Fatalf("expected one of each outcome, got %v", byStatus)
	}
	if len(result.TicketNumbers) != 1 {
		t.Fatalf("only confirmed seats carry ticket numbers, got %v", result.TicketNumbers)
	}
	if board.wasCleared() {
		t.Fatalf("selection must survive a partial failure so the rider can resubmit")
	}
}

func TestSubmitEmptySelectionMakesNoWrites(t *testing.T) {
	rec := &reserveRecorder{}
	board := &fakeSeatBoard{}
	svc := newTestService(t, rec, board)

	_, err := svc.Submit(context.Background(), "session-a", SubmitBookingRequest{
		SlNo:       1,
		Date:       "2024-03-05",
		Timing:     "10.30AM",
		Passengers: passengers("U5"),
	})
	if !errors.Is(err, seats.ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
	if rec.count() != 0 {
		t.Fatalf("no upstream writes expected, got %d", rec.count())
	}
}

func TestSubmitRejectsIneligibleSeat(t *testing.T) {
	rec := &reserveRecorder{}
	board := &fakeSeatBoard{newly: []string{"U5"}}
	svc := newTestService(t, rec, board)

	_, err := svc.Submit(context.Background(), "session-a", SubmitBookingRequest{
		SlNo:       1,
		Date:       "2024-03-05",
		Timing:     "10.30AM",
		Passengers: passengers("U6"),
	})
	if !errors.Is(err, ErrSeatNotEligible) {
		t.Fatalf("expected ErrSeatNotEligible, got %v", err)
	}
	if rec.count() != 0 {
		t.Fatalf("no upstream writes expected, got %d", rec.count())
	}
}

func TestSubmitRejectsDuplicateSeat(t *testing.T) {
	rec := &reserveRecorder{}
	board := &fakeSeatBoard{newly: []string{"U5"}}
	svc := newTestService(t, rec, board)

	_, err := svc.Submit(context.Background(), "session-a", SubmitBookingRequest{
		SlNo:       1,
		Date:       "2024-03-05",
		Timing:     "10.30AM",
		Passengers: passengers("U5", "U5"),
	})
	if !errors.Is(err, ErrSeatNotEligible) {
		t.Fatalf("expected ErrSeatNotEligible for duplicate, got %v", err)
	}
}

func TestSubmitRejectsUnservedTiming(t *testing.T) {
	rec := &reserveRecorder{}
	board := &fakeSeatBoard{newly: []string{"U5"}}
	svc := newTestService(t, rec, board)

	_, err := svc.Submit(context.Background(), "session-a", SubmitBookingRequest{
		SlNo:       1,
		Date:       "2024-03-05",
		Timing:     "4.00AM",
		Passengers: passengers("U5"),
	})
	if !errors.Is(err, routes.ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch for unserved timing, got %v", err)
	}
}

func TestSubmitFillsReservationFieldsFromRoute(t *testing.T) {
	rec := &reserveRecorder{}
	board := &fakeSeatBoard{newly: []string{"U5"}}
	svc := newTestService(t, rec, board)

	if _, err := svc.Submit(context.Background(), "session-a", SubmitBookingRequest{
		SlNo:       1,
		Date:       "2024-03-05",
		Timing:     "10.30AM",
		Passengers: passengers("U5"),
	}); err != nil {
		t.Fatalf("submit error: %v", err)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	got := rec.received[0]
	if got.FromLocation != "Hyderabad" || got.ToLocation != "Bangalore" {
		t.Fatalf("route fields not filled: %+v", got)
	}
	if got.TicketPrice != 25 {
		t.Fatalf("expected ticket price 25, got %v", got.TicketPrice)
	}
	if got.TicketNumber == "" || got.SelectedSeat != "U5" {
		t.Fatalf("seat/ticket fields not filled: %+v", got)
	}
}
