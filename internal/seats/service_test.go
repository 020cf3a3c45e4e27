package seats

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"busly/internal/routes"
	"busly/internal/shared/config"
	"busly/internal/upstream"
	"busly/pkg/logger"
)

type stubDirectory struct {
	route *routes.Route
}

func (d *stubDirectory) BySlNo(_ context.Context, slNo int) (*routes.Route, error) {
	if d.route == nil || d.route.SlNo != slNo {
		return nil, routes.ErrNoMatch
	}
	return d.route, nil
}

// fakeUpstream serves /api/getseats/ with a fixed record set and counts
// hits. The set deliberately contains records for other keys: the
// service must filter them out itself.
func fakeUpstream(t *testing.T, records []upstream.SeatRecord, hits *int64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/getseats/", func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt64(hits, 1)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"seats": records})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestService(t *testing.T, srv *httptest.Server) (Service, SelectionStore) {
	t.Helper()
	client := upstream.NewClient(config.UpstreamConfig{
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	}, logger.New())
	store := NewMemoryStore()
	directory := &stubDirectory{route: &routes.Route{
		SlNo:             1,
		FromLocation:     "Hyderabad",
		ToLocation:       "Bangalore",
		DepartureTimings: []string{"10.30AM", "9.15PM"},
		RouteLength:      12.5,
	}}
	return NewService(client, store, directory), store
}

func testRecords() []upstream.SeatRecord {
	return []upstream.SeatRecord{
		{SlNo: "1", Date: "2024-03-05", DepartureTimings: "10.30AM", SelectedSeat: "U1", TicketNumber: "t1"},
		{SlNo: "1", Date: "2024-03-05", DepartureTimings: "10.30AM", SelectedSeat: "L4", TicketNumber: "t2"},
		// Same route, different timing: must not count as booked.
		{SlNo: "1", Date: "2024-03-05", DepartureTimings: "9.15PM", SelectedSeat: "U2", TicketNumber: "t3"},
		// Different date.
		{SlNo: "1", Date: "2024-03-06", DepartureTimings: "10.30AM", SelectedSeat: "U3", TicketNumber: "t4"},
		// Different route.
		{SlNo: "2", Date: "2024-03-05", DepartureTimings: "10.30AM", SelectedSeat: "U4", TicketNumber: "t5"},
	}
}

var testKey = RouteKey{SlNo: 1, Date: "2024-03-05", Timing: "10.30AM"}

func TestBoardFiltersBookedByExactKey(t *testing.T) {
	srv := fakeUpstream(t, testRecords(), nil)
	svc, _ := newTestService(t, srv)

	board, err := svc.Board(context.Background(), "session-a", testKey)
	if err != nil {
		t.Fatalf("board error: %v", err)
	}

	if len(board.Booked) != 2 {
		t.Fatalf("expected 2 booked seats after filtering, got %v", board.Booked)
	}
	got := map[string]bool{board.Booked[0]: true, board.Booked[1]: true}
	if !got["U1"] || !got["L4"] {
		t.Fatalf("unexpected booked set: %v", board.Booked)
	}
}

func TestToggleBookedSeatIsNoOp(t *testing.T) {
	srv := fakeUpstream(t, testRecords(), nil)
	svc, _ := newTestService(t, srv)
	ctx := context.Background()

	board, err := svc.Toggle(ctx, "session-a", testKey, "U1")
	if err != nil {
		t.Fatalf("toggle error: %v", err)
	}
	if len(board.Selected) != 0 {
		t.Fatalf("clicking a booked seat must not select it, got %v", board.Selected)
	}
}

func TestToggleIsIdempotentOnDoubleClick(t *testing.T) {
	srv := fakeUpstream(t, testRecords(), nil)
	svc, _ := newTestService(t, srv)
	ctx := context.Background()

	board, err := svc.Toggle(ctx, "session-a", testKey, "U5")
	if err != nil {
		t.Fatalf("first toggle error: %v", err)
	}
	if len(board.Selected) != 1 || board.Selected[0] != "U5" {
		t.Fatalf("expected U5 selected, got %v", board.Selected)
	}

	board, err = svc.Toggle(ctx, "session-a", testKey, "U5")
	if err != nil {
		t.Fatalf("second toggle error: %v", err)
	}
	if len(board.Selected) != 0 {
		t.Fatalf("double-click must return to prior state, got %v", board.Selected)
	}
}

func TestToggleRejectsInvalidLabel(t *testing.T) {
	srv := fakeUpstream(t, testRecords(), nil)
	svc, _ := newTestService(t, srv)

	if _, err := svc.Toggle(context.Background(), "session-a", testKey, "U99"); !errors.Is(err, ErrInvalidSeat) {
		t.Fatalf("expected ErrInvalidSeat, got %v", err)
	}
}

func TestKeyChangeStartsFromEmptySelection(t *testing.T) {
	srv := fakeUpstream(t, testRecords(), nil)
	svc, _ := newTestService(t, srv)
	ctx := context.Background()

	if _, err := svc.Toggle(ctx, "session-a", testKey, "U5"); err != nil {
		t.Fatalf("toggle error: %v", err)
	}

	otherKey := RouteKey{SlNo: 1, Date: "2024-03-05", Timing: "9.15PM"}
	board, err := svc.Board(ctx, "session-a", otherKey)
	if err != nil {
		t.Fatalf("board error: %v", err)
	}
	if len(board.Selected) != 0 {
		t.Fatalf("changed key must start empty, got %v", board.Selected)
	}

	// The original key still holds its selection.
	board, err = svc.Board(ctx, "session-a", testKey)
	if err != nil {
		t.Fatalf("board error: %v", err)
	}
	if len(board.Selected) != 1 || board.Selected[0] != "U5" {
		t.Fatalf("original key lost its selection: %v", board.Selected)
	}
}

func TestIncompleteKeyYieldsEmptyBoardWithoutUpstreamCall(t *testing.T) {
	var hits int64
	srv := fakeUpstream(t, testRecords(), &hits)
	svc, _ := newTestService(t, srv)

	board, err := svc.Board(context.Background(), "session-a", RouteKey{SlNo: 1, Date: "2024-03-05"})
	if err != nil {
		t.Fatalf("board error: %v", err)
	}
	if len(board.Booked) != 0 || len(board.Selected) != 0 {
		t.Fatalf("incomplete key must yield empty sets, got booked=%v selected=%v", board.Booked, board.Selected)
	}
	if atomic.LoadInt64(&hits) != 0 {
		t.Fatalf("incomplete key must not contact upstream, got %d calls", hits)
	}
}

func TestSelectionsAreSessionScoped(t *testing.T) {
	srv := fakeUpstream(t, testRecords(), nil)
	svc, _ := newTestService(t, srv)
	ctx := context.Background()

	if _, err := svc.Toggle(ctx, "session-a", testKey, "U5"); err != nil {
		t.Fatalf("toggle error: %v", err)
	}

	board, err := svc.Board(ctx, "session-b", testKey)
	if err != nil {
		t.Fatalf("board error: %v", err)
	}
	if len(board.Selected) != 0 {
		t.Fatalf("another session must not see the selection, got %v", board.Selected)
	}
}

func TestConfirmRejectsEmptySelection(t *testing.T) {
	srv := fakeUpstream(t, testRecords(), nil)
	svc, _ := newTestService(t, srv)

	if _, err := svc.Confirm(context.Background(), "session-a", testKey); !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
}

func TestConfirmPricesNewlySelectedSeats(t *testing.T) {
	srv := fakeUpstream(t, testRecords(), nil)
	svc, store := newTestService(t, srv)
	ctx := context.Background()

	// Seed a selection that includes a booked seat; only newly
	// selected seats may be priced and submitted.
	if err := store.Put(ctx, "session-a", testKey, []string{"U1", "U5", "L7"}); err != nil {
		t.Fatalf("seed selection: %v", err)
	}

	draft, err := svc.Confirm(ctx, "session-a", testKey)
	if err != nil {
		t.Fatalf("confirm error: %v", err)
	}

	if len(draft.Seats) != 2 {
		t.Fatalf("expected 2 draft seats, got %v", draft.Seats)
	}
	if draft.TotalPrice != 50 { // 2 * 12.5 * 2 seats
		t.Fatalf("expected total price 50, got %v", draft.TotalPrice)
	}
	for _, ds := range draft.Seats {
		if ds.Price != 25 {
			t.Fatalf("expected per-seat price 25, got %v", ds.Price)
		}
		if ds.TicketNumber == "" {
			t.Fatalf("draft seat %q missing ticket number", ds.Seat)
		}
	}
	if draft.FromLocation != "Hyderabad" || draft.ToLocation != "Bangalore" {
		t.Fatalf("unexpected route on draft: %s -> %s", draft.FromLocation, draft.ToLocation)
	}
}
