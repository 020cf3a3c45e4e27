package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"busly/internal/shared/config"
	"busly/pkg/logger"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.UpstreamConfig{
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	}, logger.New())
}

func TestGetRoutesDecodesLooseFieldTypes(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/getroutes/" {
			http.NotFound(w, r)
			return
		}
		// sl_no as number and as string, route_length likewise.
		fmt.Fprint(w, `{"rows": [
			{"sl_no": 1, "from_location": "A", "to_location": "B", "departure_timings": "10.30AM", "route_length": 12.5},
			{"sl_no": "2", "from_location": "A", "to_location": "C", "departure_timings": "6.00AM", "route_length": "20"}
		]}`)
	}))

	rows, err := client.GetRoutes(context.Background())
	if err != nil {
		t.Fatalf("getroutes error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].SlNo != "1" || rows[1].SlNo != "2" {
		t.Fatalf("sl_no not normalised: %q %q", rows[0].SlNo, rows[1].SlNo)
	}
	if rows[1].RouteLength != 20 {
		t.Fatalf("quoted route_length not decoded: %v", rows[1].RouteLength)
	}
}

func TestGetSeatsForSendsFilterParams(t *testing.T) {
	var gotQuery map[string]string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"sl_no":             r.URL.Query().Get("sl_no"),
			"date":              r.URL.Query().Get("date"),
			"departure_timings": r.URL.Query().Get("departure_timings"),
		}
		fmt.Fprint(w, `{"seats": []}`)
	}))

	if _, err := client.GetSeatsFor(context.Background(), 7, "2024-03-05", "10.30AM"); err != nil {
		t.Fatalf("getseatsfor error: %v", err)
	}
	if gotQuery["sl_no"] != "7" || gotQuery["date"] != "2024-03-05" || gotQuery["departure_timings"] != "10.30AM" {
		t.Fatalf("filter params not sent: %v", gotQuery)
	}
}

func TestReserveSeatPostsJSONBody(t *testing.T) {
	var got ReserveRequest
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/reserveseats/" {
			http.NotFound(w, r)
			return
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))

	err := client.ReserveSeat(context.Background(), ReserveRequest{
		SlNo:         1,
		Date:         "2024-03-05",
		SelectedSeat: "U5",
		TicketNumber: "1202403051030AM105",
		TicketPrice:  25,
	})
	if err != nil {
		t.Fatalf("reserve error: %v", err)
	}
	if got.SelectedSeat != "U5" || got.TicketPrice != 25 {
		t.Fatalf("body not round-tripped: %+v", got)
	}
}

func TestDeleteSeatHitsTicketNumberPath(t *testing.T) {
	var gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if r.Method != http.MethodDelete {
			http.Error(w, "method", http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.DeleteSeat(context.Background(), "1202403051030AM105"); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if gotPath != "/api/deleteseat/1202403051030AM105/" {
		t.Fatalf("unexpected path %q", gotPath)
	}
}

func TestNon2xxIsUnavailable(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	if _, err := client.GetRoutes(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable on 500, got %v", err)
	}
}

func TestConnectionErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse all connections

	client := NewClient(config.UpstreamConfig{
		BaseURL: srv.URL,
		Timeout: time.Second,
	}, logger.New())

	if _, err := client.GetSeats(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable on connection error, got %v", err)
	}
}

func TestMalformedBodyIsUnavailable(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>not json</html>`)
	}))

	if _, err := client.GetRoutes(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable on malformed body, got %v", err)
	}
}

func TestFlexFieldEdgeValues(t *testing.T) {
	var fs FlexString
	if err := json.Unmarshal([]byte(`null`), &fs); err != nil || fs != "" {
		t.Fatalf("null FlexString: %v %q", err, fs)
	}
	if err := json.Unmarshal([]byte(`12.5`), &fs); err != nil || fs != "12.5" {
		t.Fatalf("numeric FlexString: %v %q", err, fs)
	}

	var ff FlexFloat
	if err := json.Unmarshal([]byte(`""`), &ff); err != nil || ff != 0 {
		t.Fatalf("empty-string FlexFloat: %v %v", err, ff)
	}
	if err := json.Unmarshal([]byte(`"12.5"`), &ff); err != nil || ff != 12.5 {
		t.Fatalf("quoted FlexFloat: %v %v", err, ff)
	}
	if err := json.Unmarshal([]byte(`"abc"`), &ff); err == nil {
		t.Fatalf("non-numeric FlexFloat must error")
	}
}
