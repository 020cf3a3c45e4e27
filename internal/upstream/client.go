package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"busly/internal/shared/config"
	"busly/pkg/logger"
)

// ErrUnavailable marks any failure to complete a call against the remote
// reservation service: connection errors, timeouts, and non-2xx replies.
// Callers classify on it with errors.Is.
var ErrUnavailable = errors.New("reservation service unavailable")

// Client talks to the remote reservation service. The service is the
// source of truth for every persisted record; busly only reads and
// writes through these five endpoints.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// NewClient builds a client with an explicit request timeout. The remote
// service enforces no latency bound of its own, so the client must.
func NewClient(cfg config.UpstreamConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		log:     log,
	}
}

// GetRoutes fetches the full route directory.
func (c *Client) GetRoutes(ctx context.Context) ([]Route, error) {
	var env routesEnvelope
	if err := c.getJSON(ctx, "/api/getroutes/", nil, &env); err != nil {
		return nil, err
	}
	return env.Rows, nil
}

// GetSeats fetches every persisted reservation record. Used by the
// cancellation and ticket-confirmation lookups.
func (c *Client) GetSeats(ctx context.Context) ([]SeatRecord, error) {
	var env seatsEnvelope
	if err := c.getJSON(ctx, "/api/getseats/", nil, &env); err != nil {
		return nil, err
	}
	return env.Seats, nil
}

// GetSeatsFor fetches reservation records for one (route, date, timing)
// key. The server-side filter is a hint only: callers must still filter
// by exact match.
func (c *Client) GetSeatsFor(ctx context.Context, slNo int, date, timing string) ([]SeatRecord, error) {
	params := url.Values{}
	params.Set("sl_no", strconv.Itoa(slNo))
	params.Set("date", date)
	params.Set("departure_timings", timing)

	var env seatsEnvelope
	if err := c.getJSON(ctx, "/api/getseats/", params, &env); err != nil {
		return nil, err
	}
	return env.Seats, nil
}

// ReserveSeat persists one passenger booking record.
func (c *Client) ReserveSeat(ctx context.Context, req ReserveRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal reserve request: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/api/reserveseats/", bytes.NewReader(body), nil)
}

// DeleteSeat removes the record with the given ticket number.
func (c *Client) DeleteSeat(ctx context.Context, ticketNumber string) error {
	path := "/api/deleteseat/" + url.PathEscape(ticketNumber) + "/"
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, dest interface{}) error {
	if len(params) > 0 {
		path = path + "?" + params.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil, dest)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, dest interface{}) error {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.LogUpstreamCall(ctx, method, path, 0, time.Since(start), err)
		return fmt.Errorf("%s %s: %w: %v", method, path, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.log.LogUpstreamCall(ctx, method, path, resp.StatusCode, time.Since(start), nil)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: %w: unexpected status %d", method, path, ErrUnavailable, resp.StatusCode)
	}

	if dest == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%s %s: %w: decode response: %v", method, path, ErrUnavailable, err)
	}
	return nil
}
