package routes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"busly/internal/shared/constants"
	"busly/internal/upstream"
	"busly/pkg/cache"
)

// ErrNoMatch is returned when a search or resolve yields zero routes.
// It is distinct from upstream.ErrUnavailable: the directory was
// reachable but holds no matching row.
var ErrNoMatch = errors.New("no matching route")

// Service is the route directory: the deduplicated view over the remote
// route list that drives the search flow.
type Service interface {
	List(ctx context.Context) ([]Route, error)
	Origins(ctx context.Context) ([]string, error)
	Destinations(ctx context.Context, from string) ([]string, error)
	Timings(ctx context.Context, from, to string) ([]string, error)
	Resolve(ctx context.Context, from, to, timing string) (*Route, error)
	BySlNo(ctx context.Context, slNo int) (*Route, error)
}

type service struct {
	client       *upstream.Client
	cacheService cache.Service
	cacheTTL     time.Duration
}

// NewService creates a route directory backed by the remote service.
// cacheService may be nil, in which case every call hits upstream.
func NewService(client *upstream.Client, cacheService cache.Service, cacheTTL time.Duration) Service {
	return &service{
		client:       client,
		cacheService: cacheService,
		cacheTTL:     cacheTTL,
	}
}

func (s *service) List(ctx context.Context) ([]Route, error) {
	if s.cacheService == nil {
		return s.fetch(ctx)
	}

	var routes []Route
	err := s.cacheService.GetOrSet(ctx, constants.RouteDirectoryKey(), s.cacheTTL,
		func() (interface{}, error) {
			return s.fetch(ctx)
		}, &routes)
	if err != nil {
		// GetOrSet wraps fetcher failures; unwrap to keep the
		// upstream sentinel classifiable.
		if errors.Is(err, upstream.ErrUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("route directory: %w", err)
	}
	return routes, nil
}

func (s *service) fetch(ctx context.Context) ([]Route, error) {
	rows, err := s.client.GetRoutes(ctx)
	if err != nil {
		return nil, err
	}
	routes := make([]Route, 0, len(rows))
	for _, row := range rows {
		routes = append(routes, fromUpstream(row))
	}
	return routes, nil
}

// Origins returns the unique from-locations in first-seen order.
func (s *service) Origins(ctx context.Context) ([]string, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var origins []string
	for _, r := range all {
		if !seen[r.FromLocation] {
			seen[r.FromLocation] = true
			origins = append(origins, r.FromLocation)
		}
	}
	return origins, nil
}

// Destinations returns the unique to-locations reachable from the given
// origin.
func (s *service) Destinations(ctx context.Context, from string) ([]string, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var destinations []string
	for _, r := range all {
		if r.FromLocation != from {
			continue
		}
		if !seen[r.ToLocation] {
			seen[r.ToLocation] = true
			destinations = append(destinations, r.ToLocation)
		}
	}
	if len(destinations) == 0 {
		return nil, fmt.Errorf("no destinations from %q: %w", from, ErrNoMatch)
	}
	return destinations, nil
}

// Timings returns every departure timing offered on the (from, to) pair,
// across all routes serving it.
func (s *service) Timings(ctx context.Context, from, to string) ([]string, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	var timings []string
	for _, r := range all {
		if r.FromLocation == from && r.ToLocation == to {
			timings = append(timings, r.DepartureTimings...)
		}
	}
	if len(timings) == 0 {
		return nil, fmt.Errorf("no timings for %q -> %q: %w", from, to, ErrNoMatch)
	}
	return timings, nil
}

// Resolve finds the concrete route serving (from, to) at the given
// departure timing.
func (s *service) Resolve(ctx context.Context, from, to, timing string) (*Route, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, r := range all {
		if r.FromLocation == from && r.ToLocation == to && r.HasTiming(timing) {
			route := r
			return &route, nil
		}
	}
	return nil, fmt.Errorf("no route %q -> %q at %q: %w", from, to, timing, ErrNoMatch)
}

// BySlNo finds a route by its service number.
func (s *service) BySlNo(ctx context.Context, slNo int) (*Route, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, r := range all {
		if r.SlNo == slNo {
			route := r
			return &route, nil
		}
	}
	return nil, fmt.Errorf("no route with sl_no %d: %w", slNo, ErrNoMatch)
}
