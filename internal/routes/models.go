package routes

import (
	"strconv"
	"strings"

	"busly/internal/upstream"
)

// Route is a scheduled bus service between two named locations. Routes
// are fetched from the remote service and are read-only for the session.
type Route struct {
	SlNo             int      `json:"sl_no"`
	FromLocation     string   `json:"from_location"`
	ToLocation       string   `json:"to_location"`
	DepartureTimings []string `json:"departure_timings"`
	RouteLength      float64  `json:"route_length"`
}

// HasTiming reports whether the route departs at the given timing.
func (r Route) HasTiming(timing string) bool {
	for _, t := range r.DepartureTimings {
		if t == timing {
			return true
		}
	}
	return false
}

func fromUpstream(row upstream.Route) Route {
	slNo, _ := strconv.Atoi(string(row.SlNo))
	return Route{
		SlNo:             slNo,
		FromLocation:     row.FromLocation,
		ToLocation:       row.ToLocation,
		DepartureTimings: splitTimings(row.DepartureTimings),
		RouteLength:      float64(row.RouteLength),
	}
}

// splitTimings splits the comma-joined departure_timings column.
func splitTimings(joined string) []string {
	parts := strings.Split(joined, ",")
	timings := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			timings = append(timings, t)
		}
	}
	return timings
}
