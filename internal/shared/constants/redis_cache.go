package constants

import (
	"fmt"
	"strings"
	"time"
)

// Redis Cache Configuration
// This file centralizes all Redis keys and TTL values for busly.
// Pattern: busly:{module}:{operation}:{identifier}:{params?}

// ================== TTL DURATIONS ==================

const (
	// Route directory changes rarely; riders re-read it on every flow step.
	TTL_ROUTE_DIRECTORY = 15 * time.Minute

	// In-progress seat selections. TTL doubles as the invalidation rule:
	// an abandoned selection simply expires.
	TTL_SELECTION = 30 * time.Minute
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "busly"
)

// ================== ROUTES MODULE ==================

// RouteDirectoryKey is the cache key for the full upstream route list.
func RouteDirectoryKey() string {
	return fmt.Sprintf("%s:routes:directory", CACHE_PREFIX)
}

// ================== SEATS MODULE ==================

// SelectionKey scopes a rider's in-progress seat selection to one
// (session, route, date, timing) tuple. A change to any part of the
// tuple lands on a fresh, empty key.
func SelectionKey(sessionID string, slNo int, date, timing string) string {
	return fmt.Sprintf("%s:seats:selection:%s:%d:%s:%s",
		CACHE_PREFIX, sessionID, slNo, date, sanitizeKeyPart(timing))
}

// ================== RATE LIMITING ==================

// RateLimitKey builds the per-IP, per-class rate limit key.
func RateLimitKey(clientIP, limitType string) string {
	return fmt.Sprintf("%s:ratelimit:%s:%s", CACHE_PREFIX, clientIP, limitType)
}

// sanitizeKeyPart keeps departure timings like "10.30 AM" usable as a
// key segment.
func sanitizeKeyPart(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "_")
}
