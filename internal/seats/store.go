package seats

import (
	"context"
	"errors"
	"sync"
	"time"

	"busly/internal/shared/constants"
	"busly/pkg/cache"
)

// SelectionStore keeps a rider's in-progress seat selection, scoped to
// (session, route key). Implementations must return an empty selection
// for a key that has never been written: that is what makes a route-key
// change start from a clean slate.
type SelectionStore interface {
	Get(ctx context.Context, sessionID string, key RouteKey) ([]string, error)
	Put(ctx context.Context, sessionID string, key RouteKey, seats []string) error
	Clear(ctx context.Context, sessionID string, key RouteKey) error
}

// redisStore keeps selections in Redis with a TTL so abandoned
// selections expire on their own.
type redisStore struct {
	cache cache.Service
	ttl   time.Duration
}

func NewRedisStore(cacheService cache.Service, ttl time.Duration) SelectionStore {
	return &redisStore{cache: cacheService, ttl: ttl}
}

func (s *redisStore) Get(ctx context.Context, sessionID string, key RouteKey) ([]string, error) {
	var seats []string
	err := s.cache.Get(ctx, s.key(sessionID, key), &seats)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, nil
		}
		return nil, err
	}
	return seats, nil
}

func (s *redisStore) Put(ctx context.Context, sessionID string, key RouteKey, seats []string) error {
	return s.cache.Set(ctx, s.key(sessionID, key), seats, s.ttl)
}

func (s *redisStore) Clear(ctx context.Context, sessionID string, key RouteKey) error {
	return s.cache.Delete(ctx, s.key(sessionID, key))
}

func (s *redisStore) key(sessionID string, key RouteKey) string {
	return constants.SelectionKey(sessionID, key.SlNo, key.Date, key.Timing)
}

// memoryStore is an in-process SelectionStore used in tests and when
// running without Redis.
type memoryStore struct {
	mu   sync.Mutex
	data map[string][]string
}

func NewMemoryStore() SelectionStore {
	return &memoryStore{data: make(map[string][]string)}
}

func (s *memoryStore) Get(_ context.Context, sessionID string, key RouteKey) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seats := s.data[constants.SelectionKey(sessionID, key.SlNo, key.Date, key.Timing)]
	out := make([]string, len(seats))
	copy(out, seats)
	return out, nil
}

func (s *memoryStore) Put(_ context.Context, sessionID string, key RouteKey, seats []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]string, len(seats))
	copy(stored, seats)
	s.data[constants.SelectionKey(sessionID, key.SlNo, key.Date, key.Timing)] = stored
	return nil
}

func (s *memoryStore) Clear(_ context.Context, sessionID string, key RouteKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, constants.SelectionKey(sessionID, key.SlNo, key.Date, key.Timing))
	return nil
}
