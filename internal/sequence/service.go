package sequence

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/nairmotors/dealerbook-backend/pkg/logger"
)

// counterCache is the subset of the redis client the advisory path needs.
type counterCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CounterKey(name string) string
}

// Service exposes counter reads that do not allocate. The authoritative
// Next() lives on the repository and only runs inside a transaction.
type Service interface {
	Peek(ctx context.Context, name string) (int64, error)
	NextAdvisory(ctx context.Context, name string) (int64, error)
	RefreshAdvisory(ctx context.Context, name string, value int64)
}

type service struct {
	repo  Repository
	cache counterCache
	ttl   time.Duration
	logg  *logger.Logger
}

// NewService wires a sequence service. The cache is optional; without it
// advisory reads always hit the database.
func NewService(repo Repository, cache counterCache, ttl time.Duration, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sequence repository required")
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &service{repo: repo, cache: cache, ttl: ttl, logg: logg}, nil
}

func (s *service) Peek(ctx context.Context, name string) (int64, error) {
	return s.repo.Peek(ctx, name)
}

// NextAdvisory returns the number the next allocation would most likely get.
// The value is for display only and carries no reservation: another caller
// may take it first.
func (s *service) NextAdvisory(ctx context.Context, name string) (int64, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, s.cache.CounterKey(name))
		if err == nil {
			if current, parseErr := strconv.ParseInt(raw, 10, 64); parseErr == nil {
				return current + 1, nil
			}
		}
	}

	current, err := s.repo.Peek(ctx, name)
	if err != nil {
		return 0, err
	}
	s.RefreshAdvisory(ctx, name, current)
	return current + 1, nil
}

// RefreshAdvisory updates the cached counter value. Failures are logged and
// swallowed; the cache is an optimization, not a source of truth.
func (s *service) RefreshAdvisory(ctx context.Context, name string, value int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, s.cache.CounterKey(name), value, s.ttl); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithField(ctx, "counter", name), "failed to refresh counter cache")
	}
}
