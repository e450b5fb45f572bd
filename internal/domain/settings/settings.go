// Package settings exposes the server-configured payment discount values
// with client-side defaults applied whenever the backing fetch fails.
package settings

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rentkart/rentkart/internal/domain/pricing"
)

// Repository reads the stored payment settings.
type Repository interface {
	GetPayment(ctx context.Context) (*pricing.Config, error)
}

// cacheTTL bounds how long a fetched value is served without re-reading.
const cacheTTL = time.Minute

// Service caches the payment settings and falls back to the named defaults
// when the repository is unavailable. Callers always get a usable Config.
type Service struct {
	repo Repository
	lg   *zap.Logger
	now  func() time.Time

	mu        sync.Mutex
	cached    pricing.Config
	fetchedAt time.Time
}

// NewService creates a settings Service over the given repository.
func NewService(repo Repository, lg *zap.Logger) *Service {
	return &Service{repo: repo, lg: lg, now: time.Now}
}

// Payment returns the current payment discount configuration. A failed or
// pending fetch degrades to the defaults, never to an error.
func (s *Service) Payment(ctx context.Context) pricing.Config {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.fetchedAt.IsZero() && s.now().Sub(s.fetchedAt) < cacheTTL {
		return s.cached
	}

	cfg, err := s.repo.GetPayment(ctx)
	if err != nil {
		s.lg.Warn("payment settings fetch failed, using defaults", zap.Error(err))
		if s.fetchedAt.IsZero() {
			return pricing.DefaultConfig()
		}
		return s.cached
	}

	s.cached = *cfg
	s.fetchedAt = s.now()
	return s.cached
}
