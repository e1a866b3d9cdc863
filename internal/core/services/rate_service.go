package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/comitanigiacomo/mishabitos-api/internal/core/domain"
	"github.com/comitanigiacomo/mishabitos-api/internal/logger"
)

// DefaultRateRetryBackoff is how long a failed refresh is not retried.
const DefaultRateRetryBackoff = time.Minute

type RateProvider interface {
	FetchDollar(ctx context.Context) (*domain.DollarRate, error)
}

type rateEntry struct {
	rate      domain.DollarRate
	fetchedAt time.Time
}

func (e *rateEntry) expired(now time.Time, ttl time.Duration) bool {
	return e == nil || now.Sub(e.fetchedAt) >= ttl
}

// RateService serves the dollar rate from a single cached entry. A failed
// refresh falls back to the last known rate, flagged as stale, and the
// source is left alone until the retry backoff elapses. Concurrent
// refreshes share one fetch.
type RateService struct {
	provider RateProvider
	ttl      time.Duration
	backoff  time.Duration
	now      func() time.Time
	flight   singleflight.Group

	mu      sync.Mutex
	entry   *rateEntry
	retryAt time.Time
}

func NewRateService(provider RateProvider, ttl time.Duration) *RateService {
	return &RateService{
		provider: provider,
		ttl:      ttl,
		backoff:  DefaultRateRetryBackoff,
		now:      time.Now,
	}
}

func (s *RateService) GetDollarRate(ctx context.Context) (*domain.DollarRate, error) {
	now := s.now()

	s.mu.Lock()
	entry, retryAt := s.entry, s.retryAt
	s.mu.Unlock()

	if !entry.expired(now, s.ttl) {
		rate := entry.rate
		return &rate, nil
	}
	if now.Before(retryAt) {
		return staleOrUnavailable(entry)
	}

	v, err, _ := s.flight.Do("dollar", func() (interface{}, error) {
		return s.refresh(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}

	rate := *v.(*domain.DollarRate)
	return &rate, nil
}

func (s *RateService) refresh(ctx context.Context) (*domain.DollarRate, error) {
	fresh, err := s.provider.FetchDollar(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if err != nil {
		s.retryAt = now.Add(s.backoff)
		if s.entry == nil {
			logger.Ctx(ctx).Error("dollar rate unavailable", "error", err, "retry_at", s.retryAt)
		} else {
			logger.Ctx(ctx).Warn("serving stale dollar rate", "error", err, "fetched_at", s.entry.fetchedAt, "retry_at", s.retryAt)
		}
		return staleOrUnavailable(s.entry)
	}

	fresh.FetchedAt = now
	fresh.Stale = false
	s.entry = &rateEntry{rate: *fresh, fetchedAt: now}
	s.retryAt = time.Time{}

	rate := *fresh
	return &rate, nil
}

func staleOrUnavailable(entry *rateEntry) (*domain.DollarRate, error) {
	if entry == nil {
		return nil, domain.ErrRateUnavailable
	}
	rate := entry.rate
	rate.Stale = true
	return &rate, nil
}
