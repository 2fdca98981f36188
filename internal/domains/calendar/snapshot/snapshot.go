// Package snapshot keeps the latest list of bookings in memory and re-fetches it on a fixed
// interval. Day classification reads from here; acceptance checks call Refresh to work on a fresh
// copy.
package snapshot

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"guesthouse/config"
	"guesthouse/internal/domains/booking/model"
	"guesthouse/internal/domains/booking/repository"
	"guesthouse/shared/metrics"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
)

type Refresher struct {
	repo     repository.Booking
	interval time.Duration

	// issued numbers fetches in start order; applied is the newest one stored.
	issued atomic.Uint64

	mu       sync.RWMutex
	bookings []model.Booking
	loaded   bool
	applied  uint64

	lifecycle sync.Mutex
	cancel    context.CancelFunc
	done      chan struct{}
}

func New(cfg *config.Config, repo repository.Booking) *Refresher {
	return NewWithInterval(repo, time.Duration(cfg.Booking.RefreshIntervalSeconds)*time.Second)
}

// NewWithInterval builds a Refresher with an explicit period. A non-positive interval only loads
// the snapshot on Start and on demand.
func NewWithInterval(repo repository.Booking, interval time.Duration) *Refresher {
	return &Refresher{
		repo:     repo,
		interval: interval,
	}
}

// Refresh re-fetches every booking and replaces the snapshot. On failure the previous snapshot is
// kept. When a fetch that started later has already been stored, its result wins and is returned
// instead.
func (r *Refresher) Refresh(ctx context.Context) ([]model.Booking, error) {
	generation := r.issued.Add(1)

	bookings, err := r.repo.ListAll(ctx)
	if err != nil {
		metrics.ObserveSnapshot(resultFailure, -1)

		return nil, fmt.Errorf("failed to refresh booking snapshot: %w", err)
	}

	r.mu.Lock()
	if generation > r.applied {
		r.bookings = bookings
		r.loaded = true
		r.applied = generation
	} else {
		log.Debug().Uint64("generation", generation).Uint64("applied", r.applied).Msg("discarding stale booking snapshot")

		bookings = r.bookings
	}
	r.mu.Unlock()

	metrics.ObserveSnapshot(resultSuccess, len(bookings))

	return slices.Clone(bookings), nil
}

// Bookings returns a copy of the snapshot, fetching it first if it was never loaded.
func (r *Refresher) Bookings(ctx context.Context) ([]model.Booking, error) {
	r.mu.RLock()
	bookings, loaded := r.bookings, r.loaded
	r.mu.RUnlock()

	if !loaded {
		return r.Refresh(ctx)
	}

	return slices.Clone(bookings), nil
}

// Start loads the snapshot and refreshes it every interval until ctx is done or Stop is called.
// Calling Start on a running Refresher does nothing.
func (r *Refresher) Start(ctx context.Context) {
	r.lifecycle.Lock()
	defer r.lifecycle.Unlock()

	if r.cancel != nil {
		return
	}

	if _, err := r.Refresh(ctx); err != nil {
		log.Error().Err(err).Msg("initial booking snapshot failed")
	}

	if r.interval <= 0 {
		log.Warn().Msg("booking snapshot refresh disabled")

		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	r.cancel = cancel
	r.done = done

	go func() {
		defer close(done)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if _, err := r.Refresh(ctx); err != nil && ctx.Err() == nil {
					log.Error().Err(err).Msg("scheduled booking snapshot refresh failed")
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	log.Info().Dur("interval", r.interval).Msg("booking snapshot refresh started")
}

// Stop ends the refresh loop and waits for it to exit.
func (r *Refresher) Stop() {
	r.lifecycle.Lock()
	defer r.lifecycle.Unlock()

	if r.cancel == nil {
		return
	}

	r.cancel()
	<-r.done

	r.cancel = nil
	r.done = nil

	log.Info().Msg("booking snapshot refresh stopped")
}
