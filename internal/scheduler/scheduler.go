// Package scheduler runs the periodic refresh of every portfolio.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/niveshai/niveshai-backend/internal/model"
)

// Refresher refreshes the prices of every portfolio.
type Refresher interface {
	RefreshAll(ctx context.Context) (model.BulkRefreshResponse, error)
}

// Scheduler triggers Refresher.RefreshAll on a cron schedule.
// Runs never overlap: a tick that fires while a refresh is still running is skipped.
type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	timeout   time.Duration

	mu      sync.Mutex
	running bool
	runs    int
}

// New creates a scheduler for the given cron schedule (standard five fields or a
// descriptor such as "@every 15m"). timeout bounds a single run; 0 means no limit.
func New(schedule string, refresher Refresher, timeout time.Duration) (*Scheduler, error) {
	s := &Scheduler{
		cron:      cron.New(),
		refresher: refresher,
		timeout:   timeout,
	}
	if _, err := s.cron.AddFunc(schedule, s.Run); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start begins running the schedule in the background.
func (s *Scheduler) Start() {
	log.Printf("scheduler: started")
	s.cron.Start()
}

// Stop halts the schedule and waits for a running refresh to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		log.Printf("scheduler: stopped")
	case <-ctx.Done():
		log.Printf("scheduler: stop timed out: %v", ctx.Err())
	}
}

// Run performs one refresh of every portfolio.
func (s *Scheduler) Run() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		log.Printf("scheduler: previous refresh still running, skipping")
		return
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.runs++
		s.mu.Unlock()
	}()

	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := s.refresher.RefreshAll(ctx)
	if err != nil {
		log.Printf("scheduler: refresh failed: %v", err)
		return
	}
	log.Printf("scheduler: refreshed %d portfolios in %s (%d prices updated, %d lookup errors, %d portfolio errors)",
		resp.TotalPortfolios, time.Since(start).Round(time.Millisecond), resp.TotalUpdated, resp.TotalErrors, len(resp.Errors))
}

// Runs returns the number of completed runs.
func (s *Scheduler) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}
