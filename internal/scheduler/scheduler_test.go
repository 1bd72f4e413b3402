package scheduler_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/niveshai/niveshai-backend/internal/model"
	"github.com/niveshai/niveshai-backend/internal/repository"
	"github.com/niveshai/niveshai-backend/internal/scheduler"
	"github.com/niveshai/niveshai-backend/internal/testutil"
)

type blockingRefresher struct {
	calls   atomic.Int32
	release chan struct{}
	err     error
}

func (b *blockingRefresher) RefreshAll(ctx context.Context) (model.BulkRefreshResponse, error) {
	b.calls.Add(1)
	if b.release != nil {
		<-b.release
	}
	return model.BulkRefreshResponse{Success: b.err == nil}, b.err
}

// TestNew tests schedule validation.
func TestNew(t *testing.T) {
	if _, err := scheduler.New("@every 1h", &blockingRefresher{}, 0); err != nil {
		t.Errorf("Expected valid schedule, got %v", err)
	}
	if _, err := scheduler.New("*/15 * * * *", &blockingRefresher{}, 0); err != nil {
		t.Errorf("Expected valid schedule, got %v", err)
	}
	if _, err := scheduler.New("not a schedule", &blockingRefresher{}, 0); err == nil {
		t.Error("Expected error for invalid schedule")
	}
}

// TestScheduler_Run tests a single run against the real service.
//
// WHY: The scheduled job must refresh stored portfolios exactly like the
// on-demand endpoint does.
func TestScheduler_Run(t *testing.T) {
	repo := repository.NewMemoryPortfolioRepository()
	prices := testutil.NewMockPriceLookup(map[string]float64{"A": 250})
	svc := testutil.NewTestPortfolioService(t, repo, prices)
	p := testutil.NewPortfolio().WithInvestment(testutil.NewInvestment("A").Build()).Build(t, repo)

	s, err := scheduler.New("@every 1h", svc, time.Second)
	if err != nil {
		t.Fatalf("New() returned unexpected error: %v", err)
	}
	s.Run()

	stored, _ := repo.Get(context.Background(), p.ID)
	if stored.Investments[0].CurrentPrice != 250 {
		t.Errorf("Expected refreshed price 250, got %v", stored.Investments[0].CurrentPrice)
	}
	if s.Runs() != 1 {
		t.Errorf("Expected 1 run, got %d", s.Runs())
	}
}

// TestScheduler_NoOverlap tests that a run is skipped while another is in progress.
func TestScheduler_NoOverlap(t *testing.T) {
	r := &blockingRefresher{release: make(chan struct{})}
	s, err := scheduler.New("@every 1h", r, 0)
	if err != nil {
		t.Fatalf("New() returned unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Run()
	}()

	deadline := time.Now().Add(time.Second)
	for r.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	s.Run() // skipped
	close(r.release)
	wg.Wait()

	if got := r.calls.Load(); got != 1 {
		t.Errorf("Expected 1 refresh call, got %d", got)
	}
	if s.Runs() != 1 {
		t.Errorf("Expected 1 completed run, got %d", s.Runs())
	}
}

// TestScheduler_RunError tests that a failed refresh is counted and does not panic.
func TestScheduler_RunError(t *testing.T) {
	r := &blockingRefresher{err: errors.New("storage down")}
	s, _ := scheduler.New("@every 1h", r, 0)
	s.Run()
	if s.Runs() != 1 || r.calls.Load() != 1 {
		t.Errorf("Expected one attempted run, got runs=%d calls=%d", s.Runs(), r.calls.Load())
	}
}

// TestScheduler_StartStop tests the cron lifecycle.
func TestScheduler_StartStop(t *testing.T) {
	s, _ := scheduler.New("@every 1h", &blockingRefresher{}, 0)
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
