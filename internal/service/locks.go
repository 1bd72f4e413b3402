package service

import "sync"

// PortfolioLocks hands out one RWMutex per portfolio ID so that mutations of
// different portfolios never wait on each other.
// Writers take Lock; readers that must not observe a half-applied mutation take RLock.
// An entry lives only while some goroutine holds or waits for it, so lookups
// of IDs that do not exist leave nothing behind.
type PortfolioLocks struct {
	mu    sync.Mutex            // Protects the map itself
	locks map[string]*lockEntry // Map of portfolio_id -> mutex
}

type lockEntry struct {
	sync.RWMutex
	refs int
}

// NewPortfolioLocks creates an empty lock set.
func NewPortfolioLocks() *PortfolioLocks {
	return &PortfolioLocks{
		locks: make(map[string]*lockEntry),
	}
}

func (l *PortfolioLocks) acquire(portfolioID string) *lockEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.locks[portfolioID]
	if !ok {
		e = &lockEntry{}
		l.locks[portfolioID] = e
	}
	e.refs++
	return e
}

func (l *PortfolioLocks) release(portfolioID string, e *lockEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.locks, portfolioID)
	}
}

// Lock takes the write lock for portfolioID and returns its release func.
func (l *PortfolioLocks) Lock(portfolioID string) func() {
	e := l.acquire(portfolioID)
	e.Lock()
	return func() {
		e.Unlock()
		l.release(portfolioID, e)
	}
}

// RLock takes the read lock for portfolioID and returns its release func.
func (l *PortfolioLocks) RLock(portfolioID string) func() {
	e := l.acquire(portfolioID)
	e.RLock()
	return func() {
		e.RUnlock()
		l.release(portfolioID, e)
	}
}

// Len returns the number of portfolios currently locked or waited on.
func (l *PortfolioLocks) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
