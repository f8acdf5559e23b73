/*
scheduler.go - Session timesheet expiry

PURPOSE:
  Timesheets are session state. SessionSweeper periodically deletes the
  ones nobody has touched for longer than the TTL, so a long-running
  process does not accumulate abandoned grids.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - A timesheet is stale when UpdatedAt is older than now - TTL
  - Every create, edit and calculation bumps UpdatedAt

CONFIGURATION:
  - TTL: Idle time before deletion (SESSION_TTL, default 12h)
  - CheckInterval: How often to sweep (SWEEP_INTERVAL, default 15m)
  - Enabled: Whether the sweeper runs (default: true)

USAGE:
  sweeper := NewSessionSweeper(store, logger)
  sweeper.Start()
  // ... later
  sweeper.Stop()

SEE ALSO:
  - payroll/timesheet.go: TimesheetStore.DeleteStale
*/
package api

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/warp/shift-payroll/payroll"
)

// SessionSweeper deletes idle timesheets.
type SessionSweeper struct {
	Store         payroll.TimesheetStore
	Logger        *logrus.Logger
	TTL           time.Duration
	CheckInterval time.Duration
	Enabled       bool

	now    func() time.Time
	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewSessionSweeper creates a new sweeper.
func NewSessionSweeper(store payroll.TimesheetStore, logger *logrus.Logger) *SessionSweeper {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &SessionSweeper{
		Store:         store,
		Logger:        logger,
		TTL:           12 * time.Hour,
		CheckInterval: 15 * time.Minute,
		Enabled:       true,
		now:           time.Now,
	}
}

// Start begins the sweeper.
func (s *SessionSweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.Enabled {
		s.Logger.Info("[Sweeper] Disabled, not starting")
		return
	}
	if s.ticker != nil {
		return
	}

	s.ticker = time.NewTicker(s.CheckInterval)
	s.stop = make(chan struct{})
	s.wg.Add(1)

	go s.run(s.ticker, s.stop)

	s.Logger.WithFields(logrus.Fields{
		"ttl":      s.TTL.String(),
		"interval": s.CheckInterval.String(),
		"next_run": s.NextRunTime().Format(time.RFC3339),
	}).Info("[Sweeper] Started")
}

// Stop stops the sweeper and waits for an in-flight sweep to finish.
func (s *SessionSweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ticker != nil {
		s.ticker.Stop()
		close(s.stop)
		s.wg.Wait()
		s.ticker = nil
		s.Logger.Info("[Sweeper] Stopped")
	}
}

func (s *SessionSweeper) run(ticker *time.Ticker, stop <-chan struct{}) {
	defer s.wg.Done()

	for {
		select {
		case <-ticker.C:
			s.RunNow(context.Background())
		case <-stop:
			return
		}
	}
}

// RunNow performs one sweep and returns how many timesheets were deleted.
func (s *SessionSweeper) RunNow(ctx context.Context) int {
	cutoff := s.now().Add(-s.TTL)

	n, err := s.Store.DeleteStale(ctx, cutoff)
	if err != nil {
		s.Logger.WithError(err).Error("[Sweeper] Failed to delete stale timesheets")
		return 0
	}
	if n > 0 {
		s.Logger.WithFields(logrus.Fields{
			"deleted": n,
			"cutoff":  cutoff.Format(time.RFC3339),
		}).Info("[Sweeper] Expired idle timesheets")
	}
	return n
}

// NextRunTime returns when the next scheduled sweep will occur.
func (s *SessionSweeper) NextRunTime() time.Time {
	return s.now().Add(s.CheckInterval)
}
