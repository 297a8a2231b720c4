package schedule

import (
	"bytes"
	"context"
	"runtime"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"whale-alert-bot/internal/metrics"
)

// Job is one unit of scheduled work.
type Job func(ctx context.Context) error

// Scheduler runs Job once per Interval while the current time is inside
// Window. Clock and Location may be replaced before Start or Run.
type Scheduler struct {
	Clock    Clock
	Location *time.Location

	job      Job
	window   Window
	interval time.Duration
	metrics  *metrics.BotMetrics

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(job Job, window Window, interval time.Duration, m *metrics.BotMetrics) *Scheduler {
	return &Scheduler{
		Clock:    SystemClock{},
		Location: time.Local,
		job:      job,
		window:   window,
		interval: interval,
		metrics:  m,
	}
}

// Run loops until ctx is cancelled. It waits Interval after every cycle,
// whether the job ran or was skipped.
func (s *Scheduler) Run(ctx context.Context) error {
	log.Infof("🚀 Scheduler started, interval %s, active window %s", s.interval, s.window)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.tick(ctx)

		select {
		case <-ctx.Done():
			log.Info("Scheduler stopped.")
			return ctx.Err()
		case <-s.Clock.After(s.interval):
		}
	}
}

// Start runs the loop in a background goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Run(ctx)
	}()
}

// Stop cancels the loop and waits for the current cycle to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()

	s.mu.Lock()
	s.cancel = nil
	s.mu.Unlock()
}

func (s *Scheduler) tick(ctx context.Context) {
	now := s.Clock.Now()
	if s.Location != nil {
		now = now.In(s.Location)
	}

	if !s.window.Contains(now) {
		s.metrics.CyclesSkipped.Inc()
		log.Debugf("Outside active window %s at %s, skipping cycle", s.window, now.Format("15:04:05"))
		return
	}

	s.metrics.CyclesRun.Inc()
	log.Debugf("🔄 Running cycle at %s", now.Format("15:04:05"))
	s.runJob(ctx)
}

func (s *Scheduler) runJob(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			stackBuf := make([]byte, 4096)
			stackSize := runtime.Stack(stackBuf, false)
			stackTrace := bytes.TrimRight(stackBuf[:stackSize], "\x00")
			log.Errorf("🔥 Panic recovered in cycle: %v\nStack trace: %s", r, stackTrace)
			s.metrics.CycleErrors.Inc()
		}
	}()

	if err := s.job(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Errorf("❌ Cycle failed: %v", err)
		s.metrics.CycleErrors.Inc()
	}
}
