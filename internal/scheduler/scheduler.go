package scheduler

import (
	"context"
	"time"

	"github.com/Austin-SALVATORE/data-visual-water-quality/internal/logger"
	"github.com/Austin-SALVATORE/data-visual-water-quality/internal/quality"
	"github.com/go-co-op/gocron"
)

const probeTimeout = 30 * time.Second

// Prober is the part of the pipeline service the scheduler drives.
type Prober interface {
	ProbeAndStore(ctx context.Context) error
}

// Scheduler periodically probes the upstream API and records the outcome.
type Scheduler struct {
	scheduler *gocron.Scheduler
	prober    Prober
	interval  time.Duration
	log       logger.Logger
}

// New creates a new Scheduler. A non-positive interval disables probing.
func New(interval time.Duration, prober Prober, log logger.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		prober:    prober,
		interval:  interval,
		log:       log.WithField("component", "scheduler"),
	}
}

// Start schedules the probe job and starts the underlying scheduler. The
// first probe runs immediately.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.log.Info("upstream probe disabled; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()

		if err := s.prober.ProbeAndStore(ctx); err != nil {
			s.log.Errorf("upstream probe failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.log.Infof("probing upstream every %s", s.interval)
	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

var _ Prober = (*quality.Service)(nil)
