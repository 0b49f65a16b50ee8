package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/i474232898/weather-epaper/internal/dashboard"
)

// DefaultInterval is used when the configured interval is not positive.
const DefaultInterval = 15 * time.Minute

// Refresher runs one display update.
type Refresher interface {
	Refresh(ctx context.Context) (dashboard.Frame, error)
}

// Scheduler periodically refreshes the display.
type Scheduler struct {
	scheduler *gocron.Scheduler
	refresher Refresher
	interval  time.Duration
	timeout   time.Duration
	log       *logrus.Entry
}

// New creates a new Scheduler. timeout bounds each refresh.
func New(refresher Refresher, interval, timeout time.Duration, log *logrus.Entry) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = logrus.WithField("component", "scheduler")
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		refresher: refresher,
		interval:  interval,
		timeout:   timeout,
		log:       log,
	}
}

// Start schedules the refresh job and starts the underlying scheduler. The
// first refresh runs immediately; a refresh still running when the next one
// is due makes that one skip.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.run)
	if err != nil {
		return err
	}
	s.log.Infof("refreshing every %s", s.interval)
	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) run() {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	frame, err := s.refresher.Refresh(ctx)
	if err != nil {
		s.log.WithError(err).Error("refresh failed")
		return
	}
	s.log.Debugf("refresh %s completed", frame.ID)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
