package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/armstrongwx/weather-duel/internal/weather"
)

// Scheduler periodically refreshes the comparison view, mirroring the
// dashboard's auto-refresh timer.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	interval  time.Duration
	log       *logrus.Logger
}

// New creates a new Scheduler.
func New(service *weather.Service, interval time.Duration, log *logrus.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		interval:  interval,
		log:       log,
	}
}

// Start schedules the periodic refresh job and starts the underlying
// scheduler. Ticks are skipped while auto-refresh is disabled in the
// active settings, so toggling the flag needs no restart.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 60
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		if !s.service.CurrentSettings().AutoRefresh {
			s.log.Debug("scheduler: auto-refresh disabled, skipping tick")
			return
		}

		s.log.Info("scheduler: running refresh job")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := s.service.Refresh(ctx); err != nil {
			if errors.Is(err, weather.ErrSuperseded) {
				s.log.Info("scheduler: refresh superseded by a manual request")
				return
			}
			s.log.WithError(err).Warn("scheduler: refresh failed, keeping previous view")
			return
		}
		s.log.Info("scheduler: completed refresh job")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
