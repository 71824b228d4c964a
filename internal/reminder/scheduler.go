package reminder

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Default schedules. The dev interval only runs outside production so local
// setups exercise the reminder path without waiting for 9 AM.
const (
	DailySpec       = "0 9 * * *"
	DevIntervalSpec = "*/30 * * * *"
)

// Scheduler drives the reminder service on cron schedules.
type Scheduler struct {
	cron    *cron.Cron
	service *Service
	log     *logrus.Entry
}

// NewScheduler wires the reminder service into a cron runner. When
// environment is anything but "production" the dev interval schedule is
// added alongside the daily one.
func NewScheduler(service *Service, environment string, log *logrus.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(),
		service: service,
		log:     log.WithField("component", "reminder-scheduler"),
	}

	tick := func() {
		if _, err := service.RunOnce(context.Background()); err != nil {
			s.log.WithError(err).Error("scheduled reminder run failed")
		}
	}

	if _, err := s.cron.AddFunc(DailySpec, tick); err != nil {
		return nil, fmt.Errorf("adding daily reminder schedule: %w", err)
	}
	if environment != "production" {
		if _, err := s.cron.AddFunc(DevIntervalSpec, tick); err != nil {
			return nil, fmt.Errorf("adding dev reminder schedule: %w", err)
		}
		s.log.WithField("interval", DevIntervalSpec).Info("dev reminder schedule enabled")
	}

	return s, nil
}

// Start begins the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.WithField("daily", DailySpec).Info("reminder scheduler started")
}

// Stop halts the cron loop and waits for any in-flight run to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("reminder scheduler stopped")
}
