package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"rentaldesk-backend/internal/config"
	"rentaldesk-backend/internal/logger"
)

// Runner is the set of jobs the scheduler can trigger.
type Runner interface {
	Config() *config.Config
	AuditOrderPricing()
	CloseEndedForms()
}

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs Runner
}

// NewScheduler creates a new scheduler with the provided job runner. An
// unparsable cron spec is returned as an error.
func NewScheduler(jobRunner Runner) (*Scheduler, error) {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() error {
	cfg := s.jobs.Config().Scheduler

	// Nightly jobs
	// Close forms whose event has finished first so the audit sees a settled day
	if _, err := s.cron.AddFunc(cfg.CloseEndedForms, s.jobs.CloseEndedForms); err != nil {
		return fmt.Errorf("failed to register CloseEndedForms job: %w", err)
	}

	if _, err := s.cron.AddFunc(cfg.AuditOrderPricing, s.jobs.AuditOrderPricing); err != nil {
		return fmt.Errorf("failed to register AuditOrderPricing job: %w", err)
	}

	logger.Info("All cron jobs registered successfully", "count", len(s.cron.Entries()))
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if the scheduler is running
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}

// NextRuns reports when each registered job fires next.
func (s *Scheduler) NextRuns() []time.Time {
	entries := s.cron.Entries()
	out := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Schedule.Next(time.Now().UTC()))
	}
	return out
}
