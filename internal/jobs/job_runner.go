package jobs

import (
	"time"

	"rentaldesk-backend/internal/config"
	"rentaldesk-backend/internal/logger"
	"rentaldesk-backend/internal/pricing"
	"rentaldesk-backend/internal/repository"
	"rentaldesk-backend/internal/repository/postgres"
	"rentaldesk-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	forms  repository.FormRepository
	orders repository.OrderRepository
	engine *pricing.Engine
	email  service.EmailService
	config *config.Config
	now    func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(store *postgres.Store, engine *pricing.Engine, email service.EmailService, cfg *config.Config) *JobRunner {
	return newJobRunner(store.FormRepository, store.OrderRepository, engine, email, cfg)
}

func newJobRunner(forms repository.FormRepository, orders repository.OrderRepository, engine *pricing.Engine, email service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		forms:  forms,
		orders: orders,
		engine: engine,
		email:  email,
		config: cfg,
		now:    time.Now,
	}
}

// Config exposes the configuration the runner was built with.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	log := logger.WithJob(jobName)
	defer func() {
		if r := recover(); r != nil {
			log.Error("Job panicked", "panic", r)
		}
	}()

	start := time.Now()
	log.Info("Starting job")
	jobFunc()
	log.Info("Job completed", "duration_ms", time.Since(start).Milliseconds())
}

// RunAllNightlyJobs runs all nightly jobs (for manual execution)
func (jr *JobRunner) RunAllNightlyJobs() {
	jr.CloseEndedForms()
	jr.AuditOrderPricing()
}
