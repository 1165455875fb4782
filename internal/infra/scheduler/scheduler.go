// Package scheduler runs the recurring engine jobs: alert sweeps, the
// nightly day close, pattern refreshes and queue cleanup.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/playbookTV/Kora/config"
	"github.com/playbookTV/Kora/internal/application/adapter"
	"github.com/playbookTV/Kora/internal/application/usecase/alert"
	"github.com/playbookTV/Kora/internal/application/usecase/pattern"
)

// Scheduler wires the periodic jobs onto a cron runner. Alert sweeps run
// every hour inside the evening and morning windows; the generator's own
// time checks decide whether anything actually fires.
type Scheduler struct {
	cron      *cron.Cron
	cfg       *config.SchedulerConfig
	userRepo  adapter.UserRepository
	queueRepo adapter.AlertQueueRepository
	sweep     *alert.SweepAlertsUseCase
	closeDay  *pattern.CloseDayUseCase
	refresh   *pattern.RefreshPatternsUseCase
	retention int
}

// New creates a scheduler with all jobs registered but not yet running.
func New(
	cfg *config.SchedulerConfig,
	userRepo adapter.UserRepository,
	queueRepo adapter.AlertQueueRepository,
	sweep *alert.SweepAlertsUseCase,
	closeDay *pattern.CloseDayUseCase,
	refresh *pattern.RefreshPatternsUseCase,
	retentionDays int,
) (*Scheduler, error) {
	s := &Scheduler{
		cron:      cron.New(),
		cfg:       cfg,
		userRepo:  userRepo,
		queueRepo: queueRepo,
		sweep:     sweep,
		closeDay:  closeDay,
		refresh:   refresh,
		retention: retentionDays,
	}

	jobs := []struct {
		name string
		spec string
		fn   func()
	}{
		{"evening_sweep", cfg.EveningSweepSpec, s.runSweep},
		{"morning_sweep", cfg.MorningSweepSpec, s.runSweep},
		{"close_day", cfg.CloseDaySpec, s.runCloseDay},
		{"pattern_refresh", cfg.RefreshSpec, s.runRefresh},
		{"queue_cleanup", cfg.CleanupSpec, s.runCleanup},
	}

	for _, job := range jobs {
		if _, err := s.cron.AddFunc(job.spec, job.fn); err != nil {
			return nil, fmt.Errorf("failed to register %s job: %w", job.name, err)
		}
	}

	return s, nil
}

// Start begins running the scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("Scheduler started",
		"evening_sweep", s.cfg.EveningSweepSpec,
		"morning_sweep", s.cfg.MorningSweepSpec,
		"close_day", s.cfg.CloseDaySpec,
		"pattern_refresh", s.cfg.RefreshSpec,
		"queue_cleanup", s.cfg.CleanupSpec,
	)
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("Scheduler stopped")
}

func (s *Scheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	output, err := s.sweep.Execute(ctx, alert.SweepAlertsInput{})
	if err != nil {
		slog.Error("Alert sweep failed", "error", err)
		return
	}

	slog.Info("Alert sweep completed",
		"evaluated", output.Evaluated,
		"queued", output.Queued,
		"debounced", output.Debounced,
	)
}

// runCloseDay settles yesterday's streak for every user. Users without a
// configured payday are skipped quietly; they have no safe spend to close
// against yet.
func (s *Scheduler) runCloseDay() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		slog.Error("Day close failed to list users", "error", err)
		return
	}

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	closed := 0
	for _, user := range users {
		_, err := s.closeDay.Execute(ctx, pattern.CloseDayInput{
			UserID: user.ID,
			Day:    yesterday,
		})
		if err != nil {
			slog.Debug("Day close skipped", "user_id", user.ID, "error", err)
			continue
		}
		closed++
	}

	slog.Info("Day close completed", "users", len(users), "closed", closed)
}

func (s *Scheduler) runRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		slog.Error("Pattern refresh failed to list users", "error", err)
		return
	}

	refreshed := 0
	for _, user := range users {
		_, err := s.refresh.Execute(ctx, pattern.RefreshPatternsInput{UserID: user.ID})
		if err != nil {
			slog.Warn("Pattern refresh failed for user", "user_id", user.ID, "error", err)
			continue
		}
		refreshed++
	}

	slog.Info("Pattern refresh completed", "users", len(users), "refreshed", refreshed)
}

func (s *Scheduler) runCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	deleted, err := s.queueRepo.DeleteOldSentJobs(ctx, s.retention)
	if err != nil {
		slog.Error("Alert queue cleanup failed", "error", err)
		return
	}

	slog.Info("Alert queue cleanup completed", "deleted", deleted)
}
