// Package notification delivers proactive alerts to users.
package notification

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/playbookTV/Kora/internal/application/adapter"
	"github.com/playbookTV/Kora/internal/domain/entity"
	domainerror "github.com/playbookTV/Kora/internal/domain/error"
)

// Worker drains the alert queue and delivers alerts.
type Worker struct {
	queue        adapter.AlertQueueRepository
	users        adapter.UserRepository
	sender       adapter.AlertSender
	pollInterval time.Duration
	batchSize    int
}

// WorkerConfig holds configuration for the alert worker.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 5 * time.Second,
		BatchSize:    10,
	}
}

// NewWorker creates a new alert worker.
func NewWorker(queue adapter.AlertQueueRepository, users adapter.UserRepository, sender adapter.AlertSender, config WorkerConfig) *Worker {
	return &Worker{
		queue:        queue,
		users:        users,
		sender:       sender,
		pollInterval: config.PollInterval,
		batchSize:    config.BatchSize,
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Alert worker started",
		"poll_interval", w.pollInterval,
		"batch_size", w.batchSize,
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.processBatch(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Alert worker shutting down")
			return
		case <-ticker.C:
			w.processBatch(ctx)
		}
	}
}

// processBatch fetches and processes a batch of pending alerts.
func (w *Worker) processBatch(ctx context.Context) {
	jobs, err := w.queue.GetPendingJobs(ctx, w.batchSize)
	if err != nil {
		slog.Error("Failed to get pending alert jobs", "error", err)
		return
	}

	if len(jobs) == 0 {
		return
	}

	slog.Debug("Processing alert batch", "count", len(jobs))

	for _, job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
			w.processJob(ctx, job)
		}
	}
}

// processJob delivers a single alert job.
func (w *Worker) processJob(ctx context.Context, job *entity.AlertJob) {
	logger := slog.With(
		"job_id", job.ID,
		"alert_type", job.Alert.Type,
		"user_id", job.UserID,
	)

	job.MarkProcessing()
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to mark job as processing", "error", err)
		return
	}

	user, err := w.users.FindByID(ctx, job.UserID)
	if err != nil {
		logger.Error("Failed to resolve alert recipient", "error", err)
		w.handleFailure(ctx, job, err, true)
		return
	}
	if !user.AlertsEnabled {
		logger.Info("User opted out of alerts, dropping job")
		w.handleFailure(ctx, job, errors.New("alerts disabled"), true)
		return
	}

	result, err := w.sender.Send(ctx, adapter.SendAlertInput{
		To:    user.Email,
		Name:  user.Name,
		Alert: job.Alert,
	})
	if err != nil {
		logger.Error("Failed to deliver alert", "error", err)

		var alertErr *domainerror.AlertError
		isPermanent := errors.As(err, &alertErr) && alertErr.Code == domainerror.ErrCodePermanentAlertFailure

		w.handleFailure(ctx, job, err, isPermanent)
		return
	}

	job.MarkSent()
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to mark job as sent", "error", err)
		return
	}

	logger.Info("Alert delivered", "provider_id", result.ProviderID)
}

// handleFailure handles a failed alert job.
func (w *Worker) handleFailure(ctx context.Context, job *entity.AlertJob, err error, permanent bool) {
	job.MarkFailed(err, permanent)

	if updateErr := w.queue.Update(ctx, job); updateErr != nil {
		slog.Error("Failed to update job after failure",
			"job_id", job.ID,
			"error", updateErr,
		)
	}

	if job.Status == entity.AlertJobStatusFailed {
		slog.Warn("Alert job permanently failed",
			"job_id", job.ID,
			"attempts", job.Attempts,
			"last_error", job.LastError,
		)
	} else {
		slog.Info("Alert job scheduled for retry",
			"job_id", job.ID,
			"attempts", job.Attempts,
			"scheduled_at", job.ScheduledAt,
		)
	}
}

// ProcessNow processes all pending alerts immediately (useful for testing).
func (w *Worker) ProcessNow(ctx context.Context) {
	w.processBatch(ctx)
}
