// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// AlertType identifies one of the fixed proactive alert kinds.
type AlertType string

const (
	AlertDangerZone     AlertType = "danger_zone"
	AlertWeekendWarning AlertType = "weekend_warning"
	AlertPaydayCheckin  AlertType = "payday_checkin"
	AlertLimitFollowup  AlertType = "limit_followup"
)

// Alert is the structured payload handed to the notification dispatcher.
// Title and Body are short neutral labels; human-language phrasing belongs
// to the conversational layer, which reads the numeric Data fields.
type Alert struct {
	Type  AlertType
	Title string
	Body  string
	Data  map[string]string
}

// AlertJobStatus represents the delivery state of a queued alert.
type AlertJobStatus string

const (
	AlertJobStatusPending    AlertJobStatus = "pending"
	AlertJobStatusProcessing AlertJobStatus = "processing"
	AlertJobStatusSent       AlertJobStatus = "sent"
	AlertJobStatusFailed     AlertJobStatus = "failed"
)

// AlertJob represents an alert in the delivery queue. Dispatch is retried
// with backoff; the generator itself never tracks delivery state.
type AlertJob struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Alert       Alert
	Status      AlertJobStatus
	Attempts    int
	MaxAttempts int
	LastError   string
	CreatedAt   time.Time
	ScheduledAt time.Time
	ProcessedAt *time.Time
}

// NewAlertJob creates a pending AlertJob for the given user and payload.
func NewAlertJob(userID uuid.UUID, alert Alert) *AlertJob {
	now := time.Now().UTC()
	return &AlertJob{
		ID:          uuid.New(),
		UserID:      userID,
		Alert:       alert,
		Status:      AlertJobStatusPending,
		MaxAttempts: 3,
		CreatedAt:   now,
		ScheduledAt: now,
	}
}

// MarkProcessing marks the job as currently being dispatched.
func (j *AlertJob) MarkProcessing() {
	j.Status = AlertJobStatusProcessing
}

// MarkSent marks the job as successfully dispatched.
func (j *AlertJob) MarkSent() {
	j.Status = AlertJobStatusSent
	now := time.Now().UTC()
	j.ProcessedAt = &now
}

// MarkFailed records a dispatch failure and schedules a retry if attempts
// remain. Retry delays: immediate, 1min, 5min.
func (j *AlertJob) MarkFailed(err error, permanent bool) {
	j.Attempts++
	j.LastError = err.Error()

	if permanent || j.Attempts >= j.MaxAttempts {
		j.Status = AlertJobStatusFailed
		now := time.Now().UTC()
		j.ProcessedAt = &now
		return
	}

	j.Status = AlertJobStatusPending
	delays := []time.Duration{0, 1 * time.Minute, 5 * time.Minute}
	delay := 5 * time.Minute
	if j.Attempts < len(delays) {
		delay = delays[j.Attempts]
	}
	j.ScheduledAt = time.Now().UTC().Add(delay)
}

// IsReadyToProcess returns true if the job is pending and due.
func (j *AlertJob) IsReadyToProcess() bool {
	return j.Status == AlertJobStatusPending && time.Now().UTC().After(j.ScheduledAt)
}
