// Package model defines database models for persistence layer.
package model

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/playbookTV/Kora/internal/domain/entity"
)

// AlertQueueModel represents the alert_queue table in the database.
type AlertQueueModel struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID    `gorm:"type:uuid;index;not null"`
	AlertType   string       `gorm:"type:varchar(30);not null"`
	Title       string       `gorm:"type:varchar(200);not null"`
	Body        string       `gorm:"type:text"`
	Data        string       `gorm:"type:jsonb;not null;default:'{}'"`
	Status      string       `gorm:"type:varchar(20);not null;default:'pending'"`
	Attempts    int          `gorm:"not null;default:0"`
	MaxAttempts int          `gorm:"not null;default:3"`
	LastError   string       `gorm:"type:text"`
	CreatedAt   time.Time    `gorm:"not null"`
	ScheduledAt time.Time    `gorm:"not null"`
	ProcessedAt sql.NullTime `gorm:"type:timestamptz"`
}

// TableName returns the table name for the AlertQueueModel.
func (AlertQueueModel) TableName() string {
	return "alert_queue"
}

// ToEntity converts an AlertQueueModel to a domain AlertJob entity.
func (m *AlertQueueModel) ToEntity() *entity.AlertJob {
	var data map[string]string
	if m.Data != "" {
		if err := json.Unmarshal([]byte(m.Data), &data); err != nil {
			slog.Warn("Failed to unmarshal alert data", "error", err, "id", m.ID)
		}
	}
	if data == nil {
		data = make(map[string]string)
	}

	var processedAt *time.Time
	if m.ProcessedAt.Valid {
		processedAt = &m.ProcessedAt.Time
	}

	return &entity.AlertJob{
		ID:     m.ID,
		UserID: m.UserID,
		Alert: entity.Alert{
			Type:  entity.AlertType(m.AlertType),
			Title: m.Title,
			Body:  m.Body,
			Data:  data,
		},
		Status:      entity.AlertJobStatus(m.Status),
		Attempts:    m.Attempts,
		MaxAttempts: m.MaxAttempts,
		LastError:   m.LastError,
		CreatedAt:   m.CreatedAt,
		ScheduledAt: m.ScheduledAt,
		ProcessedAt: processedAt,
	}
}

// AlertQueueModelFromEntity creates an AlertQueueModel from a domain AlertJob entity.
func AlertQueueModelFromEntity(job *entity.AlertJob) *AlertQueueModel {
	dataJSON, err := json.Marshal(job.Alert.Data)
	if err != nil {
		slog.Error("Failed to marshal alert data", "error", err, "job_id", job.ID)
		dataJSON = []byte("{}")
	}

	var processedAt sql.NullTime
	if job.ProcessedAt != nil {
		processedAt = sql.NullTime{Time: *job.ProcessedAt, Valid: true}
	}

	return &AlertQueueModel{
		ID:          job.ID,
		UserID:      job.UserID,
		AlertType:   string(job.Alert.Type),
		Title:       job.Alert.Title,
		Body:        job.Alert.Body,
		Data:        string(dataJSON),
		Status:      string(job.Status),
		Attempts:    job.Attempts,
		MaxAttempts: job.MaxAttempts,
		LastError:   job.LastError,
		CreatedAt:   job.CreatedAt,
		ScheduledAt: job.ScheduledAt,
		ProcessedAt: processedAt,
	}
}
