// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/playbookTV/Kora/internal/domain/entity"
)

// LimitFollowUpRequest represents the request body for a limit follow-up.
// The window bounds are dates; an omitted end defaults to now.
type LimitFollowUpRequest struct {
	Limit float64 `json:"limit" binding:"required"`
	Start string  `json:"start" binding:"required"`
	End   *string `json:"end,omitempty"`
}

// AlertResponse represents a generated alert payload.
type AlertResponse struct {
	Type  string            `json:"type"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data"`
}

// EvaluateAlertsResponse represents the outcome of an on-demand evaluation.
type EvaluateAlertsResponse struct {
	Alert     *AlertResponse `json:"alert,omitempty"`
	Queued    bool           `json:"queued"`
	Debounced bool           `json:"debounced"`
}

// LimitFollowUpResponse represents the queued limit follow-up.
type LimitFollowUpResponse struct {
	Alert    AlertResponse `json:"alert"`
	WasUnder bool          `json:"was_under"`
}

// AlertJobResponse represents a queued alert job in API responses.
type AlertJobResponse struct {
	ID          string        `json:"id"`
	Alert       AlertResponse `json:"alert"`
	Status      string        `json:"status"`
	Attempts    int           `json:"attempts"`
	CreatedAt   time.Time     `json:"created_at"`
	ProcessedAt *time.Time    `json:"processed_at,omitempty"`
}

// AlertHistoryResponse represents the user's alert queue history.
type AlertHistoryResponse struct {
	Alerts []AlertJobResponse `json:"alerts"`
}

// ToAlertResponse converts a domain Alert to its DTO.
func ToAlertResponse(alert entity.Alert) AlertResponse {
	data := alert.Data
	if data == nil {
		data = map[string]string{}
	}
	return AlertResponse{
		Type:  string(alert.Type),
		Title: alert.Title,
		Body:  alert.Body,
		Data:  data,
	}
}

// ToAlertJobResponse converts a domain AlertJob to its DTO.
func ToAlertJobResponse(job *entity.AlertJob) AlertJobResponse {
	return AlertJobResponse{
		ID:          job.ID.String(),
		Alert:       ToAlertResponse(job.Alert),
		Status:      string(job.Status),
		Attempts:    job.Attempts,
		CreatedAt:   job.CreatedAt,
		ProcessedAt: job.ProcessedAt,
	}
}
