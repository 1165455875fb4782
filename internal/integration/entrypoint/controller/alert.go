// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/playbookTV/Kora/internal/application/adapter"
	"github.com/playbookTV/Kora/internal/application/usecase/alert"
	domainerror "github.com/playbookTV/Kora/internal/domain/error"
	"github.com/playbookTV/Kora/internal/integration/entrypoint/dto"
	"github.com/playbookTV/Kora/internal/integration/entrypoint/middleware"
)

// AlertController handles proactive alert endpoints.
type AlertController struct {
	evaluateUseCase *alert.EvaluateAlertsUseCase
	followUpUseCase *alert.FollowUpLimitUseCase
	queueRepo       adapter.AlertQueueRepository
}

// NewAlertController creates a new alert controller instance.
func NewAlertController(
	evaluateUseCase *alert.EvaluateAlertsUseCase,
	followUpUseCase *alert.FollowUpLimitUseCase,
	queueRepo adapter.AlertQueueRepository,
) *AlertController {
	return &AlertController{
		evaluateUseCase: evaluateUseCase,
		followUpUseCase: followUpUseCase,
		queueRepo:       queueRepo,
	}
}

// Evaluate handles POST /alerts/evaluate requests. Runs the decision table
// for the caller immediately instead of waiting for the next sweep.
func (c *AlertController) Evaluate(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.evaluateUseCase.Execute(ctx.Request.Context(), alert.EvaluateAlertsInput{UserID: userID})
	if err != nil {
		handleEngineError(ctx, err)
		return
	}

	response := dto.EvaluateAlertsResponse{
		Queued:    output.Queued,
		Debounced: output.Debounced,
	}
	if output.Alert != nil {
		alertResponse := dto.ToAlertResponse(*output.Alert)
		response.Alert = &alertResponse
	}

	ctx.JSON(http.StatusOK, response)
}

// FollowUp handles POST /alerts/follow-up requests. Settles a previously
// agreed spending limit against what was actually spent in the window.
func (c *AlertController) FollowUp(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.LimitFollowUpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	start, err := time.Parse("2006-01-02", req.Start)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid start date, expected YYYY-MM-DD",
		})
		return
	}

	end := time.Now().UTC()
	if req.End != nil {
		end, err = time.Parse("2006-01-02", *req.End)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid end date, expected YYYY-MM-DD",
			})
			return
		}
		// the end date is inclusive
		end = end.AddDate(0, 0, 1)
	}

	input := alert.FollowUpLimitInput{
		UserID: userID,
		Limit:  decimal.NewFromFloat(req.Limit),
		Start:  start,
		End:    end,
	}

	output, err := c.followUpUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleAlertError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LimitFollowUpResponse{
		Alert:    dto.ToAlertResponse(*output.Alert),
		WasUnder: output.WasUnder,
	})
}

// History handles GET /alerts/history requests.
func (c *AlertController) History(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	jobs, err := c.queueRepo.GetByUser(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve alert history",
		})
		return
	}

	alerts := make([]dto.AlertJobResponse, 0, len(jobs))
	for _, job := range jobs {
		alerts = append(alerts, dto.ToAlertJobResponse(job))
	}

	ctx.JSON(http.StatusOK, dto.AlertHistoryResponse{Alerts: alerts})
}

// handleAlertError maps alert errors to HTTP responses.
func (c *AlertController) handleAlertError(ctx *gin.Context, err error) {
	var alertErr *domainerror.AlertError
	if errors.As(err, &alertErr) {
		statusCode := http.StatusBadRequest
		if alertErr.Code == domainerror.ErrCodeAlertJobNotFound {
			statusCode = http.StatusNotFound
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: alertErr.Message,
			Code:  string(alertErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
