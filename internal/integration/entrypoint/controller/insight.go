// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/playbookTV/Kora/internal/application/usecase/insight"
	domainerror "github.com/playbookTV/Kora/internal/domain/error"
	"github.com/playbookTV/Kora/internal/integration/entrypoint/dto"
	"github.com/playbookTV/Kora/internal/integration/entrypoint/middleware"
)

// InsightController handles financial state endpoints.
type InsightController struct {
	stateUseCase *insight.GetFinancialStateUseCase
}

// NewInsightController creates a new insight controller instance.
func NewInsightController(stateUseCase *insight.GetFinancialStateUseCase) *InsightController {
	return &InsightController{
		stateUseCase: stateUseCase,
	}
}

// GetState handles GET /insights/state requests. The whole snapshot is
// computed from a single timestamp so the numbers always agree.
func (c *InsightController) GetState(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.stateUseCase.Execute(ctx.Request.Context(), insight.GetFinancialStateInput{UserID: userID})
	if err != nil {
		handleEngineError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFinancialStateResponse(output.State, output.RiskScore, output.Streak))
}

// handleEngineError maps engine and profile errors to HTTP responses.
// Missing payday configuration is a client problem, not a server one.
func handleEngineError(ctx *gin.Context, err error) {
	var engineErr *domainerror.EngineError
	if errors.As(err, &engineErr) {
		statusCode := http.StatusUnprocessableEntity
		if engineErr.Code == domainerror.ErrCodeInvalidPaydayDay {
			statusCode = http.StatusBadRequest
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: engineErr.Message,
			Code:  string(engineErr.Code),
		})
		return
	}

	var profileErr *domainerror.ProfileError
	if errors.As(err, &profileErr) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: profileErr.Message,
			Code:  string(profileErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
