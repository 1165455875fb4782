// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/playbookTV/Kora/internal/application/usecase/advisor"
	domainerror "github.com/playbookTV/Kora/internal/domain/error"
	"github.com/playbookTV/Kora/internal/integration/entrypoint/dto"
	"github.com/playbookTV/Kora/internal/integration/entrypoint/middleware"
)

// AdvisorController handles conversational advisor endpoints.
type AdvisorController struct {
	askUseCase *advisor.AskAdvisorUseCase
}

// NewAdvisorController creates a new advisor controller instance.
func NewAdvisorController(askUseCase *advisor.AskAdvisorUseCase) *AdvisorController {
	return &AdvisorController{
		askUseCase: askUseCase,
	}
}

// Ask handles POST /advisor/ask requests. The answer is generated from the
// precomputed state snapshot, which is returned alongside for transparency.
func (c *AdvisorController) Ask(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.AskAdvisorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input := advisor.AskAdvisorInput{
		UserID:   userID,
		Question: req.Question,
	}

	output, err := c.askUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleAdvisorError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AskAdvisorResponse{
		Answer: output.Answer,
		State:  dto.ToFinancialStateResponse(output.State, output.RiskScore, output.Streak),
	})
}

// handleAdvisorError maps advisor errors to HTTP responses.
func (c *AdvisorController) handleAdvisorError(ctx *gin.Context, err error) {
	var advisorErr *domainerror.AdvisorError
	if errors.As(err, &advisorErr) {
		statusCode := http.StatusBadRequest
		switch advisorErr.Code {
		case domainerror.ErrCodeAdvisorUnavailable:
			statusCode = http.StatusServiceUnavailable
		case domainerror.ErrCodeAdvisorFailed:
			statusCode = http.StatusBadGateway
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: advisorErr.Message,
			Code:  string(advisorErr.Code),
		})
		return
	}

	handleEngineError(ctx, err)
}
