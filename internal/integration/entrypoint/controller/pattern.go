// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/playbookTV/Kora/internal/application/usecase/pattern"
	"github.com/playbookTV/Kora/internal/integration/entrypoint/dto"
	"github.com/playbookTV/Kora/internal/integration/entrypoint/middleware"
)

// PatternController handles spending pattern endpoints.
type PatternController struct {
	getUseCase      *pattern.GetPatternUseCase
	refreshUseCase  *pattern.RefreshPatternsUseCase
	closeDayUseCase *pattern.CloseDayUseCase
}

// NewPatternController creates a new pattern controller instance.
func NewPatternController(
	getUseCase *pattern.GetPatternUseCase,
	refreshUseCase *pattern.RefreshPatternsUseCase,
	closeDayUseCase *pattern.CloseDayUseCase,
) *PatternController {
	return &PatternController{
		getUseCase:      getUseCase,
		refreshUseCase:  refreshUseCase,
		closeDayUseCase: closeDayUseCase,
	}
}

// Get handles GET /patterns requests.
func (c *PatternController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), pattern.GetPatternInput{UserID: userID})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve spending pattern",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSpendingPatternResponse(output.Pattern))
}

// Refresh handles POST /patterns/refresh requests. Recomputes the pattern
// from recent history on demand; the scheduler runs the same use case nightly.
func (c *PatternController) Refresh(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.refreshUseCase.Execute(ctx.Request.Context(), pattern.RefreshPatternsInput{UserID: userID})
	if err != nil {
		handleEngineError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSpendingPatternResponse(output.Pattern))
}

// CloseDay handles POST /patterns/close-day requests. Settles the streak
// for yesterday, or for an explicit day given as ?day=2006-01-02.
func (c *PatternController) CloseDay(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	day := time.Now().UTC().AddDate(0, 0, -1)
	if dayStr := ctx.Query("day"); dayStr != "" {
		parsed, err := time.Parse("2006-01-02", dayStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid day format, expected YYYY-MM-DD",
			})
			return
		}
		day = parsed
	}

	output, err := c.closeDayUseCase.Execute(ctx.Request.Context(), pattern.CloseDayInput{
		UserID: userID,
		Day:    day,
	})
	if err != nil {
		handleEngineError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CloseDayResponse{
		Streak:    output.Streak,
		StayedIn:  output.StayedIn,
		DaySpend:  output.DaySpend,
		SafeSpend: output.SafeSpend,
	})
}
