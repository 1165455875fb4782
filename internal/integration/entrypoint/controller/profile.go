// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/playbookTV/Kora/internal/application/usecase/profile"
	domainerror "github.com/playbookTV/Kora/internal/domain/error"
	"github.com/playbookTV/Kora/internal/integration/entrypoint/dto"
	"github.com/playbookTV/Kora/internal/integration/entrypoint/middleware"
)

// ProfileController handles financial profile endpoints.
type ProfileController struct {
	getUseCase           *profile.GetProfileUseCase
	updateUseCase        *profile.UpdateProfileUseCase
	addExpenseUseCase    *profile.AddFixedExpenseUseCase
	updateExpenseUseCase *profile.UpdateFixedExpenseUseCase
	deleteExpenseUseCase *profile.DeleteFixedExpenseUseCase
}

// NewProfileController creates a new profile controller instance.
func NewProfileController(
	getUseCase *profile.GetProfileUseCase,
	updateUseCase *profile.UpdateProfileUseCase,
	addExpenseUseCase *profile.AddFixedExpenseUseCase,
	updateExpenseUseCase *profile.UpdateFixedExpenseUseCase,
	deleteExpenseUseCase *profile.DeleteFixedExpenseUseCase,
) *ProfileController {
	return &ProfileController{
		getUseCase:           getUseCase,
		updateUseCase:        updateUseCase,
		addExpenseUseCase:    addExpenseUseCase,
		updateExpenseUseCase: updateExpenseUseCase,
		deleteExpenseUseCase: deleteExpenseUseCase,
	}
}

// Get handles GET /profile requests.
func (c *ProfileController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), profile.GetProfileInput{UserID: userID})
	if err != nil {
		c.handleProfileError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProfileResponse(output.Profile))
}

// Update handles PATCH /profile requests.
func (c *ProfileController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input := profile.UpdateProfileInput{
		UserID: userID,
		Payday: req.Payday,
	}
	if req.Income != nil {
		income := decimal.NewFromFloat(*req.Income)
		input.Income = &income
	}
	if req.CurrentBalance != nil {
		balance := decimal.NewFromFloat(*req.CurrentBalance)
		input.CurrentBalance = &balance
	}
	if req.SavingsGoal != nil {
		goal := decimal.NewFromFloat(*req.SavingsGoal)
		input.SavingsGoal = &goal
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleProfileError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProfileResponse(output.Profile))
}

// AddExpense handles POST /profile/expenses requests.
func (c *ProfileController) AddExpense(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.FixedExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input := profile.AddFixedExpenseInput{
		UserID: userID,
		Name:   req.Name,
		Amount: decimal.NewFromFloat(req.Amount),
		DueDay: req.DueDay,
	}

	output, err := c.addExpenseUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleProfileError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToFixedExpenseResponse(output.Expense))
}

// UpdateExpense handles PUT /profile/expenses/:id requests.
func (c *ProfileController) UpdateExpense(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	expenseID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid expense ID",
		})
		return
	}

	var req dto.FixedExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	input := profile.UpdateFixedExpenseInput{
		UserID:    userID,
		ExpenseID: expenseID,
		Name:      req.Name,
		Amount:    decimal.NewFromFloat(req.Amount),
		DueDay:    req.DueDay,
	}

	output, err := c.updateExpenseUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleProfileError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToFixedExpenseResponse(output.Expense))
}

// DeleteExpense handles DELETE /profile/expenses/:id requests.
func (c *ProfileController) DeleteExpense(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	expenseID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid expense ID",
		})
		return
	}

	input := profile.DeleteFixedExpenseInput{
		UserID:    userID,
		ExpenseID: expenseID,
	}

	output, err := c.deleteExpenseUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleProfileError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: output.Message})
}

// handleProfileError maps profile errors to HTTP responses.
func (c *ProfileController) handleProfileError(ctx *gin.Context, err error) {
	var profileErr *domainerror.ProfileError
	if errors.As(err, &profileErr) {
		statusCode := http.StatusBadRequest
		switch profileErr.Code {
		case domainerror.ErrCodeProfileNotFound, domainerror.ErrCodeFixedExpenseNotFound:
			statusCode = http.StatusNotFound
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: profileErr.Message,
			Code:  string(profileErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// respondUnauthenticated writes the shared missing-authentication response.
func respondUnauthenticated(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "User not authenticated",
		Code:  string(domainerror.ErrCodeMissingToken),
	})
}
