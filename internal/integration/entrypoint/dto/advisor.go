// Package dto defines data transfer objects for API requests and responses.
package dto

// AskAdvisorRequest represents the request body for asking the advisor.
type AskAdvisorRequest struct {
	Question string `json:"question" binding:"required,min=1,max=1000"`
}

// AskAdvisorResponse represents the advisor's answer plus the state snapshot
// the numbers were taken from.
type AskAdvisorResponse struct {
	Answer string                 `json:"answer"`
	State  FinancialStateResponse `json:"state"`
}
