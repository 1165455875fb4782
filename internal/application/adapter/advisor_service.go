// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// AdvisorRequest represents a question for the conversational advisor
// together with the precomputed financial context it must ground on.
// All amounts are preformatted strings; the advisor never does arithmetic.
type AdvisorRequest struct {
	Question          string
	DaysToPayday      int
	Balance           string
	SafeSpendToday    string
	FlexibleRemaining string
	TotalFixed        string
	UpcomingBills     string
	RiskScore         int
	TopCategories     []string
}

// AdvisorResult represents the advisor's answer.
type AdvisorResult struct {
	Answer string
}

// AdvisorService defines the interface for conversational advisor operations.
type AdvisorService interface {
	// Ask sends the question plus financial context to the model and
	// returns its answer.
	Ask(ctx context.Context, request *AdvisorRequest) (*AdvisorResult, error)

	// IsAvailable checks if the advisor service is available and properly configured.
	IsAvailable() bool
}
