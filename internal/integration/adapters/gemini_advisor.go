// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/playbookTV/Kora/internal/application/adapter"
)

// GeminiAdvisor implements the AdvisorService using Google Gemini.
// The model never computes money figures: every number it may mention is
// precomputed by the engine and injected into the prompt.
type GeminiAdvisor struct {
	apiKey    string
	modelName string
}

// NewGeminiAdvisor creates a new Gemini advisor instance.
func NewGeminiAdvisor(apiKey string) *GeminiAdvisor {
	return &GeminiAdvisor{
		apiKey:    apiKey,
		modelName: "gemini-2.5-flash-lite",
	}
}

// IsAvailable checks if the Gemini advisor is available and properly configured.
func (s *GeminiAdvisor) IsAvailable() bool {
	return s.apiKey != ""
}

// Ask sends the question plus financial context to the model and returns its answer.
func (s *GeminiAdvisor) Ask(ctx context.Context, request *adapter.AdvisorRequest) (*adapter.AdvisorResult, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini advisor is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.7)

	prompt := s.buildPrompt(request)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	answer, err := extractText(resp)
	if err != nil {
		return nil, err
	}

	return &adapter.AdvisorResult{Answer: answer}, nil
}

// buildPrompt creates the prompt for Gemini.
func (s *GeminiAdvisor) buildPrompt(request *adapter.AdvisorRequest) string {
	var sb strings.Builder

	sb.WriteString(`You are a friendly, practical personal finance assistant. Answer the user's money question in a short, conversational way.

RULES:
- NEVER do your own arithmetic. Use ONLY the numbers in FINANCIAL CONTEXT below.
- If the question needs a number the context does not have, say you do not have it.
- Be concrete and brief: two or three sentences, no bullet lists.
- No financial product recommendations, no investment advice.

FINANCIAL CONTEXT:
`)

	fmt.Fprintf(&sb, "- Days until payday: %d\n", request.DaysToPayday)
	fmt.Fprintf(&sb, "- Current balance: %s\n", request.Balance)
	fmt.Fprintf(&sb, "- Safe to spend today: %s\n", request.SafeSpendToday)
	fmt.Fprintf(&sb, "- Flexible money left this month: %s\n", request.FlexibleRemaining)
	fmt.Fprintf(&sb, "- Fixed monthly expenses: %s\n", request.TotalFixed)
	fmt.Fprintf(&sb, "- Bills due before payday: %s\n", request.UpcomingBills)
	fmt.Fprintf(&sb, "- Overspend risk score (0-100): %d\n", request.RiskScore)
	if len(request.TopCategories) > 0 {
		fmt.Fprintf(&sb, "- Top spending categories: %s\n", strings.Join(request.TopCategories, ", "))
	}

	sb.WriteString("\nQUESTION:\n")
	sb.WriteString(request.Question)
	sb.WriteString("\n")

	return sb.String()
}

// extractText pulls the plain text out of a Gemini response.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	answer := strings.TrimSpace(sb.String())
	if answer == "" {
		return "", fmt.Errorf("no text content in response")
	}
	return answer, nil
}
