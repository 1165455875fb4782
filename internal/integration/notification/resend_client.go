// Package notification delivers proactive alerts to users via Resend and
// runs the queue worker that drains the alert queue.
package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/playbookTV/Kora/internal/application/adapter"
	"github.com/playbookTV/Kora/internal/domain/entity"
	domainerror "github.com/playbookTV/Kora/internal/domain/error"
)

// ResendClient implements the adapter.AlertSender interface using Resend.
type ResendClient struct {
	client    *resend.Client
	fromName  string
	fromEmail string
}

// NewResendClient creates a new Resend client.
func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	return &ResendClient{
		client:    resend.NewClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// Send delivers an alert via Resend.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendAlertInput) (*adapter.SendAlertResult, error) {
	from := fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail)
	html, text := renderAlert(input.Name, input.Alert)

	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{input.To},
		Subject: input.Alert.Title,
		Html:    html,
		Text:    text,
	}

	resp, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		if isPermanentError(err) {
			return nil, domainerror.NewAlertError(
				domainerror.ErrCodePermanentAlertFailure,
				"permanent alert delivery failure",
				err,
			)
		}
		return nil, domainerror.NewAlertError(
			domainerror.ErrCodeTemporaryAlertFailure,
			"temporary alert delivery failure",
			err,
		)
	}

	return &adapter.SendAlertResult{
		ProviderID: resp.Id,
	}, nil
}

// renderAlert builds the HTML and plain-text bodies for an alert. The
// numeric data fields are listed verbatim under the body line.
func renderAlert(name string, alert entity.Alert) (html, text string) {
	var sb strings.Builder
	sb.WriteString(alert.Body)
	if len(alert.Data) > 0 {
		sb.WriteString("\n")
		for _, key := range orderedKeys(alert.Data) {
			fmt.Fprintf(&sb, "\n%s: %s", strings.ReplaceAll(key, "_", " "), alert.Data[key])
		}
	}
	text = fmt.Sprintf("Hi %s,\n\n%s\n", name, sb.String())

	var hb strings.Builder
	fmt.Fprintf(&hb, "<p>Hi %s,</p><p>%s</p>", name, alert.Body)
	if len(alert.Data) > 0 {
		hb.WriteString("<ul>")
		for _, key := range orderedKeys(alert.Data) {
			fmt.Fprintf(&hb, "<li>%s: %s</li>", strings.ReplaceAll(key, "_", " "), alert.Data[key])
		}
		hb.WriteString("</ul>")
	}
	html = hb.String()

	return html, text
}

// orderedKeys returns the map keys in sorted order for stable output.
func orderedKeys(data map[string]string) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

// isPermanentError checks if the error is a permanent error that should not be retried.
func isPermanentError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	permanentPatterns := []string{
		"401",
		"403",
		"422",
		"unauthorized",
		"forbidden",
		"validation",
		"invalid",
		"bad request",
	}

	for _, pattern := range permanentPatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}

	return false
}

// MockAlertSender is a mock implementation for testing.
type MockAlertSender struct {
	SentAlerts  []adapter.SendAlertInput
	ShouldFail  bool
	FailError   error
	IsPermanent bool
}

// NewMockAlertSender creates a new mock alert sender.
func NewMockAlertSender() *MockAlertSender {
	return &MockAlertSender{
		SentAlerts: make([]adapter.SendAlertInput, 0),
	}
}

// Send implements the adapter.AlertSender interface for testing.
func (m *MockAlertSender) Send(ctx context.Context, input adapter.SendAlertInput) (*adapter.SendAlertResult, error) {
	if m.ShouldFail {
		if m.IsPermanent {
			return nil, domainerror.NewAlertError(
				domainerror.ErrCodePermanentAlertFailure,
				"mock permanent failure",
				m.FailError,
			)
		}
		return nil, domainerror.NewAlertError(
			domainerror.ErrCodeTemporaryAlertFailure,
			"mock temporary failure",
			m.FailError,
		)
	}

	m.SentAlerts = append(m.SentAlerts, input)

	return &adapter.SendAlertResult{
		ProviderID: fmt.Sprintf("mock-%d", len(m.SentAlerts)),
	}, nil
}

// SetFailure configures the mock to fail with the given error.
func (m *MockAlertSender) SetFailure(err error, permanent bool) {
	m.ShouldFail = true
	m.FailError = err
	m.IsPermanent = permanent
}

// Reset clears all sent alerts and failure configuration.
func (m *MockAlertSender) Reset() {
	m.SentAlerts = make([]adapter.SendAlertInput, 0)
	m.ShouldFail = false
	m.FailError = nil
	m.IsPermanent = false
}

// Ensure implementations satisfy interfaces.
var (
	_ adapter.AlertSender = (*ResendClient)(nil)
	_ adapter.AlertSender = (*MockAlertSender)(nil)
)
