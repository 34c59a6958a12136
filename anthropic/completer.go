// Package anthropic implements scout.Completer using the Anthropic Messages
// API.
package anthropic

import (
	"context"
	"errors"
	"net/http"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/fwojciec/scout"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "claude-haiku-4-5-20251001"

// DefaultMaxTokens bounds the response length. A filled record is well
// under this.
const DefaultMaxTokens = 1024

const systemPrompt = "You extract company contact details from website text. Use only facts stated in the text. Reply with a single JSON object and nothing else."

// Ensure Completer implements scout.Completer at compile time.
var _ scout.Completer = (*Completer)(nil)

// Completer implements scout.Completer using Claude.
type Completer struct {
	client sdk.Client
	model  string
}

// NewCompleter creates a Completer authenticating with apiKey. An empty
// model selects DefaultModel. The SDK's automatic retries are disabled;
// opts may override any client option.
func NewCompleter(apiKey, model string, opts ...option.RequestOption) *Completer {
	if model == "" {
		model = DefaultModel
	}
	base := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	return &Completer{
		client: sdk.NewClient(append(base, opts...)...),
		model:  model,
	}
}

// Model returns the model name sent with each request.
func (c *Completer) Model() string {
	return c.model
}

// Complete sends prompt as a single user message and returns the text of
// the reply.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", scout.Errorf(scout.EINVALID, "prompt required")
	}

	msg, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:       sdk.Model(c.model),
		MaxTokens:   DefaultMaxTokens,
		System:      []sdk.TextBlockParam{{Text: systemPrompt}},
		Messages:    []sdk.MessageParam{sdk.NewUserMessage(sdk.NewTextBlock(prompt))},
		Temperature: sdk.Float(0),
	})
	if err != nil {
		return "", Classify(err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}

// Classify maps an Anthropic client error onto the pipeline's model failure
// kinds. Rate limits and billing failures become EQUOTA; everything else is
// EUNAVAILABLE.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *sdk.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests, http.StatusPaymentRequired:
			return scout.WrapError(scout.EQUOTA, err, "anthropic quota exceeded")
		}
	}
	if isBillingMessage(err.Error()) {
		return scout.WrapError(scout.EQUOTA, err, "anthropic quota exceeded")
	}
	return scout.WrapError(scout.EUNAVAILABLE, err, "anthropic request failed")
}

func isBillingMessage(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "credit balance") ||
		strings.Contains(msg, "billing") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate_limit_error")
}
