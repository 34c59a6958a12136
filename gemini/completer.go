// Package gemini implements scout.Completer using Google Gemini.
package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/fwojciec/scout"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Completer implements scout.Completer at compile time.
var _ scout.Completer = (*Completer)(nil)

// Completer implements scout.Completer using Google Gemini.
type Completer struct {
	client *genai.Client
	model  string
}

// NewCompleter creates a new Completer. An empty model selects DefaultModel.
func NewCompleter(client *genai.Client, model string) *Completer {
	if model == "" {
		model = DefaultModel
	}
	return &Completer{client: client, model: model}
}

// Model returns the model name sent with each request.
func (c *Completer) Model() string {
	return c.model
}

// Complete sends prompt as a single user turn and returns the response text.
func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", scout.Errorf(scout.EINVALID, "prompt required")
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model,
		[]*genai.Content{genai.NewContentFromText(prompt, "user")},
		BuildConfig(),
	)
	if err != nil {
		return "", Classify(err)
	}
	if result == nil {
		return "", scout.Errorf(scout.EUNAVAILABLE, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for extraction calls: a
// deterministic temperature and a JSON response constrained to the record
// schema.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You extract company contact details from website text. Use only facts stated in the text. Reply with a single JSON object.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema:   recordSchema(),
	}
}

func recordSchema() *genai.Schema {
	nullable := true
	props := make(map[string]*genai.Schema, len(scout.RecordFields))
	for _, key := range scout.RecordFields {
		props[key] = &genai.Schema{Type: genai.TypeString, Nullable: &nullable}
	}
	return &genai.Schema{
		Type:             genai.TypeObject,
		Properties:       props,
		PropertyOrdering: scout.RecordFields,
	}
}

// Classify maps a Gemini client error onto the pipeline's model failure
// kinds. Rate limits and exhausted quota become EQUOTA; everything else is
// EUNAVAILABLE.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests || apiErr.Status == "RESOURCE_EXHAUSTED" || isQuotaMessage(apiErr.Message) {
			return scout.WrapError(scout.EQUOTA, err, "gemini quota exceeded")
		}
		return scout.WrapError(scout.EUNAVAILABLE, err, "gemini request failed")
	}
	if isQuotaMessage(err.Error()) {
		return scout.WrapError(scout.EQUOTA, err, "gemini quota exceeded")
	}
	return scout.WrapError(scout.EUNAVAILABLE, err, "gemini request failed")
}

func isQuotaMessage(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "quota") ||
		strings.Contains(msg, "resource_exhausted") ||
		strings.Contains(msg, "rate limit")
}
