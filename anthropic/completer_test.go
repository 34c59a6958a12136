package anthropic_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/fwojciec/scout"
	"github.com/fwojciec/scout/anthropic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ scout.Completer = (*anthropic.Completer)(nil)

func newTestCompleter(baseURL string) *anthropic.Completer {
	return anthropic.NewCompleter("test-key", "", option.WithBaseURL(baseURL))
}

func writeError(w http.ResponseWriter, status int, typ, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
		"type":  "error",
		"error": map[string]any{"type": typ, "message": message},
	})
}

func TestCompleter_Complete(t *testing.T) {
	t.Parallel()

	t.Run("returns text of the reply", func(t *testing.T) {
		t.Parallel()

		type request struct {
			Model       string  `json:"model"`
			Temperature float64 `json:"temperature"`
			Messages    []struct {
				Role string `json:"role"`
			} `json:"messages"`
		}
		got := make(chan request, 1)
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req request
			_ = json.NewDecoder(r.Body).Decode(&req)
			got <- req

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
				"id":   "msg_test_001",
				"type": "message",
				"role": "assistant",
				"content": []map[string]any{
					{"type": "text", "text": `{"company_name": "Acme"}`},
				},
				"model":       anthropic.DefaultModel,
				"stop_reason": "end_turn",
				"usage":       map[string]any{"input_tokens": 10, "output_tokens": 5},
			})
		}))
		defer ts.Close()

		c := newTestCompleter(ts.URL)
		answer, err := c.Complete(context.Background(), "Website text: Acme")

		require.NoError(t, err)
		assert.JSONEq(t, `{"company_name": "Acme"}`, answer)

		req := <-got
		assert.Equal(t, anthropic.DefaultModel, req.Model)
		assert.InDelta(t, 0.0, req.Temperature, 0.001)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
	})

	t.Run("maps rate limits to quota exceeded", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusTooManyRequests, "rate_limit_error", "Number of requests has exceeded your rate limit")
		}))
		defer ts.Close()

		_, err := newTestCompleter(ts.URL).Complete(context.Background(), "hi")

		require.Error(t, err)
		assert.Equal(t, scout.EQUOTA, scout.ErrorCode(err))
	})

	t.Run("maps low credit balance to quota exceeded", func(t *testing.T) {
		t.Parallel()

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusBadRequest, "invalid_request_error", "Your credit balance is too low to access the Anthropic API.")
		}))
		defer ts.Close()

		_, err := newTestCompleter(ts.URL).Complete(context.Background(), "hi")

		require.Error(t, err)
		assert.Equal(t, scout.EQUOTA, scout.ErrorCode(err))
	})

	t.Run("maps server errors to unavailable", func(t *testing.T) {
		t.Parallel()

		calls := make(chan struct{}, 4)
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls <- struct{}{}
			writeError(w, 529, "overloaded_error", "Overloaded")
		}))
		defer ts.Close()

		_, err := newTestCompleter(ts.URL).Complete(context.Background(), "hi")

		require.Error(t, err)
		assert.Equal(t, scout.EUNAVAILABLE, scout.ErrorCode(err))
		assert.Len(t, calls, 1, "no retries")
	})

	t.Run("returns error when prompt empty", func(t *testing.T) {
		t.Parallel()

		_, err := anthropic.NewCompleter("k", "").Complete(context.Background(), "")

		require.Error(t, err)
		assert.Equal(t, scout.EINVALID, scout.ErrorCode(err))
	})
}

func TestClassify(t *testing.T) {
	t.Parallel()

	t.Run("transport errors are unavailable", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("dial tcp: connection refused")
		err := anthropic.Classify(cause)

		assert.Equal(t, scout.EUNAVAILABLE, scout.ErrorCode(err))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("deadline is unavailable", func(t *testing.T) {
		t.Parallel()

		err := anthropic.Classify(context.DeadlineExceeded)

		assert.Equal(t, scout.EUNAVAILABLE, scout.ErrorCode(err))
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("nil stays nil", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, anthropic.Classify(nil))
	})
}

func TestNewCompleter_DefaultsModel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, anthropic.DefaultModel, anthropic.NewCompleter("k", "").Model())
	assert.Equal(t, "claude-sonnet-4-5-20250929", anthropic.NewCompleter("k", "claude-sonnet-4-5-20250929").Model())
}
