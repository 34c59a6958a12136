package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/scout"
	"github.com/fwojciec/scout/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Close(t *testing.T) {
	t.Parallel()

	t.Run("is a no-op without CloseFn", func(t *testing.T) {
		t.Parallel()

		f := &mock.Fetcher{}
		assert.NoError(t, f.Close())
	})

	t.Run("delegates to CloseFn", func(t *testing.T) {
		t.Parallel()

		called := false
		f := &mock.Fetcher{CloseFn: func() error {
			called = true
			return nil
		}}

		require.NoError(t, f.Close())
		assert.True(t, called)
	})
}

func TestCompleter_Complete(t *testing.T) {
	t.Parallel()

	t.Run("delegates to CompleteFn", func(t *testing.T) {
		t.Parallel()

		var calledWith string
		c := &mock.Completer{
			CompleteFn: func(_ context.Context, prompt string) (string, error) {
				calledWith = prompt
				return "{}", nil
			},
		}

		got, err := c.Complete(context.Background(), "prompt")

		require.NoError(t, err)
		assert.Equal(t, "{}", got)
		assert.Equal(t, "prompt", calledWith)
	})

	t.Run("returns error from CompleteFn", func(t *testing.T) {
		t.Parallel()

		want := scout.Errorf(scout.EQUOTA, "quota")
		c := &mock.Completer{
			CompleteFn: func(context.Context, string) (string, error) {
				return "", want
			},
		}

		_, err := c.Complete(context.Background(), "prompt")

		assert.Equal(t, want, err)
	})
}
