package scout_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/scout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := scout.Errorf(scout.EWEBSITENOTFOUND, "no website for %q", "Acme")

	assert.Equal(t, scout.EWEBSITENOTFOUND, scout.ErrorCode(err))
	assert.Equal(t, "no website for \"Acme\"", scout.ErrorMessage(err))
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: no such host")
	err := scout.WrapError(scout.EFETCHFAILED, cause, "fetch %s", "https://example.com")

	assert.Equal(t, scout.EFETCHFAILED, scout.ErrorCode(err))
	assert.Equal(t, "fetch https://example.com", scout.ErrorMessage(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "no such host")
}

func TestErrorCode_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("outer: %w", scout.Errorf(scout.EQUOTA, "quota"))

	assert.Equal(t, scout.EQUOTA, scout.ErrorCode(err))
	assert.Equal(t, "quota", scout.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, scout.EINTERNAL, scout.ErrorCode(err))
	assert.Equal(t, "Internal error.", scout.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, scout.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, scout.ErrorMessage(nil))
}

func TestIsPipelineCode(t *testing.T) {
	t.Parallel()

	for _, code := range []string{
		scout.EWEBSITENOTFOUND, scout.EFETCHFAILED, scout.EEMPTYCONTENT,
		scout.EQUOTA, scout.EUNAVAILABLE, scout.EUNPARSABLE,
	} {
		assert.True(t, scout.IsPipelineCode(code), code)
	}
	assert.False(t, scout.IsPipelineCode(scout.EINVALID))
	assert.False(t, scout.IsPipelineCode(scout.EINTERNAL))
	assert.False(t, scout.IsPipelineCode(""))
}

func TestErrorKindMessage(t *testing.T) {
	t.Parallel()

	seen := make(map[string]bool)
	for _, code := range []string{
		scout.EWEBSITENOTFOUND, scout.EFETCHFAILED, scout.EEMPTYCONTENT,
		scout.EQUOTA, scout.EUNAVAILABLE, scout.EUNPARSABLE,
	} {
		msg := scout.ErrorKindMessage(code)
		require.NotEmpty(t, msg)
		assert.False(t, seen[msg], "message for %s must be distinct", code)
		seen[msg] = true
	}
	assert.Contains(t, scout.ErrorKindMessage(scout.EWEBSITENOTFOUND), "official website")
	assert.Contains(t, scout.ErrorKindMessage(scout.EUNAVAILABLE), "temporarily unavailable")
}
