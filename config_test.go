package scout_test

import (
	"testing"

	"github.com/fwojciec/scout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	t.Parallel()

	cfg := scout.DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.NotEmpty(t, cfg.Denylist)
	assert.Contains(t, cfg.LinkKeywords, "contact")
	assert.Contains(t, cfg.LinkKeywords, "about")
	assert.Contains(t, cfg.LinkKeywords, "team")
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*scout.Config)
	}{
		{"zero fetch timeout", func(c *scout.Config) { c.FetchTimeout = 0 }},
		{"negative model timeout", func(c *scout.Config) { c.ModelTimeout = -1 }},
		{"no search results", func(c *scout.Config) { c.SearchResults = 0 }},
		{"query without placeholder", func(c *scout.Config) { c.QueryTemplate = "official website" }},
		{"no keywords", func(c *scout.Config) { c.LinkKeywords = nil }},
		{"blank keyword", func(c *scout.Config) { c.LinkKeywords = scout.Keywords{"contact", ""} }},
		{"zero pages", func(c *scout.Config) { c.MaxPages = 0 }},
		{"tiny page cap", func(c *scout.Config) { c.MaxPageChars = 10 }},
		{"unknown text format", func(c *scout.Config) { c.TextFormat = "html" }},
		{"no user agent", func(c *scout.Config) { c.UserAgent = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := scout.DefaultConfig()
			tt.modify(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, scout.EINVALID, scout.ErrorCode(err))
		})
	}
}

func TestConfig_Query(t *testing.T) {
	t.Parallel()

	cfg := scout.DefaultConfig()

	assert.Equal(t, "Acme Drones official website", cfg.Query("Acme Drones"))
}
