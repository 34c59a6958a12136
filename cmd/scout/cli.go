package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/scout"
)

// Non-default provider names accepted by --provider and --search.
const (
	providerAnthropic = "anthropic"
	searchJina        = "jina"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Config   scout.Config
	Resolver scout.WebsiteResolver
	Runner   scout.Runner
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Extract  ExtractCmd  `cmd:"" help:"Extract contact details for a company name or URL"`
	Resolve  ResolveCmd  `cmd:"" help:"Find the official website for a company name"`
	Classify ClassifyCmd `cmd:"" help:"Show whether an input is treated as a company name or a URL"`

	Provider string `enum:"gemini,anthropic" default:"gemini" env:"SCOUT_PROVIDER" help:"Language model provider (${enum})"`
	Search   string `enum:"duckduckgo,jina" default:"duckduckgo" env:"SCOUT_SEARCH" help:"Search provider (${enum})"`
	Format   string `enum:"text,markdown" default:"text" env:"SCOUT_FORMAT" help:"Page text format sent to the model (${enum})"`
	Model    string `env:"SCOUT_MODEL" help:"Model name (provider default when empty)"`

	SearchTimeout time.Duration `default:"10s" help:"Search request timeout"`
	FetchTimeout  time.Duration `default:"15s" help:"Page fetch timeout"`
	ModelTimeout  time.Duration `default:"60s" help:"Model call timeout"`
	MaxPages      int           `default:"4" help:"Pages per site, root page included"`
	MaxPageChars  int           `default:"8000" help:"Characters of text kept per page"`
	Deny          []string      `name:"deny" help:"Extra domain to skip in search results (repeatable)"`
	Keyword       []string      `name:"keyword" help:"Candidate link keyword, replaces the defaults (repeatable)"`
	NoSitemap     bool          `help:"Do not consult sitemaps for candidate pages"`

	Verbose bool `short:"v" help:"Log every fetch"`
	LogJSON bool `name:"log-json" help:"Write logs as JSON"`

	GeminiAPIKey    string `env:"GEMINI_API_KEY" hidden:""`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY" hidden:""`
	JinaAPIKey      string `env:"JINA_API_KEY" hidden:""`
}

// Config returns the pipeline configuration selected by the flags.
func (c *CLI) Config() scout.Config {
	cfg := scout.DefaultConfig()
	cfg.SearchTimeout = c.SearchTimeout
	cfg.FetchTimeout = c.FetchTimeout
	cfg.ModelTimeout = c.ModelTimeout
	cfg.MaxPages = c.MaxPages
	cfg.MaxPageChars = c.MaxPageChars
	cfg.Denylist = append(cfg.Denylist, c.Deny...)
	if len(c.Keyword) > 0 {
		cfg.LinkKeywords = scout.Keywords(c.Keyword)
	}
	cfg.UseSitemap = !c.NoSitemap
	cfg.TextFormat = c.Format
	return cfg
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Query string `arg:"" help:"Company name or website URL"`
}

// ResolveCmd is the "resolve" subcommand.
type ResolveCmd struct {
	Name string `arg:"" help:"Company name"`
}

// ClassifyCmd is the "classify" subcommand.
type ClassifyCmd struct {
	Input string `arg:"" help:"Raw input"`
}
