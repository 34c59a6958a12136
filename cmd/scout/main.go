package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/scout"
	"github.com/fwojciec/scout/anthropic"
	"github.com/fwojciec/scout/duckduckgo"
	"github.com/fwojciec/scout/extract"
	"github.com/fwojciec/scout/gemini"
	"github.com/fwojciec/scout/goquery"
	"github.com/fwojciec/scout/htmltomarkdown"
	scouthttp "github.com/fwojciec/scout/http"
	"github.com/fwojciec/scout/jina"
	"github.com/fwojciec/scout/pipeline"
	scoutslog "github.com/fwojciec/scout/slog"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// A missing .env file is not an error; the environment may be set directly.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Services for end-to-end testing. When set they replace the services
	// built from flags.
	Searcher  scout.Searcher
	Fetcher   scout.Fetcher
	Completer scout.Completer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("scout"),
		kong.Description("Extract company contact details from a company name or website."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'scout --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg := cli.Config()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", scout.ErrorMessage(err))
		return err
	}
	deps.Config = cfg
	deps.Logger = newLogger(stderr, cli.Verbose, cli.LogJSON)

	switch kongCtx.Command() {
	case "resolve <name>":
		searcher, err := m.searcher(cli, deps)
		if err != nil {
			return err
		}
		deps.Resolver = pipeline.NewResolver(searcher, cfg)

	case "extract <query>":
		searcher, err := m.searcher(cli, deps)
		if err != nil {
			return err
		}
		completer, err := m.completer(ctx, cli, deps)
		if err != nil {
			return err
		}

		fetcher := m.Fetcher
		if fetcher == nil {
			fetcher = scouthttp.NewFetcherFromConfig(cfg)
		}
		fetcher = scoutslog.NewLoggingFetcher(fetcher, deps.Logger)
		defer fetcher.Close()

		sitemaps := scoutslog.NewLoggingSitemapService(
			scouthttp.NewSitemapService(nil).WithUserAgent(cfg.UserAgent),
			deps.Logger,
		)

		collector := pipeline.NewCollector(
			fetcher,
			goquery.NewLinkSelector(cfg.LinkKeywords),
			textExtractor(cfg.TextFormat),
			sitemaps,
			cfg,
		)

		deps.Runner = scoutslog.NewLoggingRunner(
			pipeline.New(pipeline.NewResolver(searcher, cfg), collector, extract.NewEngine(completer, cfg)),
			deps.Logger,
		)
	}

	return kongCtx.Run(deps)
}

// searcher returns the configured search provider wrapped with logging.
func (m *Main) searcher(cli *CLI, deps *Dependencies) (scout.Searcher, error) {
	searcher := m.Searcher
	if searcher == nil {
		switch cli.Search {
		case searchJina:
			if cli.JinaAPIKey == "" {
				fmt.Fprintln(deps.Stderr, "JINA_API_KEY environment variable not set. Get an API key at https://jina.ai")
				return nil, fmt.Errorf("JINA_API_KEY not set")
			}
			searcher = jina.NewSearcher(cli.JinaAPIKey)
		default:
			searcher = duckduckgo.NewSearcher(duckduckgo.WithUserAgent(deps.Config.UserAgent))
		}
	}
	return scoutslog.NewLoggingSearcher(searcher, deps.Logger), nil
}

// completer returns the configured model provider wrapped with logging.
func (m *Main) completer(ctx context.Context, cli *CLI, deps *Dependencies) (scout.Completer, error) {
	if m.Completer != nil {
		return scoutslog.NewLoggingCompleter(m.Completer, cli.Model, deps.Logger), nil
	}

	switch cli.Provider {
	case providerAnthropic:
		if cli.AnthropicAPIKey == "" {
			fmt.Fprintln(deps.Stderr, "ANTHROPIC_API_KEY environment variable not set. Get an API key at https://console.anthropic.com")
			return nil, fmt.Errorf("ANTHROPIC_API_KEY not set")
		}
		model := cli.Model
		if model == "" {
			model = anthropic.DefaultModel
		}
		c := anthropic.NewCompleter(cli.AnthropicAPIKey, model)
		return scoutslog.NewLoggingCompleter(c, model, deps.Logger), nil

	default:
		if cli.GeminiAPIKey == "" {
			fmt.Fprintln(deps.Stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cli.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		c := gemini.NewCompleter(client, cli.Model)
		return scoutslog.NewLoggingCompleter(c, c.Model(), deps.Logger), nil
	}
}

func textExtractor(format string) scout.TextExtractor {
	if format == scout.TextFormatMarkdown {
		return htmltomarkdown.NewExtractor()
	}
	return goquery.NewTextExtractor()
}

func newLogger(w io.Writer, verbose, asJSON bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if asJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
