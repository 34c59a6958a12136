package pipeline_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/scout"
	"github.com/fwojciec/scout/extract"
	"github.com/fwojciec/scout/mock"
	"github.com/fwojciec/scout/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringPtr(s string) *string { return &s }

func unusedResolver(t *testing.T) *mock.WebsiteResolver {
	return &mock.WebsiteResolver{
		ResolveFn: func(context.Context, string) (*scout.ResolvedSite, error) {
			t.Error("unexpected resolve")
			return nil, errors.New("unexpected")
		},
	}
}

func bundleFetcher() *mock.ContentFetcher {
	return &mock.ContentFetcher{
		FetchBundleFn: func(_ context.Context, url string) (*scout.PageBundle, error) {
			return &scout.PageBundle{
				PrimaryURL: url,
				Pages:      []scout.Page{{URL: url, Text: "Acme", ContentType: "text/html"}},
			}, nil
		},
	}
}

func recordExtractor(rec *scout.CandidateRecord) *mock.Extractor {
	return &mock.Extractor{
		ExtractFn: func(context.Context, *scout.PageBundle) (*scout.CandidateRecord, error) {
			return rec, nil
		},
	}
}

func TestPipeline_Run(t *testing.T) {
	t.Parallel()

	t.Run("extracts record from direct URL end to end", func(t *testing.T) {
		t.Parallel()

		site := newFakeSite().
			html("https://example-drones.com", `<html><head><title>Example Drones</title></head><body>
				<a href="/contact">Contact</a><p>Survey drones for agriculture.</p></body></html>`).
			html("https://example-drones.com/contact", `<body>
				<p>Email: <a href="mailto:info@example-drones.com">write to us</a></p>
				<p>Phone: +1 555 0100</p></body>`)
		completer := &mock.Completer{
			CompleteFn: func(_ context.Context, prompt string) (string, error) {
				assert.Contains(t, prompt, "info@example-drones.com")
				assert.Contains(t, prompt, "+1 555 0100")
				return `{"email":"info@example-drones.com","phone":"+1 555 0100","website":null}`, nil
			},
		}
		cfg := scout.DefaultConfig()
		p := pipeline.New(
			unusedResolver(t),
			newCollector(site.fetcher(), nil, cfg),
			extract.NewEngine(completer, cfg),
		)

		result := p.Run(context.Background(), "https://example-drones.com")

		require.True(t, result.OK(), result.Detail())
		assert.Equal(t, &scout.ResolvedSite{
			OriginURL:     "https://example-drones.com",
			DiscoveredVia: scout.DiscoveredDirect,
		}, result.Site)
		assert.Equal(t, stringPtr("https://example-drones.com"), result.Record.Website)
		assert.Equal(t, stringPtr("info@example-drones.com"), result.Record.Email)
		assert.Equal(t, stringPtr("+1 555 0100"), result.Record.Phone)
		assert.Nil(t, result.Record.Address)
	})

	t.Run("resolves company names through the resolver", func(t *testing.T) {
		t.Parallel()

		resolver := &mock.WebsiteResolver{
			ResolveFn: func(_ context.Context, name string) (*scout.ResolvedSite, error) {
				assert.Equal(t, "Acme Drones", name)
				return &scout.ResolvedSite{OriginURL: "https://acme.example", DiscoveredVia: scout.DiscoveredSearch}, nil
			},
		}
		fetched := make(chan string, 1)
		fetcher := &mock.ContentFetcher{
			FetchBundleFn: func(ctx context.Context, url string) (*scout.PageBundle, error) {
				fetched <- url
				return bundleFetcher().FetchBundle(ctx, url)
			},
		}
		p := pipeline.New(resolver, fetcher, recordExtractor(&scout.CandidateRecord{Email: stringPtr("hi@acme.example")}))

		result := p.Run(context.Background(), "  Acme Drones ")

		require.True(t, result.OK())
		assert.Equal(t, "https://acme.example", <-fetched)
		assert.Equal(t, scout.DiscoveredSearch, result.Site.DiscoveredVia)
		assert.Equal(t, stringPtr("https://acme.example"), result.Record.Website)
	})

	t.Run("keeps website reported by the model", func(t *testing.T) {
		t.Parallel()

		rec := &scout.CandidateRecord{Website: stringPtr("https://acme.com")}
		p := pipeline.New(unusedResolver(t), bundleFetcher(), recordExtractor(rec))

		result := p.Run(context.Background(), "https://www.acme.example/en/home")

		require.True(t, result.OK())
		assert.Equal(t, stringPtr("https://acme.com"), result.Record.Website)
	})

	t.Run("backfills website with the origin of a direct URL", func(t *testing.T) {
		t.Parallel()

		p := pipeline.New(unusedResolver(t), bundleFetcher(), recordExtractor(&scout.CandidateRecord{}))

		result := p.Run(context.Background(), "https://www.acme.example/en/home")

		require.True(t, result.OK())
		assert.Equal(t, stringPtr("https://www.acme.example"), result.Record.Website)
		assert.Equal(t, "https://www.acme.example", result.Site.OriginURL)
	})

	t.Run("fetches a direct URL as given", func(t *testing.T) {
		t.Parallel()

		fetched := make(chan string, 1)
		fetcher := &mock.ContentFetcher{
			FetchBundleFn: func(ctx context.Context, url string) (*scout.PageBundle, error) {
				fetched <- url
				return bundleFetcher().FetchBundle(ctx, url)
			},
		}
		p := pipeline.New(unusedResolver(t), fetcher, recordExtractor(&scout.CandidateRecord{}))

		result := p.Run(context.Background(), "acme.example/contact")

		require.True(t, result.OK())
		assert.Equal(t, "https://acme.example/contact", <-fetched)
		assert.Equal(t, "https://acme.example", result.Site.OriginURL)
	})

	t.Run("backfills company name from a name query", func(t *testing.T) {
		t.Parallel()

		resolver := &mock.WebsiteResolver{
			ResolveFn: func(context.Context, string) (*scout.ResolvedSite, error) {
				return &scout.ResolvedSite{OriginURL: "https://acme.example", DiscoveredVia: scout.DiscoveredSearch}, nil
			},
		}
		rec := &scout.CandidateRecord{Email: stringPtr("hi@acme.example")}
		p := pipeline.New(resolver, bundleFetcher(), recordExtractor(rec))

		result := p.Run(context.Background(), "  Acme Drones ")

		require.True(t, result.OK())
		assert.Equal(t, stringPtr("Acme Drones"), result.Record.CompanyName)
		assert.Equal(t, stringPtr("https://acme.example"), result.Record.Website)
	})

	t.Run("keeps company name reported by the model", func(t *testing.T) {
		t.Parallel()

		resolver := &mock.WebsiteResolver{
			ResolveFn: func(context.Context, string) (*scout.ResolvedSite, error) {
				return &scout.ResolvedSite{OriginURL: "https://acme.example", DiscoveredVia: scout.DiscoveredSearch}, nil
			},
		}
		rec := &scout.CandidateRecord{CompanyName: stringPtr("Acme Drones GmbH")}
		p := pipeline.New(resolver, bundleFetcher(), recordExtractor(rec))

		result := p.Run(context.Background(), "Acme Drones")

		require.True(t, result.OK())
		assert.Equal(t, stringPtr("Acme Drones GmbH"), result.Record.CompanyName)
	})

	t.Run("leaves company name empty for direct URLs", func(t *testing.T) {
		t.Parallel()

		p := pipeline.New(unusedResolver(t), bundleFetcher(), recordExtractor(&scout.CandidateRecord{}))

		result := p.Run(context.Background(), "https://acme.example")

		require.True(t, result.OK())
		assert.Nil(t, result.Record.CompanyName)
	})

	t.Run("does not modify the extractor's record", func(t *testing.T) {
		t.Parallel()

		rec := &scout.CandidateRecord{}
		p := pipeline.New(unusedResolver(t), bundleFetcher(), recordExtractor(rec))

		result := p.Run(context.Background(), "https://acme.example")

		require.True(t, result.OK())
		assert.Nil(t, rec.Website)
	})

	t.Run("reports website not found when all results are denylisted", func(t *testing.T) {
		t.Parallel()

		searcher := searcherReturning([]scout.SearchResult{
			{URL: "https://www.linkedin.com/company/acme"},
			{URL: "https://www.facebook.com/acme"},
		}, nil)
		fetcher := &mock.ContentFetcher{
			FetchBundleFn: func(context.Context, string) (*scout.PageBundle, error) {
				t.Error("unexpected fetch")
				return nil, nil
			},
		}
		p := pipeline.New(pipeline.NewResolver(searcher, scout.DefaultConfig()), fetcher, recordExtractor(nil))

		result := p.Run(context.Background(), "Acme Drones")

		assert.False(t, result.OK())
		assert.Nil(t, result.Record)
		assert.Nil(t, result.Site)
		assert.Equal(t, scout.EWEBSITENOTFOUND, result.Kind())
	})

	t.Run("reports fetch failed when root fetch times out", func(t *testing.T) {
		t.Parallel()

		f := &mock.Fetcher{
			FetchFn: func(ctx context.Context, _ string) (*scout.Response, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			},
		}
		cfg := scout.DefaultConfig()
		cfg.FetchTimeout = 20 * time.Millisecond
		extractor := &mock.Extractor{
			ExtractFn: func(context.Context, *scout.PageBundle) (*scout.CandidateRecord, error) {
				t.Error("unexpected extract")
				return nil, nil
			},
		}
		p := pipeline.New(unusedResolver(t), newCollector(f, nil, cfg), extractor)

		result := p.Run(context.Background(), "https://slow.example")

		assert.Equal(t, scout.EFETCHFAILED, result.Kind())
		assert.Equal(t, "https://slow.example", result.Site.OriginURL)
		assert.Contains(t, result.Detail(), "deadline exceeded")
	})

	t.Run("reports quota exhaustion from the model", func(t *testing.T) {
		t.Parallel()

		completer := &mock.Completer{
			CompleteFn: func(context.Context, string) (string, error) {
				return "", scout.Errorf(scout.EQUOTA, "quota exhausted")
			},
		}
		p := pipeline.New(unusedResolver(t), bundleFetcher(), extract.NewEngine(completer, scout.DefaultConfig()))

		result := p.Run(context.Background(), "https://acme.example")

		assert.Equal(t, scout.EQUOTA, result.Kind())
		assert.Nil(t, result.Record)
		assert.NotNil(t, result.Site)
	})

	t.Run("reports unparsable model output", func(t *testing.T) {
		t.Parallel()

		completer := &mock.Completer{
			CompleteFn: func(context.Context, string) (string, error) {
				return "I could not find any details.", nil
			},
		}
		p := pipeline.New(unusedResolver(t), bundleFetcher(), extract.NewEngine(completer, scout.DefaultConfig()))

		result := p.Run(context.Background(), "https://acme.example")

		assert.Equal(t, scout.EUNPARSABLE, result.Kind())
		var pe *extract.ParseError
		require.ErrorAs(t, result.Err, &pe)
		assert.Equal(t, "I could not find any details.", pe.Raw)
	})

	t.Run("maps foreign error codes to the stage default", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name      string
			resolver  scout.WebsiteResolver
			fetcher   scout.ContentFetcher
			extractor scout.Extractor
			input     string
			want      string
		}{
			{
				name: "resolver",
				resolver: &mock.WebsiteResolver{
					ResolveFn: func(context.Context, string) (*scout.ResolvedSite, error) {
						return nil, errors.New("boom")
					},
				},
				input: "Acme",
				want:  scout.EWEBSITENOTFOUND,
			},
			{
				name: "fetcher",
				fetcher: &mock.ContentFetcher{
					FetchBundleFn: func(context.Context, string) (*scout.PageBundle, error) {
						return nil, scout.Errorf(scout.EQUOTA, "wrong stage")
					},
				},
				input: "https://acme.example",
				want:  scout.EFETCHFAILED,
			},
			{
				name:    "extractor",
				fetcher: bundleFetcher(),
				extractor: &mock.Extractor{
					ExtractFn: func(context.Context, *scout.PageBundle) (*scout.CandidateRecord, error) {
						return nil, scout.Errorf(scout.EINVALID, "empty bundle")
					},
				},
				input: "https://acme.example",
				want:  scout.EUNAVAILABLE,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				p := pipeline.New(tt.resolver, tt.fetcher, tt.extractor)

				result := p.Run(context.Background(), tt.input)

				assert.Equal(t, tt.want, result.Kind())
				assert.True(t, scout.IsPipelineCode(result.Kind()))
			})
		}
	})

	t.Run("repeated runs give equal results", func(t *testing.T) {
		t.Parallel()

		site := newFakeSite().html("https://acme.example", `<body><p>Call +1 555 0100</p></body>`)
		completer := &mock.Completer{
			CompleteFn: func(_ context.Context, prompt string) (string, error) {
				if strings.Contains(prompt, "+1 555 0100") {
					return `{"phone":"+1 555 0100"}`, nil
				}
				return `{}`, nil
			},
		}
		cfg := scout.DefaultConfig()
		p := pipeline.New(unusedResolver(t), newCollector(site.fetcher(), nil, cfg), extract.NewEngine(completer, cfg))

		first := p.Run(context.Background(), "https://acme.example")
		second := p.Run(context.Background(), "https://acme.example")

		require.True(t, first.OK())
		assert.Equal(t, first, second)
	})
}
