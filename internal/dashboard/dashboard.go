package dashboard

import (
	"context"
	"io"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"allstock/internal/mockdata"
	"allstock/internal/provider"
)

// Config controls how a Pipeline runs its stages.
type Config struct {
	// Concurrent runs the quote and rates stages in parallel.
	Concurrent bool
	// Currencies is the rate allow-list, in display order. Codes outside
	// provider.MajorCurrencies are ignored.
	Currencies []string
}

// DefaultConfig runs concurrently over the major currencies.
func DefaultConfig() Config {
	return Config{Concurrent: true, Currencies: provider.MajorCurrencies}
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithQuoteSource sets the live quote source. Without one every quote is a fallback.
func WithQuoteSource(s provider.QuoteSource) Option {
	return func(p *Pipeline) { p.quotes = s }
}

// WithRateSource sets the live rate source.
func WithRateSource(s provider.RateSource) Option {
	return func(p *Pipeline) { p.rates = s }
}

// WithNewsSource sets the live news source. News is synthesized when unset.
func WithNewsSource(s provider.NewsSource) Option {
	return func(p *Pipeline) { p.news = s }
}

// WithGenerator replaces the fallback data generator.
func WithGenerator(g *mockdata.Generator) Option {
	return func(p *Pipeline) { p.mock = g }
}

// WithLogger sets the logger used to report fallbacks.
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Pipeline) { p.log = l }
}

// Pipeline acquires quote, rates and news for a symbol. Every stage degrades
// to generated data instead of failing, so Run always returns a full Result.
type Pipeline struct {
	cfg    Config
	quotes provider.QuoteSource
	rates  provider.RateSource
	news   provider.NewsSource
	mock   *mockdata.Generator
	log    logrus.FieldLogger
}

func New(cfg Config, opts ...Option) *Pipeline {
	cfg.Currencies = majorOnly(cfg.Currencies)
	p := &Pipeline{cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}
	if p.mock == nil {
		p.mock = mockdata.New()
	}
	if p.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		p.log = l
	}
	return p
}

// Run executes the three stages for sym. Cancelling ctx drives the remaining
// live stages to their fallback.
func (p *Pipeline) Run(ctx context.Context, sym provider.Symbol) Result {
	start := time.Now()
	res := Result{Symbol: sym, RunID: uuid.NewString()}
	log := p.log.WithFields(logrus.Fields{"symbol": sym.String(), "run_id": res.RunID})

	if p.cfg.Concurrent {
		var g errgroup.Group
		g.Go(func() error {
			res.Quote = p.quoteStage(ctx, sym, log)
			return nil
		})
		g.Go(func() error {
			res.Rates = p.ratesStage(ctx, log)
			return nil
		})
		_ = g.Wait()
	} else {
		res.Quote = p.quoteStage(ctx, sym, log)
		res.Rates = p.ratesStage(ctx, log)
	}
	res.News = p.newsStage(ctx, sym, log)

	res.Elapsed = time.Since(start)
	log.WithFields(logrus.Fields{
		"quote":   res.Quote.Provenance,
		"rates":   res.Rates.Provenance,
		"news":    res.News.Provenance,
		"elapsed": res.Elapsed.String(),
	}).Debug("pipeline run complete")
	return res
}

// Quote runs the quote stage alone.
func (p *Pipeline) Quote(ctx context.Context, sym provider.Symbol) Outcome[provider.Quote] {
	return p.quoteStage(ctx, sym, p.log.WithField("symbol", sym.String()))
}

// Rates runs the rates stage alone.
func (p *Pipeline) Rates(ctx context.Context) Outcome[[]provider.Rate] {
	return p.ratesStage(ctx, p.log)
}

// News runs the news stage alone.
func (p *Pipeline) News(ctx context.Context, sym provider.Symbol) Outcome[[]provider.NewsItem] {
	return p.newsStage(ctx, sym, p.log.WithField("symbol", sym.String()))
}

func (p *Pipeline) quoteStage(ctx context.Context, sym provider.Symbol, log logrus.FieldLogger) Outcome[provider.Quote] {
	if p.quotes != nil {
		q, err := p.quotes.Quote(ctx, sym)
		if err == nil {
			return Outcome[provider.Quote]{Value: q, Provenance: Live, Source: p.quotes.Name()}
		}
		warn(log, "quote", p.quotes.Name(), err)
		return Outcome[provider.Quote]{Value: p.mock.Quote(sym), Provenance: Fallback, Err: err}
	}
	return Outcome[provider.Quote]{Value: p.mock.Quote(sym), Provenance: Fallback}
}

func (p *Pipeline) ratesStage(ctx context.Context, log logrus.FieldLogger) Outcome[[]provider.Rate] {
	if p.rates != nil {
		r, err := p.rates.Rates(ctx)
		if err == nil && len(r) == 0 {
			err = errEmptyRates
		}
		if err == nil {
			return Outcome[[]provider.Rate]{Value: r.Select(p.cfg.Currencies), Provenance: Live, Source: p.rates.Name()}
		}
		warn(log, "rates", p.rates.Name(), err)
		return Outcome[[]provider.Rate]{Value: p.mock.Rates().Select(p.cfg.Currencies), Provenance: Fallback, Err: err}
	}
	return Outcome[[]provider.Rate]{Value: p.mock.Rates().Select(p.cfg.Currencies), Provenance: Fallback}
}

func (p *Pipeline) newsStage(ctx context.Context, sym provider.Symbol, log logrus.FieldLogger) Outcome[[]provider.NewsItem] {
	if p.news != nil {
		items, err := p.news.Headlines(ctx, sym)
		if err == nil && len(items) < provider.NewsCount {
			err = errTooFewNews
		}
		if err == nil {
			return Outcome[[]provider.NewsItem]{Value: items[:provider.NewsCount], Provenance: Live, Source: p.news.Name()}
		}
		warn(log, "news", p.news.Name(), err)
		return Outcome[[]provider.NewsItem]{Value: p.mock.News(sym), Provenance: Fallback, Err: err}
	}
	return Outcome[[]provider.NewsItem]{Value: p.mock.News(sym), Provenance: Fallback}
}

// majorOnly keeps the configured codes that are major currencies, in the
// configured order. An empty result means all of them.
func majorOnly(codes []string) []string {
	out := make([]string, 0, len(provider.MajorCurrencies))
	for _, c := range codes {
		if slices.Contains(provider.MajorCurrencies, c) && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return provider.MajorCurrencies
	}
	return out
}

func warn(log logrus.FieldLogger, stage, source string, err error) {
	log.WithFields(logrus.Fields{
		"stage":  stage,
		"source": source,
	}).WithError(err).Warn("live source failed, using fallback data")
}
