package exchangerate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"allstock/internal/httpx"
	"allstock/internal/provider"
)

// DefaultURL is the public USD-based latest-rates endpoint.
const DefaultURL = "https://api.exchangerate-api.com/v4/latest/USD"

// ErrNoRates is returned when the payload has no usable rates object.
var ErrNoRates = errors.New("exchange rate response has no rates")

// Config controls the exchange rate provider.
type Config struct {
	Name    string
	URL     string
	Headers map[string]string // optional extra headers
	// Timeout bounds a single upstream fetch. Zero means 7s.
	Timeout time.Duration
}

// Provider fetches USD-based rates. Concurrent callers share one upstream
// request.
type Provider struct {
	cfg    Config
	client *httpx.Client
	sf     singleflight.Group
}

func New(cfg Config, hc *httpx.Client) *Provider {
	if cfg.Name == "" {
		cfg.Name = "ExchangeRate-API"
	}
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 7 * time.Second
	}
	return &Provider{cfg: cfg, client: hc}
}

func (p *Provider) Name() string { return p.cfg.Name }

// Rates returns the latest rate table keyed by upper-case currency code.
func (p *Provider) Rates(ctx context.Context) (provider.Rates, error) {
	// The shared fetch outlives any single caller; each caller waits on its
	// own context.
	ch := p.sf.DoChan(p.cfg.URL, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.cfg.Timeout)
		defer cancel()
		return p.fetch(fetchCtx)
	})
	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", p.cfg.Name, ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, fmt.Errorf("%s: %w", p.cfg.Name, res.Err)
	}
	// Each caller gets its own copy of the shared table.
	shared := res.Val.(provider.Rates)
	out := make(provider.Rates, len(shared))
	for k, r := range shared {
		out[k] = r
	}
	return out, nil
}

func (p *Provider) fetch(ctx context.Context) (provider.Rates, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.cfg.URL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, v := range p.cfg.Headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("GET %s -> %d", p.cfg.URL, resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(body.Rates) == 0 {
		return nil, ErrNoRates
	}
	out := make(provider.Rates, len(body.Rates))
	for code, r := range body.Rates {
		out[strings.ToUpper(code)] = r
	}
	return out, nil
}

type apiResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}
