package newsproxy

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"allstock/internal/httpx"
	"allstock/internal/provider"
)

const (
	// DefaultProxyBase is the CORS proxy that relays the feed body verbatim.
	DefaultProxyBase = "https://api.allorigins.me/raw"
	// DefaultTarget is a per-symbol RSS 2.0 headline feed.
	DefaultTarget = "https://feeds.finance.yahoo.com/rss/2.0/headline?s={symbol}&region=US&lang=en-US"

	symbolPlaceholder = "{symbol}"
)

// ErrTooFewItems is returned when the feed has fewer than provider.NewsCount items.
var ErrTooFewItems = errors.New("news feed has too few items")

// Config controls the proxy news source.
type Config struct {
	Name      string
	ProxyBase string
	// Target is the feed URL; {symbol} is replaced by the query-escaped symbol.
	Target string
}

// Provider reads an RSS feed through a relay proxy.
type Provider struct {
	cfg    Config
	client *httpx.Client
}

func New(cfg Config, hc *httpx.Client) *Provider {
	if cfg.Name == "" {
		cfg.Name = "NewsProxy"
	}
	if cfg.ProxyBase == "" {
		cfg.ProxyBase = DefaultProxyBase
	}
	if cfg.Target == "" {
		cfg.Target = DefaultTarget
	}
	return &Provider{cfg: cfg, client: hc}
}

func (p *Provider) Name() string { return p.cfg.Name }

// RequestURL builds <proxy-base>?url=<target> for sym.
func (p *Provider) RequestURL(sym provider.Symbol) (string, error) {
	u, err := url.Parse(p.cfg.ProxyBase)
	if err != nil {
		return "", fmt.Errorf("parsing proxy base: %w", err)
	}
	target := strings.ReplaceAll(p.cfg.Target, symbolPlaceholder, url.QueryEscape(sym.String()))
	q := u.Query()
	q.Set("url", target)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Headlines returns the first provider.NewsCount feed items for sym.
func (p *Provider) Headlines(ctx context.Context, sym provider.Symbol) ([]provider.NewsItem, error) {
	endpoint, err := p.RequestURL(sym)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml")

	resp, err := p.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: performing request: %w", p.cfg.Name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s: GET %s -> %d", p.cfg.Name, endpoint, resp.StatusCode)
	}

	var feed rss
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", p.cfg.Name, err)
	}
	items := feed.Channel.Items
	if len(items) < provider.NewsCount {
		return nil, fmt.Errorf("%s: %w: got %d", p.cfg.Name, ErrTooFewItems, len(items))
	}

	out := make([]provider.NewsItem, 0, provider.NewsCount)
	for _, it := range items[:provider.NewsCount] {
		source := strings.TrimSpace(it.Source)
		if source == "" {
			source = strings.TrimSpace(feed.Channel.Title)
		}
		out = append(out, provider.NewsItem{
			Title:   strings.TrimSpace(it.Title),
			Source:  source,
			Snippet: plainText(it.Description),
		})
	}
	return out, nil
}

// plainText strips markup that feeds embed in descriptions.
func plainText(s string) string {
	if !strings.ContainsRune(s, '<') {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

type rss struct {
	Channel struct {
		Title string    `xml:"title"`
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Source      string `xml:"source"`
}
