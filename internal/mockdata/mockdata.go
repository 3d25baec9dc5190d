// Package mockdata synthesizes placeholder quotes, rates and news used
// whenever a live source is unavailable.
package mockdata

import (
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"allstock/internal/provider"
)

const (
	fallbackExchange    = "NASDAQ"
	fallbackMarketState = "REGULAR"
)

type knownQuote struct {
	name      string
	price     float64
	change    float64
	percent   float64
	marketCap float64
	high      float64
	low       float64
	volume    float64
}

var knownQuotes = map[provider.Symbol]knownQuote{
	"AAPL":  {"Apple Inc.", 228.12, -0.84, -0.37, 3_531_200_000_000, 229.15, 227.48, 27_362_000},
	"GOOGL": {"Alphabet Inc.", 175.45, 2.15, 1.24, 2_189_000_000_000, 176.23, 173.89, 19_847_000},
	"MSFT":  {"Microsoft Corporation", 415.32, 3.78, 0.92, 3_089_000_000_000, 417.45, 412.67, 22_156_000},
	"TSLA":  {"Tesla, Inc.", 242.84, -5.12, -2.07, 772_000_000_000, 248.90, 241.23, 89_234_000},
	"NVDA":  {"NVIDIA Corporation", 875.28, 12.45, 1.44, 2_156_000_000_000, 882.15, 868.34, 45_678_000},
}

// companyNames are the short names substituted into news headlines.
var companyNames = map[provider.Symbol]string{
	"AAPL":  "Apple",
	"GOOGL": "Google",
	"MSFT":  "Microsoft",
	"TSLA":  "Tesla",
	"NVDA":  "NVIDIA",
}

var fallbackRates = provider.Rates{
	"EUR": 0.92,
	"GBP": 0.79,
	"JPY": 149.82,
	"CNY": 7.24,
	"CHF": 0.88,
	"CAD": 1.36,
}

// Generator produces fallback records. It is safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Generator seeded from the clock.
func New() *Generator {
	seed := uint64(time.Now().UnixNano())
	return NewWithRand(rand.New(rand.NewPCG(seed, seed>>1|1)))
}

// NewWithRand returns a Generator drawing from rng.
func NewWithRand(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Quote returns the fixed quote for well-known symbols, or plausible random
// values otherwise: price in [150,250), change in [-5,5), percent in [-2.5,2.5).
func (g *Generator) Quote(sym provider.Symbol) provider.Quote {
	k, ok := knownQuotes[sym]
	if !ok {
		g.mu.Lock()
		k = knownQuote{
			name:      string(sym) + " Corporation",
			price:     150 + g.rng.Float64()*100,
			change:    (g.rng.Float64() - 0.5) * 10,
			percent:   (g.rng.Float64() - 0.5) * 5,
			marketCap: 1_000_000_000_000,
			high:      155,
			low:       145,
			volume:    10_000_000,
		}
		g.mu.Unlock()
	}
	return provider.Quote{
		DisplayName:   k.name,
		Symbol:        string(sym),
		Exchange:      fallbackExchange,
		Price:         k.price,
		Change:        k.change,
		ChangePercent: k.percent,
		DayHigh:       k.high,
		DayLow:        k.low,
		PreviousClose: k.price - k.change,
		Volume:        k.volume,
		MarketCap:     k.marketCap,
		MarketState:   fallbackMarketState,
	}
}

// Rates returns a copy of the hardcoded six-currency table.
func (g *Generator) Rates() provider.Rates {
	out := make(provider.Rates, len(fallbackRates))
	for k, v := range fallbackRates {
		out[k] = v
	}
	return out
}

// CompanyName is the short display name used in headlines; unknown symbols
// are used verbatim.
func CompanyName(sym provider.Symbol) string {
	if n, ok := companyNames[sym]; ok {
		return n
	}
	return string(sym)
}

type newsTemplate struct {
	title   string
	source  string
	snippet string
}

// {c} is replaced with the company name.
var newsTemplates = [provider.NewsCount]newsTemplate{
	{
		title:   "{c} Announces Breakthrough in AI Technology",
		source:  "TechCrunch",
		snippet: "{c} unveiled its latest artificial intelligence platform, promising to revolutionize the industry with advanced machine learning capabilities and enhanced performance.",
	},
	{
		title:   "{c} Stock Surges on Strong Quarterly Earnings",
		source:  "Financial Times",
		snippet: "Shares of {c} rose following better-than-expected quarterly results, with revenue beating analyst estimates and showing strong growth in key markets.",
	},
	{
		title:   "Analysts Upgrade {c} with Bullish Outlook",
		source:  "Bloomberg",
		snippet: "Multiple Wall Street analysts have upgraded their ratings on {c}, citing strong fundamentals and positive market trends in the technology sector.",
	},
	{
		title:   "{c} Expands Global Operations with New Facilities",
		source:  "Reuters",
		snippet: "The tech giant announced plans to expand its operations internationally, with new facilities planned in key markets to support growing demand for its products and services.",
	},
	{
		title:   "Innovation at {c}: Next-Gen Products Revealed",
		source:  "The Verge",
		snippet: "{c} showcased its upcoming product lineup at a major tech conference, highlighting cutting-edge features and improved sustainability initiatives.",
	},
	{
		title:   "{c} Partners with Industry Leaders on New Initiative",
		source:  "CNBC",
		snippet: "In a strategic move, {c} announced partnerships with several industry leaders to develop innovative solutions and expand its market presence.",
	},
}

// News returns the six templated headlines for sym.
func (g *Generator) News(sym provider.Symbol) []provider.NewsItem {
	r := strings.NewReplacer("{c}", CompanyName(sym))
	out := make([]provider.NewsItem, 0, len(newsTemplates))
	for _, t := range newsTemplates {
		out = append(out, provider.NewsItem{
			Title:   r.Replace(t.title),
			Source:  t.source,
			Snippet: r.Replace(t.snippet),
		})
	}
	return out
}
