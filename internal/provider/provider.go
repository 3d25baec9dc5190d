package provider

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptySymbol is returned for blank search input.
var ErrEmptySymbol = errors.New("please enter a stock symbol or search term")

// Symbol is an uppercase, trimmed, non-empty ticker.
type Symbol string

// NormalizeSymbol trims and uppercases raw user input.
func NormalizeSymbol(raw string) (Symbol, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return "", ErrEmptySymbol
	}
	return Symbol(s), nil
}

func (s Symbol) String() string { return string(s) }

// Quote is the normalized snapshot returned by quote sources and fallbacks.
// Numeric fields are zero when the upstream omitted them.
type Quote struct {
	DisplayName   string  `json:"display_name"`
	Symbol        string  `json:"symbol"`
	Exchange      string  `json:"exchange"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	DayHigh       float64 `json:"day_high"`
	DayLow        float64 `json:"day_low"`
	PreviousClose float64 `json:"previous_close"`
	Volume        float64 `json:"volume"`
	MarketCap     float64 `json:"market_cap"`
	MarketState   string  `json:"market_state"`
}

// IsPositive reports whether the day change is non-negative.
func (q Quote) IsPositive() bool { return q.Change >= 0 }

// Rates maps currency codes to units of that currency per one US dollar.
type Rates map[string]float64

// Rate is a single allow-listed entry ready for display.
type Rate struct {
	Code string  `json:"code"`
	Rate float64 `json:"rate"`
}

// MajorCurrencies is the display allow-list, in display order.
var MajorCurrencies = []string{"EUR", "GBP", "JPY", "CNY", "CHF", "CAD"}

// Select projects r onto allow in allow-list order. Lookups are
// case-insensitive on the upstream key; missing and zero rates are skipped.
func (r Rates) Select(allow []string) []Rate {
	byCode := make(map[string]float64, len(r))
	for k, v := range r {
		byCode[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	out := make([]Rate, 0, len(allow))
	for _, code := range allow {
		v, ok := byCode[code]
		if !ok || v == 0 {
			continue
		}
		out = append(out, Rate{Code: code, Rate: v})
	}
	return out
}

// NewsItem is one headline card.
type NewsItem struct {
	Title   string `json:"title"`
	Source  string `json:"source"`
	Snippet string `json:"snippet"`
}

// NewsCount is the number of items every news stage yields.
const NewsCount = 6

type QuoteSource interface {
	Name() string
	Quote(ctx context.Context, sym Symbol) (Quote, error)
}

type RateSource interface {
	Name() string
	Rates(ctx context.Context) (Rates, error)
}

// NewsSource is the seam for a live headline feed.
type NewsSource interface {
	Name() string
	Headlines(ctx context.Context, sym Symbol) ([]NewsItem, error)
}
