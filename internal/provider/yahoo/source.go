package yahoo

import (
	"context"
	"fmt"

	"allstock/internal/provider"
)

// NotAvailable stands in for textual fields the upstream omits.
const NotAvailable = "N/A"

// Source adapts a QuoteAPIClient to provider.QuoteSource.
type Source struct {
	name   string
	client *QuoteAPIClient
}

// NewSource wraps client. An empty name defaults to "Yahoo Finance".
func NewSource(name string, client *QuoteAPIClient) *Source {
	if name == "" {
		name = "Yahoo Finance"
	}
	return &Source{name: name, client: client}
}

func (s *Source) Name() string { return s.name }

// Quote fetches one symbol and maps the first record to a provider.Quote.
func (s *Source) Quote(ctx context.Context, sym provider.Symbol) (provider.Quote, error) {
	records, err := s.client.GetQuotes(ctx, []string{sym.String()})
	if err != nil {
		return provider.Quote{}, fmt.Errorf("%s: %w", s.name, err)
	}
	return ToQuote(records[0]), nil
}

// ToQuote maps a raw record. Missing text becomes "N/A", missing numbers 0.
func ToQuote(r QuoteRecord) provider.Quote {
	return provider.Quote{
		DisplayName:   displayName(r),
		Symbol:        orNA(r.Symbol),
		Exchange:      orNA(r.FullExchangeName, r.Exchange),
		Price:         r.RegularMarketPrice,
		Change:        r.RegularMarketChange,
		ChangePercent: r.RegularMarketChangePercent,
		DayHigh:       r.RegularMarketDayHigh,
		DayLow:        r.RegularMarketDayLow,
		PreviousClose: r.RegularMarketPreviousClose,
		Volume:        r.RegularMarketVolume,
		MarketCap:     r.MarketCap,
		MarketState:   orNA(r.MarketState),
	}
}

func displayName(r QuoteRecord) string {
	return orNA(r.LongName, r.ShortName)
}

func orNA(candidates ...string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return NotAvailable
}
