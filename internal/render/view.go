package render

import (
	"errors"

	"allstock/internal/dashboard"
	"allstock/internal/format"
	"allstock/internal/provider"
)

// SampleLabel marks values that came from generated data.
const SampleLabel = "Sample data"

// View is a Result with every value pre-formatted for display.
type View struct {
	Symbol string
	Quote  QuoteView
	Rates  []RateView
	News   []NewsView

	QuoteLabel string
	RatesLabel string
	NewsLabel  string
	RunID      string
}

type QuoteView struct {
	Name          string
	Symbol        string
	Exchange      string
	Price         string
	Arrow         string
	Change        string
	Positive      bool
	MarketCap     string
	DayHigh       string
	DayLow        string
	Volume        string
	PreviousClose string
	MarketState   string
}

type RateView struct {
	Pair    string
	Rate    string
	Caption string
}

type NewsView struct {
	Title   string
	Source  string
	Snippet string
}

// NewView formats res.
func NewView(res dashboard.Result) View {
	v := View{
		Symbol:     res.Symbol.String(),
		Quote:      newQuoteView(res.Quote.Value),
		QuoteLabel: label(res.Quote.Provenance, res.Quote.Source),
		RatesLabel: label(res.Rates.Provenance, res.Rates.Source),
		NewsLabel:  label(res.News.Provenance, res.News.Source),
		RunID:      res.RunID,
	}
	for _, r := range res.Rates.Value {
		v.Rates = append(v.Rates, newRateView(r))
	}
	for _, n := range res.News.Value {
		v.News = append(v.News, NewsView{Title: n.Title, Source: n.Source, Snippet: n.Snippet})
	}
	return v
}

func newQuoteView(q provider.Quote) QuoteView {
	arrow := "▼"
	if q.IsPositive() {
		arrow = "▲"
	}
	return QuoteView{
		Name:          q.DisplayName,
		Symbol:        q.Symbol,
		Exchange:      q.Exchange,
		Price:         format.Price(q.Price),
		Arrow:         arrow,
		Change:        format.Change(q.Change, q.ChangePercent),
		Positive:      q.IsPositive(),
		MarketCap:     format.MarketCap(q.MarketCap),
		DayHigh:       format.Price(q.DayHigh),
		DayLow:        format.Price(q.DayLow),
		Volume:        format.Volume(q.Volume),
		PreviousClose: format.Price(q.PreviousClose),
		MarketState:   q.MarketState,
	}
}

func newRateView(r provider.Rate) RateView {
	rate := format.Rate(r.Rate)
	return RateView{
		Pair:    "USD/" + r.Code,
		Rate:    rate,
		Caption: "1 USD = " + rate + " " + r.Code,
	}
}

func label(p dashboard.Provenance, source string) string {
	if p == dashboard.Live && source != "" {
		return "Live: " + source
	}
	if p == dashboard.Live {
		return "Live"
	}
	return SampleLabel
}

// EmptySymbolMessage is shown for blank input.
const EmptySymbolMessage = "Please enter a stock symbol or search term"

// Message maps an input error to the text shown to the user.
func Message(err error) string {
	if errors.Is(err, provider.ErrEmptySymbol) {
		return EmptySymbolMessage
	}
	return "Something went wrong: " + err.Error()
}
