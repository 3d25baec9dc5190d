package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"allstock/internal/dashboard"
	"allstock/internal/mockdata"
	"allstock/internal/provider"
)

func sampleResult() dashboard.Result {
	g := mockdata.New()
	return dashboard.Result{
		Symbol: "AAPL",
		Quote:  dashboard.Outcome[provider.Quote]{Value: g.Quote("AAPL"), Provenance: dashboard.Live, Source: "Yahoo Finance"},
		Rates:  dashboard.Outcome[[]provider.Rate]{Value: g.Rates().Select(provider.MajorCurrencies), Provenance: dashboard.Fallback},
		News:   dashboard.Outcome[[]provider.NewsItem]{Value: g.News("AAPL"), Provenance: dashboard.Fallback},
		RunID:  "run-1",
	}
}

func TestNewView(t *testing.T) {
	t.Parallel()

	// Act
	v := NewView(sampleResult())

	// Assert
	require.Equal(t, "AAPL", v.Symbol)
	require.Equal(t, "Apple Inc.", v.Quote.Name)
	require.Equal(t, "$228.12", v.Quote.Price)
	require.Equal(t, "▼", v.Quote.Arrow)
	require.Equal(t, "0.84 (0.37%)", v.Quote.Change)
	require.False(t, v.Quote.Positive)
	require.Equal(t, "$3.53T", v.Quote.MarketCap)
	require.Equal(t, "27.36M", v.Quote.Volume)
	require.Equal(t, "$228.96", v.Quote.PreviousClose)
	require.Equal(t, "Live: Yahoo Finance", v.QuoteLabel)
	require.Equal(t, SampleLabel, v.RatesLabel)

	require.Len(t, v.Rates, 6)
	require.Equal(t, RateView{Pair: "USD/EUR", Rate: "0.9200", Caption: "1 USD = 0.9200 EUR"}, v.Rates[0])
	require.Len(t, v.News, provider.NewsCount)
	require.Equal(t, "TechCrunch", v.News[0].Source)
}

func TestNewView_PositiveChange(t *testing.T) {
	t.Parallel()

	res := dashboard.Result{Quote: dashboard.Outcome[provider.Quote]{Value: provider.Quote{Change: 0}}}
	v := NewView(res)
	require.Equal(t, "▲", v.Quote.Arrow)
	require.True(t, v.Quote.Positive)
}

func TestMessage(t *testing.T) {
	t.Parallel()

	require.Equal(t, EmptySymbolMessage, Message(provider.ErrEmptySymbol))
	require.Contains(t, Message(errors.New("boom")), "boom")
}

func TestHTML_Welcome(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, Page{Presets: []string{"AAPL", "TSLA"}}))

	out := buf.String()
	require.Contains(t, out, "welcome-message")
	require.Contains(t, out, `href="/?symbol=TSLA"`)
	require.NotContains(t, out, "stock-data")
}

func TestHTML_Error(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, Page{Error: EmptySymbolMessage}))

	out := buf.String()
	require.Contains(t, out, EmptySymbolMessage)
	require.NotContains(t, out, "welcome-message")
}

func TestHTML_Result(t *testing.T) {
	t.Parallel()

	// Arrange
	v := NewView(sampleResult())
	v.Quote.Name = `<script>alert(1)</script>`

	// Act
	var buf bytes.Buffer
	require.NoError(t, HTML(&buf, Page{Query: "AAPL", View: &v}))

	// Assert: widgets present and content escaped
	out := buf.String()
	require.Contains(t, out, "$228.12")
	require.Contains(t, out, "stock-change negative")
	require.Contains(t, out, "USD/JPY")
	require.Contains(t, out, "1 USD = 149.8200 JPY")
	require.Contains(t, out, "Read more")
	require.Contains(t, out, "&lt;script&gt;")
	require.NotContains(t, out, "<script>alert")
}

func TestText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, NewView(sampleResult())))

	out := buf.String()
	require.Contains(t, out, "Apple Inc.")
	require.Contains(t, out, "$228.12")
	require.Contains(t, out, "0.84 (0.37%)")
	require.Contains(t, out, "Market Cap")
	require.Contains(t, out, "$3.53T")
	require.Contains(t, out, "USD/CAD")
	require.Contains(t, out, "Financial Times")
}

func TestError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Error(&buf, EmptySymbolMessage))
	require.Contains(t, buf.String(), EmptySymbolMessage)
}
