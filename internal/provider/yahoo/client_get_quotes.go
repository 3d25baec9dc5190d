package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// ErrNoResult is returned when the response carries no quote records.
var ErrNoResult = errors.New("quote response has no results")

// QuoteRecord is one element of quoteResponse.result. Absent numbers decode
// as zero and absent strings as "".
type QuoteRecord struct {
	Symbol                     string  `json:"symbol"`
	LongName                   string  `json:"longName"`
	ShortName                  string  `json:"shortName"`
	Exchange                   string  `json:"exchange"`
	FullExchangeName           string  `json:"fullExchangeName"`
	MarketState                string  `json:"marketState"`
	RegularMarketPrice         float64 `json:"regularMarketPrice"`
	RegularMarketChange        float64 `json:"regularMarketChange"`
	RegularMarketChangePercent float64 `json:"regularMarketChangePercent"`
	RegularMarketDayHigh       float64 `json:"regularMarketDayHigh"`
	RegularMarketDayLow        float64 `json:"regularMarketDayLow"`
	RegularMarketPreviousClose float64 `json:"regularMarketPreviousClose"`
	RegularMarketVolume        float64 `json:"regularMarketVolume"`
	MarketCap                  float64 `json:"marketCap"`
}

type quoteEnvelope struct {
	QuoteResponse *struct {
		Result []QuoteRecord `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteResponse"`
}

// GetQuotes retrieves quote records for symbols. An empty result collection
// is reported as ErrNoResult.
func (c *QuoteAPIClient) GetQuotes(ctx context.Context, symbols []string, opts ...QuoteAPIClientOption) ([]QuoteRecord, error) {
	var override = &QuoteAPIClient{
		quoteURL:   c.quoteURL,
		httpClient: c.httpClient,
		header:     c.header.Clone(),
		query:      url.Values{},
	}
	for key, values := range c.query {
		override.query[key] = append([]string(nil), values...)
	}
	for _, opt := range opts {
		opt(override)
	}

	override.query.Set("symbols", strings.Join(symbols, ","))

	endpoint := fmt.Sprintf("%s?%s", override.quoteURL, override.query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = override.header
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	res, err := override.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		break

	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("unauthorized")

	case http.StatusNotFound:
		return nil, fmt.Errorf("quote endpoint not found")

	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("rate limited")

	default:
		b, _ := io.ReadAll(io.LimitReader(res.Body, 2<<10))
		return nil, fmt.Errorf("unexpected status code: %d: %s", res.StatusCode, strings.TrimSpace(string(b)))
	}

	var body quoteEnvelope
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding quote response: %w", err)
	}
	if body.QuoteResponse == nil {
		return nil, fmt.Errorf("decoding quote response: missing quoteResponse")
	}
	if e := body.QuoteResponse.Error; e != nil && len(body.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("%w: %s: %s", ErrNoResult, e.Code, e.Description)
	}
	if len(body.QuoteResponse.Result) == 0 {
		return nil, ErrNoResult
	}
	return body.QuoteResponse.Result, nil
}
