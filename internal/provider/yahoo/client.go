package yahoo

import (
	"net/http"
	"net/url"
)

// DefaultQuoteURL is the v7 quote endpoint.
const DefaultQuoteURL = "https://query1.finance.yahoo.com/v7/finance/quote"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=yahoo_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// QuoteAPIClient is a client for the Yahoo Finance quote API.
type QuoteAPIClient struct {
	// quoteURL is the full URL of the quote endpoint.
	quoteURL string
	// httpClient is the HTTP httpClient.
	httpClient HTTPClient
	// header contains additional headers to be sent with each request.
	header http.Header
	// query contains additional query parameters to be sent with each request.
	query url.Values
}

// QuoteAPIClientOption is a configuration option for the quote API client.
type QuoteAPIClientOption func(*QuoteAPIClient)

// WithQuoteURL sets the quote endpoint URL.
func WithQuoteURL(quoteURL string) QuoteAPIClientOption {
	return func(c *QuoteAPIClient) {
		c.quoteURL = quoteURL
	}
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) QuoteAPIClientOption {
	return func(c *QuoteAPIClient) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) QuoteAPIClientOption {
	return func(c *QuoteAPIClient) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithQuery sets additional query parameters, e.g. a crumb.
func WithQuery(query url.Values) QuoteAPIClientOption {
	return func(c *QuoteAPIClient) {
		for key, values := range query {
			for _, value := range values {
				c.query.Add(key, value)
			}
		}
	}
}

// NewQuoteAPIClient creates a new quote API client.
func NewQuoteAPIClient(options ...QuoteAPIClientOption) *QuoteAPIClient {
	var client = &QuoteAPIClient{
		quoteURL:   DefaultQuoteURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		query:      url.Values{},
	}
	for _, option := range options {
		option(client)
	}
	return client
}
