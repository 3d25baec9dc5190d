package yahoo_test

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"allstock/internal/provider/yahoo"
)

func TestGetQuotes_WithFixture(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Load the fixture data
	fixtureData, err := os.OpenFile("fixtures/quote_aapl.json", os.O_RDONLY, 0600)
	require.NoError(t, err)

	// Arrange: create a mock HTTP client
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: stub the Do method
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			require.Equal(t, http.MethodGet, req.Method)
			require.Equal(t, "AAPL", req.URL.Query().Get("symbols"))
			require.Equal(t, "application/json", req.Header.Get("Accept"))

			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       fixtureData,
			}, nil
		}).
		Times(1)

	// Arrange: setup the client
	client := yahoo.NewQuoteAPIClient(yahoo.WithHTTPClient(httpClient))

	// Act: call GetQuotes
	records, err := client.GetQuotes(t.Context(), []string{"AAPL"})
	require.NoError(t, err)

	// Assert: the record should be unmarshalled from the fixture
	require.Len(t, records, 1)
	require.Equal(t, "AAPL", records[0].Symbol)
	require.Equal(t, "Apple Inc.", records[0].LongName)
	require.Equal(t, "NasdaqGS", records[0].FullExchangeName)
	require.InEpsilon(t, 228.12, records[0].RegularMarketPrice, 0.0001)
	require.InEpsilon(t, -0.84, records[0].RegularMarketChange, 0.0001)
	require.InEpsilon(t, 3531200000000.0, records[0].MarketCap, 0.0001)
}

func TestGetQuotes_ErrCreatingRequest(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock HTTP client
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: no request is sent
	httpClient.EXPECT().
		Do(gomock.Any()).
		Times(0)

	// Arrange: setup the client
	client := yahoo.NewQuoteAPIClient(yahoo.WithHTTPClient(httpClient))

	// Act: call GetQuotes with an invalid endpoint override
	records, err := client.GetQuotes(t.Context(), []string{"AAPL"}, yahoo.WithQuoteURL(string([]rune{0x7f})))
	require.Error(t, err)
	require.Nil(t, records)
}

func TestGetQuotes_ErrPerformingRequest(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock HTTP client
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: stub the Do method
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return nil, fmt.Errorf("error")
		}).
		Times(1)

	// Arrange: setup the client
	client := yahoo.NewQuoteAPIClient(yahoo.WithHTTPClient(httpClient))

	// Act
	records, err := client.GetQuotes(t.Context(), []string{"AAPL"})
	require.Error(t, err)
	require.Nil(t, records)
}

func TestGetQuotes_ErrStatusCodes(t *testing.T) {
	t.Parallel()

	for _, status := range []int{
		http.StatusUnauthorized,
		http.StatusForbidden,
		http.StatusNotFound,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
	} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			t.Parallel()

			// Arrange: create a mock controller
			ctrl := gomock.NewController(t)

			// Arrange: create a mock HTTP client
			httpClient := NewMockHTTPClient(ctrl)

			// Assert: stub the Do method
			httpClient.EXPECT().
				Do(gomock.Any()).
				DoAndReturn(func(req *http.Request) (*http.Response, error) {
					return &http.Response{
						StatusCode: status,
						Body:       io.NopCloser(bytes.NewReader([]byte{})),
					}, nil
				}).
				Times(1)

			// Arrange: setup the client
			client := yahoo.NewQuoteAPIClient(yahoo.WithHTTPClient(httpClient))

			// Act
			records, err := client.GetQuotes(t.Context(), []string{"AAPL"})
			require.Error(t, err)
			require.Nil(t, records)
		})
	}
}

func TestGetQuotes_ErrDecodingResponse(t *testing.T) {
	t.Parallel()

	for name, body := range map[string]string{
		"invalid json":          "invalid json",
		"missing quoteResponse": `{"finance":{"result":null}}`,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			// Arrange: create a mock controller
			ctrl := gomock.NewController(t)

			// Arrange: create a mock HTTP client
			httpClient := NewMockHTTPClient(ctrl)

			// Assert: stub the Do method
			httpClient.EXPECT().
				Do(gomock.Any()).
				DoAndReturn(func(req *http.Request) (*http.Response, error) {
					return &http.Response{
						StatusCode: http.StatusOK,
						Body:       io.NopCloser(bytes.NewBufferString(body)),
					}, nil
				}).
				Times(1)

			// Arrange: setup the client
			client := yahoo.NewQuoteAPIClient(yahoo.WithHTTPClient(httpClient))

			// Act
			records, err := client.GetQuotes(t.Context(), []string{"AAPL"})
			require.Error(t, err)
			require.NotErrorIs(t, err, yahoo.ErrNoResult)
			require.Nil(t, records)
		})
	}
}

func TestGetQuotes_ErrNoResult(t *testing.T) {
	t.Parallel()

	// Arrange: create a mock controller
	ctrl := gomock.NewController(t)

	// Arrange: create a mock HTTP client
	httpClient := NewMockHTTPClient(ctrl)

	// Assert: upstream reports an error with an empty result
	httpClient.EXPECT().
		Do(gomock.Any()).
		DoAndReturn(func(req *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body: io.NopCloser(bytes.NewBufferString(
					`{"quoteResponse":{"result":[],"error":{"code":"Not Found","description":"No data"}}}`)),
			}, nil
		}).
		Times(1)

	// Arrange: setup the client
	client := yahoo.NewQuoteAPIClient(yahoo.WithHTTPClient(httpClient))

	// Act
	records, err := client.GetQuotes(t.Context(), []string{"ZZZZ"})
	require.ErrorIs(t, err, yahoo.ErrNoResult)
	require.Nil(t, records)
}
