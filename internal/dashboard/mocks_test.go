package dashboard

import (
	"context"

	"github.com/stretchr/testify/mock"

	"allstock/internal/provider"
)

// MockQuoteSource implements provider.QuoteSource for testing
type MockQuoteSource struct {
	mock.Mock
}

func (m *MockQuoteSource) Name() string { return "mock-quotes" }

func (m *MockQuoteSource) Quote(ctx context.Context, sym provider.Symbol) (provider.Quote, error) {
	args := m.Called(ctx, sym)
	return args.Get(0).(provider.Quote), args.Error(1)
}

// MockRateSource implements provider.RateSource for testing
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) Name() string { return "mock-rates" }

func (m *MockRateSource) Rates(ctx context.Context) (provider.Rates, error) {
	args := m.Called(ctx)
	rates, _ := args.Get(0).(provider.Rates)
	return rates, args.Error(1)
}

// MockNewsSource implements provider.NewsSource for testing
type MockNewsSource struct {
	mock.Mock
}

func (m *MockNewsSource) Name() string { return "mock-news" }

func (m *MockNewsSource) Headlines(ctx context.Context, sym provider.Symbol) ([]provider.NewsItem, error) {
	args := m.Called(ctx, sym)
	items, _ := args.Get(0).([]provider.NewsItem)
	return items, args.Error(1)
}
