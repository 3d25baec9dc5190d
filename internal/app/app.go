// Package app assembles a dashboard pipeline from configuration.
package app

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"allstock/internal/config"
	"allstock/internal/dashboard"
	"allstock/internal/httpx"
	"allstock/internal/provider/exchangerate"
	"allstock/internal/provider/newsproxy"
	"allstock/internal/provider/yahoo"
)

// NewPipeline wires the enabled live sources into a pipeline. Disabled
// sources leave their stage on generated data.
func NewPipeline(cfg config.Config, logger logrus.FieldLogger, opts ...dashboard.Option) *dashboard.Pipeline {
	httpClient := httpx.New(cfg.Server.RequestTimeout())

	base := []dashboard.Option{dashboard.WithLogger(logger)}

	if cfg.Quotes.Enabled {
		client := yahoo.NewQuoteAPIClient(
			yahoo.WithQuoteURL(cfg.Quotes.Endpoint),
			yahoo.WithHTTPClient(httpClient.HTTP),
			yahoo.WithHeader(http.Header{
				"User-Agent": []string{httpx.DefaultUserAgent},
			}),
		)
		base = append(base, dashboard.WithQuoteSource(yahoo.NewSource("", client)))
	} else {
		logger.WithField("stage", "quote").Info("live quotes disabled; using sample data")
	}

	if cfg.Rates.Enabled {
		base = append(base, dashboard.WithRateSource(exchangerate.New(exchangerate.Config{
			URL: cfg.Rates.Endpoint,
		}, httpClient)))
	} else {
		logger.WithField("stage", "rates").Info("live rates disabled; using sample data")
	}

	if cfg.News.Enabled {
		base = append(base, dashboard.WithNewsSource(newsproxy.New(newsproxy.Config{
			ProxyBase: cfg.News.ProxyBase,
			Target:    cfg.News.Target,
		}, httpClient)))
	}

	return dashboard.New(dashboard.Config{
		Concurrent: cfg.Pipeline.Concurrent,
		Currencies: cfg.Rates.Currencies,
	}, append(base, opts...)...)
}
