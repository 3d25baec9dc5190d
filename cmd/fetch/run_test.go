package main

import (
	"bytes"
	"encoding/json"
	"io"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"allstock/internal/app"
	"allstock/internal/config"
	"allstock/internal/dashboard"
	"allstock/internal/mockdata"
	"allstock/internal/render"
)

// lastConfig is the config run handed to the pipeline factory. Tests using
// it call t.Setenv and so never run in parallel.
var lastConfig config.Config

func init() {
	// Tests never reach the network.
	pipelineFactory = func(cfg config.Config) *dashboard.Pipeline {
		lastConfig = cfg
		return dashboard.New(dashboard.Config{Concurrent: cfg.Pipeline.Concurrent},
			dashboard.WithGenerator(mockdata.NewWithRand(rand.New(rand.NewPCG(3, 4)))))
	}
}

func TestRun_OnceText(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	var stdout, stderr bytes.Buffer

	code := run(t.Context(), []string{"-symbol", " aapl "}, strings.NewReader(""), &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	require.Contains(t, stdout.String(), "Apple Inc.")
	require.Contains(t, stdout.String(), "USD/EUR")
	require.Contains(t, stdout.String(), "TechCrunch")
}

func TestRun_OnceJSON(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	var stdout, stderr bytes.Buffer

	code := run(t.Context(), []string{"-symbol", "MSFT", "-json"}, strings.NewReader(""), &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	var res map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &res))
	require.Equal(t, "MSFT", res["symbol"])
	require.Len(t, res["news"].(map[string]any)["value"], 6)
}

func TestRun_OnceBlankSymbol(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	var stdout, stderr bytes.Buffer

	code := run(t.Context(), []string{"-symbol", "   "}, strings.NewReader(""), &stdout, &stderr)

	require.Equal(t, 1, code)
	require.Contains(t, stderr.String(), render.EmptySymbolMessage)
	require.Empty(t, stdout.String())
}

func TestRun_Prompt(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	var stdout, stderr bytes.Buffer
	input := strings.NewReader("4\n\nquit\nMSFT\n")

	code := run(t.Context(), []string{"-offline"}, input, &stdout, &stderr)

	require.Equal(t, 0, code, stderr.String())
	out := stdout.String()
	require.Contains(t, out, "[1] AAPL")
	require.Contains(t, out, "Loading data…")
	require.Contains(t, out, "Tesla, Inc.")
	require.Contains(t, out, render.EmptySymbolMessage)
	require.NotContains(t, out, "Microsoft Corporation")
}

func TestRun_ConfigReachesPipeline(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("NEWS_ENABLED", "true")
	t.Setenv("LOG_LEVEL", "info")

	tests := []struct {
		name string
		args []string
		live bool
	}{
		{name: "default", args: []string{"-symbol", "AAPL"}, live: true},
		{name: "offline", args: []string{"-offline", "-symbol", "AAPL"}, live: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			code := run(t.Context(), tt.args, strings.NewReader(""), &stdout, &stderr)

			require.Equal(t, 0, code, stderr.String())
			require.Equal(t, tt.live, lastConfig.Quotes.Enabled)
			require.Equal(t, tt.live, lastConfig.Rates.Enabled)
			require.Equal(t, tt.live, lastConfig.News.Enabled)
			require.Equal(t, "warn", lastConfig.Log.Level)
		})
	}

	// The offline config builds a pipeline that never leaves sample data.
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	res := app.NewPipeline(lastConfig, logger).Run(t.Context(), "AAPL")
	require.Equal(t, dashboard.Fallback, res.Quote.Provenance)
	require.Equal(t, dashboard.Fallback, res.Rates.Provenance)
	require.Equal(t, dashboard.Fallback, res.News.Provenance)
}

func TestResolveInput(t *testing.T) {
	t.Parallel()

	presets := []string{"AAPL", "GOOGL"}
	require.Equal(t, "GOOGL", resolveInput(" 2 ", presets))
	require.Equal(t, "3", resolveInput("3", presets))
	require.Equal(t, "0", resolveInput("0", presets))
	require.Equal(t, "ibm", resolveInput("ibm", presets))
}
