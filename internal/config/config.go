package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Server struct {
	Port               string `json:"port"`
	RequestTimeoutSec  int    `json:"request_timeout_sec"`
	PipelineTimeoutSec int    `json:"pipeline_timeout_sec"`
}

type Log struct {
	Level  string `json:"level"`
	Format string `json:"format"` // json or text
}

type Quotes struct {
	Enabled  bool   `json:"enabled"`
	Endpoint string `json:"endpoint"`
}

type Rates struct {
	Enabled    bool     `json:"enabled"`
	Endpoint   string   `json:"endpoint"`
	Currencies []string `json:"currencies"`
}

type News struct {
	Enabled   bool   `json:"enabled"`
	ProxyBase string `json:"proxy_base"`
	// Target is the feed URL; {symbol} is substituted per search.
	Target string `json:"target"`
}

type Pipeline struct {
	Concurrent bool `json:"concurrent"`
}

type Config struct {
	Server   Server   `json:"server"`
	Log      Log      `json:"log"`
	Quotes   Quotes   `json:"quotes"`
	Rates    Rates    `json:"rates"`
	News     News     `json:"news"`
	Pipeline Pipeline `json:"pipeline"`
	Presets  []string `json:"presets"`
}

func Default() Config {
	return Config{
		Server: Server{Port: "8080", RequestTimeoutSec: 10, PipelineTimeoutSec: 15},
		Log:    Log{Level: "info", Format: "json"},
		Quotes: Quotes{
			Enabled:  true,
			Endpoint: "https://query1.finance.yahoo.com/v7/finance/quote",
		},
		Rates: Rates{
			Enabled:    true,
			Endpoint:   "https://api.exchangerate-api.com/v4/latest/USD",
			Currencies: []string{"EUR", "GBP", "JPY", "CNY", "CHF", "CAD"},
		},
		News: News{
			Enabled:   false,
			ProxyBase: "https://api.allorigins.me/raw",
			Target:    "https://feeds.finance.yahoo.com/rss/2.0/headline?s={symbol}&region=US&lang=en-US",
		},
		Pipeline: Pipeline{Concurrent: true},
		Presets:  []string{"AAPL", "GOOGL", "MSFT", "TSLA", "NVDA"},
	}
}

// RequestTimeout is the per-request HTTP client timeout.
func (s Server) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSec) * time.Second
}

// PipelineTimeout bounds one dashboard run.
func (s Server) PipelineTimeout() time.Duration {
	return time.Duration(s.PipelineTimeoutSec) * time.Second
}

// LoadDotEnv loads KEY=VALUE files into the environment without overriding
// variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads JSON config from path. If path is empty it tries CONFIG_FILE and
// then ./config.json; a missing file yields defaults. Environment variables
// override file values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path == "" {
		if _, err := os.Stat("config.json"); err == nil {
			path = "config.json"
		}
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err == nil {
			if err := json.Unmarshal(b, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config: %w", err)
			}
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if x, ok := envInt("REQUEST_TIMEOUT_SEC"); ok && x > 0 {
		cfg.Server.RequestTimeoutSec = x
	}
	if x, ok := envInt("PIPELINE_TIMEOUT_SEC"); ok && x > 0 {
		cfg.Server.PipelineTimeoutSec = x
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = strings.ToLower(v)
	}

	if b, ok := envBool("QUOTES_ENABLED"); ok {
		cfg.Quotes.Enabled = b
	}
	if v := os.Getenv("QUOTES_ENDPOINT"); v != "" {
		cfg.Quotes.Endpoint = v
	}

	if b, ok := envBool("RATES_ENABLED"); ok {
		cfg.Rates.Enabled = b
	}
	if v := os.Getenv("RATES_ENDPOINT"); v != "" {
		cfg.Rates.Endpoint = v
	}
	if v := os.Getenv("RATES_CURRENCIES"); v != "" {
		cfg.Rates.Currencies = splitCSV(strings.ToUpper(v))
	}

	if b, ok := envBool("NEWS_ENABLED"); ok {
		cfg.News.Enabled = b
	}
	if v := os.Getenv("NEWS_PROXY_BASE"); v != "" {
		cfg.News.ProxyBase = v
	}
	if v := os.Getenv("NEWS_TARGET"); v != "" {
		cfg.News.Target = v
	}

	if b, ok := envBool("PIPELINE_CONCURRENT"); ok {
		cfg.Pipeline.Concurrent = b
	}
	if v := os.Getenv("PRESETS"); v != "" {
		cfg.Presets = splitCSV(strings.ToUpper(v))
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	var x int
	if _, err := fmt.Sscanf(v, "%d", &x); err != nil {
		return 0, false
	}
	return x, true
}

func envBool(key string) (bool, bool) {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "y":
		return true, true
	case "0", "false", "no", "n":
		return false, true
	}
	return false, false
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
