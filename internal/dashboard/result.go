package dashboard

import (
	"time"

	"allstock/internal/provider"
)

// Provenance tells whether a stage value came from a live source.
type Provenance string

const (
	Live     Provenance = "live"
	Fallback Provenance = "fallback"
)

// Outcome is one stage's value. Err holds the absorbed source error, if any.
type Outcome[T any] struct {
	Value      T          `json:"value"`
	Provenance Provenance `json:"provenance"`
	Source     string     `json:"source,omitempty"`
	Err        error      `json:"-"`
}

// IsLive reports whether the value came from a live source.
func (o Outcome[T]) IsLive() bool { return o.Provenance == Live }

// Result is the output of one pipeline run.
type Result struct {
	Symbol  provider.Symbol              `json:"symbol"`
	Quote   Outcome[provider.Quote]      `json:"quote"`
	Rates   Outcome[[]provider.Rate]     `json:"rates"`
	News    Outcome[[]provider.NewsItem] `json:"news"`
	RunID   string                       `json:"run_id"`
	Elapsed time.Duration                `json:"elapsed_ns"`
}
