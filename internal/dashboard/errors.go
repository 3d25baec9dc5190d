package dashboard

import "errors"

var (
	// ErrSuperseded is returned by Session.Search when a newer search started
	// before this one finished.
	ErrSuperseded = errors.New("search superseded by a newer one")

	errEmptyRates = errors.New("rate source returned no rates")
	errTooFewNews = errors.New("news source returned too few items")
)
