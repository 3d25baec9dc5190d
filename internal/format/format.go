// Package format renders quote magnitudes for display.
package format

import (
	"strconv"

	"github.com/shopspring/decimal"
)

type tier struct {
	min    decimal.Decimal
	suffix string
}

var (
	capTiers = []tier{
		{decimal.New(1, 12), "T"},
		{decimal.New(1, 9), "B"},
		{decimal.New(1, 6), "M"},
	}
	volumeTiers = []tier{
		{decimal.New(1, 9), "B"},
		{decimal.New(1, 6), "M"},
		{decimal.New(1, 3), "K"},
	}
)

// MarketCap abbreviates a capitalization: "$3.53T", "$772.00B", "$999999.00".
func MarketCap(v float64) string {
	d := decimal.NewFromFloat(v)
	if s, ok := scaled(d, capTiers); ok {
		return "$" + s
	}
	return "$" + d.StringFixed(2)
}

// Volume abbreviates a trade volume: "27.36M", "1.50K". Values below a
// thousand are printed as-is.
func Volume(v float64) string {
	if s, ok := scaled(decimal.NewFromFloat(v), volumeTiers); ok {
		return s
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func scaled(d decimal.Decimal, tiers []tier) (string, bool) {
	for _, t := range tiers {
		if d.GreaterThanOrEqual(t.min) {
			return d.Div(t.min).StringFixed(2) + t.suffix, true
		}
	}
	return "", false
}

// Price renders a dollar amount with two decimals.
func Price(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}

// Rate renders an exchange rate with four decimals.
func Rate(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(4)
}

// Change renders the absolute change and percent, e.g. "0.84 (0.37%)".
// Direction is conveyed separately by the caller.
func Change(change, percent float64) string {
	c := decimal.NewFromFloat(change).Abs().StringFixed(2)
	p := decimal.NewFromFloat(percent).Abs().StringFixed(2)
	return c + " (" + p + "%)"
}
