package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	nameStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	priceStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	gainStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lossStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)

// Text writes v as a terminal block.
func Text(w io.Writer, v View) error {
	var b strings.Builder

	q := v.Quote
	change := lossStyle
	if q.Positive {
		change = gainStyle
	}
	fmt.Fprintf(&b, "%s  %s\n", nameStyle.Render(q.Name), dimStyle.Render(q.Symbol+" · "+q.Exchange))
	fmt.Fprintf(&b, "%s  %s  %s\n", priceStyle.Render(q.Price), change.Render(q.Arrow+" "+q.Change), dimStyle.Render(v.QuoteLabel))
	for _, row := range [][2]string{
		{"Market Cap", q.MarketCap},
		{"Day High", q.DayHigh},
		{"Day Low", q.DayLow},
		{"Volume", q.Volume},
		{"Previous Close", q.PreviousClose},
		{"Market State", q.MarketState},
	} {
		fmt.Fprintf(&b, "  %-16s%s\n", row[0], row[1])
	}

	fmt.Fprintf(&b, "\n%s  %s\n", headerStyle.Render("Currency Exchange Rates"), dimStyle.Render(v.RatesLabel))
	for _, r := range v.Rates {
		fmt.Fprintf(&b, "  %-9s%-12s%s\n", r.Pair, r.Rate, dimStyle.Render(r.Caption))
	}

	fmt.Fprintf(&b, "\n%s  %s\n", headerStyle.Render("Latest News"), dimStyle.Render(v.NewsLabel))
	for i, n := range v.News {
		fmt.Fprintf(&b, "  %d. %s %s\n     %s\n", i+1, n.Title, dimStyle.Render("("+n.Source+")"), n.Snippet)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Error writes a user-visible error line.
func Error(w io.Writer, msg string) error {
	_, err := fmt.Fprintln(w, errorStyle.Render(msg))
	return err
}
