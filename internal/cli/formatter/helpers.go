package formatter

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleAccent.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleMuted.Render(id)
}

// Truncate shortens s to at most n display cells, ending with an ellipsis
// when cut.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// Money renders cents with the currency symbol and thousands separators,
// e.g. "£1,250.50".
func Money(cents int64, c domain.Currency) string {
	return c.Symbol() + humanize.FormatFloat("#,###.##", float64(cents)/100)
}

// Totals renders per-currency sums in a fixed currency order, e.g.
// "$1,200.00 · €300.00". Currencies with nothing spent are left out.
func Totals(activities []*domain.Activity) string {
	sums := make(map[domain.Currency]int64)
	for _, a := range activities {
		sums[a.Currency] += a.CostCents
	}
	currencies := make([]domain.Currency, 0, len(sums))
	for c, v := range sums {
		if v > 0 {
			currencies = append(currencies, c)
		}
	}
	sort.Slice(currencies, func(i, j int) bool { return currencies[i] < currencies[j] })

	parts := make([]string, len(currencies))
	for i, c := range currencies {
		parts[i] = Money(sums[c], c)
	}
	if len(parts) == 0 {
		return Money(0, domain.CurrencyUSD)
	}
	return strings.Join(parts, " · ")
}

// DateRange renders an inclusive range with its length, e.g.
// "Mar 1 – Mar 5, 2025 (5 days)".
func DateRange(start, end time.Time) string {
	days := domain.DaysBetween(start, end) + 1
	unit := "days"
	if days == 1 {
		unit = "day"
	}
	var span string
	if start.Year() == end.Year() {
		span = fmt.Sprintf("%s – %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
	} else {
		span = fmt.Sprintf("%s – %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
	}
	return fmt.Sprintf("%s (%d %s)", span, days, unit)
}

var rendererCache sync.Map // width -> *glamour.TermRenderer

func markdownRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	rendererCache.Store(width, r)
	return r, nil
}

// Markdown renders an activity description. Rendering failures fall back to
// the raw text.
func Markdown(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	r, err := markdownRenderer(width)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
