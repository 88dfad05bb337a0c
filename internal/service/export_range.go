package service

import (
	"strings"
	"time"

	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/alexanderramin/campaignos/internal/layout"
)

// RangeKind names a quick export range relative to today.
type RangeKind string

const (
	RangeMonth   RangeKind = "month"
	RangeQuarter RangeKind = "quarter"
	RangeYear    RangeKind = "year"
	RangeAll     RangeKind = "all"
)

// ExportRange resolves kind to an inclusive date range around now. "all"
// spans last year through next year.
func ExportRange(kind RangeKind, now time.Time) (layout.Interval, error) {
	d := domain.DateOf(now)
	y := d.Year()
	date := func(year int, month time.Month, day int) time.Time {
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	}

	switch RangeKind(strings.ToLower(string(kind))) {
	case RangeMonth:
		return layout.Interval{Start: domain.StartOfMonth(d), End: domain.EndOfMonth(d)}, nil
	case RangeQuarter:
		first := time.Month((int(d.Month())-1)/3*3 + 1)
		start := date(y, first, 1)
		end := domain.EndOfMonth(start.AddDate(0, 2, 0))
		return layout.Interval{Start: start, End: end}, nil
	case RangeYear:
		return layout.Interval{Start: date(y, time.January, 1), End: date(y, time.December, 31)}, nil
	case RangeAll:
		return layout.Interval{Start: date(y-1, time.January, 1), End: date(y+1, time.December, 31)}, nil
	default:
		return layout.Interval{}, domain.Invalid("range", "unknown range %q (want month, quarter, year or all)", kind)
	}
}
