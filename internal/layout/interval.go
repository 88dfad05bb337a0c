// Package layout computes lane stacking, swimlane heights and bar geometry for
// the activity timeline. Everything here is pure: inputs are never mutated.
package layout

import (
	"fmt"
	"time"

	"github.com/alexanderramin/campaignos/internal/domain"
)

// Interval is an inclusive, day-granular date range.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval truncates both bounds to calendar dates and rejects end < start.
func NewInterval(start, end time.Time) (Interval, error) {
	iv := Interval{Start: domain.DateOf(start), End: domain.DateOf(end)}
	if iv.End.Before(iv.Start) {
		return Interval{}, &domain.ValidationError{
			Field:   "end",
			Message: fmt.Sprintf("end %s is before start %s", domain.FormatDate(end), domain.FormatDate(start)),
		}
	}
	return iv, nil
}

// Span builds an interval from two dates in either order.
func Span(a, b time.Time) Interval {
	a, b = domain.DateOf(a), domain.DateOf(b)
	if b.Before(a) {
		a, b = b, a
	}
	return Interval{Start: a, End: b}
}

// Overlaps reports whether the two ranges share at least one day. Ranges that
// touch (one ends on the day the other starts) overlap.
func (iv Interval) Overlaps(o Interval) bool {
	return !iv.Start.After(o.End) && !o.Start.After(iv.End)
}

// Days is the inclusive number of days covered.
func (iv Interval) Days() int {
	return domain.DaysBetween(iv.Start, iv.End) + 1
}

// Contains reports whether day falls within the range.
func (iv Interval) Contains(day time.Time) bool {
	d := domain.DateOf(day)
	return !d.Before(iv.Start) && !d.After(iv.End)
}

// Shift moves both bounds by n days, keeping the duration.
func (iv Interval) Shift(n int) Interval {
	return Interval{Start: domain.AddDays(iv.Start, n), End: domain.AddDays(iv.End, n)}
}

// Equal compares by calendar date.
func (iv Interval) Equal(o Interval) bool {
	return iv.Start.Equal(o.Start) && iv.End.Equal(o.End)
}

func (iv Interval) String() string {
	return domain.FormatDate(iv.Start) + ".." + domain.FormatDate(iv.End)
}
