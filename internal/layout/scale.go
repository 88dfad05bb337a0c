package layout

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/campaignos/internal/domain"
)

type Zoom string

const (
	ZoomYear    Zoom = "year"
	ZoomQuarter Zoom = "quarter"
	ZoomMonth   Zoom = "month"
)

var zoomSpecs = map[Zoom]struct {
	days     int
	dayWidth float64
}{
	ZoomYear:    {365, 4},
	ZoomQuarter: {90, 10},
	ZoomMonth:   {30, 30},
}

func ParseZoom(s string) (Zoom, error) {
	z := Zoom(s)
	if s == "" {
		return ZoomQuarter, nil
	}
	if _, ok := zoomSpecs[z]; !ok {
		return "", fmt.Errorf("invalid zoom %q (want year, quarter or month)", s)
	}
	return z, nil
}

// DaysVisible is the width of the visible window in days.
func (z Zoom) DaysVisible() int { return zoomSpecs[z].days }

// DayWidth is the pixel width of one day.
func (z Zoom) DayWidth() float64 { return zoomSpecs[z].dayWidth }

// Scale maps calendar dates to horizontal positions.
type Scale struct {
	Start    time.Time
	DayWidth float64
	Days     int
}

// NewScale builds the pixel scale for a zoom level starting at start.
func NewScale(z Zoom, start time.Time) Scale {
	return Scale{Start: domain.DateOf(start), DayWidth: z.DayWidth(), Days: z.DaysVisible()}
}

// X is the left edge of day d.
func (s Scale) X(d time.Time) float64 {
	return float64(domain.DaysBetween(s.Start, d)) * s.DayWidth
}

// Width is the extent of an inclusive interval.
func (s Scale) Width(iv Interval) float64 {
	return float64(iv.Days()) * s.DayWidth
}

// DateAt returns the day under position x.
func (s Scale) DateAt(x float64) time.Time {
	return domain.AddDays(s.Start, int(math.Floor(x/s.DayWidth)))
}

// DayDelta converts a horizontal distance to whole days, rounding to nearest.
func (s Scale) DayDelta(dx float64) int {
	return int(math.Round(dx / s.DayWidth))
}

func (s Scale) TotalWidth() float64 {
	return float64(s.Days) * s.DayWidth
}

// Window is the visible date range.
func (s Scale) Window() Interval {
	return Interval{Start: s.Start, End: domain.AddDays(s.Start, s.Days-1)}
}

// Visible reports whether any day of iv falls inside the window.
func (s Scale) Visible(iv Interval) bool {
	return s.Window().Overlaps(iv)
}

// Shifted pages the window by n whole windows.
func (s Scale) Shifted(n int) Scale {
	s.Start = domain.AddDays(s.Start, n*s.Days)
	return s
}

// FitScale spreads the zoom's visible days across width units, e.g. terminal
// columns.
func FitScale(z Zoom, start time.Time, width float64) Scale {
	days := z.DaysVisible()
	return Scale{Start: domain.DateOf(start), DayWidth: width / float64(days), Days: days}
}
