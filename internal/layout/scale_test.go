package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoomPresets(t *testing.T) {
	cases := []struct {
		zoom     Zoom
		days     int
		dayWidth float64
	}{
		{ZoomYear, 365, 4},
		{ZoomQuarter, 90, 10},
		{ZoomMonth, 30, 30},
	}
	for _, tc := range cases {
		z, err := ParseZoom(string(tc.zoom))
		require.NoError(t, err)
		assert.Equal(t, tc.days, z.DaysVisible())
		assert.Equal(t, tc.dayWidth, z.DayWidth())
	}
	_, err := ParseZoom("week")
	require.Error(t, err)
}

func TestScaleGeometry(t *testing.T) {
	s := NewScale(ZoomMonth, jan(1))

	assert.Equal(t, 0.0, s.X(jan(1)))
	assert.Equal(t, 270.0, s.X(jan(10)))
	assert.Equal(t, -30.0, s.X(jan(0)), "days before the window are negative")
	assert.Equal(t, 150.0, s.Width(item("a", 1, 5).Interval))
	assert.Equal(t, 30.0, s.Width(item("a", 7, 7).Interval), "single day is one day wide")
	assert.Equal(t, 900.0, s.TotalWidth())
}

func TestScaleDateAt(t *testing.T) {
	s := NewScale(ZoomQuarter, jan(1))
	assert.Equal(t, jan(1), s.DateAt(0))
	assert.Equal(t, jan(1), s.DateAt(9.9))
	assert.Equal(t, jan(2), s.DateAt(10))
	assert.Equal(t, jan(0), s.DateAt(-0.5), "floors toward earlier days")
}

func TestScaleDayDelta(t *testing.T) {
	s := NewScale(ZoomMonth, jan(1))
	assert.Equal(t, 0, s.DayDelta(14))
	assert.Equal(t, 1, s.DayDelta(16))
	assert.Equal(t, -2, s.DayDelta(-61))
}

func TestScaleWindow(t *testing.T) {
	s := NewScale(ZoomMonth, jan(1))
	assert.Equal(t, "2025-01-01..2025-01-30", s.Window().String())
	assert.True(t, s.Visible(item("a", 30, 40).Interval))
	assert.False(t, s.Visible(item("a", 31, 40).Interval))

	next := s.Shifted(1)
	assert.Equal(t, jan(31), next.Start)
	assert.Equal(t, s, next.Shifted(-1))
}

func TestFitScale(t *testing.T) {
	s := FitScale(ZoomMonth, jan(1), 60)
	assert.Equal(t, 2.0, s.DayWidth)
	assert.Equal(t, 30, s.Days)
	assert.Equal(t, 60.0, s.TotalWidth())
	assert.Equal(t, jan(3), s.DateAt(5))
}
