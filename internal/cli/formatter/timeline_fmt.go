package formatter

import (
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/alexanderramin/campaignos/internal/layout"
	"github.com/alexanderramin/campaignos/internal/service"
	"github.com/charmbracelet/lipgloss"
)

// TimelineStyle controls the terminal rendering of a timeline laid out with
// one line per lane and one scale unit per column.
type TimelineStyle struct {
	LabelWidth int
	// Today draws a dim marker down its column. Zero skips it.
	Today time.Time
	// Selected highlights one activity's bar.
	Selected string
}

// BarSpan returns the inclusive column range of bar in a chart cols wide.
// Every bar is at least one column so single days stay visible in year view.
func BarSpan(bar layout.Bar, cols int) (int, int, bool) {
	c0, c1 := BarCells(bar)
	if c1 < 0 || c0 >= cols {
		return 0, 0, false
	}
	return max(c0, 0), min(c1, cols-1), true
}

// BarCells is the unclipped cell range bar covers. Cells left of the chart
// are negative.
func BarCells(bar layout.Bar) (first, last int) {
	first = int(math.Floor(bar.Left))
	last = int(math.Ceil(bar.Left+bar.Width)) - 1
	return first, max(last, first)
}

// ChartColumns is the width of tl's chart area in columns.
func ChartColumns(tl *service.Timeline) int {
	return int(math.Round(tl.Scale.TotalWidth()))
}

// MonthRuler renders month labels over the chart columns.
func MonthRuler(scale layout.Scale, cols int) string {
	line := []rune(strings.Repeat(" ", cols))
	var prev time.Time
	for c := 0; c < cols; c++ {
		day := scale.DateAt(float64(c))
		if c > 0 && day.Month() == prev.Month() && day.Year() == prev.Year() {
			continue
		}
		prev = day
		label := day.Format("Jan")
		if c == 0 || day.Month() == time.January {
			label = day.Format("Jan 06")
		}
		for i, r := range []rune("▏" + label) {
			if c+i >= cols {
				break
			}
			line[c+i] = r
		}
	}
	return string(line)
}

type cellRun struct {
	text  string
	style *lipgloss.Style
}

// RenderTimeline draws tl as text: a month ruler, then every swimlane with its
// name on the first lane line and bars placed by their layout geometry.
func RenderTimeline(tl *service.Timeline, ts TimelineStyle) string {
	cols := ChartColumns(tl)
	label := max(ts.LabelWidth, 8)

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", label))
	b.WriteString(StyleMuted.Render(MonthRuler(tl.Scale, cols)))
	b.WriteString("\n")

	todayCol := -1
	if !ts.Today.IsZero() && tl.Scale.Window().Contains(ts.Today) {
		todayCol = int(math.Floor(tl.Scale.X(ts.Today)))
	}

	for _, row := range tl.Rows {
		lanes := max(row.Layout.LaneCount, 1)
		for lane := 0; lane < lanes; lane++ {
			name := ""
			if lane == 0 {
				name = Truncate(row.Swimlane.Name, label-1)
			}
			b.WriteString(StyleBold.Render(name))
			b.WriteString(strings.Repeat(" ", label-lipgloss.Width(name)))
			b.WriteString(renderLane(tl, row.Layout.Bars, lane, cols, todayCol, ts.Selected))
			b.WriteString("\n")
		}
		b.WriteString(StyleMuted.Render(strings.Repeat("─", label+cols)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderLane(tl *service.Timeline, bars []layout.Bar, lane, cols, todayCol int, selected string) string {
	cells := []rune(strings.Repeat(" ", cols))
	styles := make([]*lipgloss.Style, cols)
	if todayCol >= 0 && todayCol < cols {
		cells[todayCol] = '│'
		styles[todayCol] = &StyleError
	}

	for _, bar := range bars {
		if bar.Lane != lane {
			continue
		}
		c0, c1, ok := BarSpan(bar, cols)
		if !ok {
			continue
		}
		style := BarStyle(tl.Color(bar.ActivityID))
		switch {
		case bar.Draft:
			style = style.Faint(true)
		case bar.Overridden:
			style = style.Reverse(true)
		case bar.ActivityID == selected:
			style = style.Bold(true).Underline(true)
		}

		title := "New activity"
		if a := tl.Activity(bar.ActivityID); a != nil {
			title = a.Title
		}
		text := barText(title, c1-c0+1, bar.Draft)
		for i, r := range []rune(text) {
			cells[c0+i] = r
			styles[c0+i] = &style
		}
	}

	var runs []cellRun
	for i := 0; i < cols; i++ {
		if len(runs) > 0 && runs[len(runs)-1].style == styles[i] {
			runs[len(runs)-1].text += string(cells[i])
			continue
		}
		runs = append(runs, cellRun{text: string(cells[i]), style: styles[i]})
	}

	var b strings.Builder
	for _, r := range runs {
		if r.style == nil {
			b.WriteString(r.text)
			continue
		}
		b.WriteString(r.style.Render(r.text))
	}
	return b.String()
}

// barText fits title into a bar width cells wide, bracketed when there is room.
func barText(title string, width int, draft bool) string {
	fill := " "
	if draft {
		fill = "░"
	}
	switch {
	case width <= 0:
		return ""
	case width == 1:
		return "▌"
	case width == 2:
		return "[]"
	}
	inner := Truncate(title, width-2)
	pad := width - 2 - len([]rune(inner))
	return "[" + inner + strings.Repeat(fill, pad) + "]"
}

// FormatTimelineSummary is the one-line caption above a rendered timeline.
func FormatTimelineSummary(tl *service.Timeline, zoom layout.Zoom) string {
	w := tl.Scale.Window()
	return StyleAccent.Render(tl.Calendar.Name) + "  " +
		Dim(string(zoom)+" · "+domain.FormatDate(w.Start)+" → "+domain.FormatDate(w.End))
}
