package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/campaignos/internal/service"
	"github.com/charmbracelet/lipgloss"
)

// MonthCellWidth is the column width of one day in the month grid.
const MonthCellWidth = 14

// FormatMonth renders the calendar view: Sunday-first weeks with up to
// maxPerDay activity titles per day. Weekend columns are dropped when
// showWeekends is false.
func FormatMonth(grid service.MonthGrid, colorOf func(id string) string, maxPerDay int, showWeekends bool) string {
	days := []int{0, 1, 2, 3, 4, 5, 6}
	if !showWeekends {
		days = days[1:6]
	}
	names := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	cell := lipgloss.NewStyle().Width(MonthCellWidth)

	var b strings.Builder
	b.WriteString(StyleAccent.Render(grid.Month.Format("January 2006")) + "\n\n")
	for _, d := range days {
		b.WriteString(cell.Render(StyleMuted.Render(names[d])))
	}
	b.WriteString("\n")

	for _, week := range grid.Weeks {
		lines := make([]string, maxPerDay+1)
		for _, d := range days {
			day := week[d]
			num := fmt.Sprintf("%2d", day.Date.Day())
			if day.InMonth {
				num = Bold(num)
			} else {
				num = Dim(num)
			}
			lines[0] += cell.Render(num)
			for i := 0; i < maxPerDay; i++ {
				text := ""
				switch {
				case i < len(day.Activities) && (i < maxPerDay-1 || len(day.Activities) == maxPerDay):
					a := day.Activities[i]
					text = Swatch(colorOf(a.ID), Truncate(a.Title, MonthCellWidth-3))
				case i == maxPerDay-1 && len(day.Activities) > maxPerDay:
					text = Dim(fmt.Sprintf("+%d more", len(day.Activities)-i))
				}
				lines[i+1] += cell.Render(text)
			}
		}
		for _, line := range lines {
			b.WriteString(strings.TrimRight(line, " ") + "\n")
		}
		b.WriteString(StyleMuted.Render(strings.Repeat("─", MonthCellWidth*len(days))) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
