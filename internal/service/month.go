package service

import (
	"time"

	"github.com/alexanderramin/campaignos/internal/domain"
)

type MonthDay struct {
	Date       time.Time
	InMonth    bool
	Activities []*domain.Activity
}

// MonthGrid is a calendar month as Sunday-first weeks, padded with days from
// the neighboring months.
type MonthGrid struct {
	Month time.Time
	Weeks [][7]MonthDay
}

// BuildMonth places activities on every day of month they cover, keeping the
// order of activities.
func BuildMonth(month time.Time, activities []*domain.Activity) MonthGrid {
	first := domain.StartOfMonth(month)
	last := domain.EndOfMonth(month)
	start := domain.AddDays(first, -int(first.Weekday()))
	end := domain.AddDays(last, 6-int(last.Weekday()))

	grid := MonthGrid{Month: first}
	for weekStart := start; !weekStart.After(end); weekStart = domain.AddDays(weekStart, 7) {
		var week [7]MonthDay
		for i := range week {
			day := domain.AddDays(weekStart, i)
			week[i] = MonthDay{Date: day, InMonth: day.Month() == first.Month()}
			for _, a := range activities {
				if a.OnDay(day) {
					week[i].Activities = append(week[i].Activities, a)
				}
			}
		}
		grid.Weeks = append(grid.Weeks, week)
	}
	return grid
}
