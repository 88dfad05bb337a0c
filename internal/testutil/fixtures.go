package testutil

import (
	"time"

	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/google/uuid"
)

// FixtureNow is the fixed clock used by fixtures.
var FixtureNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

// Date parses YYYY-MM-DD and panics on bad input.
func Date(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func NewTestCalendar(name string) *domain.Calendar {
	return &domain.Calendar{ID: uuid.New().String(), Name: name, CreatedAt: FixtureNow}
}

func NewTestStatus(calendarID, name, color string, sortOrder int) *domain.Status {
	return &domain.Status{
		ID:         uuid.New().String(),
		CalendarID: calendarID,
		Name:       name,
		Color:      color,
		SortOrder:  sortOrder,
	}
}

func NewTestSwimlane(calendarID, name string, sortOrder int) *domain.Swimlane {
	return &domain.Swimlane{
		ID:         uuid.New().String(),
		CalendarID: calendarID,
		Name:       name,
		SortOrder:  sortOrder,
	}
}

func NewTestCampaign(calendarID, name string) *domain.Campaign {
	return &domain.Campaign{ID: uuid.New().String(), CalendarID: calendarID, Name: name}
}

// Activity options
type ActivityOption func(*domain.Activity)

func WithDates(start, end string) ActivityOption {
	return func(a *domain.Activity) {
		a.StartDate = Date(start)
		a.EndDate = Date(end)
	}
}

func WithCampaign(id string) ActivityOption {
	return func(a *domain.Activity) {
		a.CampaignID = &id
	}
}

func WithCost(cents int64, currency domain.Currency) ActivityOption {
	return func(a *domain.Activity) {
		a.CostCents = cents
		a.Currency = currency
	}
}

func WithRegion(r domain.Region) ActivityOption {
	return func(a *domain.Activity) {
		a.Region = r
	}
}

func WithColor(c string) ActivityOption {
	return func(a *domain.Activity) {
		a.Color = c
	}
}

func WithTags(tags string) ActivityOption {
	return func(a *domain.Activity) {
		a.Tags = tags
	}
}

func WithDescription(d string) ActivityOption {
	return func(a *domain.Activity) {
		a.Description = d
	}
}

// NewTestActivity builds a valid activity spanning 2025-03-01..2025-03-05
// unless overridden.
func NewTestActivity(calendarID, swimlaneID, statusID, title string, opts ...ActivityOption) *domain.Activity {
	a := &domain.Activity{
		ID:         uuid.New().String(),
		CalendarID: calendarID,
		SwimlaneID: swimlaneID,
		StatusID:   statusID,
		Title:      title,
		StartDate:  Date("2025-03-01"),
		EndDate:    Date("2025-03-05"),
		Currency:   domain.CurrencyUSD,
		Region:     domain.RegionUS,
		CreatedAt:  FixtureNow,
		UpdatedAt:  FixtureNow,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}
