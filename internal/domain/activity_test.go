package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func day(s string) time.Time {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func validActivity() *Activity {
	return &Activity{
		ID:         "a1",
		CalendarID: "cal",
		SwimlaneID: "lane",
		StatusID:   "st",
		Title:      "Spring launch",
		StartDate:  day("2025-03-01"),
		EndDate:    day("2025-03-10"),
		Currency:   CurrencyUSD,
		Region:     RegionUS,
	}
}

func TestActivityValidate_TrimsTitle(t *testing.T) {
	a := validActivity()
	a.Title = "  Spring launch  "
	require.NoError(t, a.Validate())
	assert.Equal(t, "Spring launch", a.Title)
}

func TestActivityValidate_Rejects(t *testing.T) {
	cases := []struct {
		name  string
		field string
		mut   func(a *Activity)
	}{
		{"blank title", "title", func(a *Activity) { a.Title = "   " }},
		{"missing swimlane", "swimlane", func(a *Activity) { a.SwimlaneID = "" }},
		{"missing status", "status", func(a *Activity) { a.StatusID = "" }},
		{"end before start", "end", func(a *Activity) { a.EndDate = day("2025-02-28") }},
		{"negative cost", "cost", func(a *Activity) { a.CostCents = -1 }},
		{"cost too large", "cost", func(a *Activity) { a.CostCents = MaxCostCents + 1 }},
		{"bad currency", "currency", func(a *Activity) { a.Currency = "JPY" }},
		{"bad region", "region", func(a *Activity) { a.Region = "APAC" }},
		{"bad color", "color", func(a *Activity) { a.Color = "red" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := validActivity()
			tc.mut(a)
			err := a.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestActivityValidate_SingleDay(t *testing.T) {
	a := validActivity()
	a.EndDate = a.StartDate
	require.NoError(t, a.Validate())
	assert.Equal(t, 1, a.DurationDays())
}

func TestActivityOnDay(t *testing.T) {
	a := validActivity()
	assert.True(t, a.OnDay(day("2025-03-01")))
	assert.True(t, a.OnDay(day("2025-03-10")))
	assert.False(t, a.OnDay(day("2025-02-28")))
	assert.False(t, a.OnDay(day("2025-03-11")))
}

func TestDisplayColor(t *testing.T) {
	a := validActivity()
	st := &Status{Color: "#F59E0B"}

	assert.Equal(t, "#F59E0B", a.DisplayColor(st))
	assert.Equal(t, FallbackColor, a.DisplayColor(nil))
	a.Color = "#112233"
	assert.Equal(t, "#112233", a.DisplayColor(st))
}

func TestApply_AllOrNothing(t *testing.T) {
	a := validActivity()
	before := *a

	err := a.Apply(testNow,
		Rename{Title: "Renamed"},
		Reschedule{Start: day("2025-03-05"), End: day("2025-03-01")},
	)
	require.Error(t, err)
	assert.Equal(t, before, *a, "invalid change set must leave the activity untouched")
}

func TestApply_UpdatesFields(t *testing.T) {
	a := validActivity()
	camp := "camp-1"

	require.NoError(t, a.Apply(testNow,
		Reschedule{Start: day("2025-04-01"), End: day("2025-04-03")},
		Reassign{SwimlaneID: "lane-2"},
		SetStatus{StatusID: "st-2"},
		SetCampaign{CampaignID: &camp},
		SetCost{Cents: 125050},
		SetCurrency{Currency: "gbp"},
		SetRegion{Region: "emea"},
		SetTags{Tags: " q2, launch "},
		SetColor{Color: "#ABCDEF"},
		SetDescription{Text: "notes"},
	))
	assert.Equal(t, day("2025-04-01"), a.StartDate)
	assert.Equal(t, day("2025-04-03"), a.EndDate)
	assert.Equal(t, "lane-2", a.SwimlaneID)
	assert.Equal(t, "st-2", a.StatusID)
	require.NotNil(t, a.CampaignID)
	assert.Equal(t, "camp-1", *a.CampaignID)
	assert.Equal(t, int64(125050), a.CostCents)
	assert.Equal(t, CurrencyGBP, a.Currency)
	assert.Equal(t, RegionEMEA, a.Region)
	assert.Equal(t, "q2, launch", a.Tags)
	assert.Equal(t, "#ABCDEF", a.Color)
	assert.Equal(t, "notes", a.Description)
	assert.Equal(t, testNow, a.UpdatedAt)

	camp = "mutated"
	assert.Equal(t, "camp-1", *a.CampaignID, "campaign id must not alias the caller's string")
}

func TestApply_ClearCampaign(t *testing.T) {
	a := validActivity()
	a.CampaignID = StrPtr("camp-1")
	require.NoError(t, a.Apply(testNow, SetCampaign{}))
	assert.Nil(t, a.CampaignID)
}

func TestApply_NoChanges(t *testing.T) {
	a := validActivity()
	require.ErrorIs(t, a.Apply(testNow), ErrInvalid)
}

func TestCloneDraft(t *testing.T) {
	a := validActivity()
	a.CampaignID = StrPtr("camp-1")
	a.CreatedAt = testNow
	a.UpdatedAt = testNow

	c := a.CloneDraft()
	assert.Empty(t, c.ID)
	assert.True(t, c.CreatedAt.IsZero())
	assert.Equal(t, a.Title, c.Title)
	assert.Equal(t, a.StartDate, c.StartDate)
	require.NotNil(t, c.CampaignID)
	*c.CampaignID = "other"
	assert.Equal(t, "camp-1", *a.CampaignID)
}

func TestParseCost(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"", 0},
		{"0", 0},
		{"99", 9900},
		{"1,250.50", 125050},
		{"$12.3", 1230},
		{"£5", 500},
	}
	for _, tc := range cases {
		got, err := ParseCost(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := ParseCost("-5")
	require.ErrorIs(t, err, ErrInvalid)
	_, err = ParseCost("lots")
	require.ErrorIs(t, err, ErrInvalid)

	got, err := ParseCost("9,999,999,999.99")
	require.NoError(t, err)
	assert.Equal(t, MaxCostCents, got)

	for _, in := range []string{"NaN", "Inf", "-Inf", "1e300", "100000000000000000", "10000000000"} {
		got, err := ParseCost(in)
		assert.ErrorIs(t, err, ErrInvalid, in)
		assert.Zero(t, got, in)
	}
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "1250.50", FormatCents(125050))
	assert.Equal(t, "0.05", FormatCents(5))
}
