package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

type Activity struct {
	ID          string
	CalendarID  string
	SwimlaneID  string
	StatusID    string
	CampaignID  *string
	Title       string
	StartDate   time.Time
	EndDate     time.Time
	Description string
	CostCents   int64
	Currency    Currency
	Region      Region
	Tags        string
	Color       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate checks every field the data-entry boundary is responsible for.
// It trims the title in place.
func (a *Activity) Validate() error {
	title, err := ValidateName("title", a.Title)
	if err != nil {
		return err
	}
	a.Title = title

	if a.SwimlaneID == "" {
		return invalid("swimlane", "swimlane is required")
	}
	if a.StatusID == "" {
		return invalid("status", "status is required")
	}
	if a.StartDate.IsZero() {
		return invalid("start", "start date is required")
	}
	if a.EndDate.IsZero() {
		return invalid("end", "end date is required")
	}
	if DateOf(a.EndDate).Before(DateOf(a.StartDate)) {
		return invalid("end", "end date %s must be on or after start date %s",
			FormatDate(a.EndDate), FormatDate(a.StartDate))
	}
	if a.CostCents < 0 {
		return invalid("cost", "cost must be >= 0")
	}
	if a.CostCents > MaxCostCents {
		return invalid("cost", "cost must be at most %s", FormatCents(MaxCostCents))
	}
	if !ValidCurrencies[a.Currency] {
		return invalid("currency", "invalid currency %q (want USD, GBP or EUR)", a.Currency)
	}
	if !ValidRegions[a.Region] {
		return invalid("region", "invalid region %q (want US, EMEA or ROW)", a.Region)
	}
	if a.Color != "" {
		if err := ValidateHexColor(a.Color); err != nil {
			return err
		}
	}
	return nil
}

// DurationDays is the inclusive length of the activity in days.
func (a *Activity) DurationDays() int {
	return DaysBetween(a.StartDate, a.EndDate) + 1
}

// OnDay reports whether the activity occupies the given calendar day.
func (a *Activity) OnDay(day time.Time) bool {
	d := DateOf(day)
	return !d.Before(DateOf(a.StartDate)) && !d.After(DateOf(a.EndDate))
}

// DisplayColor picks the bar color: the activity's own, then its status', then
// the fallback.
func (a *Activity) DisplayColor(status *Status) string {
	statusColor := ""
	if status != nil {
		statusColor = status.Color
	}
	return CoalesceStr(a.Color, statusColor, FallbackColor)
}

// CloneDraft returns an unsaved copy seeded from every field of a.
func (a *Activity) CloneDraft() *Activity {
	c := *a
	c.ID = ""
	c.CreatedAt = time.Time{}
	c.UpdatedAt = time.Time{}
	if a.CampaignID != nil {
		id := *a.CampaignID
		c.CampaignID = &id
	}
	return &c
}

// Apply applies changes to a copy of the activity, validates the result and
// writes it back only when valid.
func (a *Activity) Apply(now time.Time, changes ...ActivityChange) error {
	if len(changes) == 0 {
		return invalid("changes", "no changes to apply")
	}
	next := *a
	for _, c := range changes {
		c.applyTo(&next)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	next.UpdatedAt = now
	*a = next
	return nil
}

// MaxCostCents is the largest cost a decimal(12,2) amount can hold.
const MaxCostCents int64 = 999_999_999_999

// ParseCost parses an amount such as "1,250.50" or "$99" into cents.
func ParseCost(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimLeft(clean, "$£€")
	clean = strings.ReplaceAll(clean, ",", "")
	if clean == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, invalid("cost", "invalid cost %q", s)
	}
	if f < 0 {
		return 0, invalid("cost", "cost must be >= 0")
	}
	cents := math.Round(f * 100)
	if cents > float64(MaxCostCents) {
		return 0, invalid("cost", "cost must be at most %s", FormatCents(MaxCostCents))
	}
	return int64(cents), nil
}

// FormatCents renders cents as a plain decimal string, e.g. 125050 -> "1250.50".
func FormatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
