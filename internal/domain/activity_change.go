package domain

import (
	"strings"
	"time"
)

// ActivityChange is one well-typed edit to an activity. The set of changes is
// closed: only the types in this file implement it.
type ActivityChange interface {
	// Field names the attribute the change touches.
	Field() string
	applyTo(a *Activity)
}

// Reschedule moves or resizes the activity to [Start, End].
type Reschedule struct {
	Start time.Time
	End   time.Time
}

func (Reschedule) Field() string { return "dates" }
func (c Reschedule) applyTo(a *Activity) {
	a.StartDate = DateOf(c.Start)
	a.EndDate = DateOf(c.End)
}

// Reassign moves the activity to another swimlane.
type Reassign struct {
	SwimlaneID string
}

func (Reassign) Field() string         { return "swimlane" }
func (c Reassign) applyTo(a *Activity) { a.SwimlaneID = c.SwimlaneID }

type Rename struct {
	Title string
}

func (Rename) Field() string         { return "title" }
func (c Rename) applyTo(a *Activity) { a.Title = c.Title }

type SetStatus struct {
	StatusID string
}

func (SetStatus) Field() string         { return "status" }
func (c SetStatus) applyTo(a *Activity) { a.StatusID = c.StatusID }

// SetCampaign links the activity to a campaign; a nil or empty ID unlinks it.
type SetCampaign struct {
	CampaignID *string
}

func (SetCampaign) Field() string { return "campaign" }
func (c SetCampaign) applyTo(a *Activity) {
	if c.CampaignID == nil || *c.CampaignID == "" {
		a.CampaignID = nil
		return
	}
	id := *c.CampaignID
	a.CampaignID = &id
}

type SetCost struct {
	Cents int64
}

func (SetCost) Field() string         { return "cost" }
func (c SetCost) applyTo(a *Activity) { a.CostCents = c.Cents }

type SetCurrency struct {
	Currency Currency
}

func (SetCurrency) Field() string { return "currency" }
func (c SetCurrency) applyTo(a *Activity) {
	a.Currency = Currency(strings.ToUpper(string(c.Currency)))
}

type SetRegion struct {
	Region Region
}

func (SetRegion) Field() string { return "region" }
func (c SetRegion) applyTo(a *Activity) {
	a.Region = Region(strings.ToUpper(string(c.Region)))
}

type SetDescription struct {
	Text string
}

func (SetDescription) Field() string         { return "description" }
func (c SetDescription) applyTo(a *Activity) { a.Description = c.Text }

type SetTags struct {
	Tags string
}

func (SetTags) Field() string         { return "tags" }
func (c SetTags) applyTo(a *Activity) { a.Tags = strings.TrimSpace(c.Tags) }

// SetColor overrides the status color; an empty color clears the override.
type SetColor struct {
	Color string
}

func (SetColor) Field() string         { return "color" }
func (c SetColor) applyTo(a *Activity) { a.Color = c.Color }
