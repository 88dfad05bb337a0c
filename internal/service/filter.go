package service

import (
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/campaignos/internal/domain"
)

// ActivityFilter narrows the activities a view shows. Zero fields match
// everything.
type ActivityFilter struct {
	// Query matches title, description and tags case-insensitively.
	Query      string
	CampaignID string
	StatusID   string
	SwimlaneID string
	// From and To keep activities overlapping the inclusive date range.
	From time.Time
	To   time.Time
}

func (f ActivityFilter) IsZero() bool {
	return f == ActivityFilter{}
}

func (f ActivityFilter) Matches(a *domain.Activity) bool {
	if f.Query != "" {
		q := strings.ToLower(strings.TrimSpace(f.Query))
		haystack := strings.ToLower(a.Title + "\n" + a.Description + "\n" + a.Tags)
		if !strings.Contains(haystack, q) {
			return false
		}
	}
	if f.CampaignID != "" && domain.DerefStr(a.CampaignID) != f.CampaignID {
		return false
	}
	if f.StatusID != "" && a.StatusID != f.StatusID {
		return false
	}
	if f.SwimlaneID != "" && a.SwimlaneID != f.SwimlaneID {
		return false
	}
	if !f.From.IsZero() && domain.DateOf(a.EndDate).Before(domain.DateOf(f.From)) {
		return false
	}
	if !f.To.IsZero() && domain.DateOf(a.StartDate).After(domain.DateOf(f.To)) {
		return false
	}
	return true
}

// Apply returns the matching activities in their original order.
func (f ActivityFilter) Apply(list []*domain.Activity) []*domain.Activity {
	if f.IsZero() {
		return list
	}
	out := make([]*domain.Activity, 0, len(list))
	for _, a := range list {
		if f.Matches(a) {
			out = append(out, a)
		}
	}
	return out
}

type SortField string

const (
	SortTitle    SortField = "title"
	SortStart    SortField = "start"
	SortEnd      SortField = "end"
	SortStatus   SortField = "status"
	SortSwimlane SortField = "swimlane"
	SortCampaign SortField = "campaign"
	SortCost     SortField = "cost"
)

var SortFields = []SortField{SortTitle, SortStart, SortEnd, SortStatus, SortSwimlane, SortCampaign, SortCost}

func ParseSortField(s string) (SortField, error) {
	if s == "" {
		return SortStart, nil
	}
	for _, f := range SortFields {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", domain.Invalid("sort", "unknown sort field %q", s)
}

// SortActivities sorts list in place by field. Ties keep their existing
// order, in both directions.
func SortActivities(list []*domain.Activity, field SortField, desc bool, l Lookups) {
	cmp := compareBy(field, l)
	sort.SliceStable(list, func(i, j int) bool {
		c := cmp(list[i], list[j])
		if desc {
			return c > 0
		}
		return c < 0
	})
}

func compareBy(field SortField, l Lookups) func(a, b *domain.Activity) int {
	switch field {
	case SortTitle:
		return func(a, b *domain.Activity) int {
			return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		}
	case SortEnd:
		return func(a, b *domain.Activity) int { return a.EndDate.Compare(b.EndDate) }
	case SortStatus:
		return func(a, b *domain.Activity) int {
			return strings.Compare(l.StatusName(a.StatusID), l.StatusName(b.StatusID))
		}
	case SortSwimlane:
		return func(a, b *domain.Activity) int {
			return strings.Compare(l.SwimlaneName(a.SwimlaneID), l.SwimlaneName(b.SwimlaneID))
		}
	case SortCampaign:
		return func(a, b *domain.Activity) int {
			return strings.Compare(l.CampaignName(a.CampaignID), l.CampaignName(b.CampaignID))
		}
	case SortCost:
		return func(a, b *domain.Activity) int {
			switch {
			case a.CostCents < b.CostCents:
				return -1
			case a.CostCents > b.CostCents:
				return 1
			}
			return 0
		}
	default:
		return func(a, b *domain.Activity) int { return a.StartDate.Compare(b.StartDate) }
	}
}

// String satisfies pflag.Value.
func (f *SortField) String() string { return string(*f) }

func (f *SortField) Set(s string) error {
	v, err := ParseSortField(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

func (f *SortField) Type() string { return "field" }
