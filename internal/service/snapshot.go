package service

import (
	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/alexanderramin/campaignos/internal/layout"
)

// Snapshot is the committed state of one calendar.
type Snapshot struct {
	Calendar   *domain.Calendar
	Statuses   []*domain.Status
	Swimlanes  []*domain.Swimlane
	Campaigns  []*domain.Campaign
	Activities []*domain.Activity
}

// Lookups indexes a snapshot's reference data by ID.
type Lookups struct {
	Statuses  map[string]*domain.Status
	Swimlanes map[string]*domain.Swimlane
	Campaigns map[string]*domain.Campaign
}

func (s *Snapshot) Lookups() Lookups {
	l := Lookups{
		Statuses:  make(map[string]*domain.Status, len(s.Statuses)),
		Swimlanes: make(map[string]*domain.Swimlane, len(s.Swimlanes)),
		Campaigns: make(map[string]*domain.Campaign, len(s.Campaigns)),
	}
	for _, st := range s.Statuses {
		l.Statuses[st.ID] = st
	}
	for _, sl := range s.Swimlanes {
		l.Swimlanes[sl.ID] = sl
	}
	for _, c := range s.Campaigns {
		l.Campaigns[c.ID] = c
	}
	return l
}

func (l Lookups) StatusName(id string) string {
	if st, ok := l.Statuses[id]; ok {
		return st.Name
	}
	return ""
}

func (l Lookups) SwimlaneName(id string) string {
	if sl, ok := l.Swimlanes[id]; ok {
		return sl.Name
	}
	return ""
}

func (l Lookups) CampaignName(id *string) string {
	if id == nil {
		return ""
	}
	if c, ok := l.Campaigns[*id]; ok {
		return c.Name
	}
	return ""
}

// Activity returns the activity with id, or nil.
func (s *Snapshot) Activity(id string) *domain.Activity {
	for _, a := range s.Activities {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// WithActivity returns a copy of s in which a replaces the activity with the
// same ID, or is appended when s has none. s is not modified.
func (s *Snapshot) WithActivity(a *domain.Activity) *Snapshot {
	next := *s
	next.Activities = make([]*domain.Activity, 0, len(s.Activities)+1)
	replaced := false
	for _, cur := range s.Activities {
		if cur.ID == a.ID {
			next.Activities = append(next.Activities, a)
			replaced = true
			continue
		}
		next.Activities = append(next.Activities, cur)
	}
	if !replaced {
		next.Activities = append(next.Activities, a)
	}
	return &next
}

// LayoutSnapshot converts activities to the layout engine's input. Every
// swimlane appears, even when empty.
func LayoutSnapshot(swimlanes []*domain.Swimlane, activities []*domain.Activity) layout.Snapshot {
	snap := make(layout.Snapshot, len(swimlanes))
	for _, sl := range swimlanes {
		snap[sl.ID] = nil
	}
	for _, a := range activities {
		if _, ok := snap[a.SwimlaneID]; !ok {
			continue
		}
		snap[a.SwimlaneID] = append(snap[a.SwimlaneID], ActivityItem(a))
	}
	return snap
}

// ActivityItem is the layout engine's view of a.
func ActivityItem(a *domain.Activity) layout.Item {
	return layout.Item{
		ID:       a.ID,
		Interval: layout.Interval{Start: domain.DateOf(a.StartDate), End: domain.DateOf(a.EndDate)},
	}
}
