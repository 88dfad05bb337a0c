package service

import (
	"context"

	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/alexanderramin/campaignos/internal/interaction"
)

type CalendarService interface {
	// Create stores a calendar and seeds the default statuses in one
	// transaction.
	Create(ctx context.Context, name string) (*domain.Calendar, error)
	Get(ctx context.Context, id string) (*domain.Calendar, error)
	List(ctx context.Context) ([]*domain.Calendar, error)
	// Resolve finds a calendar by exact name (case-insensitive), full ID or
	// unique ID prefix.
	Resolve(ctx context.Context, ref string) (*domain.Calendar, error)
	Rename(ctx context.Context, id, name string) (*domain.Calendar, error)
	Delete(ctx context.Context, id string) error
	// Snapshot loads everything a view of the calendar needs.
	Snapshot(ctx context.Context, id string) (*Snapshot, error)
}

type SwimlaneService interface {
	Create(ctx context.Context, calendarID, name string) (*domain.Swimlane, error)
	List(ctx context.Context, calendarID string) ([]*domain.Swimlane, error)
	Rename(ctx context.Context, id, name string) (*domain.Swimlane, error)
	Delete(ctx context.Context, id string) error
	// Reorder moves a swimlane to newIndex and rewrites every sort order in
	// the calendar to 0..n-1.
	Reorder(ctx context.Context, calendarID, swimlaneID string, newIndex int) ([]*domain.Swimlane, error)
}

// StatusUpdate carries the fields to change; nil fields are left alone.
type StatusUpdate struct {
	Name      *string
	Color     *string
	SortOrder *int
}

type StatusService interface {
	Create(ctx context.Context, calendarID, name, color string) (*domain.Status, error)
	List(ctx context.Context, calendarID string) ([]*domain.Status, error)
	Update(ctx context.Context, id string, upd StatusUpdate) (*domain.Status, error)
	// Delete refuses to remove a status that activities still use.
	Delete(ctx context.Context, id string) error
}

type CampaignService interface {
	Create(ctx context.Context, calendarID, name string) (*domain.Campaign, error)
	List(ctx context.Context, calendarID string) ([]*domain.Campaign, error)
	Rename(ctx context.Context, id, name string) (*domain.Campaign, error)
	// Delete unlinks the campaign's activities and removes it.
	Delete(ctx context.Context, id string) error
}

type ActivityService interface {
	Create(ctx context.Context, a *domain.Activity) error
	Get(ctx context.Context, id string) (*domain.Activity, error)
	List(ctx context.Context, calendarID string, f ActivityFilter) ([]*domain.Activity, error)
	Update(ctx context.Context, id string, changes ...domain.ActivityChange) (*domain.Activity, error)
	Delete(ctx context.Context, id string) error
	// Commit persists a finished move or resize.
	Commit(ctx context.Context, req interaction.UpdateRequest) (*domain.Activity, error)
	// CreateFromDraft persists a finished drag-to-create or clone. extra
	// changes, such as a status picked in a form, are applied on top of the
	// draft's defaults.
	CreateFromDraft(ctx context.Context, req interaction.CreateRequest, title string, extra ...domain.ActivityChange) (*domain.Activity, error)
	// Clone stores a copy of an activity with the same dates and swimlane.
	Clone(ctx context.Context, id string) (*domain.Activity, error)
}

type TimelineService interface {
	Timeline(ctx context.Context, req TimelineRequest) (*Timeline, error)
}
