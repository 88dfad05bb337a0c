package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/alexanderramin/campaignos/internal/service"
	"github.com/spf13/cobra"
)

// currentCalendar resolves --calendar, falling back to the last used one.
func currentCalendar(cmd *cobra.Command, app *App) (*domain.Calendar, error) {
	ref, _ := cmd.Flags().GetString("calendar")
	if ref == "" {
		ref = app.Prefs.LastCalendar
	}
	if ref == "" {
		return nil, domain.Invalid("calendar", "no calendar selected; pass --calendar or run 'campaignos calendar use'")
	}
	return app.Calendars.Resolve(cmd.Context(), ref)
}

// resolveRef finds one item by case-insensitive name, full ID or unique ID
// prefix, in that order.
func resolveRef[T any](items []T, ref, kind string, id, name func(T) string) (T, error) {
	var zero T
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return zero, domain.Invalid(kind, "%s is required", kind)
	}

	for _, it := range items {
		if strings.EqualFold(name(it), ref) {
			return it, nil
		}
	}
	for _, it := range items {
		if id(it) == ref {
			return it, nil
		}
	}

	var matches []T
	for _, it := range items {
		if strings.HasPrefix(id(it), strings.ToLower(ref)) {
			matches = append(matches, it)
		}
	}
	switch len(matches) {
	case 0:
		return zero, fmt.Errorf("%q: %w", ref, domain.NotFound(kind))
	case 1:
		return matches[0], nil
	default:
		return zero, domain.Invalid(kind, "%s reference %q is ambiguous (%d matches)", kind, ref, len(matches))
	}
}

func resolveSwimlane(ctx context.Context, app *App, calendarID, ref string) (*domain.Swimlane, error) {
	lanes, err := app.Swimlanes.List(ctx, calendarID)
	if err != nil {
		return nil, err
	}
	return resolveRef(lanes, ref, "swimlane",
		func(s *domain.Swimlane) string { return s.ID },
		func(s *domain.Swimlane) string { return s.Name })
}

func resolveStatus(ctx context.Context, app *App, calendarID, ref string) (*domain.Status, error) {
	statuses, err := app.Statuses.List(ctx, calendarID)
	if err != nil {
		return nil, err
	}
	return resolveRef(statuses, ref, "status",
		func(s *domain.Status) string { return s.ID },
		func(s *domain.Status) string { return s.Name })
}

func resolveCampaign(ctx context.Context, app *App, calendarID, ref string) (*domain.Campaign, error) {
	campaigns, err := app.Campaigns.List(ctx, calendarID)
	if err != nil {
		return nil, err
	}
	return resolveRef(campaigns, ref, "campaign",
		func(c *domain.Campaign) string { return c.ID },
		func(c *domain.Campaign) string { return c.Name })
}

// resolveActivity finds an activity of the calendar by ID, ID prefix or exact
// title.
func resolveActivity(ctx context.Context, app *App, calendarID, ref string) (*domain.Activity, error) {
	if a, err := app.Activities.Get(ctx, ref); err == nil && a.CalendarID == calendarID {
		return a, nil
	}
	list, err := app.Activities.List(ctx, calendarID, service.ActivityFilter{})
	if err != nil {
		return nil, err
	}
	return resolveRef(list, ref, "activity",
		func(a *domain.Activity) string { return a.ID },
		func(a *domain.Activity) string { return a.Title })
}
