package service

import (
	"context"
	"time"

	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/alexanderramin/campaignos/internal/layout"
)

// TimelineRequest describes one timeline view. Zero values pick the quarter
// zoom, the first of the current month and the standard row height.
type TimelineRequest struct {
	CalendarID string
	Zoom       layout.Zoom
	Start      time.Time
	RowHeight  int
	// Width fits the visible window into this many units, e.g. terminal
	// columns. Zero uses the zoom's own day width.
	Width  float64
	Filter ActivityFilter
	// Override is the in-flight drag, if any.
	Override *layout.Override
}

type TimelineRow struct {
	Swimlane *domain.Swimlane
	// Top is the row's vertical offset from the top of the timeline.
	Top    int
	Layout layout.SwimlaneLayout
}

// Timeline is a laid-out calendar ready to draw.
type Timeline struct {
	Calendar   *domain.Calendar
	Scale      layout.Scale
	RowHeight  int
	Rows       []TimelineRow
	Height     int
	Activities map[string]*domain.Activity
	Lookups    Lookups
}

// Activity returns the committed activity behind a bar, or nil for the draft
// bar.
func (t *Timeline) Activity(id string) *domain.Activity {
	return t.Activities[id]
}

// Color is the fill color for the bar of id.
func (t *Timeline) Color(id string) string {
	a := t.Activities[id]
	if a == nil {
		return domain.FallbackColor
	}
	return a.DisplayColor(t.Lookups.Statuses[a.StatusID])
}

// RowAt finds the swimlane row under y and y's offset within it.
func (t *Timeline) RowAt(y int) (TimelineRow, int, bool) {
	for _, r := range t.Rows {
		if y >= r.Top && y < r.Top+r.Layout.Height {
			return r, y - r.Top, true
		}
	}
	return TimelineRow{}, 0, false
}

// BarAt hit-tests the whole timeline.
func (t *Timeline) BarAt(x float64, y int) (layout.Bar, TimelineRow, bool) {
	row, dy, ok := t.RowAt(y)
	if !ok {
		return layout.Bar{}, TimelineRow{}, false
	}
	bar, ok := row.Layout.BarAt(x, dy, t.RowHeight)
	return bar, row, ok
}

// BuildTimeline lays out snap in swimlane order. Filtered-out activities are
// left out of the layout entirely.
func BuildTimeline(snap *Snapshot, scale layout.Scale, rowHeight int, filter ActivityFilter, override *layout.Override) *Timeline {
	visible := filter.Apply(snap.Activities)
	t := &Timeline{
		Calendar:   snap.Calendar,
		Scale:      scale,
		RowHeight:  rowHeight,
		Activities: make(map[string]*domain.Activity, len(visible)),
		Lookups:    snap.Lookups(),
	}
	for _, a := range visible {
		t.Activities[a.ID] = a
	}

	result := layout.Compute(LayoutSnapshot(snap.Swimlanes, visible), override, scale, rowHeight)
	top := 0
	for _, sl := range snap.Swimlanes {
		l := result.Swimlane(sl.ID)
		t.Rows = append(t.Rows, TimelineRow{Swimlane: sl, Top: top, Layout: l})
		top += l.Height
	}
	t.Height = top
	return t
}

type timelineService struct {
	calendars CalendarService
	observer  UseCaseObserver
}

func NewTimelineService(calendars CalendarService, observers ...UseCaseObserver) TimelineService {
	return &timelineService{calendars: calendars, observer: useCaseObserverOrNoop(observers)}
}

func (s *timelineService) Timeline(ctx context.Context, req TimelineRequest) (t *Timeline, err error) {
	fields := map[string]any{"calendar_id": req.CalendarID, "zoom": string(req.Zoom)}
	defer observe(ctx, s.observer, "timeline", fields)(&err)

	zoom := req.Zoom
	if zoom == "" {
		zoom = layout.ZoomQuarter
	}
	if _, err := layout.ParseZoom(string(zoom)); err != nil {
		return nil, err
	}
	start := req.Start
	if start.IsZero() {
		start = domain.StartOfMonth(domain.Today())
	}
	rowHeight := req.RowHeight
	if rowHeight <= 0 {
		rowHeight = int(layout.RowStandard)
	}

	snap, err := s.calendars.Snapshot(ctx, req.CalendarID)
	if err != nil {
		return nil, err
	}
	scale := layout.NewScale(zoom, start)
	if req.Width > 0 {
		scale = layout.FitScale(zoom, start, req.Width)
	}
	t = BuildTimeline(snap, scale, rowHeight, req.Filter, req.Override)
	fields["swimlanes"] = len(t.Rows)
	fields["bars"] = len(t.Activities)
	return t, nil
}
