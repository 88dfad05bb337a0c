package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alexanderramin/campaignos/internal/cli/formatter"
	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/alexanderramin/campaignos/internal/export"
	"github.com/alexanderramin/campaignos/internal/layout"
	"github.com/alexanderramin/campaignos/internal/service"
	"github.com/spf13/cobra"
)

// timelineFlags are shared by the timeline command and its subcommands.
type timelineFlags struct {
	zoom    layout.Zoom
	start   string
	filters filterFlags
}

// request builds the timeline request for the current calendar. Zoom falls
// back to the saved preference and the window to the current month.
func (f *timelineFlags) request(cmd *cobra.Command, app *App) (service.TimelineRequest, error) {
	cal, err := currentCalendar(cmd, app)
	if err != nil {
		return service.TimelineRequest{}, err
	}
	filter, err := f.filters.resolve(cmd.Context(), app, cal.ID)
	if err != nil {
		return service.TimelineRequest{}, err
	}

	start := domain.StartOfMonth(app.today())
	if t, ok, err := dateFlag("start", f.start); err != nil {
		return service.TimelineRequest{}, err
	} else if ok {
		start = t
	}

	zoom := f.zoom
	if zoom == "" {
		zoom = app.Prefs.Zoom
	}
	if zoom == "" {
		zoom = layout.ZoomQuarter
	}

	return service.TimelineRequest{
		CalendarID: cal.ID,
		Zoom:       zoom,
		Start:      start,
		Filter:     filter,
	}, nil
}

func newTimelineCmd(app *App) *cobra.Command {
	flags := &timelineFlags{}

	cmd := &cobra.Command{
		Use:     "timeline",
		Aliases: []string{"tl"},
		Short:   "Show the swimlane timeline; interactive on a terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runTimelineEdit(cmd, app, flags)
			}
			return runTimelineShow(cmd, app, flags, 100)
		},
	}

	pf := cmd.PersistentFlags()
	pf.Var(zoomValue{&flags.zoom}, "zoom", "Visible window (default from prefs)")
	pf.StringVar(&flags.start, "start", "", "First day of the window (YYYY-MM-DD, default start of this month)")
	flags.filters.bind(pf)

	cmd.AddCommand(
		newTimelineShowCmd(app, flags),
		newTimelineLayoutCmd(app, flags),
		newTimelineExportCmd(app, flags),
		newTimelineEditCmd(app, flags),
	)

	return cmd
}

func newTimelineShowCmd(app *App, flags *timelineFlags) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the timeline as text",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimelineShow(cmd, app, flags, width)
		},
	}

	cmd.Flags().IntVar(&width, "width", 100, "Total width in columns, labels included")

	return cmd
}

func runTimelineShow(cmd *cobra.Command, app *App, flags *timelineFlags, width int) error {
	req, err := flags.request(cmd, app)
	if err != nil {
		return err
	}
	label := max(app.Prefs.LabelColumns(), 8)
	req.Width = float64(max(width-label, 10))
	req.RowHeight = 1

	tl, err := app.Timeline.Timeline(cmd.Context(), req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, formatter.FormatTimelineSummary(tl, req.Zoom))
	fmt.Fprintln(out, formatter.RenderTimeline(tl, formatter.TimelineStyle{
		LabelWidth: label,
		Today:      app.today(),
	}))
	return nil
}

// layoutJSON is the machine-readable layout pass printed by "timeline layout".
type layoutJSON struct {
	Calendar  string         `json:"calendar"`
	Zoom      layout.Zoom    `json:"zoom"`
	Start     string         `json:"start"`
	End       string         `json:"end"`
	DayWidth  float64        `json:"day_width"`
	RowHeight int            `json:"row_height"`
	Height    int            `json:"height"`
	Swimlanes []swimlaneJSON `json:"swimlanes"`
}

type swimlaneJSON struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Top       int       `json:"top"`
	Height    int       `json:"height"`
	LaneCount int       `json:"lane_count"`
	Bars      []barJSON `json:"bars"`
}

type barJSON struct {
	ActivityID string  `json:"activity_id"`
	Title      string  `json:"title"`
	Lane       int     `json:"lane"`
	Left       float64 `json:"left"`
	Width      float64 `json:"width"`
	Top        int     `json:"top"`
	Start      string  `json:"start"`
	End        string  `json:"end"`
	Color      string  `json:"color"`
}

func toLayoutJSON(tl *service.Timeline, zoom layout.Zoom) layoutJSON {
	w := tl.Scale.Window()
	out := layoutJSON{
		Calendar:  tl.Calendar.Name,
		Zoom:      zoom,
		Start:     domain.FormatDate(w.Start),
		End:       domain.FormatDate(w.End),
		DayWidth:  tl.Scale.DayWidth,
		RowHeight: tl.RowHeight,
		Height:    tl.Height,
		Swimlanes: make([]swimlaneJSON, 0, len(tl.Rows)),
	}
	for _, row := range tl.Rows {
		sl := swimlaneJSON{
			ID:        row.Swimlane.ID,
			Name:      row.Swimlane.Name,
			Top:       row.Top,
			Height:    row.Layout.Height,
			LaneCount: row.Layout.LaneCount,
			Bars:      make([]barJSON, 0, len(row.Layout.Bars)),
		}
		for _, b := range row.Layout.Bars {
			title := ""
			if a := tl.Activity(b.ActivityID); a != nil {
				title = a.Title
			}
			sl.Bars = append(sl.Bars, barJSON{
				ActivityID: b.ActivityID,
				Title:      title,
				Lane:       b.Lane,
				Left:       b.Left,
				Width:      b.Width,
				Top:        b.Top,
				Start:      domain.FormatDate(b.Interval.Start),
				End:        domain.FormatDate(b.Interval.End),
				Color:      tl.Color(b.ActivityID),
			})
		}
		out.Swimlanes = append(out.Swimlanes, sl)
	}
	return out
}

func newTimelineLayoutCmd(app *App, flags *timelineFlags) *cobra.Command {
	var rowHeight layout.RowHeight

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the lane layout as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(cmd, app)
			if err != nil {
				return err
			}
			req.RowHeight = int(rowPreset(app, rowHeight))

			tl, err := app.Timeline.Timeline(cmd.Context(), req)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(toLayoutJSON(tl, req.Zoom))
		},
	}

	cmd.Flags().Var(rowHeightValue{&rowHeight}, "row-height", "Lane height preset (default from prefs)")

	return cmd
}

func newTimelineExportCmd(app *App, flags *timelineFlags) *cobra.Command {
	var rowHeight layout.RowHeight
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the timeline as SVG",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(cmd, app)
			if err != nil {
				return err
			}
			req.RowHeight = int(rowPreset(app, rowHeight))

			tl, err := app.Timeline.Timeline(cmd.Context(), req)
			if err != nil {
				return err
			}

			opts := export.DefaultSVGOptions()
			opts.Today = app.today()
			return writeOutput(cmd, output, func(w io.Writer) error {
				return export.WriteSVG(w, tl, opts)
			})
		},
	}

	cmd.Flags().Var(rowHeightValue{&rowHeight}, "row-height", "Lane height preset (default from prefs)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}

func newTimelineEditCmd(app *App, flags *timelineFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the interactive timeline (drag to create, move and resize)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimelineEdit(cmd, app, flags)
		},
	}
}

func runTimelineEdit(cmd *cobra.Command, app *App, flags *timelineFlags) error {
	req, err := flags.request(cmd, app)
	if err != nil {
		return err
	}
	return runTimeline(cmd.Context(), app, req.CalendarID, req.Zoom, req.Start, req.Filter)
}

// rowPreset picks the flag value, else the saved preference.
func rowPreset(app *App, flag layout.RowHeight) layout.RowHeight {
	if flag != 0 {
		return flag
	}
	return app.Prefs.RowHeightPreset()
}
