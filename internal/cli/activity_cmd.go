package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/campaignos/internal/cli/formatter"
	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/alexanderramin/campaignos/internal/export"
	"github.com/alexanderramin/campaignos/internal/interaction"
	"github.com/alexanderramin/campaignos/internal/layout"
	"github.com/alexanderramin/campaignos/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// filterFlags are the activity filters shared by list, export and timeline
// commands. References are resolved against the current calendar.
type filterFlags struct {
	query, campaign, status, swimlane, from, to string
}

func (f *filterFlags) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&f.query, "search", "s", "", "Match title, description or tags")
	fs.StringVar(&f.campaign, "campaign", "", "Only activities of this campaign")
	fs.StringVar(&f.status, "status", "", "Only activities with this status")
	fs.StringVar(&f.swimlane, "swimlane", "", "Only activities in this swimlane")
	fs.StringVar(&f.from, "from", "", "Only activities ending on or after this date (YYYY-MM-DD)")
	fs.StringVar(&f.to, "to", "", "Only activities starting on or before this date (YYYY-MM-DD)")
}

func (f *filterFlags) resolve(ctx context.Context, app *App, calendarID string) (service.ActivityFilter, error) {
	out := service.ActivityFilter{Query: f.query}
	if f.campaign != "" {
		c, err := resolveCampaign(ctx, app, calendarID, f.campaign)
		if err != nil {
			return out, err
		}
		out.CampaignID = c.ID
	}
	if f.status != "" {
		st, err := resolveStatus(ctx, app, calendarID, f.status)
		if err != nil {
			return out, err
		}
		out.StatusID = st.ID
	}
	if f.swimlane != "" {
		sl, err := resolveSwimlane(ctx, app, calendarID, f.swimlane)
		if err != nil {
			return out, err
		}
		out.SwimlaneID = sl.ID
	}
	var err error
	if out.From, _, err = dateFlag("from", f.from); err != nil {
		return out, err
	}
	if out.To, _, err = dateFlag("to", f.to); err != nil {
		return out, err
	}
	return out, nil
}

func newActivityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "activity",
		Aliases: []string{"act"},
		Short:   "Manage activities",
	}

	cmd.AddCommand(
		newActivityAddCmd(app),
		newActivityListCmd(app),
		newActivityShowCmd(app),
		newActivityUpdateCmd(app),
		newActivityRescheduleCmd(app),
		newActivityMoveCmd(app),
		newActivityCloneCmd(app),
		newActivityRemoveCmd(app),
		newActivityExportCmd(app),
	)

	return cmd
}

// activityFields holds the optional attribute flags of add and update.
type activityFields struct {
	status, campaign, cost, description, tags, color string
	currency                                         domain.Currency
	region                                           domain.Region
}

func (f *activityFields) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.status, "status", "", "Status name or ID")
	cmd.Flags().StringVar(&f.campaign, "campaign", "", "Campaign name or ID (\"\" unlinks on update)")
	cmd.Flags().StringVar(&f.cost, "cost", "", "Cost, e.g. 1,250.50")
	cmd.Flags().Var(currencyValue{&f.currency}, "currency", "Cost currency")
	cmd.Flags().Var(regionValue{&f.region}, "region", "Region")
	cmd.Flags().StringVar(&f.description, "description", "", "Description (Markdown)")
	cmd.Flags().StringVar(&f.tags, "tags", "", "Comma-separated tags")
	cmd.Flags().StringVar(&f.color, "color", "", "Hex color overriding the status color (\"\" clears on update)")
}

// changes turns the flags the user set into activity changes.
func (f *activityFields) changes(cmd *cobra.Command, app *App, calendarID string) ([]domain.ActivityChange, error) {
	ctx := cmd.Context()
	changed := cmd.Flags().Changed
	var out []domain.ActivityChange

	if changed("status") {
		st, err := resolveStatus(ctx, app, calendarID, f.status)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.SetStatus{StatusID: st.ID})
	}
	if changed("campaign") {
		var id *string
		if f.campaign != "" {
			c, err := resolveCampaign(ctx, app, calendarID, f.campaign)
			if err != nil {
				return nil, err
			}
			id = &c.ID
		}
		out = append(out, domain.SetCampaign{CampaignID: id})
	}
	if changed("cost") {
		cents, err := domain.ParseCost(f.cost)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.SetCost{Cents: cents})
	}
	if changed("currency") {
		out = append(out, domain.SetCurrency{Currency: f.currency})
	}
	if changed("region") {
		out = append(out, domain.SetRegion{Region: f.region})
	}
	if changed("description") {
		out = append(out, domain.SetDescription{Text: f.description})
	}
	if changed("tags") {
		out = append(out, domain.SetTags{Tags: f.tags})
	}
	if changed("color") {
		out = append(out, domain.SetColor{Color: f.color})
	}
	return out, nil
}

func newActivityAddCmd(app *App) *cobra.Command {
	var swimlane, start, end string
	var fields activityFields

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cal, err := currentCalendar(cmd, app)
			if err != nil {
				return err
			}
			sl, err := resolveSwimlane(ctx, app, cal.ID, swimlane)
			if err != nil {
				return err
			}
			startDate, _, err := dateFlag("start", start)
			if err != nil {
				return err
			}
			endDate, ok, err := dateFlag("end", end)
			if err != nil {
				return err
			}
			if !ok {
				endDate = startDate
			}

			iv, err := layout.NewInterval(startDate, endDate)
			if err != nil {
				return err
			}
			changes, err := fields.changes(cmd, app, cal.ID)
			if err != nil {
				return err
			}

			a, err := app.Activities.CreateFromDraft(ctx, interaction.CreateRequest{SwimlaneID: sl.ID, Interval: iv}, args[0], changes...)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created activity %s (%s) %s\n",
				a.Title, formatter.TruncID(a.ID), formatter.DateRange(a.StartDate, a.EndDate))
			return nil
		},
	}

	cmd.Flags().StringVar(&swimlane, "swimlane", "", "Swimlane name or ID")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD, default the start date)")
	fields.bind(cmd)
	_ = cmd.MarkFlagRequired("swimlane")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func newActivityListCmd(app *App) *cobra.Command {
	var filters filterFlags
	var sortBy service.SortField
	var desc bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List activities as a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cal, err := currentCalendar(cmd, app)
			if err != nil {
				return err
			}
			f, err := filters.resolve(ctx, app, cal.ID)
			if err != nil {
				return err
			}
			snap, err := app.Calendars.Snapshot(ctx, cal.ID)
			if err != nil {
				return err
			}

			list := f.Apply(snap.Activities)
			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No activities found.")
				return nil
			}

			lookups := snap.Lookups()
			if sortBy == "" {
				sortBy = service.SortStart
			}
			service.SortActivities(list, sortBy, desc, lookups)
			fmt.Fprintln(out, formatter.FormatActivityTable(list, lookups))
			return nil
		},
	}

	filters.bind(cmd.Flags())
	cmd.Flags().Var(&sortBy, "sort", "Sort by title, start, end, status, swimlane, campaign or cost")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")

	return cmd
}

func newActivityShowCmd(app *App) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "show ACTIVITY",
		Short: "Show an activity's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cal, err := currentCalendar(cmd, app)
			if err != nil {
				return err
			}
			a, err := resolveActivity(ctx, app, cal.ID, args[0])
			if err != nil {
				return err
			}
			snap, err := app.Calendars.Snapshot(ctx, cal.ID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatActivityDetail(a, snap.Lookups(), width))
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 80, "Wrap width for the description")

	return cmd
}

func newActivityUpdateCmd(app *App) *cobra.Command {
	var title string
	var fields activityFields

	cmd := &cobra.Command{
		Use:   "update ACTIVITY",
		Short: "Change an activity's attributes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cal, err := currentCalendar(cmd, app)
			if err != nil {
				return err
			}
			a, err := resolveActivity(ctx, app, cal.ID, args[0])
			if err != nil {
				return err
			}
			changes, err := fields.changes(cmd, app, cal.ID)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("title") {
				changes = append(changes, domain.Rename{Title: title})
			}

			updated, err := app.Activities.Update(ctx, a.ID, changes...)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated activity %s\n", updated.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	fields.bind(cmd)

	return cmd
}

func newActivityRescheduleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reschedule ACTIVITY START [END]",
		Short: "Change an activity's dates; without END the duration is kept",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cal, err := currentCalendar(cmd, app)
			if err != nil {
				return err
			}
			a, err := resolveActivity(ctx, app, cal.ID, args[0])
			if err != nil {
				return err
			}
			start, err := domain.ParseDate(args[1])
			if err != nil {
				return err
			}
			end := domain.AddDays(start, a.DurationDays()-1)
			if len(args) == 3 {
				if end, err = domain.ParseDate(args[2]); err != nil {
					return err
				}
			}

			updated, err := app.Activities.Update(ctx, a.ID, domain.Reschedule{Start: start, End: end})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Rescheduled %s to %s\n",
				updated.Title, formatter.DateRange(updated.StartDate, updated.EndDate))
			return nil
		},
	}
}

func newActivityMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move ACTIVITY SWIMLANE",
		Short: "Move an activity to another swimlane",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cal, err := currentCalendar(cmd, app)
			if err != nil {
				return err
			}
			a, err := resolveActivity(ctx, app, cal.ID, args[0])
			if err != nil {
				return err
			}
			sl, err := resolveSwimlane(ctx, app, cal.ID, args[1])
			if err != nil {
				return err
			}

			updated, err := app.Activities.Update(ctx, a.ID, domain.Reassign{SwimlaneID: sl.ID})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Moved %s to %s\n", updated.Title, sl.Name)
			return nil
		},
	}
}

func newActivityCloneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clone ACTIVITY",
		Short: "Copy an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cal, err := currentCalendar(cmd, app)
			if err != nil {
				return err
			}
			a, err := resolveActivity(ctx, app, cal.ID, args[0])
			if err != nil {
				return err
			}
			c, err := app.Activities.Clone(ctx, a.ID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s)\n", c.Title, formatter.TruncID(c.ID))
			return nil
		},
	}
}

func newActivityRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm ACTIVITY",
		Short: "Delete an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cal, err := currentCalendar(cmd, app)
			if err != nil {
				return err
			}
			a, err := resolveActivity(ctx, app, cal.ID, args[0])
			if err != nil {
				return err
			}
			if err := confirmRemoval(app, yes, fmt.Sprintf("activity %q", a.Title)); err != nil {
				return err
			}
			if err := app.Activities.Delete(ctx, a.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted activity %s\n", a.Title)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newActivityExportCmd(app *App) *cobra.Command {
	var filters filterFlags
	var rangeKind, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export activities as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cal, err := currentCalendar(cmd, app)
			if err != nil {
				return err
			}
			f, err := filters.resolve(ctx, app, cal.ID)
			if err != nil {
				return err
			}
			if rangeKind != "" {
				iv, err := service.ExportRange(service.RangeKind(rangeKind), app.today())
				if err != nil {
					return err
				}
				f.From, f.To = iv.Start, iv.End
			}

			snap, err := app.Calendars.Snapshot(ctx, cal.ID)
			if err != nil {
				return err
			}
			list := f.Apply(snap.Activities)
			lookups := snap.Lookups()
			service.SortActivities(list, service.SortStart, false, lookups)

			return writeOutput(cmd, output, func(w io.Writer) error {
				return export.WriteCSV(w, list, lookups)
			})
		},
	}

	filters.bind(cmd.Flags())
	cmd.Flags().StringVar(&rangeKind, "range", "", "Quick range: month, quarter, year or all")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}

// writeOutput writes to path, or to the command's stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", path)
	return nil
}
