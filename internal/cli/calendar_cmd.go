package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/campaignos/internal/cli/formatter"
	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/alexanderramin/campaignos/internal/service"
	"github.com/spf13/cobra"
)

func newCalendarCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Manage calendars",
	}

	cmd.AddCommand(
		newCalendarAddCmd(app),
		newCalendarListCmd(app),
		newCalendarShowCmd(app),
		newCalendarRenameCmd(app),
		newCalendarRemoveCmd(app),
		newCalendarUseCmd(app),
		newCalendarMonthCmd(app),
	)

	return cmd
}

func newCalendarAddCmd(app *App) *cobra.Command {
	var use bool

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a calendar with the default statuses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := app.Calendars.Create(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if use || app.Prefs.LastCalendar == "" {
				app.Prefs.LastCalendar = cal.ID
				if err := app.savePrefs(); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created calendar %s (%s)\n", cal.Name, formatter.TruncID(cal.ID))
			return nil
		},
	}

	cmd.Flags().BoolVar(&use, "use", false, "Make the new calendar the default")

	return cmd
}

func newCalendarListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List calendars",
		RunE: func(cmd *cobra.Command, args []string) error {
			cals, err := app.Calendars.List(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(cals) == 0 {
				fmt.Fprintln(out, "No calendars found.")
				return nil
			}

			fmt.Fprintln(out, formatter.FormatCalendarList(cals, app.Prefs.LastCalendar))
			return nil
		},
	}
}

func newCalendarShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [CALENDAR]",
		Short: "Show a calendar's swimlanes, statuses, campaigns and spend",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := calendarArg(cmd, app, args)
			if err != nil {
				return err
			}
			snap, err := app.Calendars.Snapshot(cmd.Context(), cal.ID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCalendarOverview(snap))
			return nil
		},
	}
}

func newCalendarRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename CALENDAR NAME",
		Short: "Rename a calendar",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := app.Calendars.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renamed, err := app.Calendars.Rename(cmd.Context(), cal.ID, args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Renamed calendar %s to %s\n", cal.Name, renamed.Name)
			return nil
		},
	}
}

func newCalendarRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm CALENDAR",
		Short: "Delete a calendar and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := app.Calendars.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := confirmRemoval(app, yes, fmt.Sprintf("calendar %q", cal.Name)); err != nil {
				return err
			}
			if err := app.Calendars.Delete(cmd.Context(), cal.ID); err != nil {
				return err
			}

			if app.Prefs.LastCalendar == cal.ID {
				app.Prefs.LastCalendar = ""
				if err := app.savePrefs(); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted calendar %s\n", cal.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newCalendarUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use CALENDAR",
		Short: "Set the default calendar for other commands",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := app.Calendars.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			app.Prefs.LastCalendar = cal.ID
			if err := app.savePrefs(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Using calendar %s\n", cal.Name)
			return nil
		},
	}
}

func newCalendarMonthCmd(app *App) *cobra.Command {
	var month string
	var perDay int
	var filter service.ActivityFilter

	cmd := &cobra.Command{
		Use:   "month",
		Short: "Show one month as a calendar grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := currentCalendar(cmd, app)
			if err != nil {
				return err
			}

			first := domain.StartOfMonth(app.today())
			if month != "" {
				t, err := time.Parse("2006-01", month)
				if err != nil {
					return domain.Invalid("month", "invalid month %q (want YYYY-MM)", month)
				}
				first = t
			}

			snap, err := app.Calendars.Snapshot(cmd.Context(), cal.ID)
			if err != nil {
				return err
			}
			lookups := snap.Lookups()
			colorOf := func(id string) string {
				if a := snap.Activity(id); a != nil {
					return a.DisplayColor(lookups.Statuses[a.StatusID])
				}
				return domain.FallbackColor
			}

			grid := service.BuildMonth(first, filter.Apply(snap.Activities))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatMonth(grid, colorOf, perDay, app.Prefs.ShowWeekends))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to show (YYYY-MM, default this month)")
	cmd.Flags().IntVar(&perDay, "per-day", 3, "Activities listed per day before \"+N more\"")
	cmd.Flags().StringVarP(&filter.Query, "search", "s", "", "Only activities whose title, description or tags match")

	return cmd
}

// calendarArg resolves an optional positional calendar reference, falling
// back to --calendar and the last used calendar.
func calendarArg(cmd *cobra.Command, app *App, args []string) (*domain.Calendar, error) {
	if len(args) > 0 {
		return app.Calendars.Resolve(cmd.Context(), args[0])
	}
	return currentCalendar(cmd, app)
}
