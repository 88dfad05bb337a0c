package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/campaignos/internal/cli/formatter"
	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/spf13/cobra"
)

func newSwimlaneCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "swimlane",
		Aliases: []string{"lane"},
		Short:   "Manage the swimlanes of a calendar",
	}

	cmd.AddCommand(
		newSwimlaneAddCmd(app),
		newSwimlaneListCmd(app),
		newSwimlaneRenameCmd(app),
		newSwimlaneRemoveCmd(app),
		newSwimlaneMoveCmd(app),
	)

	return cmd
}

func newSwimlaneAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Append a swimlane",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := currentCalendar(cmd, app)
			if err != nil {
				return err
			}
			sl, err := app.Swimlanes.Create(cmd.Context(), cal.ID, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added swimlane %s to %s\n", sl.Name, cal.Name)
			return nil
		},
	}
}

func newSwimlaneListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List swimlanes in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := currentCalendar(cmd, app)
			if err != nil {
				return err
			}
			lanes, err := app.Swimlanes.List(cmd.Context(), cal.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(lanes) == 0 {
				fmt.Fprintln(out, "No swimlanes yet. Add one with 'campaignos swimlane add NAME'.")
				return nil
			}

			fmt.Fprintln(out, formatter.FormatSwimlanes(lanes))
			return nil
		},
	}
}

func newSwimlaneRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename SWIMLANE NAME",
		Short: "Rename a swimlane",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := currentCalendar(cmd, app)
			if err != nil {
				return err
			}
			sl, err := resolveSwimlane(cmd.Context(), app, cal.ID, args[0])
			if err != nil {
				return err
			}
			renamed, err := app.Swimlanes.Rename(cmd.Context(), sl.ID, args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Renamed swimlane %s to %s\n", sl.Name, renamed.Name)
			return nil
		},
	}
}

func newSwimlaneRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm SWIMLANE",
		Short: "Delete a swimlane and its activities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := currentCalendar(cmd, app)
			if err != nil {
				return err
			}
			sl, err := resolveSwimlane(cmd.Context(), app, cal.ID, args[0])
			if err != nil {
				return err
			}
			if err := confirmRemoval(app, yes, fmt.Sprintf("swimlane %q and its activities", sl.Name)); err != nil {
				return err
			}
			if err := app.Swimlanes.Delete(cmd.Context(), sl.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted swimlane %s\n", sl.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newSwimlaneMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move SWIMLANE POSITION",
		Short: "Move a swimlane to a 1-based position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := strconv.Atoi(args[1])
			if err != nil || pos < 1 {
				return domain.Invalid("position", "invalid position %q (want 1 or more)", args[1])
			}
			cal, err := currentCalendar(cmd, app)
			if err != nil {
				return err
			}
			sl, err := resolveSwimlane(cmd.Context(), app, cal.ID, args[0])
			if err != nil {
				return err
			}
			lanes, err := app.Swimlanes.Reorder(cmd.Context(), cal.ID, sl.ID, pos-1)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSwimlanes(lanes))
			return nil
		},
	}
}
