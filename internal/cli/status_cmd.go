package cli

import (
	"fmt"

	"github.com/alexanderramin/campaignos/internal/cli/formatter"
	"github.com/alexanderramin/campaignos/internal/service"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Manage activity statuses",
	}

	cmd.AddCommand(
		newStatusAddCmd(app),
		newStatusListCmd(app),
		newStatusUpdateCmd(app),
		newStatusRemoveCmd(app),
	)

	return cmd
}

func newStatusAddCmd(app *App) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := currentCalendar(cmd, app)
			if err != nil {
				return err
			}
			st, err := app.Statuses.Create(cmd.Context(), cal.ID, args[0], color)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added status %s\n", formatter.Swatch(st.Color, st.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "#64748B", "Hex color (#RRGGBB)")

	return cmd
}

func newStatusListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List statuses",
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := currentCalendar(cmd, app)
			if err != nil {
				return err
			}
			statuses, err := app.Statuses.List(cmd.Context(), cal.ID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStatuses(statuses))
			return nil
		},
	}
}

func newStatusUpdateCmd(app *App) *cobra.Command {
	var name, color string
	var order int

	cmd := &cobra.Command{
		Use:   "update STATUS",
		Short: "Rename, recolor or reorder a status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := currentCalendar(cmd, app)
			if err != nil {
				return err
			}
			st, err := resolveStatus(cmd.Context(), app, cal.ID, args[0])
			if err != nil {
				return err
			}

			var upd service.StatusUpdate
			if cmd.Flags().Changed("name") {
				upd.Name = &name
			}
			if cmd.Flags().Changed("color") {
				upd.Color = &color
			}
			if cmd.Flags().Changed("order") {
				upd.SortOrder = &order
			}

			updated, err := app.Statuses.Update(cmd.Context(), st.ID, upd)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated status %s\n", formatter.Swatch(updated.Color, updated.Name))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&color, "color", "", "New hex color (#RRGGBB)")
	cmd.Flags().IntVar(&order, "order", 0, "New sort order")

	return cmd
}

func newStatusRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm STATUS",
		Short: "Delete a status no activity uses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := currentCalendar(cmd, app)
			if err != nil {
				return err
			}
			st, err := resolveStatus(cmd.Context(), app, cal.ID, args[0])
			if err != nil {
				return err
			}
			if err := app.Statuses.Delete(cmd.Context(), st.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted status %s\n", st.Name)
			return nil
		},
	}
}
