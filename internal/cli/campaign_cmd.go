package cli

import (
	"fmt"

	"github.com/alexanderramin/campaignos/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCampaignCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaign",
		Short: "Manage campaigns",
	}

	cmd.AddCommand(
		newCampaignAddCmd(app),
		newCampaignListCmd(app),
		newCampaignRenameCmd(app),
		newCampaignRemoveCmd(app),
	)

	return cmd
}

func newCampaignAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Add a campaign",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := currentCalendar(cmd, app)
			if err != nil {
				return err
			}
			c, err := app.Campaigns.Create(cmd.Context(), cal.ID, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added campaign %s\n", c.Name)
			return nil
		},
	}
}

func newCampaignListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List campaigns",
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := currentCalendar(cmd, app)
			if err != nil {
				return err
			}
			campaigns, err := app.Campaigns.List(cmd.Context(), cal.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(campaigns) == 0 {
				fmt.Fprintln(out, "No campaigns found.")
				return nil
			}

			fmt.Fprintln(out, formatter.FormatCampaigns(campaigns))
			return nil
		},
	}
}

func newCampaignRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename CAMPAIGN NAME",
		Short: "Rename a campaign",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := currentCalendar(cmd, app)
			if err != nil {
				return err
			}
			c, err := resolveCampaign(cmd.Context(), app, cal.ID, args[0])
			if err != nil {
				return err
			}
			renamed, err := app.Campaigns.Rename(cmd.Context(), c.ID, args[1])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Renamed campaign %s to %s\n", c.Name, renamed.Name)
			return nil
		},
	}
}

func newCampaignRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm CAMPAIGN",
		Short: "Delete a campaign; its activities are kept but unlinked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := currentCalendar(cmd, app)
			if err != nil {
				return err
			}
			c, err := resolveCampaign(cmd.Context(), app, cal.ID, args[0])
			if err != nil {
				return err
			}
			if err := app.Campaigns.Delete(cmd.Context(), c.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted campaign %s\n", c.Name)
			return nil
		},
	}
}
