package cli

import (
	"fmt"

	"github.com/alexanderramin/campaignos/internal/cli/formatter"
	"github.com/alexanderramin/campaignos/internal/prefs"
	"github.com/spf13/cobra"
)

func newPrefsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change view preferences",
	}

	cmd.AddCommand(
		newPrefsShowCmd(app),
		newPrefsSetCmd(app),
	)

	return cmd
}

func newPrefsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print every preference",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := formatter.NewTable("KEY", "VALUE")
			for _, k := range prefs.Keys {
				v, err := app.Prefs.Get(k)
				if err != nil {
					return err
				}
				t.Row(k, v)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, t.String())
			if app.PrefsPath != "" {
				fmt.Fprintln(out, formatter.Dim(app.PrefsPath))
			}
			return nil
		},
	}
}

func newPrefsSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:       "set KEY VALUE",
		Short:     "Change one preference",
		Args:      cobra.ExactArgs(2),
		ValidArgs: prefs.Keys,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Prefs.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := app.savePrefs(); err != nil {
				return err
			}

			v, _ := app.Prefs.Get(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], v)
			return nil
		},
	}
}
