package cli

import (
	"strings"

	"github.com/alexanderramin/campaignos/internal/cli/formatter"
	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// campaignHuhTheme returns a huh theme using the Gruvbox palette.
func campaignHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorAccent).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorAccent)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorOK)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorText)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorText).Background(formatter.ColorAccent).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorMuted).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorAccent)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorAccent)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorText)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorMuted)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorMuted)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorMuted)

	return t
}

// draftForm collects what a drag-to-create cannot express: the title and the
// status of the new activity.
type draftForm struct {
	Title    string
	StatusID string
}

func newDraftForm(statuses []*domain.Status, result *draftForm) *huh.Form {
	options := make([]huh.Option[string], 0, len(statuses))
	for _, st := range statuses {
		options = append(options, huh.NewOption(formatter.Swatch(st.Color, st.Name), st.ID))
	}
	if result.StatusID == "" && len(statuses) > 0 {
		result.StatusID = statuses[0].ID
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("New activity").
			Value(&result.Title).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return domain.Invalid("title", "title is required")
				}
				return nil
			}),
	}
	if len(options) > 0 {
		fields = append(fields, huh.NewSelect[string]().
			Title("Status").
			Options(options...).
			Value(&result.StatusID))
	}

	return huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(campaignHuhTheme()).
		WithShowHelp(false)
}

// confirmDelete asks before removing something on a terminal.
func confirmDelete(what string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete " + what + "?").
				Affirmative("Delete").
				Negative("Keep").
				Value(&ok),
		),
	).WithTheme(campaignHuhTheme()).WithShowHelp(false).Run()
	return ok, err
}

// confirmRemoval gates destructive commands: --yes skips the prompt, a
// terminal asks, anything else is refused.
func confirmRemoval(app *App, yes bool, what string) error {
	if yes {
		return nil
	}
	if !app.interactive() {
		return domain.Invalid("yes", "refusing to delete %s without --yes", what)
	}
	ok, err := confirmDelete(what)
	if err != nil {
		return err
	}
	if !ok {
		return errCancelled
	}
	return nil
}
