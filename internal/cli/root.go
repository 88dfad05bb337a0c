package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/alexanderramin/campaignos/internal/prefs"
	"github.com/alexanderramin/campaignos/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var errCancelled = errors.New("cancelled")

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Calendars  service.CalendarService
	Swimlanes  service.SwimlaneService
	Statuses   service.StatusService
	Campaigns  service.CampaignService
	Activities service.ActivityService
	Timeline   service.TimelineService

	// Prefs are loaded at startup; commands that change them save to
	// PrefsPath.
	Prefs     prefs.Prefs
	PrefsPath string

	// PrefsUnreadable marks a prefs file that failed to load. It is moved
	// aside before the first save so the user's file is not lost.
	PrefsUnreadable bool

	// DragThreshold is the minimum drag-to-create travel in pixels.
	DragThreshold float64

	Logger *zap.Logger

	// IsInteractive reports whether stdout is a terminal. Nil means no.
	IsInteractive func() bool

	// Today is the clock used for default view windows and export ranges.
	Today func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) today() time.Time {
	if a.Today != nil {
		return domain.DateOf(a.Today())
	}
	return domain.Today()
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

// savePrefs persists the in-memory prefs when a path is configured.
func (a *App) savePrefs() error {
	if a.PrefsPath == "" {
		return nil
	}
	if a.PrefsUnreadable {
		bak, err := prefs.Backup(a.PrefsPath)
		if err != nil {
			return fmt.Errorf("not overwriting unreadable %s: %w", a.PrefsPath, err)
		}
		a.logger().Warn("moved unreadable prefs aside", zap.String("path", a.PrefsPath), zap.String("backup", bak))
		a.PrefsUnreadable = false
	}
	return a.Prefs.Save(a.PrefsPath)
}

// NewRootCmd creates the top-level "campaignos" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "campaignos",
		Short:         "Plan marketing activities on swimlane timelines",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("calendar", "c", "", "Calendar name, ID or ID prefix (defaults to the last used calendar)")

	root.AddCommand(
		newCalendarCmd(app),
		newSwimlaneCmd(app),
		newStatusCmd(app),
		newCampaignCmd(app),
		newActivityCmd(app),
		newTimelineCmd(app),
		newPrefsCmd(app),
	)

	return root
}
