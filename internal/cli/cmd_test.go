package cli

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/alexanderramin/campaignos/internal/prefs"
	"github.com/alexanderramin/campaignos/internal/repository"
	"github.com/alexanderramin/campaignos/internal/service"
	"github.com/alexanderramin/campaignos/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	calRepo := repository.NewSQLiteCalendarRepo(database)
	statusRepo := repository.NewSQLiteStatusRepo(database)
	laneRepo := repository.NewSQLiteSwimlaneRepo(database)
	campaignRepo := repository.NewSQLiteCampaignRepo(database)
	activityRepo := repository.NewSQLiteActivityRepo(database)

	calendars := service.NewCalendarService(calRepo, statusRepo, laneRepo, campaignRepo, activityRepo, uow)
	return &App{
		Calendars:  calendars,
		Swimlanes:  service.NewSwimlaneService(laneRepo, uow),
		Statuses:   service.NewStatusService(statusRepo, activityRepo),
		Campaigns:  service.NewCampaignService(campaignRepo),
		Activities: service.NewActivityService(activityRepo, laneRepo, statusRepo, campaignRepo, uow),
		Timeline:   service.NewTimelineService(calendars),
		Prefs:      prefs.Default(),
		PrefsPath:  filepath.Join(t.TempDir(), "prefs.yaml"),
		Today:      func() time.Time { return testToday },
	}
}

// executeCmd runs the root command with args and returns combined output.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return stripANSI(buf.String()), err
}

func mustExec(t *testing.T, app *App, args ...string) string {
	t.Helper()
	out, err := executeCmd(t, app, args...)
	require.NoError(t, err, out)
	return out
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// seedCalendar creates the "Launch" calendar with Social and Events swimlanes
// and one activity, Teaser, on Social from Jan 1 to Jan 10 2025.
func seedCalendar(t *testing.T, app *App) *domain.Calendar {
	t.Helper()
	mustExec(t, app, "calendar", "add", "Launch")
	mustExec(t, app, "swimlane", "add", "Social")
	mustExec(t, app, "swimlane", "add", "Events")
	mustExec(t, app, "activity", "add", "Teaser", "--swimlane", "social", "--start", "2025-01-01", "--end", "2025-01-10")

	cal, err := app.Calendars.Resolve(context.Background(), "Launch")
	require.NoError(t, err)
	return cal
}

func activityByTitle(t *testing.T, app *App, calendarID, title string) *domain.Activity {
	t.Helper()
	list, err := app.Activities.List(context.Background(), calendarID, service.ActivityFilter{})
	require.NoError(t, err)
	for _, a := range list {
		if a.Title == title {
			return a
		}
	}
	t.Fatalf("activity %q not found", title)
	return nil
}

// --- Calendars ---

func TestCalendarAdd_BecomesDefault(t *testing.T) {
	app := testApp(t)

	out := mustExec(t, app, "calendar", "add", "Launch")
	assert.Contains(t, out, "Created calendar Launch")
	require.NotEmpty(t, app.Prefs.LastCalendar)

	saved, err := prefs.Load(app.PrefsPath)
	require.NoError(t, err)
	assert.Equal(t, app.Prefs.LastCalendar, saved.LastCalendar)

	mustExec(t, app, "calendar", "add", "Second")
	first, err := app.Calendars.Resolve(context.Background(), "launch")
	require.NoError(t, err)
	assert.Equal(t, first.ID, app.Prefs.LastCalendar, "a second calendar does not steal the default")

	mustExec(t, app, "calendar", "use", "Second")
	assert.NotEqual(t, first.ID, app.Prefs.LastCalendar)
}

func TestCalendarListAndShow(t *testing.T) {
	app := testApp(t)
	seedCalendar(t, app)

	out := mustExec(t, app, "calendar", "list")
	assert.Contains(t, out, "Launch")

	out = mustExec(t, app, "calendar", "show")
	assert.Contains(t, out, "Social")
	assert.Contains(t, out, "Events")
	assert.Contains(t, out, "Considering")
	assert.Contains(t, out, "Committed")
}

func TestCalendarRename(t *testing.T) {
	app := testApp(t)
	seedCalendar(t, app)

	out := mustExec(t, app, "calendar", "rename", "launch", "Relaunch")
	assert.Contains(t, out, "Renamed calendar Launch to Relaunch")

	_, err := app.Calendars.Resolve(context.Background(), "Relaunch")
	assert.NoError(t, err)
}

func TestCalendarRemove_RequiresYesWhenNotInteractive(t *testing.T) {
	app := testApp(t)
	cal := seedCalendar(t, app)

	_, err := executeCmd(t, app, "calendar", "rm", "Launch")
	require.ErrorIs(t, err, domain.ErrInvalid)

	out := mustExec(t, app, "calendar", "rm", "Launch", "--yes")
	assert.Contains(t, out, "Deleted calendar Launch")
	assert.Empty(t, app.Prefs.LastCalendar)

	_, err = app.Calendars.Get(context.Background(), cal.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCommands_NeedACalendar(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "swimlane", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no calendar selected")
}

func TestCalendarFlag_OverridesDefault(t *testing.T) {
	app := testApp(t)
	seedCalendar(t, app)
	mustExec(t, app, "calendar", "add", "Other")

	out := mustExec(t, app, "swimlane", "list", "--calendar", "Other")
	assert.Contains(t, out, "No swimlanes yet")

	out = mustExec(t, app, "swimlane", "list")
	assert.Contains(t, out, "Social")
}

func TestCalendarMonth(t *testing.T) {
	app := testApp(t)
	seedCalendar(t, app)

	out := mustExec(t, app, "calendar", "month", "--month", "2025-01")
	assert.Contains(t, out, "January 2025")
	assert.Contains(t, out, "Teaser")

	out = mustExec(t, app, "calendar", "month", "--month", "2025-02")
	assert.NotContains(t, out, "Teaser")

	_, err := executeCmd(t, app, "calendar", "month", "--month", "Jan")
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

// --- Swimlanes, statuses, campaigns ---

func TestSwimlaneMove(t *testing.T) {
	app := testApp(t)
	cal := seedCalendar(t, app)
	mustExec(t, app, "swimlane", "add", "Paid")

	mustExec(t, app, "swimlane", "move", "Paid", "1")

	lanes, err := app.Swimlanes.List(context.Background(), cal.ID)
	require.NoError(t, err)
	var names []string
	for _, l := range lanes {
		names = append(names, l.Name)
	}
	assert.Equal(t, []string{"Paid", "Social", "Events"}, names)

	_, err = executeCmd(t, app, "swimlane", "move", "Paid", "0")
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestSwimlaneRenameAndRemove(t *testing.T) {
	app := testApp(t)
	cal := seedCalendar(t, app)

	mustExec(t, app, "swimlane", "rename", "Events", "Live events")
	out := mustExec(t, app, "swimlane", "rm", "Social", "-y")
	assert.Contains(t, out, "Deleted swimlane Social")

	lanes, err := app.Swimlanes.List(context.Background(), cal.ID)
	require.NoError(t, err)
	require.Len(t, lanes, 1)
	assert.Equal(t, "Live events", lanes[0].Name)

	list, err := app.Activities.List(context.Background(), cal.ID, service.ActivityFilter{})
	require.NoError(t, err)
	assert.Empty(t, list, "activities go with their swimlane")
}

func TestStatusLifecycle(t *testing.T) {
	app := testApp(t)
	seedCalendar(t, app)

	out := mustExec(t, app, "status", "add", "Live", "--color", "#FF0000")
	assert.Contains(t, out, "Added status")

	mustExec(t, app, "status", "update", "Live", "--name", "On air")
	out = mustExec(t, app, "status", "list")
	assert.Contains(t, out, "On air")

	_, err := executeCmd(t, app, "status", "rm", "Considering")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is used by 1 activities")

	mustExec(t, app, "status", "rm", "On air")
	out = mustExec(t, app, "status", "list")
	assert.NotContains(t, out, "On air")

	_, err = executeCmd(t, app, "status", "add", "Bad", "--color", "red")
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestCampaignLifecycle(t *testing.T) {
	app := testApp(t)
	cal := seedCalendar(t, app)

	mustExec(t, app, "campaign", "add", "Spring")
	mustExec(t, app, "activity", "update", "Teaser", "--campaign", "spring")
	assert.NotNil(t, activityByTitle(t, app, cal.ID, "Teaser").CampaignID)

	mustExec(t, app, "campaign", "rename", "Spring", "Spring 25")
	out := mustExec(t, app, "campaign", "list")
	assert.Contains(t, out, "Spring 25")

	mustExec(t, app, "campaign", "rm", "Spring 25")
	assert.Nil(t, activityByTitle(t, app, cal.ID, "Teaser").CampaignID, "activities are unlinked, not deleted")
}

// --- Activities ---

func TestActivityAdd_Defaults(t *testing.T) {
	app := testApp(t)
	cal := seedCalendar(t, app)

	out := mustExec(t, app, "activity", "add", "Webinar", "--swimlane", "Events", "--start", "2025-01-20")
	assert.Contains(t, out, "Created activity Webinar")

	a := activityByTitle(t, app, cal.ID, "Webinar")
	assert.True(t, a.StartDate.Equal(testutil.Date("2025-01-20")))
	assert.True(t, a.EndDate.Equal(a.StartDate), "end defaults to the start date")
	assert.Equal(t, domain.Currency("USD"), a.Currency)

	statuses, err := app.Statuses.List(context.Background(), cal.ID)
	require.NoError(t, err)
	assert.Equal(t, statuses[0].ID, a.StatusID)
}

func TestActivityAdd_Attributes(t *testing.T) {
	app := testApp(t)
	cal := seedCalendar(t, app)
	mustExec(t, app, "campaign", "add", "Spring")

	mustExec(t, app, "activity", "add", "Billboard",
		"--swimlane", "Events", "--start", "2025-02-01", "--end", "2025-02-14",
		"--status", "committed", "--campaign", "Spring",
		"--cost", "1,250.50", "--currency", "gbp", "--region", "emea",
		"--tags", "ooh, brand")

	a := activityByTitle(t, app, cal.ID, "Billboard")
	assert.Equal(t, int64(125050), a.CostCents)
	assert.Equal(t, domain.Currency("GBP"), a.Currency)
	assert.Equal(t, domain.Region("EMEA"), a.Region)
	assert.Equal(t, "ooh, brand", a.Tags)
	require.NotNil(t, a.CampaignID)

	st, err := resolveStatus(context.Background(), app, cal.ID, "Committed")
	require.NoError(t, err)
	assert.Equal(t, st.ID, a.StatusID)
}

func TestActivityAdd_Rejects(t *testing.T) {
	app := testApp(t)
	seedCalendar(t, app)

	tests := []struct {
		name string
		args []string
	}{
		{"end before start", []string{"--start", "2025-01-10", "--end", "2025-01-01"}},
		{"bad date", []string{"--start", "01/10/2025"}},
		{"bad cost", []string{"--start", "2025-01-10", "--cost", "lots"}},
		{"bad currency", []string{"--start", "2025-01-10", "--currency", "JPY"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"activity", "add", "Nope", "--swimlane", "Social"}, tc.args...)
			_, err := executeCmd(t, app, args...)
			assert.Error(t, err)
		})
	}

	_, err := executeCmd(t, app, "activity", "add", "Nope", "--swimlane", "Radio", "--start", "2025-01-10")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestActivityList_FiltersAndSorts(t *testing.T) {
	app := testApp(t)
	seedCalendar(t, app)
	mustExec(t, app, "activity", "add", "Webinar", "--swimlane", "Events", "--start", "2025-03-01", "--cost", "500")

	out := mustExec(t, app, "activity", "list", "--search", "tease")
	assert.Contains(t, out, "Teaser")
	assert.NotContains(t, out, "Webinar")

	out = mustExec(t, app, "activity", "list", "--swimlane", "Events")
	assert.Contains(t, out, "Webinar")
	assert.NotContains(t, out, "Teaser")

	out = mustExec(t, app, "activity", "list", "--sort", "start", "--desc")
	assert.Less(t, strings.Index(out, "Webinar"), strings.Index(out, "Teaser"))

	out = mustExec(t, app, "activity", "list", "--from", "2025-06-01")
	assert.Contains(t, out, "No activities found.")

	_, err := executeCmd(t, app, "activity", "list", "--sort", "color")
	assert.ErrorContains(t, err, "unknown sort field")
}

func TestActivityShow(t *testing.T) {
	app := testApp(t)
	seedCalendar(t, app)
	mustExec(t, app, "activity", "update", "Teaser", "--description", "Short *video* teaser")

	out := mustExec(t, app, "activity", "show", "Teaser")
	assert.Contains(t, out, "Teaser")
	assert.Contains(t, out, "Jan 10, 2025 (10 days)")
	assert.Contains(t, out, "video")
}

func TestActivityUpdate(t *testing.T) {
	app := testApp(t)
	cal := seedCalendar(t, app)

	mustExec(t, app, "activity", "update", "Teaser", "--title", "Teaser v2", "--cost", "99", "--color", "#112233")
	a := activityByTitle(t, app, cal.ID, "Teaser v2")
	assert.Equal(t, int64(9900), a.CostCents)
	assert.Equal(t, "#112233", a.Color)

	mustExec(t, app, "activity", "update", "Teaser v2", "--color", "")
	assert.Empty(t, activityByTitle(t, app, cal.ID, "Teaser v2").Color)

	_, err := executeCmd(t, app, "activity", "update", "Teaser v2")
	assert.ErrorIs(t, err, domain.ErrInvalid, "an update with no flags changes nothing")
}

func TestActivityReschedule(t *testing.T) {
	app := testApp(t)
	cal := seedCalendar(t, app)

	mustExec(t, app, "activity", "reschedule", "Teaser", "2025-02-01")
	a := activityByTitle(t, app, cal.ID, "Teaser")
	assert.True(t, a.StartDate.Equal(testutil.Date("2025-02-01")))
	assert.True(t, a.EndDate.Equal(testutil.Date("2025-02-10")), "duration is kept")

	mustExec(t, app, "activity", "reschedule", "Teaser", "2025-02-01", "2025-02-03")
	a = activityByTitle(t, app, cal.ID, "Teaser")
	assert.True(t, a.EndDate.Equal(testutil.Date("2025-02-03")))

	_, err := executeCmd(t, app, "activity", "reschedule", "Teaser", "2025-02-05", "2025-02-01")
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestActivityMoveCloneRemove(t *testing.T) {
	app := testApp(t)
	cal := seedCalendar(t, app)

	mustExec(t, app, "activity", "move", "Teaser", "Events")
	events, err := resolveSwimlane(context.Background(), app, cal.ID, "Events")
	require.NoError(t, err)
	assert.Equal(t, events.ID, activityByTitle(t, app, cal.ID, "Teaser").SwimlaneID)

	out := mustExec(t, app, "activity", "clone", "Teaser")
	assert.Contains(t, out, "Teaser (copy)")
	c := activityByTitle(t, app, cal.ID, "Teaser (copy)")
	assert.Equal(t, events.ID, c.SwimlaneID)

	mustExec(t, app, "activity", "rm", c.ID[:8], "--yes")
	list, err := app.Activities.List(context.Background(), cal.ID, service.ActivityFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestActivityExport_CSV(t *testing.T) {
	app := testApp(t)
	seedCalendar(t, app)
	mustExec(t, app, "activity", "add", "Next year", "--swimlane", "Events", "--start", "2026-03-01")

	out := mustExec(t, app, "activity", "export", "--range", "year")
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "title", records[0][0])
	assert.Equal(t, []string{"Teaser", "2025-01-01", "2025-01-10", "Considering", "Social", "", "0.00", "USD", "US", ""}, records[1])

	path := filepath.Join(t.TempDir(), "all.csv")
	mustExec(t, app, "activity", "export", "--range", "all", "-o", path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Next year")

	_, err = executeCmd(t, app, "activity", "export", "--range", "decade")
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

// --- Timeline ---

func TestTimelineShow(t *testing.T) {
	app := testApp(t)
	seedCalendar(t, app)

	// 20 label columns plus 30 chart columns: one column per day.
	out := mustExec(t, app, "timeline", "show", "--zoom", "month", "--start", "2025-01-01", "--width", "50")
	assert.Contains(t, out, "Launch")
	assert.Contains(t, out, "month · 2025-01-01 → 2025-01-30")
	assert.Contains(t, out, "[Teaser  ]")

	bare := mustExec(t, app, "timeline", "--zoom", "month", "--start", "2025-01-01")
	assert.Contains(t, bare, "Social")
}

func TestTimelineLayout_JSON(t *testing.T) {
	app := testApp(t)
	seedCalendar(t, app)
	mustExec(t, app, "activity", "add", "Press", "--swimlane", "Social", "--start", "2025-01-05", "--end", "2025-01-15")

	out := mustExec(t, app, "timeline", "layout", "--zoom", "month", "--start", "2025-01-01", "--row-height", "compact")
	var got layoutJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, 30.0, got.DayWidth)
	assert.Equal(t, 40, got.RowHeight)
	require.Len(t, got.Swimlanes, 2)

	social := got.Swimlanes[0]
	assert.Equal(t, "Social", social.Name)
	assert.Equal(t, 2, social.LaneCount)
	assert.Equal(t, 80, social.Height)
	require.Len(t, social.Bars, 2)
	for _, b := range social.Bars {
		switch b.Title {
		case "Teaser":
			assert.Equal(t, 0, b.Lane)
			assert.Equal(t, 0.0, b.Left)
			assert.Equal(t, 300.0, b.Width)
		case "Press":
			assert.Equal(t, 1, b.Lane)
			assert.Equal(t, 120.0, b.Left)
		}
	}

	events := got.Swimlanes[1]
	assert.Equal(t, 80, events.Top)
	assert.Equal(t, 40, events.Height, "an empty swimlane keeps one row")
	assert.Equal(t, 120, got.Height)
}

func TestTimelineExport_SVG(t *testing.T) {
	app := testApp(t)
	seedCalendar(t, app)

	path := filepath.Join(t.TempDir(), "plan.svg")
	mustExec(t, app, "timeline", "export", "--zoom", "month", "--start", "2025-01-01", "-o", path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
	assert.Contains(t, string(data), "Teaser")
}

func TestTimeline_RejectsBadZoom(t *testing.T) {
	app := testApp(t)
	seedCalendar(t, app)

	_, err := executeCmd(t, app, "timeline", "show", "--zoom", "decade")
	assert.Error(t, err)
}

// --- Prefs ---

func TestPrefsSetAndShow(t *testing.T) {
	app := testApp(t)

	out := mustExec(t, app, "prefs", "set", "zoom", "month")
	assert.Contains(t, out, "zoom = month")

	saved, err := prefs.Load(app.PrefsPath)
	require.NoError(t, err)
	assert.Equal(t, "month", string(saved.Zoom))

	out = mustExec(t, app, "prefs", "show")
	assert.Contains(t, out, "row_height")
	assert.Contains(t, out, "month")

	_, err = executeCmd(t, app, "prefs", "set", "zoom", "decade")
	assert.Error(t, err)
	_, err = executeCmd(t, app, "prefs", "set", "colour", "red")
	assert.Error(t, err)
}

func TestPrefs_UnreadableFileIsBackedUpBeforeSave(t *testing.T) {
	app := testApp(t)
	bad := []byte("zoom: [month\n")
	require.NoError(t, os.WriteFile(app.PrefsPath, bad, 0o644))
	_, err := prefs.Load(app.PrefsPath)
	require.Error(t, err)
	app.PrefsUnreadable = true

	mustExec(t, app, "calendar", "add", "Launch")

	kept, err := os.ReadFile(app.PrefsPath + ".bak")
	require.NoError(t, err)
	assert.Equal(t, bad, kept, "the unreadable file survives")
	assert.False(t, app.PrefsUnreadable)

	saved, err := prefs.Load(app.PrefsPath)
	require.NoError(t, err)
	assert.Equal(t, app.Prefs.LastCalendar, saved.LastCalendar)
}

// --- Resolution ---

func TestResolveRef(t *testing.T) {
	lanes := []*domain.Swimlane{
		{ID: "abc111", Name: "Social"},
		{ID: "abc222", Name: "Events"},
		{ID: "def333", Name: "abc"},
	}
	id := func(s *domain.Swimlane) string { return s.ID }
	name := func(s *domain.Swimlane) string { return s.Name }

	got, err := resolveRef(lanes, "social", "swimlane", id, name)
	require.NoError(t, err)
	assert.Equal(t, "abc111", got.ID)

	got, err = resolveRef(lanes, "abc", "swimlane", id, name)
	require.NoError(t, err)
	assert.Equal(t, "def333", got.ID, "a name match wins over an ID prefix")

	got, err = resolveRef(lanes, "abc2", "swimlane", id, name)
	require.NoError(t, err)
	assert.Equal(t, "abc222", got.ID)

	_, err = resolveRef(lanes, "ab", "swimlane", id, name)
	assert.ErrorIs(t, err, domain.ErrInvalid)

	_, err = resolveRef(lanes, "zzz", "swimlane", id, name)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = resolveRef(lanes, " ", "swimlane", id, name)
	assert.ErrorIs(t, err, domain.ErrInvalid)
}
