package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/campaignos/internal/cli/formatter"
	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/alexanderramin/campaignos/internal/interaction"
	"github.com/alexanderramin/campaignos/internal/layout"
	"github.com/alexanderramin/campaignos/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"go.uber.org/zap"
)

// chartTop is the screen line of the first swimlane: the summary and the
// month ruler sit above it.
const chartTop = 2

var zoomCycle = map[layout.Zoom]layout.Zoom{
	layout.ZoomYear:    layout.ZoomQuarter,
	layout.ZoomQuarter: layout.ZoomMonth,
	layout.ZoomMonth:   layout.ZoomYear,
}

type timelineKeyMap struct {
	Quit       key.Binding
	Prev       key.Binding
	Next       key.Binding
	Today      key.Binding
	Zoom       key.Binding
	SelectNext key.Binding
	SelectPrev key.Binding
	NudgeLeft  key.Binding
	NudgeRight key.Binding
	New        key.Binding
	Clone      key.Binding
	Details    key.Binding
	Cancel     key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
}

func defaultTimelineKeys() timelineKeyMap {
	return timelineKeyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Prev:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "page")),
		Next:       key.NewBinding(key.WithKeys("right", "l")),
		Today:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Zoom:       key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "zoom")),
		SelectNext: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "select")),
		SelectPrev: key.NewBinding(key.WithKeys("shift+tab")),
		NudgeLeft:  key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("H/L", "nudge")),
		NudgeRight: key.NewBinding(key.WithKeys("shift+right", "L")),
		New:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Clone:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clone")),
		Details:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		ScrollUp:   key.NewBinding(key.WithKeys("up", "k", "pgup")),
		ScrollDown: key.NewBinding(key.WithKeys("down", "j", "pgdown")),
	}
}

func (k timelineKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Zoom, k.Today, k.SelectNext, k.NudgeLeft, k.New, k.Clone, k.Details, k.Cancel, k.Quit}
}

// timelineSnapshotMsg carries a freshly loaded calendar.
type timelineSnapshotMsg struct {
	snap *service.Snapshot
	err  error
}

// commitResultMsg settles a save started from the timeline. snap is the
// reloaded calendar when the save succeeded; reloadErr reports a reload that
// failed after a successful save.
type commitResultMsg struct {
	verb      string
	activity  *domain.Activity
	snap      *service.Snapshot
	err       error
	reloadErr error
}

// draftSubmittedMsg is sent when the create form completes.
type draftSubmittedMsg struct {
	title    string
	statusID string
}

// timelineModel is the interactive timeline. Pointer drags run through an
// interaction.Session; its override is laid out on every frame and the
// committed snapshot is only replaced once a save settles.
type timelineModel struct {
	ctx        context.Context
	app        *App
	calendarID string
	filter     service.ActivityFilter
	keys       timelineKeyMap

	zoom    layout.Zoom
	start   time.Time
	width   int
	height  int
	yOffset int

	snap     *service.Snapshot
	tl       *service.Timeline
	session  *interaction.Session
	selected string
	message  string
	loadErr  error

	form     *huh.Form
	draft    *draftForm
	creating *interaction.CreateRequest
}

func newTimelineModel(ctx context.Context, app *App, calendarID string, zoom layout.Zoom, start time.Time, filter service.ActivityFilter) timelineModel {
	m := timelineModel{
		ctx:        ctx,
		app:        app,
		calendarID: calendarID,
		filter:     filter,
		keys:       defaultTimelineKeys(),
		zoom:       zoom,
		start:      start,
		width:      100,
		height:     30,
	}
	m.session = interaction.NewSession(m.scale(), m.threshold())
	return m
}

func (m timelineModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m timelineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.rebuild()
		return m, nil

	case timelineSnapshotMsg:
		if msg.err != nil {
			m.loadErr = msg.err
			return m, nil
		}
		m.snap = msg.snap
		m.rebuild()
		return m, nil

	case commitResultMsg:
		cmd := m.settle(msg)
		return m, cmd

	case draftSubmittedMsg:
		if m.creating == nil {
			return m, nil
		}
		req := *m.creating
		m.form, m.draft, m.creating = nil, nil, nil
		return m, m.createCmd(req, msg.title, msg.statusID)
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		cmd := m.handleMouse(msg)
		return m, cmd
	}
	return m, nil
}

func (m timelineModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	idle := m.session.State() == interaction.StateIdle && !m.session.Pending()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		if m.session.State() != interaction.StateIdle {
			m.session.Cancel()
			m.message = "Cancelled."
		} else {
			m.selected = ""
		}

	case key.Matches(msg, m.keys.Prev) && idle:
		m.start = m.scale().Shifted(-1).Start
	case key.Matches(msg, m.keys.Next) && idle:
		m.start = m.scale().Shifted(1).Start
	case key.Matches(msg, m.keys.Today) && idle:
		m.start = domain.StartOfMonth(m.app.today())
	case key.Matches(msg, m.keys.Zoom) && idle:
		m.zoom = zoomCycle[m.zoom]

	case key.Matches(msg, m.keys.SelectNext):
		m.selected = m.stepSelection(1)
	case key.Matches(msg, m.keys.SelectPrev):
		m.selected = m.stepSelection(-1)

	case key.Matches(msg, m.keys.NudgeLeft) && idle:
		cmd := m.nudge(-1)
		return m, cmd
	case key.Matches(msg, m.keys.NudgeRight) && idle:
		cmd := m.nudge(1)
		return m, cmd

	case key.Matches(msg, m.keys.New) && idle:
		cmd := m.proposeNew()
		return m, cmd

	case key.Matches(msg, m.keys.Clone) && idle:
		if a := m.selectedActivity(); a != nil {
			return m, m.cloneCmd(a.ID)
		}

	case key.Matches(msg, m.keys.Details):
		if a := m.selectedActivity(); a != nil {
			m.message = fmt.Sprintf("%s · %s · %s", a.Title,
				formatter.DateRange(a.StartDate, a.EndDate), m.tl.Lookups.StatusName(a.StatusID))
		}

	case key.Matches(msg, m.keys.ScrollUp):
		m.yOffset = max(m.yOffset-1, 0)
	case key.Matches(msg, m.keys.ScrollDown):
		m.yOffset = min(m.yOffset+1, max(m.chartLines()-m.visibleLines(), 0))
	}

	m.rebuild()
	return m, nil
}

// ── Pointer ──────────────────────────────────────────────────────────────────

func (m *timelineModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.tl == nil {
		return nil
	}
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.yOffset = max(m.yOffset-1, 0)
	case msg.Button == tea.MouseButtonWheelDown:
		m.yOffset = min(m.yOffset+1, max(m.chartLines()-m.visibleLines(), 0))
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.pointerDown(msg)
	case msg.Action == tea.MouseActionMotion:
		m.pointerMove(msg)
	case msg.Action == tea.MouseActionRelease:
		return m.pointerUp(msg)
	}
	m.rebuild()
	return nil
}

func (m *timelineModel) pointerDown(msg tea.MouseMsg) {
	row, lane, col, ok := m.hit(msg.X, msg.Y)
	if !ok {
		return
	}
	x := float64(col) + 0.5

	var err error
	if bar, found := m.barAt(row, lane, col); found {
		a := m.tl.Activity(bar.ActivityID)
		if a == nil {
			return
		}
		m.selected = a.ID
		if msg.Alt {
			err = m.session.BeginClone(a, row.Swimlane.ID, x)
		} else {
			first, last := formatter.BarCells(bar)
			err = m.session.Begin(interaction.DragStart{
				Target:     interaction.TargetActivity,
				Edge:       interaction.GrabCell(first, last, col),
				SwimlaneID: row.Swimlane.ID,
				Activity:   subjectOf(a),
				X:          x,
			})
		}
	} else {
		err = m.session.Begin(interaction.DragStart{
			Target:     interaction.TargetEmpty,
			SwimlaneID: row.Swimlane.ID,
			X:          x,
		})
	}
	if err != nil {
		m.message = err.Error()
	}
}

func (m *timelineModel) pointerMove(msg tea.MouseMsg) {
	if m.session.State() == interaction.StateIdle {
		return
	}
	swimlaneID := ""
	if row, _, _, ok := m.hit(msg.X, msg.Y); ok {
		swimlaneID = row.Swimlane.ID
	}
	x := float64(msg.X-m.labelWidth()) + 0.5
	if err := m.session.Move(x, swimlaneID); err != nil {
		m.message = err.Error()
	}
}

func (m *timelineModel) pointerUp(msg tea.MouseMsg) tea.Cmd {
	if m.session.State() == interaction.StateIdle {
		return nil
	}
	m.pointerMove(msg)
	return m.finish()
}

// finish ends the active drag and starts whatever its outcome asks for.
func (m *timelineModel) finish() tea.Cmd {
	out, err := m.session.End()
	if err != nil {
		m.message = err.Error()
		return nil
	}
	defer m.rebuild()

	switch out.Kind {
	case interaction.OutcomeUpdate:
		return m.commitCmd(out.Update)
	case interaction.OutcomeCreate:
		return m.openDraftForm(out.Create)
	}
	return nil
}

// ── Keyboard edits ───────────────────────────────────────────────────────────

// nudge shifts the selected activity by days through the same session a
// pointer drag uses.
func (m *timelineModel) nudge(days int) tea.Cmd {
	a := m.selectedActivity()
	if a == nil {
		return nil
	}
	subj := subjectOf(a)
	err := m.session.Begin(interaction.DragStart{
		Target:     interaction.TargetActivity,
		SwimlaneID: a.SwimlaneID,
		Activity:   subj,
	})
	if err == nil {
		err = m.session.Propose(subj.Interval.Shift(days), "")
	}
	if err != nil {
		m.session.Cancel()
		m.message = err.Error()
		return nil
	}
	return m.finish()
}

// proposeNew drafts a one-week activity in the selected activity's swimlane,
// or the first swimlane, starting today when today is on screen.
func (m *timelineModel) proposeNew() tea.Cmd {
	if m.snap == nil || len(m.snap.Swimlanes) == 0 {
		m.message = "Add a swimlane first."
		return nil
	}
	swimlaneID := m.snap.Swimlanes[0].ID
	if a := m.selectedActivity(); a != nil {
		swimlaneID = a.SwimlaneID
	}
	scale := m.session.Scale()
	day := scale.Start
	if today := m.app.today(); scale.Window().Contains(today) {
		day = today
	}

	err := m.session.Begin(interaction.DragStart{
		Target:     interaction.TargetEmpty,
		SwimlaneID: swimlaneID,
		X:          scale.X(day),
	})
	if err == nil {
		err = m.session.Propose(layout.Interval{Start: day, End: domain.AddDays(day, 6)}, swimlaneID)
	}
	if err != nil {
		m.session.Cancel()
		m.message = err.Error()
		return nil
	}
	return m.finish()
}

// ── Create form ──────────────────────────────────────────────────────────────

func (m *timelineModel) openDraftForm(req interaction.CreateRequest) tea.Cmd {
	m.creating = &req
	m.draft = &draftForm{}
	if req.Defaults != nil {
		m.draft.Title = req.Defaults.Title
		m.draft.StatusID = req.Defaults.StatusID
	}
	m.form = newDraftForm(m.snap.Statuses, m.draft)
	return m.form.Init()
}

func (m timelineModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.cancelDraft()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		title, statusID := m.draft.Title, m.draft.StatusID
		return m, tea.Batch(cmd, func() tea.Msg {
			return draftSubmittedMsg{title: title, statusID: statusID}
		})
	case huh.StateAborted:
		m.cancelDraft()
		return m, nil
	}
	return m, cmd
}

// cancelDraft drops the pending draft bar without saving.
func (m *timelineModel) cancelDraft() {
	_ = m.session.Resolve(nil)
	m.form, m.draft, m.creating = nil, nil, nil
	m.message = "Cancelled."
	m.rebuild()
}

// ── Persistence ──────────────────────────────────────────────────────────────

func (m timelineModel) loadCmd() tea.Cmd {
	ctx, calendars, id := m.ctx, m.app.Calendars, m.calendarID
	return func() tea.Msg {
		snap, err := calendars.Snapshot(ctx, id)
		return timelineSnapshotMsg{snap: snap, err: err}
	}
}

// saveCmd runs save and reloads the calendar when it succeeds.
func (m timelineModel) saveCmd(verb string, save func(ctx context.Context) (*domain.Activity, error)) tea.Cmd {
	ctx, calendars, id := m.ctx, m.app.Calendars, m.calendarID
	return func() tea.Msg {
		a, err := save(ctx)
		if err != nil {
			return commitResultMsg{verb: verb, err: err}
		}
		snap, err := calendars.Snapshot(ctx, id)
		if err != nil {
			return commitResultMsg{verb: verb, activity: a, reloadErr: err}
		}
		return commitResultMsg{verb: verb, activity: a, snap: snap}
	}
}

func (m timelineModel) commitCmd(req interaction.UpdateRequest) tea.Cmd {
	activities := m.app.Activities
	return m.saveCmd("Saved", func(ctx context.Context) (*domain.Activity, error) {
		return activities.Commit(ctx, req)
	})
}

func (m timelineModel) createCmd(req interaction.CreateRequest, title, statusID string) tea.Cmd {
	activities := m.app.Activities
	var extra []domain.ActivityChange
	if statusID != "" {
		extra = append(extra, domain.SetStatus{StatusID: statusID})
	}
	return m.saveCmd("Created", func(ctx context.Context) (*domain.Activity, error) {
		return activities.CreateFromDraft(ctx, req, title, extra...)
	})
}

func (m timelineModel) cloneCmd(id string) tea.Cmd {
	activities := m.app.Activities
	return m.saveCmd("Created", func(ctx context.Context) (*domain.Activity, error) {
		return activities.Clone(ctx, id)
	})
}

// settle resolves the pending override with the save's result. A failed save
// leaves the committed snapshot in place, so the bar snaps back. A save whose
// reload failed is patched into the current snapshot, so the bar stays put.
func (m *timelineModel) settle(msg commitResultMsg) tea.Cmd {
	defer m.rebuild()
	if err := m.session.Resolve(msg.err); err != nil {
		m.app.logger().Warn("timeline save failed", zap.String("calendar_id", m.calendarID), zap.Error(err))
		m.message = "Error: " + err.Error()
		return nil
	}

	a := msg.activity
	switch {
	case msg.snap != nil:
		m.snap = msg.snap
	case m.snap != nil && a != nil:
		m.snap = m.snap.WithActivity(a)
	}
	if a == nil {
		return nil
	}
	m.selected = a.ID
	m.message = fmt.Sprintf("%s %s (%s)", msg.verb, a.Title, formatter.DateRange(a.StartDate, a.EndDate))
	if msg.reloadErr != nil {
		m.app.logger().Warn("timeline reload failed", zap.String("calendar_id", m.calendarID), zap.Error(msg.reloadErr))
		m.message += " but reloading failed: " + msg.reloadErr.Error()
	}
	return nil
}

// ── Geometry ─────────────────────────────────────────────────────────────────

func (m timelineModel) labelWidth() int {
	return max(m.app.Prefs.LabelColumns(), 8)
}

func (m timelineModel) chartColumns() int {
	return max(m.width-m.labelWidth(), 10)
}

func (m timelineModel) scale() layout.Scale {
	return layout.FitScale(m.zoom, m.start, float64(m.chartColumns()))
}

// threshold converts the pixel drag threshold to columns, assuming a column
// is about eight pixels wide.
func (m timelineModel) threshold() float64 {
	return m.app.DragThreshold / 8
}

// visibleLines is how many chart lines fit under the header and above the
// message and help lines.
func (m timelineModel) visibleLines() int {
	return max(m.height-chartTop-3, 1)
}

func (m timelineModel) chartLines() int {
	if m.tl == nil {
		return 0
	}
	return m.tl.Height + len(m.tl.Rows)
}

// rebuild lays the timeline out again with the session's override.
func (m *timelineModel) rebuild() {
	scale := m.scale()
	if err := m.session.SetScale(scale); err != nil {
		scale = m.session.Scale()
	}
	if m.snap == nil {
		return
	}
	m.tl = service.BuildTimeline(m.snap, scale, 1, m.filter, m.session.Override())
	if m.selected != "" && m.tl.Activity(m.selected) == nil {
		m.selected = ""
	}
}

// hit maps a screen cell to a swimlane row, the lane within it and the chart
// column. Separator lines and the label column are misses.
func (m timelineModel) hit(x, y int) (service.TimelineRow, int, int, bool) {
	if m.tl == nil || y < chartTop || y >= chartTop+m.visibleLines() {
		return service.TimelineRow{}, 0, 0, false
	}
	col := x - m.labelWidth()
	if col < 0 || col >= m.chartColumns() {
		return service.TimelineRow{}, 0, 0, false
	}
	line := y - chartTop + m.yOffset
	for i, row := range m.tl.Rows {
		top := row.Top + i
		if line >= top && line < top+row.Layout.Height {
			return row, line - top, col, true
		}
	}
	return service.TimelineRow{}, 0, 0, false
}

// barAt finds the bar drawn in col of a lane. It uses the rendered column
// span so narrow bars are as clickable as they look.
func (m timelineModel) barAt(row service.TimelineRow, lane, col int) (layout.Bar, bool) {
	cols := m.chartColumns()
	for _, b := range row.Layout.Bars {
		if b.Lane != lane {
			continue
		}
		if c0, c1, ok := formatter.BarSpan(b, cols); ok && col >= c0 && col <= c1 {
			return b, true
		}
	}
	return layout.Bar{}, false
}

func subjectOf(a *domain.Activity) *interaction.Subject {
	return &interaction.Subject{
		ID:         a.ID,
		SwimlaneID: a.SwimlaneID,
		Interval:   service.ActivityItem(a).Interval,
	}
}

func (m timelineModel) selectedActivity() *domain.Activity {
	if m.tl == nil || m.selected == "" {
		return nil
	}
	return m.tl.Activity(m.selected)
}

// stepSelection moves the selection through the visible bars in reading
// order: swimlane, lane, then left edge.
func (m timelineModel) stepSelection(step int) string {
	if m.tl == nil {
		return ""
	}
	var bars []layout.Bar
	for _, row := range m.tl.Rows {
		rowBars := append([]layout.Bar(nil), row.Layout.Bars...)
		sort.SliceStable(rowBars, func(i, j int) bool {
			if rowBars[i].Lane != rowBars[j].Lane {
				return rowBars[i].Lane < rowBars[j].Lane
			}
			return rowBars[i].Left < rowBars[j].Left
		})
		for _, b := range rowBars {
			if !b.Draft && m.tl.Scale.Visible(b.Interval) {
				bars = append(bars, b)
			}
		}
	}
	if len(bars) == 0 {
		return ""
	}

	idx := -1
	for i, b := range bars {
		if b.ActivityID == m.selected {
			idx = i
		}
	}
	switch {
	case idx < 0 && step > 0:
		idx = 0
	case idx < 0:
		idx = len(bars) - 1
	default:
		idx = (idx + step + len(bars)) % len(bars)
	}
	return bars[idx].ActivityID
}

// ── View ─────────────────────────────────────────────────────────────────────

func (m timelineModel) View() string {
	if m.loadErr != nil {
		return formatter.StyleError.Render("Error: "+m.loadErr.Error()) + "\n"
	}
	if m.tl == nil {
		return formatter.Dim("Loading…") + "\n"
	}

	var b strings.Builder
	b.WriteString(formatter.FormatTimelineSummary(m.tl, m.zoom))
	if st := m.session.State(); st != interaction.StateIdle {
		b.WriteString("  " + formatter.StyleWarn.Render(m.session.Mode().String()))
	}
	b.WriteString("\n")

	lines := strings.Split(formatter.RenderTimeline(m.tl, formatter.TimelineStyle{
		LabelWidth: m.labelWidth(),
		Today:      m.app.today(),
		Selected:   m.selected,
	}), "\n")
	b.WriteString(lines[0])
	b.WriteString("\n")
	chart := lines[1:]
	end := min(m.yOffset+m.visibleLines(), len(chart))
	for _, line := range chart[min(m.yOffset, end):end] {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(m.message)
	b.WriteString("\n")
	b.WriteString(m.helpLine())

	if m.form != nil {
		b.WriteString("\n\n")
		b.WriteString(formatter.RenderBox("New activity "+formatter.DateRange(m.creating.Interval.Start, m.creating.Interval.End), m.form.View()))
	}
	return b.String()
}

func (m timelineModel) helpLine() string {
	var parts []string
	for _, k := range m.keys.ShortHelp() {
		h := k.Help()
		parts = append(parts, formatter.Bold(h.Key)+" "+formatter.Dim(h.Desc))
	}
	return strings.Join(parts, "  ")
}

// runTimeline starts the interactive timeline on the terminal.
func runTimeline(ctx context.Context, app *App, calendarID string, zoom layout.Zoom, start time.Time, filter service.ActivityFilter) error {
	m := newTimelineModel(ctx, app, calendarID, zoom, start, filter)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
