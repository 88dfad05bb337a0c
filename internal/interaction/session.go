// Package interaction tracks one pointer drag over the timeline and turns it
// into a layout override while active and a persistence request when it ends.
package interaction

import (
	"errors"
	"math"

	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/alexanderramin/campaignos/internal/layout"
)

var (
	ErrDragActive    = errors.New("a drag is already in progress")
	ErrCommitPending = errors.New("previous change is still being saved")
	ErrNotDragging   = errors.New("no drag in progress")
)

type State int

const (
	StateIdle State = iota
	StateActiveOverride
	StateActiveCreate
)

func (s State) String() string {
	switch s {
	case StateActiveOverride:
		return "active-override"
	case StateActiveCreate:
		return "active-create"
	default:
		return "idle"
	}
}

type Mode int

const (
	ModeNone Mode = iota
	ModeMove
	ModeResizeStart
	ModeResizeEnd
	ModeCreate
	ModeClone
)

func (m Mode) String() string {
	switch m {
	case ModeMove:
		return "move"
	case ModeResizeStart:
		return "resize-start"
	case ModeResizeEnd:
		return "resize-end"
	case ModeCreate:
		return "create"
	case ModeClone:
		return "clone"
	default:
		return "none"
	}
}

// Target is what the pointer went down on.
type Target int

const (
	TargetEmpty Target = iota
	TargetActivity
)

// Edge is the part of a bar that was grabbed.
type Edge int

const (
	EdgeBody Edge = iota
	EdgeStart
	EdgeEnd
)

// Subject is the committed state of the activity being dragged.
type Subject struct {
	ID         string
	SwimlaneID string
	Interval   layout.Interval
}

// DragStart describes a pointer-down.
type DragStart struct {
	Target     Target
	Edge       Edge
	SwimlaneID string
	Activity   *Subject
	X          float64
}

// UpdateRequest asks persistence to move or resize an activity.
type UpdateRequest struct {
	ActivityID string
	Interval   layout.Interval
	SwimlaneID string
}

// CreateRequest asks persistence to create an activity. Defaults is set when
// the drag cloned an existing activity.
type CreateRequest struct {
	SwimlaneID string
	Interval   layout.Interval
	Defaults   *domain.Activity
}

type OutcomeKind int

const (
	OutcomeNone OutcomeKind = iota
	OutcomeUpdate
	OutcomeCreate
)

// Outcome is what a finished drag asks of persistence.
type Outcome struct {
	Kind   OutcomeKind
	Update UpdateRequest
	Create CreateRequest
}

// Session is the drag state machine. It is not safe for concurrent use; the
// owning event loop drives it.
type Session struct {
	scale     layout.Scale
	threshold float64

	state    State
	mode     Mode
	subject  Subject
	originX  float64
	lastX    float64
	anchor   layout.Interval
	proposed bool
	defaults *domain.Activity

	active  *layout.Override
	pending *layout.Override
}

// NewSession creates an idle session. threshold is the minimum pointer travel,
// in scale units, for a drag on empty space to create anything.
func NewSession(scale layout.Scale, threshold float64) *Session {
	return &Session{scale: scale, threshold: threshold}
}

func (s *Session) State() State { return s.state }
func (s *Session) Mode() Mode   { return s.mode }
func (s *Session) Scale() layout.Scale {
	return s.scale
}

// Pending reports whether a finished drag is waiting for its commit to settle.
func (s *Session) Pending() bool { return s.pending != nil }

// SetScale swaps the pixel scale, e.g. after a zoom change. Not allowed mid-drag.
func (s *Session) SetScale(scale layout.Scale) error {
	if s.state != StateIdle {
		return ErrDragActive
	}
	s.scale = scale
	return nil
}

// Begin starts a drag. Only one drag may be active, and none may start while
// a commit is pending.
func (s *Session) Begin(d DragStart) error {
	if err := s.canBegin(); err != nil {
		return err
	}

	if d.Target == TargetActivity {
		if d.Activity == nil {
			return errors.New("drag on an activity needs its committed state")
		}
		s.subject = *d.Activity
		s.state = StateActiveOverride
		switch d.Edge {
		case EdgeStart:
			s.mode = ModeResizeStart
		case EdgeEnd:
			s.mode = ModeResizeEnd
		default:
			s.mode = ModeMove
		}
		s.active = &layout.Override{
			ActivityID: s.subject.ID,
			Interval:   s.subject.Interval,
			SwimlaneID: s.subject.SwimlaneID,
		}
		s.originX, s.lastX = d.X, d.X
		return nil
	}

	day := s.scale.DateAt(d.X)
	s.beginCreate(ModeCreate, d.SwimlaneID, layout.Interval{Start: day, End: day}, d.X, nil)
	return nil
}

// BeginClone starts a drag that creates a copy of source. The draft keeps the
// source's duration and starts on the day under x.
func (s *Session) BeginClone(source *domain.Activity, swimlaneID string, x float64) error {
	if err := s.canBegin(); err != nil {
		return err
	}
	start := s.scale.DateAt(x)
	iv := layout.Interval{Start: start, End: domain.AddDays(start, source.DurationDays()-1)}
	s.beginCreate(ModeClone, swimlaneID, iv, x, source.CloneDraft())
	return nil
}

func (s *Session) canBegin() error {
	if s.pending != nil {
		return ErrCommitPending
	}
	if s.state != StateIdle {
		return ErrDragActive
	}
	return nil
}

func (s *Session) beginCreate(mode Mode, swimlaneID string, iv layout.Interval, x float64, defaults *domain.Activity) {
	s.state = StateActiveCreate
	s.mode = mode
	s.subject = Subject{ID: layout.DraftID, SwimlaneID: swimlaneID, Interval: iv}
	s.anchor = iv
	s.defaults = defaults
	s.originX, s.lastX = x, x
	s.active = &layout.Override{
		ActivityID: layout.DraftID,
		Interval:   iv,
		SwimlaneID: swimlaneID,
		Synthetic:  true,
	}
}

// Move updates the candidate from the pointer position. swimlaneID is the
// swimlane under the pointer; it only matters for moves and clones, and an
// empty value keeps the current one.
func (s *Session) Move(x float64, swimlaneID string) error {
	if s.state == StateIdle {
		return ErrNotDragging
	}
	s.lastX = x
	delta := s.scale.DayDelta(x - s.originX)
	subj := s.subject.Interval

	switch s.mode {
	case ModeMove, ModeClone:
		s.active.Interval = subj.Shift(delta)
		if swimlaneID != "" {
			s.active.SwimlaneID = swimlaneID
		}
	case ModeResizeStart:
		start := domain.AddDays(subj.Start, delta)
		if start.After(subj.End) {
			start = subj.End
		}
		s.active.Interval = layout.Interval{Start: start, End: subj.End}
	case ModeResizeEnd:
		end := domain.AddDays(subj.End, delta)
		if end.Before(subj.Start) {
			end = subj.Start
		}
		s.active.Interval = layout.Interval{Start: subj.Start, End: end}
	case ModeCreate:
		s.active.Interval = layout.Span(s.anchor.Start, s.scale.DateAt(x))
	}
	return nil
}

// Propose sets the candidate directly, bypassing pointer geometry. A proposal
// during a create counts as a deliberate drag.
func (s *Session) Propose(iv layout.Interval, swimlaneID string) error {
	if s.state == StateIdle {
		return ErrNotDragging
	}
	s.active.Interval = layout.Span(iv.Start, iv.End)
	if swimlaneID != "" && s.mode != ModeResizeStart && s.mode != ModeResizeEnd {
		s.active.SwimlaneID = swimlaneID
	}
	s.proposed = true
	return nil
}

// End finishes the drag. A changed override becomes pending until Resolve is
// called; a drag that changed nothing, or a create that never passed the
// threshold, returns OutcomeNone and the session goes straight back to idle.
func (s *Session) End() (Outcome, error) {
	if s.state == StateIdle {
		return Outcome{}, ErrNotDragging
	}
	o := *s.active
	state, mode := s.state, s.mode
	travel := math.Abs(s.lastX - s.originX)
	proposed, defaults, subject := s.proposed, s.defaults, s.subject
	s.reset()

	if state == StateActiveOverride {
		if o.Interval.Equal(subject.Interval) && o.SwimlaneID == subject.SwimlaneID {
			return Outcome{}, nil
		}
		s.pending = &o
		return Outcome{Kind: OutcomeUpdate, Update: UpdateRequest{
			ActivityID: o.ActivityID,
			Interval:   o.Interval,
			SwimlaneID: o.SwimlaneID,
		}}, nil
	}

	if mode == ModeCreate && !proposed && travel <= s.threshold {
		return Outcome{}, nil
	}
	s.pending = &o
	return Outcome{Kind: OutcomeCreate, Create: CreateRequest{
		SwimlaneID: o.SwimlaneID,
		Interval:   o.Interval,
		Defaults:   defaults,
	}}, nil
}

// Cancel abandons the active drag. The committed state shows again on the very
// next layout pass, including for activities dragged to another swimlane.
func (s *Session) Cancel() {
	s.reset()
}

// Override is the override the next layout pass should apply: the active drag,
// else the change waiting on its commit, else nil.
func (s *Session) Override() *layout.Override {
	if s.active != nil {
		o := *s.active
		return &o
	}
	if s.pending != nil {
		o := *s.pending
		return &o
	}
	return nil
}

// Resolve settles the pending commit. The override is dropped either way: on
// success the refreshed snapshot carries the change, on failure the committed
// state reappears. err is returned unchanged for the caller to surface.
func (s *Session) Resolve(err error) error {
	s.pending = nil
	return err
}

func (s *Session) reset() {
	s.state = StateIdle
	s.mode = ModeNone
	s.subject = Subject{}
	s.anchor = layout.Interval{}
	s.defaults = nil
	s.proposed = false
	s.active = nil
	s.originX, s.lastX = 0, 0
}

// GrabCell classifies a pointer-down in cell col of a bar drawn over cells
// first..last. Bars under three cells wide have no edges, so they always
// move; wider bars resize from their outermost cells.
func GrabCell(first, last, col int) Edge {
	switch {
	case last-first+1 < 3:
		return EdgeBody
	case col <= first:
		return EdgeStart
	case col >= last:
		return EdgeEnd
	default:
		return EdgeBody
	}
}

// GrabEdge classifies a pointer-down at x on bar. The grab zone shrinks on
// narrow bars so the middle third always moves.
func GrabEdge(bar layout.Bar, x, grab float64) Edge {
	if bar.Width < 3*grab {
		grab = bar.Width / 3
	}
	switch {
	case x < bar.Left+grab:
		return EdgeStart
	case x >= bar.Left+bar.Width-grab:
		return EdgeEnd
	default:
		return EdgeBody
	}
}
