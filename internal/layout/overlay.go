package layout

// DraftID identifies the synthetic item injected while drag-creating.
const DraftID = "__draft__"

// Snapshot is the committed state the engine lays out: swimlane ID to items.
type Snapshot map[string][]Item

// Override substitutes one activity's committed range and swimlane for a single
// layout pass. A synthetic override injects DraftID instead.
type Override struct {
	ActivityID string
	Interval   Interval
	SwimlaneID string
	Synthetic  bool
}

// Apply returns the snapshot with the override substituted. The receiver may be
// nil, in which case s is returned as is. Only swimlanes that change are
// copied; s is never written to. A non-synthetic override for an ID that is
// not in the snapshot has no effect.
func (o *Override) Apply(s Snapshot) Snapshot {
	if o == nil {
		return s
	}
	if !o.Synthetic && !s.Has(o.ActivityID) {
		return s
	}

	out := make(Snapshot, len(s)+1)
	for lane, items := range s {
		if idx := indexOf(items, o.ActivityID); idx >= 0 {
			kept := make([]Item, 0, len(items)-1)
			kept = append(kept, items[:idx]...)
			kept = append(kept, items[idx+1:]...)
			out[lane] = kept
			continue
		}
		out[lane] = items
	}

	dest := out[o.SwimlaneID]
	moved := make([]Item, 0, len(dest)+1)
	moved = append(moved, dest...)
	moved = append(moved, Item{ID: o.ActivityID, Interval: o.Interval})
	out[o.SwimlaneID] = moved
	return out
}

// Has reports whether any swimlane contains id.
func (s Snapshot) Has(id string) bool {
	_, ok := s.Find(id)
	return ok
}

// Find returns the swimlane holding id.
func (s Snapshot) Find(id string) (string, bool) {
	for lane, items := range s {
		if indexOf(items, id) >= 0 {
			return lane, true
		}
	}
	return "", false
}

func indexOf(items []Item, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
