package layout

// Bar is the rendered geometry of one activity.
type Bar struct {
	ActivityID string
	Lane       int
	Left       float64
	Width      float64
	Top        int
	Interval   Interval
	// Draft marks the synthetic drag-to-create bar.
	Draft bool
	// Overridden marks the bar currently being dragged.
	Overridden bool
}

type SwimlaneLayout struct {
	SwimlaneID string
	LaneCount  int
	Height     int
	Bars       []Bar
}

// Result is one layout pass over every swimlane in the snapshot.
type Result struct {
	RowHeight int
	Swimlanes map[string]SwimlaneLayout
}

// Swimlane returns the layout for id. Swimlanes absent from the pass are empty
// and one row high.
func (r Result) Swimlane(id string) SwimlaneLayout {
	if l, ok := r.Swimlanes[id]; ok {
		return l
	}
	return SwimlaneLayout{SwimlaneID: id, Height: Height(0, r.RowHeight)}
}

// TotalHeight sums the heights of the given swimlanes in order.
func (r Result) TotalHeight(order []string) int {
	total := 0
	for _, id := range order {
		total += r.Swimlane(id).Height
	}
	return total
}

// Compute lays out every swimlane in s with override substituted. It is
// deterministic and leaves s untouched.
func Compute(s Snapshot, override *Override, scale Scale, rowHeight int) Result {
	effective := override.Apply(s)
	res := Result{
		RowHeight: rowHeight,
		Swimlanes: make(map[string]SwimlaneLayout, len(effective)),
	}
	for id, items := range effective {
		res.Swimlanes[id] = layoutSwimlane(id, items, override, scale, rowHeight)
	}
	return res
}

func layoutSwimlane(id string, items []Item, override *Override, scale Scale, rowHeight int) SwimlaneLayout {
	asg := AssignLanes(items)

	ordered := make([]Item, len(items))
	copy(ordered, items)
	SortItems(ordered)

	bars := make([]Bar, 0, len(ordered))
	for _, it := range ordered {
		lane := asg.Lanes[it.ID]
		bar := Bar{
			ActivityID: it.ID,
			Lane:       lane,
			Left:       scale.X(it.Start),
			Width:      scale.Width(it.Interval),
			Top:        lane * rowHeight,
			Interval:   it.Interval,
		}
		if override != nil && override.ActivityID == it.ID {
			bar.Overridden = true
			bar.Draft = override.Synthetic
		}
		bars = append(bars, bar)
	}

	return SwimlaneLayout{
		SwimlaneID: id,
		LaneCount:  asg.Count,
		Height:     Height(asg.Count, rowHeight),
		Bars:       bars,
	}
}

// BarAt returns the bar under (x, y) where y is relative to the swimlane top.
func (l SwimlaneLayout) BarAt(x float64, y int, rowHeight int) (Bar, bool) {
	if rowHeight <= 0 {
		return Bar{}, false
	}
	lane := y / rowHeight
	for _, b := range l.Bars {
		if b.Lane == lane && x >= b.Left && x < b.Left+b.Width {
			return b, true
		}
	}
	return Bar{}, false
}
