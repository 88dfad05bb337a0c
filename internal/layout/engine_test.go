package layout

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_BarGeometry(t *testing.T) {
	snap := Snapshot{"s1": {item("A", 1, 5), item("B", 3, 10), item("C", 11, 15)}}
	res := Compute(snap, nil, NewScale(ZoomMonth, jan(1)), 60)

	want := SwimlaneLayout{
		SwimlaneID: "s1",
		LaneCount:  2,
		Height:     120,
		Bars: []Bar{
			{ActivityID: "A", Lane: 0, Left: 0, Width: 150, Top: 0, Interval: item("A", 1, 5).Interval},
			{ActivityID: "B", Lane: 1, Left: 60, Width: 240, Top: 60, Interval: item("B", 3, 10).Interval},
			{ActivityID: "C", Lane: 0, Left: 300, Width: 150, Top: 0, Interval: item("C", 11, 15).Interval},
		},
	}
	if diff := cmp.Diff(want, res.Swimlane("s1")); diff != "" {
		t.Fatalf("layout mismatch (-want +got):\n%s", diff)
	}
}

func TestCompute_CrossSwimlaneMove(t *testing.T) {
	snap := Snapshot{
		"S1": {item("X", 1, 5), item("Y", 2, 3)},
		"S2": {item("Z", 9, 12)},
	}
	override := &Override{ActivityID: "X", Interval: item("X", 10, 14).Interval, SwimlaneID: "S2"}

	res := Compute(snap, override, NewScale(ZoomMonth, jan(1)), 60)

	s1 := res.Swimlane("S1")
	for _, b := range s1.Bars {
		assert.NotEqual(t, "X", b.ActivityID, "X must leave its origin swimlane")
	}
	assert.Equal(t, 1, s1.LaneCount)

	s2 := res.Swimlane("S2")
	require.Len(t, s2.Bars, 2)
	assert.Equal(t, 2, s2.LaneCount, "X at Jan 10-14 stacks against Z")
	var x Bar
	for _, b := range s2.Bars {
		if b.ActivityID == "X" {
			x = b
		}
	}
	assert.True(t, x.Overridden)
	assert.False(t, x.Draft)
	assert.Equal(t, item("X", 10, 14).Interval, x.Interval)
	assert.Equal(t, 1, x.Lane)

	// Committed snapshot is untouched.
	assert.Len(t, snap["S1"], 2)
	assert.Len(t, snap["S2"], 1)
	assert.Equal(t, item("X", 1, 5), snap["S1"][0])
}

func TestCompute_SyntheticDraft(t *testing.T) {
	snap := Snapshot{"S1": {item("A", 1, 5)}}
	override := &Override{ActivityID: DraftID, Interval: item(DraftID, 4, 6).Interval, SwimlaneID: "S1", Synthetic: true}

	l := Compute(snap, override, NewScale(ZoomMonth, jan(1)), 40).Swimlane("S1")
	require.Len(t, l.Bars, 2)
	assert.Equal(t, 2, l.LaneCount)
	assert.True(t, l.Bars[1].Draft)
	assert.Equal(t, 80, l.Height)
}

func TestCompute_UnknownOverrideIgnored(t *testing.T) {
	snap := Snapshot{"S1": {item("A", 1, 5)}}
	scale := NewScale(ZoomMonth, jan(1))
	override := &Override{ActivityID: "ghost", Interval: item("ghost", 1, 5).Interval, SwimlaneID: "S1"}

	assert.Equal(t, Compute(snap, nil, scale, 60), Compute(snap, override, scale, 60))
}

func TestOverrideApply_DoesNotAliasDestination(t *testing.T) {
	backing := make([]Item, 1, 4)
	backing[0] = item("Z", 1, 2)
	snap := Snapshot{"S1": {item("X", 1, 5)}, "S2": backing}
	override := &Override{ActivityID: "X", Interval: item("X", 3, 4).Interval, SwimlaneID: "S2"}

	out := override.Apply(snap)
	require.Len(t, out["S2"], 2)
	assert.Len(t, snap["S2"], 1)
	assert.Equal(t, Item{}, backing[:2][1], "spare capacity of the committed slice is not written")
	assert.Empty(t, out["S1"])
}

func TestOverrideApply_NewSwimlane(t *testing.T) {
	snap := Snapshot{"S1": {item("X", 1, 5)}}
	override := &Override{ActivityID: "X", Interval: item("X", 1, 5).Interval, SwimlaneID: "S9"}

	res := Compute(snap, override, NewScale(ZoomMonth, jan(1)), 60)
	assert.Equal(t, 1, res.Swimlane("S9").LaneCount)
	assert.Equal(t, 60, res.Swimlane("S1").Height)
}

func TestCompute_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	scale := NewScale(ZoomQuarter, jan(1))

	for trial := 0; trial < 50; trial++ {
		items := randomItems(rng)
		snap := Snapshot{"S": items}
		first := Compute(snap, nil, scale, 60)

		shuffled := make([]Item, len(items))
		copy(shuffled, items)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		if diff := cmp.Diff(first, Compute(Snapshot{"S": shuffled}, nil, scale, 60)); diff != "" {
			t.Fatalf("trial %d (-first +shuffled):\n%s", trial, diff)
		}
	}
}

func TestResultTotalHeight(t *testing.T) {
	snap := Snapshot{"a": {item("A", 1, 5), item("B", 2, 3)}, "b": nil}
	res := Compute(snap, nil, NewScale(ZoomMonth, jan(1)), 40)
	assert.Equal(t, 120, res.TotalHeight([]string{"a", "b"}))
}

func TestBarAt(t *testing.T) {
	snap := Snapshot{"s": {item("A", 1, 5), item("B", 3, 10)}}
	l := Compute(snap, nil, NewScale(ZoomMonth, jan(1)), 60).Swimlane("s")

	b, ok := l.BarAt(10, 5, 60)
	require.True(t, ok)
	assert.Equal(t, "A", b.ActivityID)

	b, ok = l.BarAt(100, 70, 60)
	require.True(t, ok)
	assert.Equal(t, "B", b.ActivityID)

	_, ok = l.BarAt(400, 5, 60)
	assert.False(t, ok)
}
