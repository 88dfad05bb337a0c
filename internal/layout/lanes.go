package layout

import (
	"sort"
	"time"
)

// Item is the layout engine's view of an activity: an ID and its range.
type Item struct {
	ID string
	Interval
}

// Assignment maps activity IDs to lane indexes within one swimlane.
type Assignment struct {
	Lanes map[string]int
	Count int
}

// SortItems orders items the way lanes are packed:
// 1. Start date: earliest first
// 2. Duration: longest first
// 3. ID: lexical ascending
func SortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]

		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}

		if da, db := a.Days(), b.Days(); da != db {
			return da > db
		}

		return a.ID < b.ID
	})
}

// AssignLanes packs items first-fit into the lowest lane whose last range ends
// before the item starts. The input slice is not modified.
func AssignLanes(items []Item) Assignment {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	SortItems(sorted)

	asg := Assignment{Lanes: make(map[string]int, len(sorted))}
	var laneEnds []time.Time
	for _, it := range sorted {
		lane := -1
		for i, end := range laneEnds {
			if end.Before(it.Start) {
				lane = i
				break
			}
		}
		if lane < 0 {
			lane = len(laneEnds)
			laneEnds = append(laneEnds, time.Time{})
		}
		laneEnds[lane] = it.End
		asg.Lanes[it.ID] = lane
	}
	asg.Count = len(laneEnds)
	return asg
}

// MaxOverlap returns the largest number of items sharing a single day.
func MaxOverlap(items []Item) int {
	best := 0
	for _, a := range items {
		n := 0
		for _, b := range items {
			if b.Contains(a.Start) {
				n++
			}
		}
		if n > best {
			best = n
		}
	}
	return best
}
