package layout

import "fmt"

// RowHeight is the pixel height of a single lane.
type RowHeight int

const (
	RowCompact  RowHeight = 40
	RowStandard RowHeight = 60
	RowExpanded RowHeight = 80
)

// ParseRowHeight accepts compact, standard or expanded.
func ParseRowHeight(s string) (RowHeight, error) {
	switch s {
	case "compact":
		return RowCompact, nil
	case "standard", "":
		return RowStandard, nil
	case "expanded":
		return RowExpanded, nil
	}
	return 0, fmt.Errorf("invalid row height %q (want compact, standard or expanded)", s)
}

func (r RowHeight) String() string {
	switch r {
	case RowCompact:
		return "compact"
	case RowExpanded:
		return "expanded"
	case RowStandard:
		return "standard"
	}
	return fmt.Sprintf("%dpx", int(r))
}

// Height is the total height of a swimlane with the given lane count. An empty
// swimlane still occupies one row.
func Height(lanes, rowHeight int) int {
	return max(1, lanes) * rowHeight
}
