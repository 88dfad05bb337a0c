package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeight(t *testing.T) {
	assert.Equal(t, 60, Height(0, 60), "empty swimlane keeps one row")
	for n := 1; n <= 6; n++ {
		assert.Equal(t, n*40, Height(n, 40))
	}
}

func TestHeight_EmptySwimlaneInLayout(t *testing.T) {
	res := Compute(Snapshot{"s1": nil}, nil, NewScale(ZoomMonth, jan(1)), int(RowStandard))
	l := res.Swimlane("s1")
	assert.Equal(t, 0, l.LaneCount)
	assert.Equal(t, 60, l.Height)
}

func TestParseRowHeight(t *testing.T) {
	for _, name := range []string{"compact", "standard", "expanded"} {
		rh, err := ParseRowHeight(name)
		require.NoError(t, err)
		assert.Equal(t, name, rh.String())
	}
	rh, err := ParseRowHeight("")
	require.NoError(t, err)
	assert.Equal(t, RowStandard, rh)

	_, err = ParseRowHeight("huge")
	require.Error(t, err)
}
