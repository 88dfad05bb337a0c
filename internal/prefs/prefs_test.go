package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/campaignos/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("zoom: month\nsidebar_width: 999\n"), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, layout.ZoomMonth, p.Zoom)
	assert.Equal(t, MaxSidebarWidth, p.SidebarWidth, "clamped")
	assert.Equal(t, ViewTimeline, p.View)
	assert.True(t, p.ShowWeekends)
}

func TestLoad_InvalidValuesReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("view: gantt\nzoom: week\nrow_height: tiny\n"), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ViewTimeline, p.View)
	assert.Equal(t, layout.ZoomQuarter, p.Zoom)
	assert.Equal(t, "standard", p.RowHeight)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("view: [unclosed"), 0o644))

	p, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, Default(), p)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "prefs.yaml")
	p := Default()
	require.NoError(t, p.Set("view", "table"))
	require.NoError(t, p.Set("row_height", "compact"))
	require.NoError(t, p.Set("last_calendar", "Brand 2025"))
	require.NoError(t, p.Set("show_weekends", "false"))
	require.NoError(t, p.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.Equal(t, layout.RowCompact, got.RowHeightPreset())
}

func TestSet_Rejects(t *testing.T) {
	p := Default()
	assert.Error(t, p.Set("view", "kanban"))
	assert.Error(t, p.Set("zoom", "decade"))
	assert.Error(t, p.Set("sidebar_width", "wide"))
	assert.Error(t, p.Set("show_weekends", "maybe"))
	assert.Error(t, p.Set("theme", "dark"))
	assert.Equal(t, Default(), p)
}

func TestSetSidebarWidthClamps(t *testing.T) {
	p := Default()
	require.NoError(t, p.Set("sidebar_width", "20"))
	assert.Equal(t, MinSidebarWidth, p.SidebarWidth)
	assert.Equal(t, 15, p.LabelColumns())
}

func TestGetEveryKey(t *testing.T) {
	p := Default()
	for _, k := range Keys {
		_, err := p.Get(k)
		assert.NoError(t, err, k)
	}
	v, err := p.Get("sidebar_width")
	require.NoError(t, err)
	assert.Equal(t, "200", v)
}

func TestBackup_KeepsUnreadableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	bad := []byte("zoom: [month\n")
	require.NoError(t, os.WriteFile(path, bad, 0o644))

	_, err := Load(path)
	require.Error(t, err)

	bak, err := Backup(path)
	require.NoError(t, err)
	assert.Equal(t, path+".bak", bak)

	kept, err := os.ReadFile(bak)
	require.NoError(t, err)
	assert.Equal(t, bad, kept)
	assert.NoFileExists(t, path)

	_, err = Backup(path)
	assert.Error(t, err, "nothing left to back up")
}
