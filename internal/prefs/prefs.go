// Package prefs loads and saves per-user view preferences as YAML.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexanderramin/campaignos/internal/layout"
	"gopkg.in/yaml.v3"
)

type View string

const (
	ViewTimeline View = "timeline"
	ViewCalendar View = "calendar"
	ViewTable    View = "table"
)

const (
	MinSidebarWidth     = 150
	MaxSidebarWidth     = 400
	DefaultSidebarWidth = 200
)

// Prefs are the persisted view settings.
type Prefs struct {
	View         View        `yaml:"view"`
	Zoom         layout.Zoom `yaml:"zoom"`
	RowHeight    string      `yaml:"row_height"`
	SidebarWidth int         `yaml:"sidebar_width"`
	LastCalendar string      `yaml:"last_calendar,omitempty"`
	ShowWeekends bool        `yaml:"show_weekends"`
}

func Default() Prefs {
	return Prefs{
		View:         ViewTimeline,
		Zoom:         layout.ZoomQuarter,
		RowHeight:    layout.RowStandard.String(),
		SidebarWidth: DefaultSidebarWidth,
		ShowWeekends: true,
	}
}

// Load reads prefs from path. A missing file yields the defaults; fields
// absent from the file keep their defaults and invalid values are reset.
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("reading prefs: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("parsing prefs %s: %w", path, err)
	}
	p.normalize()
	return p, nil
}

// Save writes prefs to path, creating parent directories.
func (p Prefs) Save(path string) error {
	p.normalize()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating prefs directory: %w", err)
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding prefs: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Backup moves the file at path aside to path+".bak", replacing any older
// backup, and returns the new name. Use it before saving over a file Load
// could not read.
func Backup(path string) (string, error) {
	bak := path + ".bak"
	if err := os.Rename(path, bak); err != nil {
		return "", fmt.Errorf("backing up prefs: %w", err)
	}
	return bak, nil
}

// Keys lists the settable preference names in display order.
var Keys = []string{"view", "zoom", "row_height", "sidebar_width", "last_calendar", "show_weekends"}

// Set assigns one preference by its YAML key.
func (p *Prefs) Set(key, value string) error {
	switch key {
	case "view":
		switch View(value) {
		case ViewTimeline, ViewCalendar, ViewTable:
			p.View = View(value)
		default:
			return fmt.Errorf("invalid view %q (want timeline, calendar or table)", value)
		}
	case "zoom":
		z, err := layout.ParseZoom(value)
		if err != nil {
			return err
		}
		p.Zoom = z
	case "row_height":
		rh, err := layout.ParseRowHeight(value)
		if err != nil {
			return err
		}
		p.RowHeight = rh.String()
	case "sidebar_width":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid sidebar width %q: %w", value, err)
		}
		p.SidebarWidth = clamp(n, MinSidebarWidth, MaxSidebarWidth)
	case "last_calendar":
		p.LastCalendar = value
	case "show_weekends":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid show_weekends %q: %w", value, err)
		}
		p.ShowWeekends = b
	default:
		return fmt.Errorf("unknown preference %q", key)
	}
	return nil
}

// Get returns one preference rendered as text.
func (p Prefs) Get(key string) (string, error) {
	switch key {
	case "view":
		return string(p.View), nil
	case "zoom":
		return string(p.Zoom), nil
	case "row_height":
		return p.RowHeight, nil
	case "sidebar_width":
		return strconv.Itoa(p.SidebarWidth), nil
	case "last_calendar":
		return p.LastCalendar, nil
	case "show_weekends":
		return strconv.FormatBool(p.ShowWeekends), nil
	}
	return "", fmt.Errorf("unknown preference %q", key)
}

// RowHeightPreset resolves RowHeight, falling back to standard.
func (p Prefs) RowHeightPreset() layout.RowHeight {
	rh, err := layout.ParseRowHeight(p.RowHeight)
	if err != nil {
		return layout.RowStandard
	}
	return rh
}

// LabelColumns converts the sidebar width in pixels to terminal columns.
func (p Prefs) LabelColumns() int {
	return clamp(p.SidebarWidth, MinSidebarWidth, MaxSidebarWidth) / 10
}

func (p *Prefs) normalize() {
	d := Default()
	switch p.View {
	case ViewTimeline, ViewCalendar, ViewTable:
	default:
		p.View = d.View
	}
	if _, err := layout.ParseZoom(string(p.Zoom)); err != nil || p.Zoom == "" {
		p.Zoom = d.Zoom
	}
	if _, err := layout.ParseRowHeight(p.RowHeight); err != nil || p.RowHeight == "" {
		p.RowHeight = d.RowHeight
	}
	if p.SidebarWidth == 0 {
		p.SidebarWidth = d.SidebarWidth
	}
	p.SidebarWidth = clamp(p.SidebarWidth, MinSidebarWidth, MaxSidebarWidth)
}

func clamp(n, lo, hi int) int {
	return min(max(n, lo), hi)
}
