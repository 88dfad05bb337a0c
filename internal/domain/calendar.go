package domain

import (
	"regexp"
	"strings"
	"time"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type Calendar struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type Status struct {
	ID         string
	CalendarID string
	Name       string
	Color      string
	SortOrder  int
}

type Swimlane struct {
	ID         string
	CalendarID string
	Name       string
	SortOrder  int
}

type Campaign struct {
	ID         string
	CalendarID string
	Name       string
}

// ValidateName trims name and rejects it when blank.
func ValidateName(field, name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", invalid(field, "%s is required", field)
	}
	return trimmed, nil
}

// ValidateHexColor checks for a #RRGGBB color.
func ValidateHexColor(color string) error {
	if !hexColorPattern.MatchString(color) {
		return invalid("color", "color %q must be a hex color like #3B82F6", color)
	}
	return nil
}

// Validate checks a status before it is stored.
func (s *Status) Validate() error {
	name, err := ValidateName("name", s.Name)
	if err != nil {
		return err
	}
	s.Name = name
	return ValidateHexColor(s.Color)
}
