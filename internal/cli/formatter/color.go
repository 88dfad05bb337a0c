package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette. The OK and warn hues match the Committed and Negotiating status
// seeds so chrome and bars read as one set.
var (
	ColorAccent = lipgloss.Color("#38BDF8")
	ColorOK     = lipgloss.Color("#10B981")
	ColorWarn   = lipgloss.Color("#F59E0B")
	ColorError  = lipgloss.Color("#EF4444")
	ColorTag    = lipgloss.Color("#A78BFA")
	ColorMuted  = lipgloss.Color("#94A3B8")
	ColorText   = lipgloss.Color("#E2E8F0")
)

var (
	StyleAccent = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	StyleOK     = lipgloss.NewStyle().Foreground(ColorOK)
	StyleWarn   = lipgloss.NewStyle().Foreground(ColorWarn)
	StyleError  = lipgloss.NewStyle().Foreground(ColorError)
	StyleTag    = lipgloss.NewStyle().Foreground(ColorTag)
	StyleMuted  = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
)

const (
	inkDark  = "#0F172A"
	inkLight = "#F8FAFC"
)

// Swatch renders a dot in hex followed by label.
func Swatch(hex, label string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("●") + " " + label
}

// InkFor picks dark or light text for a fill, whichever reads better.
// Unparseable fills get light text.
func InkFor(fill string) string {
	c, err := colorful.Hex(fill)
	if err != nil {
		return inkLight
	}
	r, g, b := c.LinearRgb()
	if 0.2126*r+0.7152*g+0.0722*b > 0.179 {
		return inkDark
	}
	return inkLight
}

// BarStyle is the style of a timeline bar filled with hex.
func BarStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(InkFor(hex)))
}

// Header renders an upper-cased section title over a muted rule.
func Header(text string) string {
	title := strings.ToUpper(text)
	return fmt.Sprintf("%s\n%s", StyleAccent.Render(title), StyleMuted.Render(strings.Repeat("─", lipgloss.Width(title))))
}

func Dim(text string) string { return StyleMuted.Render(text) }

func Bold(text string) string { return StyleBold.Render(text) }
