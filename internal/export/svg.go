// Package export writes timelines and activity tables to files.
package export

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/alexanderramin/campaignos/internal/domain"
	"github.com/alexanderramin/campaignos/internal/layout"
	"github.com/alexanderramin/campaignos/internal/service"
)

type SVGOptions struct {
	// LabelWidth is the width of the swimlane name column.
	LabelWidth int
	// HeaderHeight is the height of the month header.
	HeaderHeight int
	// Today draws a marker line when it falls in the window. Zero skips it.
	Today      time.Time
	FontFamily string
	Background string
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		LabelWidth:   160,
		HeaderHeight: 32,
		Today:        domain.Today(),
		FontFamily:   "Helvetica, Arial, sans-serif",
		Background:   "#FFFFFF",
	}
}

const (
	gridColor    = "#E5E7EB"
	textColor    = "#111827"
	mutedColor   = "#6B7280"
	todayColor   = "#EF4444"
	draftOpacity = "0.5"
	barPadding   = 4
)

// WriteSVG renders tl as a standalone SVG document.
func WriteSVG(w io.Writer, tl *service.Timeline, opts SVGOptions) error {
	_, err := io.WriteString(w, RenderSVG(tl, opts))
	return err
}

// RenderSVG lays tl out as SVG: a month header, one band per swimlane and one
// rect per visible bar, clipped to the window.
func RenderSVG(tl *service.Timeline, opts SVGOptions) string {
	if opts.LabelWidth <= 0 {
		opts.LabelWidth = DefaultSVGOptions().LabelWidth
	}
	if opts.HeaderHeight <= 0 {
		opts.HeaderHeight = DefaultSVGOptions().HeaderHeight
	}
	if opts.FontFamily == "" {
		opts.FontFamily = DefaultSVGOptions().FontFamily
	}
	if opts.Background == "" {
		opts.Background = DefaultSVGOptions().Background
	}

	chartWidth := tl.Scale.TotalWidth()
	width := opts.LabelWidth + int(math.Ceil(chartWidth))
	height := opts.HeaderHeight + tl.Height
	left := float64(opts.LabelWidth)

	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="%s"/>
<defs>
<style>
.lane-text { font-family: %s; font-size: 13px; font-weight: bold; fill: %s; }
.month-text { font-family: %s; font-size: 12px; fill: %s; }
.bar-text { font-family: %s; font-size: 11px; fill: #FFFFFF; }
</style>
</defs>
`, width, height, opts.Background,
		opts.FontFamily, textColor,
		opts.FontFamily, mutedColor,
		opts.FontFamily))

	writeMonthHeader(&svg, tl.Scale, left, opts.HeaderHeight, height)

	for _, row := range tl.Rows {
		y := opts.HeaderHeight + row.Top
		svg.WriteString(fmt.Sprintf(`<line x1="0" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-width="1"/>`+"\n",
			y, width, y, gridColor))
		svg.WriteString(fmt.Sprintf(`<text x="8" y="%d" class="lane-text">%s</text>`+"\n",
			y+18, escapeXML(row.Swimlane.Name)))

		for _, bar := range row.Layout.Bars {
			writeBar(&svg, tl, bar, left, y, chartWidth)
		}
	}

	if !opts.Today.IsZero() && tl.Scale.Window().Contains(opts.Today) {
		x := left + tl.Scale.X(opts.Today)
		svg.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%d" x2="%.1f" y2="%d" stroke="%s" stroke-width="2"/>`+"\n",
			x, opts.HeaderHeight, x, height, todayColor))
	}

	svg.WriteString("</svg>\n")
	return svg.String()
}

func writeMonthHeader(svg *strings.Builder, scale layout.Scale, left float64, headerHeight, height int) {
	window := scale.Window()
	month := domain.StartOfMonth(window.Start)
	if month.Before(window.Start) {
		month = month.AddDate(0, 1, 0)
	}
	for ; !month.After(window.End); month = month.AddDate(0, 1, 0) {
		x := left + scale.X(month)
		svg.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="0" x2="%.1f" y2="%d" stroke="%s" stroke-width="1"/>`+"\n",
			x, x, height, gridColor))
		svg.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" class="month-text">%s</text>`+"\n",
			x+4, headerHeight-10, month.Format("Jan 2006")))
	}
}

func writeBar(svg *strings.Builder, tl *service.Timeline, bar layout.Bar, left float64, rowY int, chartWidth float64) {
	x0 := math.Max(bar.Left, 0)
	x1 := math.Min(bar.Left+bar.Width, chartWidth)
	if x1 <= x0 {
		return
	}
	y := rowY + bar.Top + barPadding
	h := tl.RowHeight - 2*barPadding

	title := "New activity"
	if a := tl.Activity(bar.ActivityID); a != nil {
		title = a.Title
	}
	opacity := "1"
	if bar.Draft {
		opacity = draftOpacity
	}

	svg.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%d" width="%.1f" height="%d" rx="4" fill="%s" fill-opacity="%s"><title>%s</title></rect>`+"\n",
		left+x0, y, x1-x0, h, tl.Color(bar.ActivityID), opacity,
		escapeXML(fmt.Sprintf("%s (%s)", title, bar.Interval))))
	if x1-x0 >= 24 {
		svg.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" class="bar-text">%s</text>`+"\n",
			left+x0+4, y+h/2+4, escapeXML(truncate(title, int((x1-x0-8)/6.5)))))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
