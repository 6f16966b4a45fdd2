package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studynav/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar for a 0..100 value.
type ProgressBar struct {
	Label       string
	Percent     int
	ShowPercent bool
	Width       int
	Color       color.Color // fill color; defaults to theme.Secondary
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent int, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// Filled returns how many of barWidth cells are filled.
func (p ProgressBar) Filled(barWidth int) int {
	pct := min(max(p.Percent, 0), 100)
	return barWidth * pct / 100
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // "  100%"
	}

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	fill := p.Color
	if fill == nil {
		fill = theme.Secondary
	}
	filled := p.Filled(barWidth)

	result += lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", barWidth-filled))

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", min(max(p.Percent, 0), 100)))
	}

	return result
}
