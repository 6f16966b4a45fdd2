package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette
var (
	Primary   = lipgloss.Color("#3B82F6") // Blue
	Secondary = lipgloss.Color("#8B5CF6") // Violet
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#10B981") // Emerald
	Warning   = lipgloss.Color("#F97316") // Orange
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim)

	Heading = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Containers
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	SelectedCard = Card.
			BorderForeground(Primary)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Chat bubbles
var (
	UserBubble = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Padding(0, 1)

	AssistantBubble = lipgloss.NewStyle().
			Background(BgCard).
			Foreground(Text).
			Padding(0, 1)
)

// Named resolves a palette name used in catalog records ("primary",
// "secondary", "accent", "success"), falling back to Primary.
func Named(name string) color.Color {
	switch name {
	case "secondary":
		return Secondary
	case "accent":
		return Accent
	case "success":
		return Success
	default:
		return Primary
	}
}

// Mastery picks the color for a 0..100 mastery or progress value.
func Mastery(pct int) color.Color {
	switch {
	case pct >= 80:
		return Success
	case pct >= 50:
		return Accent
	case pct > 0:
		return Warning
	default:
		return TextDim
	}
}
