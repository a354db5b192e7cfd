package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"casetrail/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorAqua   = lipgloss.Color("#689d6a")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleAqua   = lipgloss.NewStyle().Foreground(ColorAqua)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
)

// tokenStyles maps the display color tokens stored on projects and contact
// categories to terminal styles. Unknown tokens render undecorated.
var tokenStyles = map[string]lipgloss.Style{
	"green":  StyleGreen,
	"yellow": StyleYellow,
	"red":    StyleRed,
	"blue":   StyleBlue,
	"purple": StylePurple,
	"teal":   StyleAqua,
	"amber":  StyleYellow,
	"gray":   StyleDim,
}

// Token renders text in the style named by the entity's color token.
func Token(color, text string) string {
	if style, ok := tokenStyles[color]; ok {
		return style.Render(text)
	}
	return text
}

// StatusStyle returns the style for a plan item status.
func StatusStyle(status domain.PlanItemStatus) lipgloss.Style {
	switch status {
	case domain.ItemDone:
		return StyleGreen
	case domain.ItemInProgress:
		return StyleYellow
	case domain.ItemDropped:
		return StyleDim
	default:
		return StyleFg
	}
}

// PriorityIndicator returns a colored priority marker such as "! Critical".
func PriorityIndicator(p domain.Priority) string {
	switch p {
	case domain.PriorityCritical:
		return StyleRed.Render("! Critical")
	case domain.PriorityHigh:
		return StyleYellow.Render("High")
	case domain.PriorityLow:
		return StyleDim.Render("Low")
	default:
		return StyleFg.Render("Normal")
	}
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}
