// Package ui implements the interactive chat widget and its styling,
// with light/dark mode support.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"TeleChat/internal/config"
)

var (
	// Light mode colors
	LightForeground = lipgloss.Color("#0b2545")
	LightPrimary    = lipgloss.Color("#13418f")
	LightAccent     = lipgloss.Color("#d32f6d")
	LightMuted      = lipgloss.Color("#8a94a6")
	LightBorder     = lipgloss.Color("#d6dae0")

	// Dark mode colors
	DarkForeground = lipgloss.Color("#e8ecf4")
	DarkPrimary    = lipgloss.Color("#6ea8ff")
	DarkAccent     = lipgloss.Color("#ff5c8d")
	DarkMuted      = lipgloss.Color("#5c677d")
	DarkBorder     = lipgloss.Color("#2a3850")

	// Semantic colors, same in both modes
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#43a047")
	Warning     = lipgloss.Color("#FFC107")
)

// Theme holds the current color scheme
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// ThemeByName resolves a configured theme name, auto-detecting when the
// name is empty or unknown.
func ThemeByName(name string) Theme {
	switch name {
	case config.ThemeDark:
		return DarkTheme()
	case config.ThemeLight:
		return LightTheme()
	default:
		return DetectTheme()
	}
}

// DetectTheme guesses light or dark from the terminal environment
func DetectTheme() Theme {
	// COLORFGBG is "foreground;background"; low background indexes are
	// dark terminals.
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}
	return LightTheme()
}

// Styles holds the lipgloss styles used by the widget
type Styles struct {
	Theme Theme

	Header         lipgloss.Style
	Badge          lipgloss.Style
	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	UserText       lipgloss.Style
	ErrorText      lipgloss.Style
	Muted          lipgloss.Style
	Spinner        lipgloss.Style
	Prompt         lipgloss.Style
	Notice         lipgloss.Style
	Banner         lipgloss.Style
	StatusOK       lipgloss.Style
	StatusBusy     lipgloss.Style
}

// NewStyles builds the style set for a theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),
		Badge: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),
		UserLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary).
			MarginTop(1),
		AssistantLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent).
			MarginTop(1),
		UserText: lipgloss.NewStyle().
			Foreground(theme.Foreground),
		ErrorText: lipgloss.NewStyle().
			Foreground(Destructive),
		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),
		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),
		Prompt: lipgloss.NewStyle().
			Foreground(theme.Primary),
		Notice: lipgloss.NewStyle().
			Foreground(Warning),
		Banner: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Accent).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 2),
		StatusOK: lipgloss.NewStyle().
			Foreground(Success),
		StatusBusy: lipgloss.NewStyle().
			Foreground(Warning),
	}
}

// DefaultStyles builds styles for the auto-detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// RenderDivider draws a horizontal rule across the given width
func (s Styles) RenderDivider(width int) string {
	if width <= 0 {
		width = 80
	}
	return s.Muted.Render(strings.Repeat("─", width))
}
