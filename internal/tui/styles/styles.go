// Package styles centralizes the dashboard's lipgloss styles. The
// palette adapts to the terminal background so the sidebar stays
// readable on light themes.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	// Colors chosen for contrast on both dark and light backgrounds.
	PrimaryColor = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"} // Purple
	SuccessColor = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#10B981"} // Green
	WarningColor = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"} // Amber
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"} // Red
	MutedColor   = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"} // Gray
	TextColor    = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F9FAFB"}
	BorderColor  = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}

	// Sidebar
	SidebarBox = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(BorderColor).
			PaddingRight(1)

	ProcessName = lipgloss.NewStyle().
			Foreground(TextColor)

	ProcessNameFocused = lipgloss.NewStyle().
				Bold(true).
				Foreground(PrimaryColor)

	// Status badges
	StatusRunning  = lipgloss.NewStyle().Foreground(SuccessColor)
	StatusSuccess  = lipgloss.NewStyle().Bold(true).Foreground(SuccessColor)
	StatusError    = lipgloss.NewStyle().Bold(true).Foreground(ErrorColor)
	StatusWaiting  = lipgloss.NewStyle().Foreground(WarningColor)
	StatusInactive = lipgloss.NewStyle().Foreground(MutedColor)

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Foreground(MutedColor)

	StatusBarKey = lipgloss.NewStyle().
			Bold(true).
			Foreground(SuccessColor)

	StatusBarMode = lipgloss.NewStyle().
			Bold(true).
			Foreground(WarningColor)
)

// SpinnerColor is the running marker's color, the success pair
// resolved against the detected terminal background. The spinner
// redraws every tick, so the background is queried once here rather
// than per frame.
func SpinnerColor() lipgloss.Color {
	if termenv.HasDarkBackground() {
		return lipgloss.Color(SuccessColor.Dark)
	}
	return lipgloss.Color(SuccessColor.Light)
}
