package ui

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	colorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	colorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	colorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	colorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	colorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	colorSubtle = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			Background(colorBlue).
			Padding(0, 1)

	userLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(colorBlue)
	botLabelStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	contentStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	warningStyle   = lipgloss.NewStyle().Foreground(colorRed)
	separatorStyle = lipgloss.NewStyle().Foreground(colorSubtle)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorGray).
			Italic(true)
)
