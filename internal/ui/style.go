package ui

import "github.com/charmbracelet/lipgloss"

var (
	urgentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	highStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	normalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	archivedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	reviewStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	clockedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
)

// ColorPriority renders a priority label in its conventional color:
// gray for Low, green for Normal, orange for High, red for Urgent.
func ColorPriority(label string) string {
	if !ansiEnabled() {
		return label
	}
	switch label {
	case "Urgent":
		return urgentStyle.Render(label)
	case "High":
		return highStyle.Render(label)
	case "Normal":
		return normalStyle.Render(label)
	case "Low":
		return lowStyle.Render(label)
	default:
		return label
	}
}

// ColorArchived renders an archived marker.
func ColorArchived(label string) string {
	if !ansiEnabled() {
		return label
	}
	return archivedStyle.Render(label)
}

// ColorReview renders a marked-for-review marker.
func ColorReview(label string) string {
	if !ansiEnabled() {
		return label
	}
	return reviewStyle.Render(label)
}

// ColorClockedIn renders a clocked-in marker.
func ColorClockedIn(label string) string {
	if !ansiEnabled() {
		return label
	}
	return clockedStyle.Render(label)
}
