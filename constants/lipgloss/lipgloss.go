package lipgloss

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	Red     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	Yellow  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	Green   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	BlueSky = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	Gray    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	Info    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

	// BoxStyle frames summary blocks such as the session statistics.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(0, 1)
)

// DisableColors forces plain output for every style, e.g. when stdout is piped.
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
