package ui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent   = lipgloss.Color("33")
	colorDim      = lipgloss.Color("240")
	colorError    = lipgloss.Color("160")
	colorActive   = lipgloss.Color("40")
	colorPaused   = lipgloss.Color("220")
	colorInactive = lipgloss.Color("240")
	colorWorkHour = lipgloss.Color("33")

	tabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(colorDim)

	tabActiveStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(colorAccent).
			Underline(true)

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	errStyle = lipgloss.NewStyle().
			Foreground(colorError)

	tagStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)

	barStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	workHourBarStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorWorkHour)
)

// bucketDot renders the recorder state indicator.
func bucketDot(bucket string, known bool) string {
	if !known {
		return dimStyle.Render("●") + " unknown"
	}
	switch bucket {
	case "active":
		return lipgloss.NewStyle().Foreground(colorActive).Render("●") + " recording"
	case "paused":
		return lipgloss.NewStyle().Foreground(colorPaused).Render("●") + " paused"
	default:
		return lipgloss.NewStyle().Foreground(colorInactive).Render("●") + " inactive"
	}
}
