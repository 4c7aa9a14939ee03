package tui

import "github.com/charmbracelet/lipgloss"

var (
	// General document container (margins, padding)
	docStyle = lipgloss.NewStyle().
			Margin(1, 2)

	// Welcome screen styles
	welcomeTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("62")). // Purple
				Padding(1, 0)
	welcomePromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{
			Light: "#A49FA5",
			Dark:  "#777777",
		})

	// Section headers (genre prompt, progress, summary)
	listHeaderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("240")). // Gray
			MarginBottom(1).
			PaddingBottom(1)
	listItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	// Status / error messages
	statusMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{
			Light: "#04B575",
			Dark:  "#04B575",
		}) // Green
	errorMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("9")) // Red

	// URLs (login screen, output path)
	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // Blue
			Underline(true)
)
