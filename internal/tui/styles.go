package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gaikwadakash1402/gaikwadakash1402.github.io/internal/chat"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			PaddingRight(2)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Padding(0, 1)

	activeTabStyle = tabStyle.
			Foreground(lipgloss.Color("15")).
			Bold(true)

	selectedTabStyle = tabStyle.
				Underline(true)

	widgetStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(0, 1)

	widgetTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("12"))

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	userStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Align(lipgloss.Right)
	botStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	loadingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func messageStyle(role chat.Role) lipgloss.Style {
	switch role {
	case chat.RoleUser:
		return userStyle
	case chat.RoleBotLoading:
		return loadingStyle
	case chat.RoleBotError:
		return errorStyle
	default:
		return botStyle
	}
}
