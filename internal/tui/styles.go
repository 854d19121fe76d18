package tui

import "github.com/charmbracelet/lipgloss"

var (
	purple    = lipgloss.Color("99")
	gray      = lipgloss.Color("245")
	lightGray = lipgloss.Color("241")
	red       = lipgloss.Color("203")
)

type styles struct {
	header    lipgloss.Style
	menuKey   lipgloss.Style
	menuItem  lipgloss.Style
	hint      lipgloss.Style
	panel     lipgloss.Style
	panelName lipgloss.Style
	errorText lipgloss.Style
	preview   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		header:    lipgloss.NewStyle().Foreground(purple).Bold(true),
		menuKey:   lipgloss.NewStyle().Foreground(purple).Bold(true),
		menuItem:  lipgloss.NewStyle().Foreground(gray),
		hint:      lipgloss.NewStyle().Foreground(lightGray),
		panel:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(purple).Padding(0, 1),
		panelName: lipgloss.NewStyle().Foreground(purple),
		errorText: lipgloss.NewStyle().Foreground(red),
		preview:   lipgloss.NewStyle().Foreground(lightGray).Italic(true),
	}
}
