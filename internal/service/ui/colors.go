// Package ui holds the terminal palette shared by the CLI help, the setup
// wizard and the chat client. Only base ANSI colors are used so the output
// follows the user's terminal theme.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)
	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	DescStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	FlagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	// Chat transcript
	CustomerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	ShopStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	ErrorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)
