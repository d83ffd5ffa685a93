package cli

import "github.com/charmbracelet/lipgloss"

var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle  = focusedStyle
	noStyle      = lipgloss.NewStyle()
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

	accountNameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	accountIDStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	accountActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

const (
	symbolSuccess = "✓"
	symbolFailure = "✗"
)
