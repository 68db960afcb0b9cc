package render

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	colorPrimary   = lipgloss.Color("12")  // bright blue
	colorSecondary = lipgloss.Color("10")  // bright green
	colorDimmed    = lipgloss.Color("240") // gray
	colorHighlight = lipgloss.Color("11")  // bright yellow
	colorBorder    = lipgloss.Color("238") // dark gray

	styleTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleHeader = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true).
			Padding(0, 1)

	styleCell = lipgloss.NewStyle().
			Padding(0, 1)

	styleNumber = styleCell.
			Align(lipgloss.Right)

	styleBar = lipgloss.NewStyle().
			Foreground(colorSecondary)

	styleNote = lipgloss.NewStyle().
			Foreground(colorDimmed)

	styleBorder = lipgloss.NewStyle().
			Foreground(colorBorder)
)
