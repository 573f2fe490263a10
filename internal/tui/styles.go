package tui

import "github.com/charmbracelet/lipgloss"

// Palette. Amber is the brand colour.
const (
	colorAmber  = lipgloss.Color("214")
	colorBrown  = lipgloss.Color("130")
	colorGray   = lipgloss.Color("245")
	colorRed    = lipgloss.Color("196")
	colorGreen  = lipgloss.Color("42")
	colorWhite  = lipgloss.Color("231")
	colorSelect = lipgloss.Color("57")
)

// Shared styles.
var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAmber)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			Background(colorBrown).
			Padding(0, 1)

	LabelStyle   = lipgloss.NewStyle().Foreground(colorGray)
	ValueStyle   = lipgloss.NewStyle().Bold(true)
	InfoStyle    = lipgloss.NewStyle().Foreground(colorAmber)
	SuccessStyle = lipgloss.NewStyle().Foreground(colorGreen)
	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	HelpStyle    = lipgloss.NewStyle().Foreground(colorGray).Italic(true)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAmber).
			Padding(0, 1)

	SelectedCardStyle = CardStyle.
				BorderForeground(colorWhite).
				Background(colorSelect)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(colorSelect)

	CurrentPageStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAmber).Underline(true)

	TableHeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorAmber).BorderBottom(true)
	TableSelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(colorSelect)
)
