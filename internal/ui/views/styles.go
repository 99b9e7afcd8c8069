package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
	Help          lipgloss.Style
	Heading       lipgloss.Style
	Quote         lipgloss.Style
	Code          lipgloss.Style
	Marker        lipgloss.Style
	FocusMarker   lipgloss.Style
	PaletteBox    lipgloss.Style
	PaletteItem   lipgloss.Style
	PaletteActive lipgloss.Style
	PaletteIcon   lipgloss.Style
	Scroll        lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim:         lipgloss.NewStyle().Faint(true),
		Status:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Help:        lipgloss.NewStyle().Faint(true),
		Heading:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Quote:       lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("252")),
		Code:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Marker:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		FocusMarker: lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		PaletteBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")),
		PaletteItem:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		PaletteActive: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Background(lipgloss.Color("238")).Bold(true),
		PaletteIcon:   lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
}
