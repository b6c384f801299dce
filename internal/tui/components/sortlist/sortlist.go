// Package sortlist provides a TUI component for reordering a vertical list
// of rows by dragging them with the mouse. It is the terminal
// implementation of the drag engine's container and surface: rows are laid
// out one per line, the grip glyph at the left edge of each row is the drag
// handle, and displaced rows slide out of the way while a drag is in
// flight.
package sortlist

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

const (
	// handleGlyph is the grip drawn at the left edge of every row.
	handleGlyph = "≡"

	// frameInterval is the delay between animation frames (~60fps).
	frameInterval = time.Second / 60
)

// Item is one sortable entry.
type Item struct {
	Label string
}

// Styles defines the visual styling for the sort list
type Styles struct {
	Row         lipgloss.Style
	Handle      lipgloss.Style
	Dragging    lipgloss.Style
	Shadow      lipgloss.Style
	Placeholder lipgloss.Style
	Help        lipgloss.Style
}

// DefaultStyles returns the default styles for the sort list
func DefaultStyles() Styles {
	return Styles{
		Row:         lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Handle:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Dragging:    lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Shadow:      lipgloss.NewStyle().Foreground(lipgloss.Color("239")),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		Help:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// keyMap holds the component's keybindings.
type keyMap struct {
	Help key.Binding
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Help, k.Quit}}
}
