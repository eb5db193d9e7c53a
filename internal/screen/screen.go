// Package screen defines the contract between the router and each TUI view.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cropcast/internal/ui/layout"
)

// Screen is one full-window view managed by the router.
type Screen interface {
	Init() tea.Cmd

	// Update handles messages and returns the updated screen and command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
