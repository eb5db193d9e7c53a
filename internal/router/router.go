// Package router holds the active TUI screen and swaps it on request.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cropcast/internal/screen"
)

// ReplaceScreenMsg asks the router to make Screen the active screen.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router owns the active screen. A screen hands off to the next one with
// ReplaceScreenMsg; there is no back stack.
type Router struct {
	active screen.Screen
}

func New(initial screen.Screen) *Router {
	return &Router{active: initial}
}

// Replace makes s the active screen and calls its Init().
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	r.active = s
	if s == nil {
		return nil
	}
	return s.Init()
}

func (r *Router) Active() screen.Screen {
	return r.active
}

// Update handles ReplaceScreenMsg and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(ReplaceScreenMsg); ok {
		return r.Replace(msg.Screen)
	}
	if r.active == nil {
		return nil
	}

	updated, cmd := r.active.Update(msg)
	r.active = updated
	return cmd
}

func (r *Router) View(width, height int) string {
	if r.active == nil {
		return ""
	}
	return r.active.View(width, height)
}
