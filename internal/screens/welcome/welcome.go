// Package welcome is the splash screen shown before the prediction form.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cropcast/internal/router"
	"github.com/abhisek/cropcast/internal/screen"
	"github.com/abhisek/cropcast/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	sproutEnd    = 500 * time.Millisecond
	bannerAt     = 1500 * time.Millisecond
	totalDur     = 3000 * time.Millisecond
)

// sproutArt grows one stage per phase.
var sproutArt = []string{
	`
       .
    ___|___`,
	`
      \|/
    ___|___`,
	`     \ | /
      \|/
    ___|___`,
}

var sparkleFrames = []string{"✦", "✧"}

const tagline = "Know what to plant before you plant it."

type tickMsg time.Time

// WelcomeScreen animates a sprout and the banner, then hands over to the
// next screen on any key.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with next() on a keypress.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		if w.transitioned {
			return w, nil
		}
		return w, tick()

	case tea.KeyPressMsg:
		// Any key skips the animation.
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) stage() int {
	switch {
	case w.elapsed >= bannerAt:
		return 2
	case w.elapsed >= sproutEnd:
		return 1
	}
	return 0
}

func (w *WelcomeScreen) View(width, height int) string {
	sprout := lipgloss.NewStyle().Foreground(theme.Primary).Render(sproutArt[w.stage()])

	if w.elapsed >= sproutEnd {
		sparkle := sparkleFrames[w.tickCount%len(sparkleFrames)]
		s := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkle)
		lines := strings.Split(sprout, "\n")
		lines[len(lines)-1] = s + " " + lines[len(lines)-1] + " " + s
		sprout = strings.Join(lines, "\n")
	}

	sections := []string{sprout}

	if w.elapsed >= bannerAt {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(tagline),
			"",
			theme.Hint.Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}
