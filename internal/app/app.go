// Package app wires the TUI: router, frame, and the prediction form.
package app

import (
	"context"
	"fmt"
	"net/url"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/cropcast/internal/predict"
	"github.com/abhisek/cropcast/internal/router"
	"github.com/abhisek/cropcast/internal/screen"
	"github.com/abhisek/cropcast/internal/screens/predictform"
	"github.com/abhisek/cropcast/internal/screens/welcome"
	"github.com/abhisek/cropcast/internal/ui/components"
	"github.com/abhisek/cropcast/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Predictor predict.Predictor
	Endpoint  string
	Timeout   time.Duration
	Celebrate bool
	Logger    *zap.Logger
	// SkipSplash starts directly on the form.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	status string
	width  int
	height int
}

func newAppModel(ctx context.Context, opts Options) AppModel {
	var confetti *components.Confetti
	pipelineOpts := []predict.PipelineOption{
		predict.WithLogger(opts.Logger),
		predict.WithSubmitTimeout(opts.Timeout),
	}
	if opts.Celebrate {
		confetti = components.NewConfetti(uint64(time.Now().UnixNano()))
		pipelineOpts = append(pipelineOpts, predict.WithCelebrator(confetti.Fire))
	}
	pipeline := predict.NewPipeline(opts.Predictor, pipelineOpts...)

	formScreen := func() screen.Screen {
		return predictform.New(ctx, pipeline, confetti)
	}

	var initial screen.Screen = welcome.New(formScreen)
	if opts.SkipSplash {
		initial = formScreen()
	}

	return AppModel{
		router: router.New(initial),
		status: endpointLabel(opts.Endpoint),
	}
}

// endpointLabel shortens the service URL for the header.
func endpointLabel(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return endpoint
	}
	return "● " + u.Host
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m, m.router.Update(msg)
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	return []layout.KeyHint{
		{Key: "any key", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the full frame as a string.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	title := ""
	if active := m.router.Active(); active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status, m.width)
	footer := layout.RenderFooter(m.footerHints(), m.width)

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	if opts.Predictor == nil {
		return fmt.Errorf("app: predictor is required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	p := tea.NewProgram(newAppModel(ctx, opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
