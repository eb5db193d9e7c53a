package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cropcast/internal/form"
	"github.com/abhisek/cropcast/internal/ui/theme"
)

// NumericInput wraps bubbles/textinput and drops any edit that would leave
// a value the form filter rejects.
type NumericInput struct {
	Model textinput.Model
	Spec  form.Spec
}

// NewNumericInput creates an unfocused input for spec.
func NewNumericInput(spec form.Spec, width int) NumericInput {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholderFor(spec)
	// No length cap: the form filter alone decides what is accepted, as it
	// does for the predict and ask commands.
	ti.CharLimit = 0
	if width > 0 {
		ti.SetWidth(width)
	}
	return NumericInput{Model: ti, Spec: spec}
}

func placeholderFor(s form.Spec) string {
	return trimFloat(s.Min) + "-" + trimFloat(s.Max)
}

// Focus gives the input keyboard focus.
func (n *NumericInput) Focus() tea.Cmd {
	return n.Model.Focus()
}

func (n *NumericInput) Blur() {
	n.Model.Blur()
}

func (n NumericInput) Focused() bool {
	return n.Model.Focused()
}

// Update forwards msg and reverts the edit if the new value is rejected.
func (n NumericInput) Update(msg tea.Msg) (NumericInput, tea.Cmd) {
	prev, pos := n.Model.Value(), n.Model.Position()

	var cmd tea.Cmd
	n.Model, cmd = n.Model.Update(msg)
	if !form.Accepts(n.Model.Value()) {
		n.Model.SetValue(prev)
		n.Model.SetCursor(pos)
	}
	return n, cmd
}

// SetValue replaces the text, ignoring values the filter rejects.
func (n *NumericInput) SetValue(v string) {
	if form.Accepts(v) {
		n.Model.SetValue(v)
		n.Model.CursorEnd()
	}
}

func (n NumericInput) Value() string {
	return n.Model.Value()
}

// View renders the field label, the input and its unit on one line.
func (n NumericInput) View(labelWidth int) string {
	labelStyle := theme.Unselected
	marker := "  "
	if n.Focused() {
		labelStyle = theme.Selected
		marker = "▸ "
	}
	label := labelStyle.Width(labelWidth).Render(marker + n.Spec.Label)
	unit := lipgloss.NewStyle().Foreground(theme.TextDim).Render(n.Spec.Unit)
	return label + " " + n.Model.View() + " " + unit
}
