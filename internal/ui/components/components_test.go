package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cropcast/internal/form"
	"github.com/abhisek/cropcast/internal/predict"
)

func typeText(n NumericInput, s string) NumericInput {
	for _, r := range s {
		n, _ = n.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	return n
}

func phInput(t *testing.T) NumericInput {
	t.Helper()
	spec, ok := form.SpecFor(form.PH)
	if !ok {
		t.Fatal("missing ph spec")
	}
	n := NewNumericInput(spec, 10)
	n.Focus()
	return n
}

func TestNumericInput_FiltersRejectedKeys(t *testing.T) {
	n := typeText(phInput(t), "6a.5.-1")
	if got := n.Value(); got != "6.51" {
		t.Errorf("Value() = %q, want %q", got, "6.51")
	}
}

func TestNumericInput_BackspaceStillWorks(t *testing.T) {
	n := typeText(phInput(t), "7.2")
	n, _ = n.Update(tea.KeyPressMsg{Code: tea.KeyBackspace})
	if got := n.Value(); got != "7." {
		t.Errorf("Value() = %q, want %q", got, "7.")
	}
}

func TestNumericInput_KeepsLongDecimals(t *testing.T) {
	const long = "6.123456789012345"
	n := typeText(phInput(t), long)
	if got := n.Value(); got != long {
		t.Errorf("Value() = %q, want %q", got, long)
	}

	n.SetValue("2999.99999999999")
	if got := n.Value(); got != "2999.99999999999" {
		t.Errorf("SetValue truncated to %q", got)
	}
}

func TestNumericInput_SetValueIgnoresRejected(t *testing.T) {
	n := phInput(t)
	n.SetValue("5.5")
	n.SetValue("five")
	if got := n.Value(); got != "5.5" {
		t.Errorf("Value() = %q, want %q", got, "5.5")
	}
}

func TestNumericInput_ViewShowsLabelAndUnit(t *testing.T) {
	v := phInput(t).View(14)
	if !strings.Contains(v, "Soil pH") || !strings.Contains(v, "▸") {
		t.Errorf("focused view should carry label and marker: %q", v)
	}
}

func TestProgressBar(t *testing.T) {
	v := NewProgressBar(18, 20, nil).View()
	if !strings.Contains(v, "18.00%") {
		t.Errorf("expected percentage in %q", v)
	}
	over := NewProgressBar(250, 10, nil).View()
	if lipgloss.Width(over) != lipgloss.Width(NewProgressBar(0, 10, nil).View()) {
		t.Error("bar width should not depend on the percentage")
	}
}

func TestButton(t *testing.T) {
	b := NewButton("Predict", "Predicting")
	if !strings.Contains(b.View(), "Predict") {
		t.Error("idle button should show its label")
	}
	b.Busy = true
	if !strings.Contains(b.View(), "Predicting") {
		t.Error("busy button should show the busy label")
	}
}

func TestConfetti_Lifecycle(t *testing.T) {
	c := NewConfetti(1)
	if c.Active() || c.View(20, 5) != "" {
		t.Fatal("new confetti should be idle")
	}

	c.Fire(predict.DefaultConfetti)
	if !c.Active() || len(c.particles) != predict.DefaultConfetti.ParticleCount {
		t.Fatalf("expected %d particles, got %d", predict.DefaultConfetti.ParticleCount, len(c.particles))
	}
	if got := lipgloss.Height(c.View(40, 8)); got != 8 {
		t.Errorf("view height = %d, want 8", got)
	}

	for i := 0; i < ConfettiFrames; i++ {
		c.Step()
	}
	if c.Active() {
		t.Error("burst should end after ConfettiFrames steps")
	}
	c.Step()
}
