package components

import (
	"charm.land/bubbles/v2/spinner"

	"github.com/abhisek/cropcast/internal/ui/theme"
)

// Button is the form's submit control. While Busy it shows the spinner
// instead of the label.
type Button struct {
	Label     string
	BusyLabel string
	Busy      bool
	Spinner   spinner.Model
}

func NewButton(label, busyLabel string) Button {
	return Button{
		Label:     label,
		BusyLabel: busyLabel,
		Spinner:   spinner.New(spinner.WithSpinner(spinner.MiniDot)),
	}
}

// View renders the button. A busy button is drawn inactive.
func (b Button) View() string {
	if b.Busy {
		return theme.ButtonInactive.Render(b.Spinner.View() + " " + b.BusyLabel)
	}
	return theme.ButtonActive.Render("▸ " + b.Label)
}
