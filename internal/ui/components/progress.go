package components

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cropcast/internal/ui/theme"
)

// ProgressBar displays a horizontal bar for a percentage in [0,100].
type ProgressBar struct {
	Percent float64
	Width   int
	Fill    color.Color
}

func NewProgressBar(percent float64, width int, fill color.Color) ProgressBar {
	return ProgressBar{Percent: percent, Width: width, Fill: fill}
}

// View renders the bar followed by the percentage with two decimals.
func (p ProgressBar) View() string {
	width := p.Width
	if width < 4 {
		width = 4
	}

	filled := int(float64(width) * p.Percent / 100)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}

	bar := lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", width-filled))

	return bar + lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(fmt.Sprintf(" %6.2f%%", p.Percent))
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
