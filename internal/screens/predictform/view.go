package predictform

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cropcast/internal/present"
	"github.com/abhisek/cropcast/internal/ui/components"
	"github.com/abhisek/cropcast/internal/ui/layout"
	"github.com/abhisek/cropcast/internal/ui/theme"
)

const (
	labelWidth     = 16
	sideBySideMin  = 110
	confettiHeight = 4
)

func (s *Screen) View(width, height int) string {
	left := s.renderForm()
	right := s.renderResults(width, height)

	if right == "" {
		return left
	}
	if width >= sideBySideMin {
		return lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)
	}
	return left + "\n" + right
}

func (s *Screen) renderForm() string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("  Soil and climate"))
	b.WriteString("\n\n")

	for _, in := range s.inputs {
		b.WriteString(in.View(labelWidth))
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(s.button.View())
	b.WriteString("\n")

	if s.state.Err != "" {
		b.WriteString("\n  ")
		b.WriteString(theme.ErrorText.Render("✗ " + s.state.Err))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *Screen) renderResults(width, height int) string {
	rows := present.Present(s.state.Predictions)
	celebrating := s.confetti != nil && s.confetti.Active()
	if len(rows) == 0 && !celebrating {
		return ""
	}

	colWidth := width - 4
	if width >= sideBySideMin {
		colWidth = width - labelWidth - inputWidth - 24
	}

	var b strings.Builder
	if celebrating {
		b.WriteString(s.confetti.View(colWidth, confettiHeight))
		b.WriteString("\n")
	}
	b.WriteString(theme.Title.Render("  Top recommendations"))
	b.WriteString("\n")

	compact := layout.IsCompactHeight(height)
	for _, r := range rows {
		if compact {
			b.WriteString(renderRowLine(r, colWidth))
		} else {
			b.WriteString(renderRowCard(r, colWidth))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func rowHeading(r present.RankedView) string {
	rank := lipgloss.NewStyle().Foreground(theme.TextDim).Width(5).Render(r.RankLabel)
	name := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(r.DisplayName)
	crop := lipgloss.NewStyle().Foreground(theme.TextDim).Render("(" + r.Crop + ")")
	return rank + name + " " + crop
}

func tierBadge(r present.RankedView) string {
	return theme.TierStyle(r.Tier).Render(fmt.Sprintf("%s · %s", r.Tier, r.Tier.Badge()))
}

// renderRowLine is the one-line form used on short terminals.
func renderRowLine(r present.RankedView, width int) string {
	barWidth := width - 50
	if barWidth < 6 {
		barWidth = 6
	}
	bar := components.NewProgressBar(r.Probability, barWidth, theme.TierColor(r.Tier)).View()
	return "  " + rowHeading(r) + "  " + bar + "  " + tierBadge(r)
}

func renderRowCard(r present.RankedView, width int) string {
	inner := width - 6
	if inner < 20 {
		inner = 20
	}
	bar := components.NewProgressBar(r.Probability, inner-10, theme.TierColor(r.Tier)).View()

	body := rowHeading(r) + "\n" + bar + "\n" + tierBadge(r)
	return theme.Card.
		BorderForeground(theme.TierColor(r.Tier)).
		Width(inner).
		Render(body)
}
