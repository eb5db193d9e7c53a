package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cropcast/internal/ui/theme"
)

const bannerArt = `
  ___ ___  ___  ___  ___   _   ___ _____
 / __| _ \/ _ \| _ \/ __| /_\ / __|_   _|
| (__|   / (_) |  _/ (__ / _ \\__ \ | |
 \___|_|_\\___/|_|  \___/_/ \_\___/ |_|`

const bannerCompact = "C R O P C A S T"

// RenderBanner returns the banner, or a one-line fallback under 44 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 44 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
