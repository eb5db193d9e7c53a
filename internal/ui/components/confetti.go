package components

import (
	"image/color"
	"math"
	"math/rand/v2"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cropcast/internal/predict"
	"github.com/abhisek/cropcast/internal/ui/theme"
)

// ConfettiFrames is how many Step calls a burst lives for.
const ConfettiFrames = 24

const gravity = 0.012

var confettiGlyphs = []string{"✦", "•", "*", "✧", "▪"}

type particle struct {
	x, y   float64
	vx, vy float64
	glyph  string
	color  color.Color
}

// Confetti is a terminal rendition of the success burst. Coordinates are
// fractions of the drawing area; y grows downwards.
type Confetti struct {
	particles []particle
	frames    int
	rng       *rand.Rand
}

// NewConfetti returns an idle burst. The seed makes renders reproducible.
func NewConfetti(seed uint64) *Confetti {
	return &Confetti{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Fire starts a burst. It matches predict.Celebrator.
func (c *Confetti) Fire(cfg predict.Confetti) {
	colors := []color.Color{theme.Primary, theme.Accent, theme.Secondary, theme.Success}
	half := float64(cfg.Spread) / 2 * math.Pi / 180

	c.particles = c.particles[:0]
	for i := 0; i < cfg.ParticleCount; i++ {
		// Angle around straight up, within the spread cone.
		angle := -math.Pi/2 + (c.rng.Float64()*2-1)*half
		speed := 0.04 + c.rng.Float64()*0.06
		c.particles = append(c.particles, particle{
			x:     0.5,
			y:     cfg.OriginY,
			vx:    math.Cos(angle) * speed,
			vy:    math.Sin(angle) * speed,
			glyph: confettiGlyphs[c.rng.IntN(len(confettiGlyphs))],
			color: colors[c.rng.IntN(len(colors))],
		})
	}
	c.frames = ConfettiFrames
}

func (c *Confetti) Active() bool {
	return c.frames > 0
}

// Step advances every particle one frame.
func (c *Confetti) Step() {
	if c.frames == 0 {
		return
	}
	for i := range c.particles {
		p := &c.particles[i]
		p.x += p.vx
		p.y += p.vy
		p.vy += gravity
		p.vx *= 0.96
	}
	c.frames--
	if c.frames == 0 {
		c.particles = c.particles[:0]
	}
}

// View draws the particles that fall inside a width x height area.
func (c *Confetti) View(width, height int) string {
	if !c.Active() || width <= 0 || height <= 0 {
		return ""
	}

	grid := make([][]string, height)
	for r := range grid {
		grid[r] = make([]string, width)
		for col := range grid[r] {
			grid[r][col] = " "
		}
	}
	for _, p := range c.particles {
		col := int(p.x * float64(width))
		row := int(p.y * float64(height))
		if col < 0 || col >= width || row < 0 || row >= height {
			continue
		}
		grid[row][col] = lipgloss.NewStyle().Foreground(p.color).Render(p.glyph)
	}

	rows := make([]string, height)
	for r := range grid {
		rows[r] = strings.Join(grid[r], "")
	}
	return strings.Join(rows, "\n")
}
