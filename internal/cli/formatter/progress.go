package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderShare renders a percentage as a bar like [████░░░░]  30%.
// The bar is clamped to 0..100; the label shows the value as given.
func RenderShare(pct float64, width int, style lipgloss.Style) string {
	if width < 2 {
		width = 2
	}

	frac := pct / 100
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	filled := int(frac*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	empty := width - filled

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)
	return fmt.Sprintf("[%s] %s%%", style.Render(bar), FormatNumber(pct))
}

// SoilBars renders one labelled bar per soil fraction.
func SoilBars(clay, sand, silt float64, width int) string {
	rows := []struct {
		label string
		pct   float64
		style lipgloss.Style
	}{
		{"Clay", clay, StyleBrown},
		{"Sand", sand, StyleYellow},
		{"Silt", silt, StyleAqua},
	}

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, fmt.Sprintf("%-5s %s", r.label, RenderShare(r.pct, width, r.style)))
	}
	return strings.Join(lines, "\n")
}
