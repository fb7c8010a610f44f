package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Heatmap renders a scalar field as colored half blocks, packing two
// field rows into each terminal line: the upper row colors the
// foreground of '▀', the lower row its background. f is called with
// column and row indices, row 0 at the top.
func Heatmap(f func(col, row int) float64, cols, rows int, vmin, vmax float64, cm Colormap) string {
	var b strings.Builder
	for top := 0; top < rows; top += 2 {
		if top > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < cols; col++ {
			fg := cm.Hex(Normalize(f(col, top), vmin, vmax))
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
			if top+1 < rows {
				bg := cm.Hex(Normalize(f(col, top+1), vmin, vmax))
				style = style.Background(lipgloss.Color(bg))
			}
			b.WriteString(style.Render("▀"))
		}
	}
	return b.String()
}
