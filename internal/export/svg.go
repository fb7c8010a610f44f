// Package export renders wavefunctions to standalone SVG images.
// One-dimensional states become a polyline over the scenario's
// reference curves; two-dimensional states become a colormapped cell
// grid with the scenario's overlay boxes on top. Extents, value
// ranges, and colormaps are resolved exactly as the live viewers
// resolve them, so an exported frame matches what the viewers show.
package export

import (
	"fmt"
	"strings"

	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
	"github.com/Sciguy324/QuantumSimulator/internal/scenarios"
	"github.com/Sciguy324/QuantumSimulator/internal/viz"
)

const curveSamples = 240

// Options tune an SVG export. Zero values fall back to the scenario's
// view settings, then to 640x480, square modulus, and viridis.
type Options struct {
	Width    int
	Height   int
	Mode     scenarios.RenderMode
	Colormap viz.Colormap
}

// WavefunctionToSVG renders psi over the grid it was sampled on.
func WavefunctionToSVG(scen *scenarios.Scenario, g *quantum.Grid, psi quantum.State, opts Options) (string, error) {
	if len(psi) != g.Size() {
		return "", fmt.Errorf("state has %d values for a %d point grid: %w", len(psi), g.Size(), quantum.ErrGridMismatch)
	}

	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = scen.View.Width
	}
	if height <= 0 {
		height = scen.View.Height
	}
	if width <= 0 {
		width = 640
	}
	if height <= 0 {
		height = 480
	}
	mode := opts.Mode
	if mode == "" {
		mode = scen.View.Mode
	}
	if mode == "" {
		mode = scenarios.SquareModulus
	}
	cm := opts.Colormap
	if cm.Name == "" {
		cm = viz.Viridis
	}

	field := sampleMode(psi, mode)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	if g.Dim() == 2 {
		writeHeatmap(&sb, scen, g, field, mode, cm, width, height)
	} else {
		writeSeries(&sb, scen, g, field, mode, width, height)
	}

	sb.WriteString("</svg>")
	return sb.String(), nil
}

// writeSeries plots a one-dimensional field as a path, with the
// scenario's reference curves underneath and a zero axis when the
// extent crosses it.
func writeSeries(sb *strings.Builder, scen *scenarios.Scenario, g *quantum.Grid, field []float64, mode scenarios.RenderMode, width, height int) {
	ext := viz.ResolveExtent(scen, g, mode)

	if ext.YMin < 0 && ext.YMax > 0 {
		_, py := pixel(ext, width, height, ext.XMin, 0)
		sb.WriteString(fmt.Sprintf(`<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#3c3c46" stroke-width="1"/>
`, py, width, py))
	}

	for _, c := range scen.View.Curves {
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="`, hexColor(c.Color)))
		step := (ext.XMax - ext.XMin) / float64(curveSamples-1)
		for i := 0; i < curveSamples; i++ {
			x := ext.XMin + float64(i)*step
			writePoint(sb, ext, width, height, i, x, c.F(x))
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString(`<path fill="none" stroke="#78dce8" stroke-width="1.5" d="`)
	for i, x := range g.Axes[0] {
		writePoint(sb, ext, width, height, i, x, field[i])
	}
	sb.WriteString("\"/>\n")
}

// writeHeatmap fills one rect per grid point, colormapped over the
// scenario's value range, then strokes the overlay boxes.
func writeHeatmap(sb *strings.Builder, scen *scenarios.Scenario, g *quantum.Grid, field []float64, mode scenarios.RenderMode, cm viz.Colormap, width, height int) {
	nx, ny := g.Shape[0], g.Shape[1]
	vmin, vmax := viz.ResolveVRange(scen, mode)
	cellW := float64(width) / float64(nx)
	cellH := float64(height) / float64(ny)

	sb.WriteString("<g shape-rendering=\"crispEdges\">\n")
	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny; iy++ {
			v := viz.Normalize(field[ix*ny+iy], vmin, vmax)
			px := float64(ix) * cellW
			py := float64(ny-1-iy) * cellH
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, px, py, cellW, cellH, cm.Hex(v)))
		}
	}
	sb.WriteString("</g>\n")

	xs, ys := g.Axes[0], g.Axes[1]
	xlo, xhi := xs[0], xs[len(xs)-1]
	ylo, yhi := ys[0], ys[len(ys)-1]
	for _, b := range scen.View.Boxes {
		px := (b.X0 - xlo) / (xhi - xlo) * float64(width)
		py := (yhi - b.Y1) / (yhi - ylo) * float64(height)
		bw := (b.X1 - b.X0) / (xhi - xlo) * float64(width)
		bh := (b.Y1 - b.Y0) / (yhi - ylo) * float64(height)
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s" stroke-width="1.5"/>
`, px, py, bw, bh, hexColor(b.Color)))
	}
}

// writePoint appends one M or L command, clamping y into the extent.
func writePoint(sb *strings.Builder, ext viz.Extent, width, height int, i int, x, y float64) {
	px, py := pixel(ext, width, height, x, y)
	if i == 0 {
		sb.WriteString(fmt.Sprintf("M%.1f,%.1f", px, py))
	} else {
		sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px, py))
	}
}

func pixel(ext viz.Extent, width, height int, x, y float64) (float64, float64) {
	px := (x - ext.XMin) / (ext.XMax - ext.XMin) * float64(width)
	py := float64(height) - (y-ext.YMin)/(ext.YMax-ext.YMin)*float64(height)
	if py < 0 {
		py = 0
	}
	if py > float64(height) {
		py = float64(height)
	}
	return px, py
}

func sampleMode(psi quantum.State, mode scenarios.RenderMode) []float64 {
	switch mode {
	case scenarios.RealPart:
		return psi.Real(nil)
	case scenarios.ImaginaryPart:
		return psi.Imag(nil)
	default:
		return psi.SquareModulus(nil)
	}
}

func hexColor(c [3]uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}
