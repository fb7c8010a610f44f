package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/Sciguy324/QuantumSimulator/internal/scenarios"
	"github.com/Sciguy324/QuantumSimulator/internal/viz"
)

const (
	plotMargin    = 48
	overlaySample = 240
)

func (a *App) sampleMode() []float64 {
	switch a.mode {
	case scenarios.RealPart:
		return a.psi.Real(a.field)
	case scenarios.ImaginaryPart:
		return a.psi.Imag(a.field)
	default:
		return a.psi.SquareModulus(a.field)
	}
}

// toScreen maps simulation coordinates into the plot area, clamping
// values that leave the extent.
func (a *App) toScreen(ext viz.Extent, x, y float64) rl.Vector2 {
	w := float64(a.width - 2*plotMargin)
	h := float64(a.height - 2*plotMargin)
	px := plotMargin + (x-ext.XMin)/(ext.XMax-ext.XMin)*w
	py := plotMargin + (ext.YMax-y)/(ext.YMax-ext.YMin)*h
	if py < plotMargin {
		py = plotMargin
	}
	if py > plotMargin+h {
		py = plotMargin + h
	}
	return rl.NewVector2(float32(px), float32(py))
}

// drawCurve renders the one-dimensional state as a line strip with
// the scenario's overlay curves behind it.
func (a *App) drawCurve() {
	vals := a.sampleMode()
	g := a.sys.Grid()
	ext := viz.ResolveExtent(a.scen, g, a.mode)

	if ext.YMin <= 0 && 0 <= ext.YMax {
		left := a.toScreen(ext, ext.XMin, 0)
		right := a.toScreen(ext, ext.XMax, 0)
		rl.DrawLineV(left, right, colAxis)
	}

	for _, c := range a.scen.View.Curves {
		points := make([]rl.Vector2, overlaySample)
		for i := range points {
			x := ext.XMin + (ext.XMax-ext.XMin)*float64(i)/float64(overlaySample-1)
			points[i] = a.toScreen(ext, x, c.F(x))
		}
		rl.DrawLineStrip(points, rl.NewColor(c.Color[0], c.Color[1], c.Color[2], 255))
	}

	xs := g.Axes[0]
	points := make([]rl.Vector2, len(xs))
	for i, x := range xs {
		points[i] = a.toScreen(ext, x, vals[i])
	}
	rl.DrawLineStrip(points, colCurve)
}

// drawHeatmap paints one rectangle per grid cell through the active
// colormap, then traces the scenario's overlay boxes.
func (a *App) drawHeatmap() {
	g := a.sys.Grid()
	nx, ny := g.Shape[0], g.Shape[1]
	vals := a.sampleMode()
	vmin, vmax := viz.ResolveVRange(a.scen, a.mode)

	cellW := float64(a.width) / float64(nx)
	cellH := float64(a.height) / float64(ny)
	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny; iy++ {
			c := a.colormap.At(viz.Normalize(vals[ix*ny+iy], vmin, vmax))
			px := int32(float64(ix) * cellW)
			py := int32(float64(ny-1-iy) * cellH)
			rl.DrawRectangle(px, py, int32(cellW)+1, int32(cellH)+1,
				rl.NewColor(c[0], c[1], c[2], 255))
		}
	}

	for _, b := range a.scen.View.Boxes {
		a.drawBox(b)
	}
}

func (a *App) drawBox(b scenarios.Box) {
	g := a.sys.Grid()
	xs, ys := g.Axes[0], g.Axes[1]
	xlo, xhi := xs[0], xs[len(xs)-1]
	ylo, yhi := ys[0], ys[len(ys)-1]

	px0 := int32((b.X0 - xlo) / (xhi - xlo) * float64(a.width))
	px1 := int32((b.X1 - xlo) / (xhi - xlo) * float64(a.width))
	py0 := int32((yhi - b.Y1) / (yhi - ylo) * float64(a.height))
	py1 := int32((yhi - b.Y0) / (yhi - ylo) * float64(a.height))
	rl.DrawRectangleLines(px0, py0, px1-px0, py1-py0,
		rl.NewColor(b.Color[0], b.Color[1], b.Color[2], 255))
}
