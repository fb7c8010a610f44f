package viz

import (
	"fmt"
	"io"
	"time"

	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
)

var sparkRunes = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Follow is a lightweight progress view for headless runs: an
// observer that prints a density sparkline with time and energy on a
// single rewritten line, throttled to a frame rate.
type Follow struct {
	sys       quantum.System
	w         io.Writer
	frameRate int
	width     int
	lastFrame time.Time
	dens      []float64
	wrote     bool
}

func NewFollow(sys quantum.System, w io.Writer, frameRate int) *Follow {
	if frameRate < 1 {
		frameRate = 12
	}
	return &Follow{
		sys:       sys,
		w:         w,
		frameRate: frameRate,
		width:     48,
	}
}

func (f *Follow) OnStep(psi quantum.State, t float64) {
	if time.Since(f.lastFrame) < time.Second/time.Duration(f.frameRate) {
		return
	}
	f.lastFrame = time.Now()

	f.dens = psi.SquareModulus(f.dens)
	energy := quantum.Energy(f.sys, psi)
	fmt.Fprintf(f.w, "\r%s  t=%8.3f  E=%10.4f", sparkline(f.dens, f.width), t, energy)
	f.wrote = true
}

// Done terminates the rewritten line. Call it once after the run.
func (f *Follow) Done() {
	if f.wrote {
		fmt.Fprintln(f.w)
	}
}

// sparkline downsamples values to width runes scaled between the
// slice's own min and max.
func sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	rng := max - min
	if rng == 0 {
		rng = 1
	}
	step := len(values) / width
	if step < 1 {
		step = 1
	}
	out := make([]rune, 0, width)
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - min) / rng
		idx := int(norm * float64(len(sparkRunes)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkRunes) {
			idx = len(sparkRunes) - 1
		}
		out = append(out, sparkRunes[idx])
	}
	return string(out)
}
