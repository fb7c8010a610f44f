package export

import (
	"errors"
	"strings"
	"testing"

	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
	"github.com/Sciguy324/QuantumSimulator/internal/scenarios"
	"github.com/Sciguy324/QuantumSimulator/internal/viz"
)

func buildScenario(t *testing.T, name string) (*scenarios.Scenario, *quantum.Grid, quantum.State) {
	t.Helper()
	scen, err := scenarios.Get(name)
	if err != nil {
		t.Fatalf("Get(%q): %v", name, err)
	}
	sys, psi, err := scen.Build()
	if err != nil {
		t.Fatalf("Build(%q): %v", name, err)
	}
	return scen, sys.Grid(), psi
}

func TestWavefunctionToSVGSeries(t *testing.T) {
	scen, g, psi := buildScenario(t, "harmonic")

	svg, err := WavefunctionToSVG(scen, g, psi, Options{})
	if err != nil {
		t.Fatalf("WavefunctionToSVG: %v", err)
	}
	if !strings.HasPrefix(svg, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Errorf("missing XML header: %.60q", svg)
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Errorf("missing closing tag: %.40q", svg[len(svg)-40:])
	}
	if !strings.Contains(svg, `width="960" height="540"`) {
		t.Error("expected the scenario's view size")
	}
	if !strings.Contains(svg, `fill="#0a0a0a"`) {
		t.Error("missing background rect")
	}
	// One path for the state plus one per reference curve.
	if got, want := strings.Count(svg, "<path"), 1+len(scen.View.Curves); got != want {
		t.Errorf("path count = %d, want %d", got, want)
	}
	if !strings.Contains(svg, `stroke="#ffff00"`) {
		t.Error("missing the potential curve stroke")
	}
	if !strings.Contains(svg, `stroke="#78dce8"`) {
		t.Error("missing the state stroke")
	}
	// The square modulus extent starts at zero, so no axis line.
	if strings.Contains(svg, "<line") {
		t.Error("unexpected zero axis for a non-negative extent")
	}
}

func TestWavefunctionToSVGSignedModeDrawsAxis(t *testing.T) {
	scen, g, psi := buildScenario(t, "harmonic")

	svg, err := WavefunctionToSVG(scen, g, psi, Options{Mode: scenarios.RealPart})
	if err != nil {
		t.Fatalf("WavefunctionToSVG: %v", err)
	}
	if got := strings.Count(svg, "<line"); got != 1 {
		t.Errorf("axis line count = %d, want 1", got)
	}
}

func TestWavefunctionToSVGHeatmap(t *testing.T) {
	scen, g, psi := buildScenario(t, "well2d")

	svg, err := WavefunctionToSVG(scen, g, psi, Options{})
	if err != nil {
		t.Fatalf("WavefunctionToSVG: %v", err)
	}
	// One rect per grid point plus the background.
	if got, want := strings.Count(svg, "<rect"), g.Size()+1; got != want {
		t.Errorf("rect count = %d, want %d", got, want)
	}
	if !strings.Contains(svg, `shape-rendering="crispEdges"`) {
		t.Error("missing crispEdges on the cell grid")
	}
	// The state vanishes on the box walls, mapping to the bottom of
	// the viridis ramp.
	if !strings.Contains(svg, `fill="#440154"`) {
		t.Error("missing the colormap floor on the walls")
	}
}

func TestWavefunctionToSVGHeatmapBoxes(t *testing.T) {
	scen, g, psi := buildScenario(t, "doubleslit")

	svg, err := WavefunctionToSVG(scen, g, psi, Options{})
	if err != nil {
		t.Fatalf("WavefunctionToSVG: %v", err)
	}
	if got, want := strings.Count(svg, "<rect"), g.Size()+1+len(scen.View.Boxes); got != want {
		t.Errorf("rect count = %d, want %d", got, want)
	}
	if got := strings.Count(svg, `stroke="#000000"`); got != len(scen.View.Boxes) {
		t.Errorf("barrier outline count = %d, want %d", got, len(scen.View.Boxes))
	}
}

func TestWavefunctionToSVGOptionOverrides(t *testing.T) {
	scen, g, psi := buildScenario(t, "well2d")

	svg, err := WavefunctionToSVG(scen, g, psi, Options{Width: 320, Height: 200, Colormap: viz.Grayscale})
	if err != nil {
		t.Fatalf("WavefunctionToSVG: %v", err)
	}
	if !strings.Contains(svg, `width="320" height="200"`) {
		t.Error("expected the override size")
	}
	if !strings.Contains(svg, `fill="#000000"`) {
		t.Error("expected the grayscale floor on the walls")
	}
}

func TestWavefunctionToSVGGridMismatch(t *testing.T) {
	scen, g, psi := buildScenario(t, "well")

	_, err := WavefunctionToSVG(scen, g, psi[:len(psi)-1], Options{})
	if !errors.Is(err, quantum.ErrGridMismatch) {
		t.Fatalf("err = %v, want ErrGridMismatch", err)
	}
}
