// Package gui provides the windowed viewer on raylib: one simulation
// step per frame, line strips for one-dimensional states, per-cell
// rectangles for two-dimensional ones, and the same key bindings as
// the terminal viewer.
package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/Sciguy324/QuantumSimulator/internal/observables"
	"github.com/Sciguy324/QuantumSimulator/internal/propagators"
	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
	"github.com/Sciguy324/QuantumSimulator/internal/scenarios"
	"github.com/Sciguy324/QuantumSimulator/internal/sim"
	"github.com/Sciguy324/QuantumSimulator/internal/viz"
)

var (
	colBg      = rl.NewColor(10, 10, 12, 255)
	colCurve   = rl.NewColor(120, 220, 232, 255)
	colText    = rl.NewColor(200, 200, 200, 255)
	colTextDim = rl.NewColor(110, 110, 110, 255)
	colAxis    = rl.NewColor(44, 44, 52, 255)
	colError   = rl.NewColor(235, 90, 90, 255)
)

type App struct {
	scen *scenarios.Scenario
	sys  quantum.System
	sim  *sim.Simulator

	psi     quantum.State
	initial quantum.State
	t       float64
	dt      float64

	mode     scenarios.RenderMode
	colormap viz.Colormap
	field    []float64

	running bool
	quit    bool
	err     error

	showEnergy bool
	showFPS    bool

	energy *observables.Energy
	norm   *observables.Norm

	width, height int
	font          rl.Font
}

// NewApp builds a windowed viewer for the named scenario with its
// bundled numerical settings.
func NewApp(name string) (*App, error) {
	scen, err := scenarios.Get(name)
	if err != nil {
		return nil, err
	}
	sys, psi, err := scen.Build()
	if err != nil {
		return nil, err
	}
	prop, err := propagators.New(scen.Defaults.Propagator, scen.Defaults.Order)
	if err != nil {
		return nil, err
	}
	boundary, err := quantum.BoundaryByName(scen.Defaults.Boundary)
	if err != nil {
		return nil, err
	}
	s := sim.New(sys, prop, boundary)
	if err := s.Prepare(); err != nil {
		return nil, err
	}

	mode := scen.View.Mode
	if mode == "" {
		mode = scenarios.SquareModulus
	}
	width, height := scen.View.Width, scen.View.Height
	if width <= 0 || height <= 0 {
		width, height = 1000, 750
	}

	return &App{
		scen:       scen,
		sys:        sys,
		sim:        s,
		psi:        psi,
		initial:    psi.Clone(),
		dt:         scen.Defaults.Dt,
		mode:       mode,
		colormap:   viz.Viridis,
		field:      make([]float64, len(psi)),
		running:    !scen.View.StartPaused,
		showEnergy: true,
		energy:     observables.NewEnergy(),
		norm:       observables.NewNorm(),
		width:      width,
		height:     height,
	}, nil
}

// Run opens the window for one scenario and blocks until it closes.
func Run(name string) error {
	app, err := NewApp(name)
	if err != nil {
		return err
	}
	rl.InitWindow(int32(app.width), int32(app.height), "qsim :: "+name)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
	app.font = rl.GetFontDefault()

	for !rl.WindowShouldClose() && !app.quit {
		app.Update()
		app.Draw()
	}
	return nil
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		a.quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.running = !a.running
	}
	if rl.IsKeyPressed(rl.KeyRight) && !a.running {
		a.step()
	}
	if rl.IsKeyPressed(rl.KeyM) {
		a.cycleMode()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		a.cycleColormap()
	}
	if rl.IsKeyPressed(rl.KeyE) {
		a.showEnergy = !a.showEnergy
	}
	if rl.IsKeyPressed(rl.KeyF) {
		a.showFPS = !a.showFPS
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.reset()
	}

	if a.running && a.err == nil {
		a.step()
	}
}

func (a *App) step() {
	next, err := a.sim.Step(a.psi, a.dt)
	if err != nil {
		a.err = err
		a.running = false
		return
	}
	a.psi = next
	a.t += a.dt
}

func (a *App) reset() {
	a.t = 0
	a.psi = a.initial.Clone()
	a.err = nil
	a.running = !a.scen.View.StartPaused
}

func (a *App) cycleMode() {
	switch a.mode {
	case scenarios.SquareModulus:
		a.mode = scenarios.RealPart
	case scenarios.RealPart:
		a.mode = scenarios.ImaginaryPart
	default:
		a.mode = scenarios.SquareModulus
	}
}

func (a *App) cycleColormap() {
	names := viz.ColormapNames()
	for i, name := range names {
		if name == a.colormap.Name {
			a.colormap = viz.ColormapByName(names[(i+1)%len(names)])
			return
		}
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(colBg)

	if a.scen.Dim == 2 {
		a.drawHeatmap()
	} else {
		a.drawCurve()
	}
	a.drawHUD()

	rl.EndDrawing()
}

func (a *App) drawHUD() {
	a.drawText("qsim", 24, 18, 22, colText)
	a.drawText(":: "+a.scen.Name, 92, 23, 15, colTextDim)

	status, col := "RUNNING", colText
	if !a.running {
		status, col = "PAUSED", colTextDim
	}
	if a.err != nil {
		status, col = "STOPPED: "+a.err.Error(), colError
	}
	a.drawText(status, 24, 46, 15, col)

	y := 70
	a.drawText(fmt.Sprintf("t: %.3f", a.t), 24, y, 15, colText)
	y += 20
	if a.showEnergy {
		a.drawText(fmt.Sprintf("E: %.4f", a.energy.Sample(a.sys, a.psi, a.t)), 24, y, 15, colText)
		y += 20
	}
	a.drawText(fmt.Sprintf("norm: %.6f", a.norm.Sample(a.sys, a.psi, a.t)), 24, y, 15, colText)
	y += 20
	a.drawText("mode: "+string(a.mode), 24, y, 15, colTextDim)

	if a.showFPS {
		a.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 24, a.height-28, 14, colTextDim)
	}
	a.drawText("[SPACE] PAUSE  [RIGHT] STEP  [M] MODE  [C] COLORS  [E] ENERGY  [F] FPS  [R] RESET  [Q] QUIT",
		180, a.height-28, 14, colTextDim)
}

func (a *App) drawText(text string, x, y, size int, color rl.Color) {
	rl.DrawTextEx(a.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
