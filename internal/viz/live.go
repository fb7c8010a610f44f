package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/Sciguy324/QuantumSimulator/internal/observables"
	"github.com/Sciguy324/QuantumSimulator/internal/propagators"
	"github.com/Sciguy324/QuantumSimulator/internal/quantum"
	"github.com/Sciguy324/QuantumSimulator/internal/scenarios"
	"github.com/Sciguy324/QuantumSimulator/internal/sim"
)

const (
	canvasCols = 64
	canvasRows = 16
	heatCols   = 60
	heatRows   = 40

	historyCapacity = 300
)

type TickMsg time.Time

// frame is one recorded step of the live run, kept for scrubbing.
type frame struct {
	psi quantum.State
	t   float64
}

// Model is the terminal viewer: it owns a running simulation, a ring
// of recent frames for scrubbing, and the render settings.
type Model struct {
	scen *scenarios.Scenario
	sys  quantum.System
	sim  *sim.Simulator

	psi     quantum.State
	initial quantum.State
	t       float64
	dt      float64

	mode     scenarios.RenderMode
	colormap Colormap
	canvas   *Canvas
	field    []float64

	running bool
	err     error

	history  []frame
	playHead int
	pool     *sim.StatePool

	energy        *observables.Energy
	norm          *observables.Norm
	energyHistory []float64

	fps      float64
	lastTick time.Time

	showEnergy bool
	showFPS    bool
	showHelp   bool
}

// NewModel builds a viewer for the named scenario with its bundled
// numerical settings.
func NewModel(name string) (Model, error) {
	scen, err := scenarios.Get(name)
	if err != nil {
		return Model{}, err
	}
	sys, psi, err := scen.Build()
	if err != nil {
		return Model{}, err
	}
	prop, err := propagators.New(scen.Defaults.Propagator, scen.Defaults.Order)
	if err != nil {
		return Model{}, err
	}
	boundary, err := quantum.BoundaryByName(scen.Defaults.Boundary)
	if err != nil {
		return Model{}, err
	}
	s := sim.New(sys, prop, boundary)
	if err := s.Prepare(); err != nil {
		return Model{}, err
	}

	mode := scen.View.Mode
	if mode == "" {
		mode = scenarios.SquareModulus
	}

	return Model{
		scen:          scen,
		sys:           sys,
		sim:           s,
		psi:           psi,
		initial:       psi.Clone(),
		dt:            scen.Defaults.Dt,
		mode:          mode,
		colormap:      Viridis,
		canvas:        NewCanvas(canvasCols, canvasRows),
		field:         make([]float64, len(psi)),
		running:       !scen.View.StartPaused,
		playHead:      -1,
		pool:          sim.NewStatePool(len(psi)),
		energy:        observables.NewEnergy(),
		norm:          observables.NewNorm(),
		energyHistory: make([]float64, 0, historyCapacity),
		history:       make([]frame, 0, historyCapacity),
		showEnergy:    true,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input and advances the simulation one step per tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "right":
			if !m.running {
				if m.playHead == -1 {
					m.step()
				} else {
					m.scrub(1)
				}
			}
		case "left":
			m.scrub(-1)
		case "m":
			m.cycleMode()
		case "c":
			m.cycleColormap()
		case "e":
			m.showEnergy = !m.showEnergy
		case "f":
			m.showFPS = !m.showFPS
		case "r":
			m.reset()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		m.tickFPS(time.Time(msg))
		if m.running && m.err == nil {
			if m.playHead == -1 {
				m.step()
			} else {
				m.playHead++
				if m.playHead >= len(m.history) {
					m.playHead = -1
				}
			}
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// step advances the live state one frame and records it.
func (m *Model) step() {
	next, err := m.sim.Step(m.psi, m.dt)
	if err != nil {
		m.err = err
		m.running = false
		return
	}
	m.psi = next
	m.t += m.dt

	m.energyHistory = append(m.energyHistory, m.energy.Sample(m.sys, m.psi, m.t))
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}

	m.history = append(m.history, frame{psi: m.pool.GetAndCopy(m.psi), t: m.t})
	if len(m.history) > historyCapacity {
		m.pool.Put(m.history[0].psi)
		m.history = m.history[1:]
	}
}

// scrub moves the playback position through the recorded frames.
// Scrubbing out of a live view pauses it first.
func (m *Model) scrub(dir int) {
	if m.playHead == -1 {
		if len(m.history) == 0 {
			return
		}
		m.playHead = len(m.history) - 1
		m.running = false
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

// reset restores the initial state and drops the recorded frames.
func (m *Model) reset() {
	m.t = 0
	m.psi = m.initial.Clone()
	m.err = nil
	m.running = !m.scen.View.StartPaused
	m.playHead = -1
	for _, f := range m.history {
		m.pool.Put(f.psi)
	}
	m.history = m.history[:0]
	m.energyHistory = m.energyHistory[:0]
}

func (m *Model) cycleMode() {
	switch m.mode {
	case scenarios.SquareModulus:
		m.mode = scenarios.RealPart
	case scenarios.RealPart:
		m.mode = scenarios.ImaginaryPart
	default:
		m.mode = scenarios.SquareModulus
	}
}

func (m *Model) cycleColormap() {
	names := ColormapNames()
	for i, name := range names {
		if name == m.colormap.Name {
			m.colormap = ColormapByName(names[(i+1)%len(names)])
			return
		}
	}
}

func (m *Model) tickFPS(now time.Time) {
	if !m.lastTick.IsZero() {
		if d := now.Sub(m.lastTick).Seconds(); d > 0 {
			inst := 1.0 / d
			if m.fps == 0 {
				m.fps = inst
			} else {
				m.fps += 0.1 * (inst - m.fps)
			}
		}
	}
	m.lastTick = now
}

// View renders the field canvas next to the stats panel.
func (m Model) View() string {
	psi, t := m.psi, m.t
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	if m.playHead >= 0 && m.playHead < len(m.history) {
		snap := m.history[m.playHead]
		psi, t = snap.psi, snap.t
		status = fmt.Sprintf("REPLAY %d/%d", m.playHead+1, len(m.history))
	}
	if m.err != nil {
		status = errorStyle.Render("STOPPED: " + m.err.Error())
	}

	canvasView := canvasStyle.Render(m.renderField(psi))

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.scen.Name)) + "\n")
	s.WriteString(status + "\n\n")
	if m.showEnergy && len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.3f", t)) + "\n")
	if m.showEnergy {
		e := m.energy.Sample(m.sys, psi, t)
		s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.4f", e)) + "\n")
	}
	s.WriteString(labelStyle.Render("Norm") + valueStyle.Render(fmt.Sprintf("%.6f", m.norm.Sample(m.sys, psi, t))) + "\n")
	s.WriteString(labelStyle.Render("Mode") + valueStyle.Render(string(m.mode)) + "\n")
	s.WriteString(labelStyle.Render("Scheme") + valueStyle.Render(m.scen.Defaults.Propagator) + "\n")
	if m.scen.Dim == 2 {
		s.WriteString(labelStyle.Render("Colors") + valueStyle.Render(m.colormap.Name) + "\n")
	}
	if m.showFPS {
		s.WriteString(labelStyle.Render("FPS") + valueStyle.Render(fmt.Sprintf("%.0f", m.fps)) + "\n")
	}
	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause →:Step ←:Rewind M:Mode\nE:Energy F:FPS R:Reset ?:Help Q:Quit"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return helpOverlay + "\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  Right    - Single step while paused ║
║  Left     - Scrub back through the   ║
║             recent frames            ║
║  M        - Cycle render mode        ║
║  C        - Cycle colormap (2D)      ║
║  E        - Toggle energy readout    ║
║  F        - Toggle FPS readout       ║
║  R        - Reset to initial state   ║
║  ?        - Toggle this help         ║
║  Q/Esc    - Quit                     ║
╚══════════════════════════════════════╝`

func (m Model) renderField(psi quantum.State) string {
	if m.scen.Dim == 2 {
		return m.renderHeatmap(psi)
	}
	return m.renderSeries(psi)
}

func (m Model) sampleMode(psi quantum.State) []float64 {
	switch m.mode {
	case scenarios.RealPart:
		return psi.Real(m.field)
	case scenarios.ImaginaryPart:
		return psi.Imag(m.field)
	default:
		return psi.SquareModulus(m.field)
	}
}

// ResolveExtent returns the plot window for a one-dimensional view:
// the scenario's hint when it set one, otherwise the grid x-range and
// a [0, 5] density axis. The real and imaginary modes get a symmetric
// value axis.
func ResolveExtent(scen *scenarios.Scenario, g *quantum.Grid, mode scenarios.RenderMode) Extent {
	v := scen.View.Extent
	ext := Extent{XMin: v[0], XMax: v[1], YMin: v[2], YMax: v[3]}
	if ext.XMax <= ext.XMin {
		xs := g.Axes[0]
		ext.XMin, ext.XMax = xs[0], xs[len(xs)-1]
	}
	if ext.YMax <= ext.YMin {
		ext.YMin, ext.YMax = 0, 5
	}
	if mode != scenarios.SquareModulus {
		ext.YMin = -ext.YMax
	}
	return ext
}

// ResolveVRange returns the color range for a two-dimensional view,
// defaulting to [0, 2] and going symmetric for the signed modes.
func ResolveVRange(scen *scenarios.Scenario, mode scenarios.RenderMode) (float64, float64) {
	vmin, vmax := scen.View.VMin, scen.View.VMax
	if vmax <= vmin {
		vmin, vmax = 0, 2
	}
	if mode != scenarios.SquareModulus {
		vmin = -vmax
	}
	return vmin, vmax
}

func (m Model) renderSeries(psi quantum.State) string {
	vals := m.sampleMode(psi)
	ext := ResolveExtent(m.scen, m.sys.Grid(), m.mode)
	m.canvas.Clear()
	m.canvas.DrawSeries(ext, m.sys.Grid().Axes[0], vals)
	for _, c := range m.scen.View.Curves {
		m.canvas.DrawCurve(ext, c.F)
	}
	return m.canvas.String()
}

func (m Model) renderHeatmap(psi quantum.State) string {
	g := m.sys.Grid()
	nx, ny := g.Shape[0], g.Shape[1]
	vals := m.sampleMode(psi)
	vmin, vmax := ResolveVRange(m.scen, m.mode)

	// Screen rows run top down, the y axis runs bottom up.
	f := func(col, row int) float64 {
		ix := col * nx / heatCols
		iy := ny - 1 - row*ny/heatRows
		return vals[ix*ny+iy]
	}
	return Heatmap(f, heatCols, heatRows, vmin, vmax, m.colormap)
}

// Run opens the live viewer for one scenario and blocks until the
// user quits.
func Run(name string) error {
	m, err := NewModel(name)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
