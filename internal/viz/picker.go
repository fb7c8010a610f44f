package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Sciguy324/QuantumSimulator/internal/scenarios"
)

const (
	stateMenu = iota
	stateSim
)

// App wraps the live viewer in a scenario menu for invocations that
// do not name one up front.
type App struct {
	state  int
	cursor int
	names  []string
	descs  map[string]string
	live   Model
	err    error
}

func NewApp() App {
	names := scenarios.Names()
	descs := make(map[string]string, len(names))
	for _, name := range names {
		if scen, err := scenarios.Get(name); err == nil {
			descs[name] = scen.Description
		}
	}
	return App{state: stateMenu, names: names, descs: descs}
}

func (a App) Init() tea.Cmd { return nil }

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		return a.handleKey(key)
	}
	if a.state == stateSim {
		newLive, cmd := a.live.Update(msg)
		a.live = newLive.(Model)
		return a, cmd
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.state {
	case stateMenu:
		return a.menuKey(msg)
	case stateSim:
		// Esc backs out to the menu; everything else belongs to
		// the viewer.
		if msg.String() == "esc" {
			a.state = stateMenu
			return a, nil
		}
		newLive, cmd := a.live.Update(msg)
		a.live = newLive.(Model)
		return a, cmd
	}
	return a, nil
}

func (a App) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return a, tea.Quit
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.cursor < len(a.names)-1 {
			a.cursor++
		}
	case "enter", " ":
		live, err := NewModel(a.names[a.cursor])
		if err != nil {
			a.err = err
			return a, nil
		}
		a.live, a.err = live, nil
		a.state = stateSim
		return a, a.live.Init()
	}
	return a, nil
}

func (a App) View() string {
	if a.state == stateSim {
		return a.live.View()
	}
	var b strings.Builder
	b.WriteString("\n\n    " + titleStyle.Render("QUANTUM SIMULATOR") + "\n")
	b.WriteString("    " + subStyle.Render("time-dependent schrodinger playground") + "\n")
	b.WriteString("    " + subStyle.Render("─────────────────────────") + "\n\n")
	for i, name := range a.names {
		desc := a.descs[name]
		if i == a.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n",
				cursorStyle.Render("▸"),
				pickedStyle.Render(fmt.Sprintf("%-24s", name)),
				accentStyle.Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n",
				itemStyle.Render(fmt.Sprintf("  %-24s", name)),
				descStyle.Render(desc)))
		}
	}
	if a.err != nil {
		b.WriteString("\n    " + errorStyle.Render(a.err.Error()) + "\n")
	}
	b.WriteString("\n    " + helpStyle.Render("j/k navigate  enter select  q quit") + "\n")
	return b.String()
}

// RunPicker opens the scenario menu and blocks until the user quits.
func RunPicker() error {
	_, err := tea.NewProgram(NewApp(), tea.WithAltScreen()).Run()
	return err
}
