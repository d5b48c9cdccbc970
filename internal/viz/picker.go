package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sphstep/internal/integrator"
	"github.com/san-kum/sphstep/internal/scenario"
)

const (
	screenMenu = iota
	screenParams
	screenRun
)

var pickerParams = []string{"spacing", "nx", "ny", "courant", "seed"}

// Picker is the top-level TUI: choose a scenario, tweak the layout
// parameters, then hand off to the live view.
type Picker struct {
	registry *scenario.Registry
	infos    []scenario.Info
	screen   int
	cursor   int

	params      scenario.Params
	courant     float64
	paramCursor int
	editing     bool
	editBuf     string
	errMsg      string

	live Model
}

func NewPicker() Picker {
	reg := scenario.NewRegistry()
	return Picker{
		registry: reg,
		infos:    reg.List(),
		params:   scenario.DefaultParams(),
		courant:  integrator.DefaultCourant,
	}
}

func (p Picker) Init() tea.Cmd { return nil }

func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return p.handleKey(msg)
	default:
		if p.screen == screenRun {
			live, cmd := p.live.Update(msg)
			p.live = live.(Model)
			return p, cmd
		}
	}
	return p, nil
}

func (p Picker) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch p.screen {
	case screenMenu:
		return p.menuKey(msg)
	case screenParams:
		return p.paramsKey(msg)
	default:
		live, cmd := p.live.Update(msg)
		p.live = live.(Model)
		return p, cmd
	}
}

func (p Picker) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.infos)-1 {
			p.cursor++
		}
	case "enter", " ":
		p.screen, p.paramCursor, p.errMsg = screenParams, 0, ""
	}
	return p, nil
}

func (p Picker) paramsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if p.editing {
		switch msg.String() {
		case "enter":
			var val float64
			fmt.Sscanf(p.editBuf, "%f", &val)
			p.setParam(p.paramCursor, val)
			p.editing, p.editBuf = false, ""
		case "escape":
			p.editing, p.editBuf = false, ""
		case "backspace":
			if len(p.editBuf) > 0 {
				p.editBuf = p.editBuf[:len(p.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					p.editBuf += string(c)
				}
			}
		}
		return p, nil
	}
	switch msg.String() {
	case "q", "escape":
		p.screen, p.errMsg = screenMenu, ""
	case "ctrl+c":
		return p, tea.Quit
	case "up", "k":
		if p.paramCursor > 0 {
			p.paramCursor--
		}
	case "down", "j":
		if p.paramCursor < len(pickerParams)-1 {
			p.paramCursor++
		}
	case "enter", " ":
		p.editing, p.editBuf = true, strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", p.paramValue(p.paramCursor)), "0"), ".")
	case "left", "h":
		p.nudgeParam(-1)
	case "right", "l":
		p.nudgeParam(1)
	case "s":
		cmd := p.start()
		return p, cmd
	}
	return p, nil
}

func (p Picker) paramValue(i int) float64 {
	switch pickerParams[i] {
	case "spacing":
		return p.params.Spacing
	case "nx":
		return float64(p.params.NX)
	case "ny":
		return float64(p.params.NY)
	case "courant":
		return p.courant
	default:
		return float64(p.params.Seed)
	}
}

func (p *Picker) setParam(i int, v float64) {
	switch pickerParams[i] {
	case "spacing":
		if v > 0 {
			p.params.Spacing = v
		}
	case "nx":
		if v >= 1 {
			p.params.NX = int(v)
		}
	case "ny":
		if v >= 1 {
			p.params.NY = int(v)
		}
	case "courant":
		if v > 0 && v <= 1 {
			p.courant = v
		}
	default:
		p.params.Seed = int64(v)
	}
}

func (p *Picker) nudgeParam(dir int) {
	switch pickerParams[p.paramCursor] {
	case "spacing":
		p.setParam(p.paramCursor, p.params.Spacing+float64(dir)*0.005)
	case "courant":
		p.setParam(p.paramCursor, p.courant+float64(dir)*0.05)
	default:
		p.setParam(p.paramCursor, p.paramValue(p.paramCursor)+float64(dir))
	}
}

// start builds the selected scenario and switches to the live view.
func (p *Picker) start() tea.Cmd {
	name := p.infos[p.cursor].Name
	setup, err := p.registry.Get(name, p.params)
	if err != nil {
		p.errMsg = err.Error()
		return nil
	}
	drv, err := integrator.New(setup.Groups, setup.Schemes,
		integrator.WithPipeline(setup.Pipeline),
		integrator.WithCourant(p.courant))
	if err != nil {
		p.errMsg = err.Error()
		return nil
	}
	p.live = NewModel(name, drv, setup.Dt, setup.Duration)
	p.screen, p.errMsg = screenRun, ""
	return p.live.Init()
}

func (p Picker) View() string {
	switch p.screen {
	case screenMenu:
		return p.viewMenu()
	case screenParams:
		return p.viewParams()
	default:
		return p.live.View()
	}
}

func (p Picker) viewMenu() string {
	th := CurrentTheme
	title := lipgloss.NewStyle().Foreground(th.Primary).Bold(true)
	sub := lipgloss.NewStyle().Foreground(th.Muted)
	active := lipgloss.NewStyle().Foreground(th.Text).Bold(true)
	about := lipgloss.NewStyle().Foreground(th.Accent)
	dimmed := lipgloss.NewStyle().Foreground(th.Muted)

	var b strings.Builder
	b.WriteString("\n\n    " + title.Render("SPHSTEP") + "\n")
	b.WriteString("    " + sub.Render("smoothed particle hydrodynamics sandbox") + "\n")
	b.WriteString("    " + sub.Render(strings.Repeat("─", 40)) + "\n\n")
	for i, info := range p.infos {
		if i == p.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n",
				about.Render("▸"),
				active.Render(fmt.Sprintf("%-14s", info.Name)),
				about.Render(info.About)))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n",
				dimmed.Render(fmt.Sprintf("%-14s", info.Name)),
				dimmed.Render(info.About)))
		}
	}
	b.WriteString("\n    " + sub.Render("j/k navigate  enter select  q quit") + "\n")
	return b.String()
}

func (p Picker) viewParams() string {
	th := CurrentTheme
	title := lipgloss.NewStyle().Foreground(th.Primary).Bold(true)
	sub := lipgloss.NewStyle().Foreground(th.Muted)
	active := lipgloss.NewStyle().Foreground(th.Text).Bold(true)
	accent := lipgloss.NewStyle().Foreground(th.Accent).Bold(true)
	dimmed := lipgloss.NewStyle().Foreground(th.Muted)
	errStyle := lipgloss.NewStyle().Foreground(th.Error)

	info := p.infos[p.cursor]
	var b strings.Builder
	b.WriteString("\n\n    " + title.Render(strings.ToUpper(info.Name)) + "\n")
	b.WriteString("    " + sub.Render(info.About) + "\n")
	b.WriteString("    " + sub.Render(strings.Repeat("─", 40)) + "\n\n")
	for i, name := range pickerParams {
		valStr := fmt.Sprintf("%8.3f", p.paramValue(i))
		if p.editing && i == p.paramCursor {
			valStr = fmt.Sprintf("%8s", p.editBuf+"_")
		}
		if i == p.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n",
				accent.Render("▸"),
				active.Render(fmt.Sprintf("%-10s", name)),
				accent.Render(valStr)))
		} else {
			b.WriteString(fmt.Sprintf("      %s %s\n",
				dimmed.Render(fmt.Sprintf("%-10s", name)),
				dimmed.Render(valStr)))
		}
	}
	if p.errMsg != "" {
		b.WriteString("\n    " + errStyle.Render(p.errMsg) + "\n")
	}
	b.WriteString("\n    " + sub.Render("j/k select  h/l adjust  enter edit  s start  esc back") + "\n")
	return b.String()
}

// RunPicker starts the interactive scenario browser.
func RunPicker() error {
	_, err := tea.NewProgram(NewPicker(), tea.WithAltScreen()).Run()
	return err
}
