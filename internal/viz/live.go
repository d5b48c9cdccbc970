package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/sphstep/internal/metrics"
	"github.com/san-kum/sphstep/internal/particles"
	"github.com/san-kum/sphstep/internal/sim"
)

const (
	canvasCols      = 80
	canvasRows      = 24
	historyCapacity = 600
	maxSubSteps     = 64
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(44)
)

type TickMsg time.Time

// snapshot keeps a copy of every field array so a run can rewind to t=0.
type snapshot map[string][]float64

// Model drives a live particle run. Between frames it advances the
// stepper a few cycles, then scatters positions onto a braille canvas
// next to a stats panel.
type Model struct {
	name    string
	stepper sim.Stepper
	groups  []*particles.Group

	t, dt     float64 // dt is the last step actually taken
	requested float64
	duration  float64
	steps     int
	subSteps  int // integrator cycles per frame
	running   bool

	canvas                 *Canvas
	minX, maxX, minY, maxY float64 // plot window, grows but never shrinks

	energy     *metrics.KineticEnergy
	speed      *metrics.MaxSpeed
	energyHist []float64
	speedHist  []float64

	initial map[string]snapshot
	frame   int

	recording bool
	frames    []*image.Paletted
	showHelp  bool
	err       error
}

// NewModel wraps a configured stepper for interactive viewing. The
// requested dt is handed to the CFL estimate each cycle, so the run
// adapts on its own; duration only scales the progress bar.
func NewModel(name string, stepper sim.Stepper, dt, duration float64) Model {
	groups := stepper.Groups()
	m := Model{
		name:       name,
		stepper:    stepper,
		groups:     groups,
		requested:  dt,
		duration:   duration,
		subSteps:   4,
		running:    true,
		canvas:     NewCanvas(canvasCols, canvasRows),
		energy:     metrics.NewKineticEnergy(),
		speed:      metrics.NewMaxSpeed(),
		energyHist: make([]float64, 0, historyCapacity),
		speedHist:  make([]float64, 0, historyCapacity),
		initial:    snapshotGroups(groups),
	}
	m.resetBounds()
	return m
}

func (m Model) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the run between frames.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "t":
			NextTheme()
		case "+", "=":
			if m.subSteps < maxSubSteps {
				m.subSteps *= 2
			}
		case "-", "_":
			if m.subSteps > 1 {
				m.subSteps /= 2
			}
		case "g":
			if m.recording {
				if err := m.writeGIF(); err != nil {
					m.err = err
				}
				m.recording = false
				m.frames = nil
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		m.frame++
		if m.running && m.err == nil {
			m.advance()
		}
		m.draw()
		if m.recording {
			m.recordFrame()
		}
		return m, tick()
	}
	return m, nil
}

// advance runs a few integrator cycles and samples the metrics once.
func (m *Model) advance() {
	for i := 0; i < m.subSteps; i++ {
		dt := m.stepper.ComputeTimeStep(m.requested)
		if err := m.stepper.Integrate(m.t, dt, m.steps); err != nil {
			m.err = err
			m.running = false
			return
		}
		m.t += dt
		m.dt = dt
		m.steps++
	}
	m.energy.Observe(m.groups, m.t)
	m.speed.Observe(m.groups, m.t)
	m.energyHist = append(m.energyHist, m.energy.Value())
	if len(m.energyHist) > historyCapacity {
		m.energyHist = m.energyHist[1:]
	}
	m.speedHist = append(m.speedHist, m.speed.Value())
	if len(m.speedHist) > historyCapacity {
		m.speedHist = m.speedHist[1:]
	}
}

// reset restores every field array from the initial snapshot.
func (m *Model) reset() {
	for _, g := range m.groups {
		saved := m.initial[g.Name()]
		for name, vals := range saved {
			dst := g.Field(name)
			if dst == nil || len(dst) != len(vals) {
				continue
			}
			copy(dst, vals)
		}
	}
	m.t, m.dt, m.steps = 0, 0, 0
	m.err = nil
	m.energyHist = m.energyHist[:0]
	m.speedHist = m.speedHist[:0]
	m.energy.Reset()
	m.speed.Reset()
	m.resetBounds()
}

// resetBounds fits the plot window to the current particle extent with
// a small margin.
func (m *Model) resetBounds() {
	m.minX, m.maxX = math.Inf(1), math.Inf(-1)
	m.minY, m.maxY = math.Inf(1), math.Inf(-1)
	m.growBounds()
	if m.minX > m.maxX {
		m.minX, m.maxX, m.minY, m.maxY = 0, 1, 0, 1
		return
	}
	padX := 0.05 * (m.maxX - m.minX)
	padY := 0.05 * (m.maxY - m.minY)
	if padX == 0 {
		padX = 0.5
	}
	if padY == 0 {
		padY = 0.5
	}
	m.minX -= padX
	m.maxX += padX
	m.minY -= padY
	m.maxY += padY
}

// growBounds widens the window to cover every particle. It never
// shrinks, so the view stays steady once the flow settles.
func (m *Model) growBounds() {
	for _, g := range m.groups {
		x, y := g.Field("x"), g.Field("y")
		if x == nil || y == nil {
			continue
		}
		for i := range x {
			if x[i] < m.minX {
				m.minX = x[i]
			}
			if x[i] > m.maxX {
				m.maxX = x[i]
			}
			if y[i] < m.minY {
				m.minY = y[i]
			}
			if y[i] > m.maxY {
				m.maxY = y[i]
			}
		}
	}
}

// draw scatters every particle position onto the canvas.
func (m *Model) draw() {
	m.canvas.Clear()
	m.growBounds()
	pw, ph := m.canvas.PixelSize()
	spanX, spanY := m.maxX-m.minX, m.maxY-m.minY
	if spanX <= 0 {
		spanX = 1
	}
	if spanY <= 0 {
		spanY = 1
	}
	for _, g := range m.groups {
		x, y := g.Field("x"), g.Field("y")
		if x == nil || y == nil {
			continue
		}
		for i := range x {
			px := int((x[i] - m.minX) / spanX * float64(pw-1))
			py := (ph - 1) - int((y[i]-m.minY)/spanY*float64(ph-1))
			m.canvas.Set(px, py)
		}
	}
}

func (m Model) particleCount() int {
	n := 0
	for _, g := range m.groups {
		n += g.Len()
	}
	return n
}

// View renders the canvas and stats panel side by side.
func (m Model) View() string {
	th := CurrentTheme
	headerStyle := lipgloss.NewStyle().Foreground(th.Primary).Bold(true).MarginBottom(1)
	labelStyle := lipgloss.NewStyle().Foreground(th.Muted).Width(12)
	valueStyle := lipgloss.NewStyle().Foreground(th.Text)
	graphStyle := lipgloss.NewStyle().Foreground(th.Secondary).Padding(1, 0)
	helpStyle := lipgloss.NewStyle().Foreground(th.Muted).MarginTop(1)

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")

	status := lipgloss.NewStyle().Foreground(th.Success).Bold(true).Render(AnimatedSpinner(m.frame) + " RUNNING")
	if !m.running {
		status = lipgloss.NewStyle().Foreground(th.Warning).Bold(true).Render("PAUSED")
	}
	if m.recording {
		status += lipgloss.NewStyle().Foreground(th.Error).Bold(true).Render("  ● REC")
	}
	s.WriteString(status + "\n")

	if m.err != nil {
		s.WriteString(lipgloss.NewStyle().Foreground(th.Error).Bold(true).Render("ERROR") + "\n")
		s.WriteString(valueStyle.Width(38).Render(m.err.Error()) + "\n")
	}

	if len(m.energyHist) > 1 {
		chart := asciigraph.Plot(m.energyHist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	} else {
		s.WriteString("\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.3fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Step dt") + valueStyle.Render(fmt.Sprintf("%.2e", m.dt)) + "\n")
	s.WriteString(labelStyle.Render("Steps") + valueStyle.Render(fmt.Sprintf("%d", m.steps)) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%dx", m.subSteps)) + "\n")
	s.WriteString(labelStyle.Render("Particles") + valueStyle.Render(fmt.Sprintf("%d", m.particleCount())) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.4g", m.energy.Value())) + "\n")
	s.WriteString(labelStyle.Render("Max speed") + valueStyle.Render(fmt.Sprintf("%.4g", m.speed.Value())) + "\n")
	if len(m.speedHist) > 0 {
		s.WriteString(labelStyle.Render("") + SparklineChart(m.speedHist, 26) + "\n")
	}

	if m.duration > 0 {
		frac := m.t / m.duration
		s.WriteString("\n" + ProgressBar(frac, 26) + valueStyle.Render(fmt.Sprintf(" %3.0f%%", math.Min(frac, 1)*100)) + "\n")
	}

	s.WriteString("\nGROUPS\n")
	for _, g := range m.groups {
		s.WriteString(labelStyle.Render(g.Name()) + valueStyle.Render(fmt.Sprintf("%d", g.Len())) + "\n")
	}

	s.WriteString(helpStyle.Render("\n" + Separator(24) + "\nSP:Pause R:Reset Q:Quit\nT:Theme  G:Record ?:Help\n+/-:Speed"))

	canvasView := canvasStyle.Render(m.canvas.String())
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return helpOverlay() + "\n\n" + mainView
	}
	return mainView
}

func helpOverlay() string {
	return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume run         ║
║  R        - Reset to initial state   ║
║  Q        - Quit                     ║
║  +/-      - More/fewer steps a frame ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`
}

func snapshotGroups(groups []*particles.Group) map[string]snapshot {
	saved := make(map[string]snapshot, len(groups))
	for _, g := range groups {
		fields := make(snapshot)
		for _, name := range g.Names() {
			src := g.Field(name)
			dst := make([]float64, len(src))
			copy(dst, src)
			fields[name] = dst
		}
		saved[g.Name()] = fields
	}
	return saved
}

// recordFrame rasterizes the braille grid into a paletted image.
func (m *Model) recordFrame() {
	const cellW, cellH = 8, 16
	pw, ph := m.canvas.PixelSize()
	img := image.NewPaletted(image.Rect(0, 0, m.canvas.Width*cellW, m.canvas.Height*cellH), color.Palette{color.Black, color.White})
	dotW, dotH := cellW/2, cellH/4
	for py := 0; py < ph; py++ {
		for px := 0; px < pw; px++ {
			if !m.canvas.DotAt(px, py) {
				continue
			}
			for dy := 0; dy < dotH; dy++ {
				for dx := 0; dx < dotW; dx++ {
					img.SetColorIndex(px*dotW+dx, py*dotH+dy, 1)
				}
			}
		}
	}
	m.frames = append(m.frames, img)
}

func (m *Model) writeGIF() error {
	if len(m.frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 3)
	}
	f, err := os.Create(m.name + ".gif")
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}
