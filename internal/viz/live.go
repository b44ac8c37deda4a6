package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/nbodysim/internal/compute"
	"github.com/san-kum/nbodysim/internal/nbody"
)

const (
	historyCapacity  = 300
	maxStepsPerFrame = 4096
)

// LiveOptions configures the terminal view. Zero values take defaults.
type LiveOptions struct {
	// Width and Height are the canvas size in cells.
	Width, Height int
	StepsPerFrame int
	// TrailLength is the number of positions kept per body.
	TrailLength int
	FPS         int
	// Extent is the distance in AU from the centre to the nearest edge at
	// zoom 1.
	Extent float64
}

func (o LiveOptions) withDefaults() LiveOptions {
	if o.Width <= 0 {
		o.Width = 80
	}
	if o.Height <= 0 {
		o.Height = 24
	}
	if o.StepsPerFrame <= 0 {
		o.StepsPerFrame = 20
	}
	if o.TrailLength <= 0 {
		o.TrailLength = 400
	}
	if o.FPS <= 0 {
		o.FPS = 30
	}
	if o.Extent <= 0 {
		o.Extent = 32
	}
	return o
}

type TickMsg time.Time

// trail is a fixed-size ring of past positions.
type trail struct {
	pts  []nbody.Vec3
	next int
	full bool
}

func newTrail(n int) *trail { return &trail{pts: make([]nbody.Vec3, n)} }

func (t *trail) push(p nbody.Vec3) {
	t.pts[t.next] = p
	t.next = (t.next + 1) % len(t.pts)
	if t.next == 0 {
		t.full = true
	}
}

func (t *trail) len() int {
	if t.full {
		return len(t.pts)
	}
	return t.next
}

// each visits positions oldest first.
func (t *trail) each(fn func(nbody.Vec3)) {
	start := 0
	if t.full {
		start = t.next
	}
	for i := 0; i < t.len(); i++ {
		fn(t.pts[(start+i)%len(t.pts)])
	}
}

func (t *trail) reset() { t.next, t.full = 0, false }

// Model is the bubbletea model of the live orbit view. It owns its system
// and steps it with the configured backend on every tick.
type Model struct {
	backend compute.Backend
	opts    LiveOptions

	initial nbody.System
	state   nbody.System
	step    int
	energy0 float64
	drift   []float64

	canvas   *Canvas
	camera   *Camera
	trails   [nbody.NumBodies]*trail
	running  bool
	showHelp bool
}

// NewModel normalizes x0 and prepares the view.
func NewModel(backend compute.Backend, x0 nbody.System, opts LiveOptions) Model {
	opts = opts.withDefaults()
	nbody.OffsetMomentum(&x0)

	m := Model{
		backend: backend,
		opts:    opts,
		initial: x0,
		state:   x0,
		energy0: nbody.Energy(&x0),
		drift:   make([]float64, 0, historyCapacity),
		canvas:  NewCanvas(opts.Width, opts.Height),
		camera:  NewCamera(opts.Extent),
		running: true,
	}
	for b := range m.trails {
		m.trails[b] = newTrail(opts.TrailLength)
	}
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input and advances the simulation on ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "p":
			m.running = !m.running
		case ".":
			if !m.running {
				m.advance(1)
			}
		case "r":
			m.reset()
		case "]":
			m.opts.StepsPerFrame = min(m.opts.StepsPerFrame*2, maxStepsPerFrame)
		case "[":
			m.opts.StepsPerFrame = max(m.opts.StepsPerFrame/2, 1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "left", "h":
			m.camera.Rotate(-0.1)
		case "right", "l":
			m.camera.Rotate(0.1)
		case "up", "k":
			m.camera.TiltBy(0.1)
		case "down", "j":
			m.camera.TiltBy(-0.1)
		case "0":
			m.camera.Reset()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		w, h := max(msg.Width-52, 20), max(msg.Height-4, 8)
		if w != m.canvas.Width || h != m.canvas.Height {
			m.canvas = NewCanvas(w, h)
		}
	case TickMsg:
		if m.running {
			m.advance(m.opts.StepsPerFrame)
		}
		return m, m.tick()
	}
	return m, nil
}

// advance steps the system n times, sampling trails every step and the
// energy once at the end.
func (m *Model) advance(n int) {
	for i := 0; i < n; i++ {
		m.backend.Advance(&m.state)
		m.step++
		for b := range m.state {
			m.trails[b].push(m.state[b].Position)
		}
	}
	d := (nbody.Energy(&m.state) - m.energy0) / math.Abs(m.energy0)
	if len(m.drift) == historyCapacity {
		copy(m.drift, m.drift[1:])
		m.drift = m.drift[:historyCapacity-1]
	}
	m.drift = append(m.drift, d)
}

func (m *Model) reset() {
	m.state = m.initial
	m.step = 0
	m.drift = m.drift[:0]
	for _, t := range m.trails {
		t.reset()
	}
}

// Step is the number of advances performed since the last reset.
func (m Model) Step() int { return m.step }

// State returns a copy of the current system.
func (m Model) State() nbody.System { return m.state }

func (m Model) Running() bool { return m.running }

func (m *Model) draw() {
	m.canvas.Clear()
	w, h := m.canvas.DotSize()
	for b, t := range m.trails {
		t.each(func(p nbody.Vec3) {
			if x, y, ok := m.camera.Project(p, w, h); ok {
				m.canvas.Set(x, y)
			}
		})
		if x, y, ok := m.camera.Project(m.state[b].Position, w, h); ok {
			r := 1
			if b == nbody.Star {
				r = 2
			}
			m.canvas.Disc(x, y, r)
		}
	}
}

// View renders the orbit canvas next to a stats panel.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render("N-BODY  "+m.backend.Name()) + "\n")
	if m.running {
		s.WriteString(statusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(statusPaused.Render("PAUSED") + "\n\n")
	}

	energy := nbody.Energy(&m.state)
	kinetic := nbody.KineticEnergy(&m.state)
	s.WriteString(labelStyle.Render("Step") + valueStyle.Render(fmt.Sprintf("%d", m.step)) + "\n")
	s.WriteString(labelStyle.Render("Years") + valueStyle.Render(fmt.Sprintf("%.2f", float64(m.step)*nbody.TimeStep)) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.9f", energy)) + "\n")
	s.WriteString(labelStyle.Render("Kinetic") + valueStyle.Render(fmt.Sprintf("%.6f", kinetic)) + "\n")
	s.WriteString(labelStyle.Render("Potential") + valueStyle.Render(fmt.Sprintf("%.6f", energy-kinetic)) + "\n")
	s.WriteString(labelStyle.Render("Drift") + valueStyle.Render(fmt.Sprintf("%.3e", (energy-m.energy0)/math.Abs(m.energy0))) + "\n")
	s.WriteString(labelStyle.Render("Steps/frm") + valueStyle.Render(fmt.Sprintf("%d", m.opts.StepsPerFrame)) + "\n")
	s.WriteString(labelStyle.Render("Zoom") + valueStyle.Render(fmt.Sprintf("%.2fx", m.camera.Zoom)) + "\n")

	if chart := Chart(m.drift, 30, 4, "relative energy drift"); chart != "" {
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString("\n")
	star := m.state[nbody.Star].Position
	for b := range m.state {
		r := m.state[b].Position.Sub(star).Norm()
		pad := strings.Repeat(" ", 9-len(nbody.Names[b]))
		s.WriteString(fmt.Sprintf("%s%s%6.2f AU\n", BodyName(b), pad, r))
	}

	s.WriteString(helpStyle.Render("SP:Pause R:Reset Q:Quit ?:Help"))
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

const helpText = `
  Space/P  pause or resume        .      single step while paused
  R        reset to start         [ ]    halve or double steps per frame
  + -      zoom                   ← →    rotate about the pole
  ↑ ↓      tilt the view          0      reset the camera
  ?        toggle this help       Q      quit
`
