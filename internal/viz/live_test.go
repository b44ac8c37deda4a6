package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/nbodysim/internal/compute"
	"github.com/san-kum/nbodysim/internal/nbody"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return nm
}

func reference(steps int) nbody.System {
	s := nbody.InitialState()
	nbody.OffsetMomentum(&s)
	for i := 0; i < steps; i++ {
		nbody.Advance(&s)
	}
	return s
}

func TestLiveModelStepping(t *testing.T) {
	m := NewModel(compute.NewScalarBackend(), nbody.InitialState(), LiveOptions{StepsPerFrame: 5, TrailLength: 8})

	m = update(t, m, TickMsg{})
	if m.Step() != 5 {
		t.Fatalf("expected 5 steps after one tick, got %d", m.Step())
	}

	m = update(t, m, key("p"))
	if m.Running() {
		t.Fatal("expected paused")
	}
	m = update(t, m, TickMsg{})
	if m.Step() != 5 {
		t.Errorf("paused tick advanced to %d", m.Step())
	}
	m = update(t, m, key("."))
	if m.Step() != 6 {
		t.Errorf("single step: expected 6, got %d", m.Step())
	}

	m = update(t, m, key("]"))
	m = update(t, m, key("p"))
	m = update(t, m, TickMsg{})
	if m.Step() != 16 {
		t.Errorf("expected 16 steps after doubling, got %d", m.Step())
	}
	if m.State() != reference(16) {
		t.Error("live state diverged from Advance")
	}

	m = update(t, m, key("r"))
	if m.Step() != 0 || m.State() != reference(0) {
		t.Error("reset did not restore the normalized start")
	}
}

func TestLiveModelTrail(t *testing.T) {
	tr := newTrail(3)
	for i := 1; i <= 5; i++ {
		tr.push(nbody.Vec3{float64(i)})
	}
	var got []float64
	tr.each(func(p nbody.Vec3) { got = append(got, p[0]) })
	if len(got) != 3 || got[0] != 3 || got[2] != 5 {
		t.Errorf("expected [3 4 5], got %v", got)
	}
	tr.reset()
	if tr.len() != 0 {
		t.Errorf("expected empty trail, got %d", tr.len())
	}
}

func TestLiveModelQuit(t *testing.T) {
	m := NewModel(compute.NewScalarBackend(), nbody.InitialState(), LiveOptions{})
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestLiveModelView(t *testing.T) {
	m := NewModel(compute.NewScalarBackend(), nbody.InitialState(), LiveOptions{Width: 40, Height: 12, StepsPerFrame: 10})
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	view := m.View()
	for _, want := range []string{"RUNNING", "scalar", "neptune", "-0.16907", "Kinetic", "Potential"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = update(t, m, key("?"))
	if !strings.Contains(m.View(), "single step while paused") {
		t.Error("help overlay not shown")
	}
}
