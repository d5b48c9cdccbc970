package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/sphstep/internal/particles"
)

func testGroups() []*particles.Group {
	g := particles.New("fluid", 2, "x", "y", "u", "v", "m", "rho")
	g.Fill("m", 2.0)
	g.Set("u", 0, 3.0)
	g.Set("v", 0, 4.0)
	g.Set("rho", 0, 900.0)
	g.Set("rho", 1, 1100.0)
	return []*particles.Group{g}
}

func TestKineticEnergy(t *testing.T) {
	m := NewKineticEnergy()
	groups := testGroups()

	m.Observe(groups, 0)

	// 0.5 * 2 * (3^2 + 4^2) for the moving particle, zero for the other.
	if got, want := m.Value(), 25.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("expected energy %f, got %f", want, got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestTotalMass(t *testing.T) {
	m := NewTotalMass()
	m.Observe(testGroups(), 0)

	if got, want := m.Value(), 4.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("expected mass %f, got %f", want, got)
	}
}

func TestMaxSpeedKeepsRunMaximum(t *testing.T) {
	m := NewMaxSpeed()
	groups := testGroups()

	m.Observe(groups, 0)
	if got := m.Value(); math.Abs(got-5.0) > 1e-12 {
		t.Errorf("expected speed 5, got %f", got)
	}

	// Slowing down must not lower the recorded maximum.
	groups[0].Set("u", 0, 1.0)
	groups[0].Set("v", 0, 0.0)
	m.Observe(groups, 1)
	if got := m.Value(); math.Abs(got-5.0) > 1e-12 {
		t.Errorf("expected retained maximum 5, got %f", got)
	}

	m.Reset()
	m.Observe(groups, 2)
	if got := m.Value(); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("expected speed 1 after reset, got %f", got)
	}
}

func TestAvgDensity(t *testing.T) {
	m := NewAvgDensity()
	m.Observe(testGroups(), 0)

	if got, want := m.Value(), 1000.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("expected density %f, got %f", want, got)
	}
}

func TestMetricsSkipGroupsWithoutFields(t *testing.T) {
	bare := particles.New("tracer", 5, "x", "y")
	groups := append(testGroups(), bare)

	e := NewKineticEnergy()
	e.Observe(groups, 0)
	if got := e.Value(); math.Abs(got-25.0) > 1e-12 {
		t.Errorf("expected energy 25 ignoring the tracer group, got %f", got)
	}

	d := NewAvgDensity()
	d.Observe([]*particles.Group{bare}, 0)
	if d.Value() != 0 {
		t.Errorf("expected zero density without rho fields, got %f", d.Value())
	}
}
