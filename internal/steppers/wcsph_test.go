package steppers

import (
	"math"
	"testing"
)

// runCycle executes one full initialize/predictor/corrector pass with
// the given force hook invoked before each of the two update phases.
func runCycle(g kernelGroup, s Scheme, dt float64, force func()) {
	b := NewBinding(g)
	if k := s.Bind(PhaseInitialize, b); k != nil {
		k(0, g.Len(), dt)
	}
	force()
	if k := s.Bind(PhasePredictor, b); k != nil {
		k(0, g.Len(), dt)
	}
	force()
	if k := s.Bind(PhaseCorrector, b); k != nil {
		k(0, g.Len(), dt)
	}
}

type kernelGroup interface {
	FieldSource
	Len() int
}

func TestWCSPHConstantRates(t *testing.T) {
	g := newGroup(t, NewWCSPH(), 1)
	g.Set("u", 0, 1.0)
	g.Set("rho", 0, 1000.0)
	g.Set("au", 0, 2.0)
	g.Set("ax", 0, 1.0)
	g.Set("arho", 0, -5.0)

	dt := 0.1
	runCycle(g, NewWCSPH(), dt, func() {})

	// constant rates make the corrector exact
	if got := g.Field("u")[0]; math.Abs(got-1.2) > 1e-12 {
		t.Errorf("velocity: got %.6f, expected 1.2", got)
	}
	if got := g.Field("x")[0]; math.Abs(got-0.1) > 1e-12 {
		t.Errorf("position: got %.6f, expected 0.1", got)
	}
	if got := g.Field("rho")[0]; math.Abs(got-999.5) > 1e-12 {
		t.Errorf("density: got %.6f, expected 999.5", got)
	}
}

// Positions advance along the ax/ay/az rates, never the velocity.
func TestWCSPHPositionsFollowPositionRates(t *testing.T) {
	g := newGroup(t, NewWCSPH(), 1)
	g.Set("u", 0, 100.0)
	g.Set("ax", 0, 1.0)

	runCycle(g, NewWCSPH(), 0.1, func() {})

	if got := g.Field("x")[0]; math.Abs(got-0.1) > 1e-12 {
		t.Errorf("position: got %.6f, expected 0.1", got)
	}
}

func TestWCSPHZeroDtIdempotent(t *testing.T) {
	g := newGroup(t, NewWCSPH(), 3)
	for i := 0; i < g.Len(); i++ {
		g.Set("x", i, float64(i))
		g.Set("u", i, float64(i)*0.5)
		g.Set("rho", i, 1000.0+float64(i))
		g.Set("au", i, 7.0)
		g.Set("ax", i, 3.0)
		g.Set("arho", i, -2.0)
	}

	runCycle(g, NewWCSPH(), 0.0, func() {})

	for i := 0; i < g.Len(); i++ {
		if got := g.Field("x")[i]; got != float64(i) {
			t.Errorf("particle %d position: got %.6f, expected %.6f", i, got, float64(i))
		}
		if got := g.Field("u")[i]; got != float64(i)*0.5 {
			t.Errorf("particle %d velocity: got %.6f, expected %.6f", i, got, float64(i)*0.5)
		}
		if got := g.Field("rho")[i]; got != 1000.0+float64(i) {
			t.Errorf("particle %d density: got %.6f, expected %.6f", i, got, 1000.0+float64(i))
		}
	}
}

// Both update phases share one rule, so a corrector step of dt must
// reproduce a predictor step of 2*dt from the same snapshot.
func TestWCSPHCorrectorMatchesDoublePredictor(t *testing.T) {
	s := NewWCSPH()
	a := newGroup(t, s, 4)
	c := newGroup(t, s, 4)
	for i := 0; i < 4; i++ {
		a.Set("x", i, float64(i))
		c.Set("x", i, float64(i))
		a.Set("u", i, 1.0+float64(i))
		c.Set("u", i, 1.0+float64(i))
		a.Set("au", i, 0.5)
		c.Set("au", i, 0.5)
		a.Set("ax", i, 2.0)
		c.Set("ax", i, 2.0)
	}

	dt := 0.2
	ba, bc := NewBinding(a), NewBinding(c)
	s.Bind(PhaseInitialize, ba)(0, a.Len(), dt)
	s.Bind(PhaseInitialize, bc)(0, c.Len(), dt)

	s.Bind(PhasePredictor, ba)(0, a.Len(), 2*dt)
	s.Bind(PhaseCorrector, bc)(0, c.Len(), dt)

	for _, field := range []string{"x", "u", "rho"} {
		fa, fc := a.Field(field), c.Field(field)
		for i := range fa {
			if fa[i] != fc[i] {
				t.Errorf("%s[%d]: predictor %.12f, corrector %.12f", field, i, fa[i], fc[i])
			}
		}
	}
}

func TestWCSPHSnapshotRestoresBase(t *testing.T) {
	g := newGroup(t, NewWCSPH(), 1)
	g.Set("u", 0, 3.0)

	b := NewBinding(g)
	s := NewWCSPH()
	s.Bind(PhaseInitialize, b)(0, 1, 0.1)

	if got := g.Field("u0")[0]; got != 3.0 {
		t.Errorf("snapshot velocity: got %.6f, expected 3.0", got)
	}

	// predictor overwrites from the snapshot, so running it twice with
	// the same rates must give the same result
	g.Set("au", 0, 4.0)
	k := s.Bind(PhasePredictor, b)
	k(0, 1, 0.1)
	first := g.Field("u")[0]
	k(0, 1, 0.1)
	if got := g.Field("u")[0]; got != first {
		t.Errorf("repeated predictor: got %.6f, expected %.6f", got, first)
	}
}
