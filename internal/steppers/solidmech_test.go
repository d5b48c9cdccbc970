package steppers

import (
	"math"
	"testing"

	"github.com/san-kum/sphstep/internal/particles"
)

func TestSolidMechStressAndEnergy(t *testing.T) {
	g := newGroup(t, NewSolidMech(), 1)
	g.Set("e", 0, 10.0)
	g.Set("s01", 0, 5.0)
	g.Set("s22", 0, -1.0)
	g.Set("ae", 0, 2.0)
	g.Set("as01", 0, -4.0)
	g.Set("as22", 0, 1.0)

	runCycle(g, NewSolidMech(), 0.5, func() {})

	if got := g.Field("e")[0]; math.Abs(got-11.0) > 1e-12 {
		t.Errorf("energy: got %.6f, expected 11.0", got)
	}
	if got := g.Field("s01")[0]; math.Abs(got-3.0) > 1e-12 {
		t.Errorf("s01: got %.6f, expected 3.0", got)
	}
	if got := g.Field("s22")[0]; math.Abs(got-(-0.5)) > 1e-12 {
		t.Errorf("s22: got %.6f, expected -0.5", got)
	}
	// untouched component stays at its snapshot
	if got := g.Field("s11")[0]; got != 0.0 {
		t.Errorf("s11: got %.6f, expected 0.0", got)
	}
}

func TestSolidMechSnapshotsAllComponents(t *testing.T) {
	g := newGroup(t, NewSolidMech(), 1)
	for k, c := range stressComps {
		g.Set("s"+c, 0, float64(k+1))
	}
	g.Set("e", 0, 7.0)

	b := NewBinding(g)
	NewSolidMech().Bind(PhaseInitialize, b)(0, 1, 0.0)

	for k, c := range stressComps {
		if got := g.Field("s" + c + "0")[0]; got != float64(k+1) {
			t.Errorf("s%s0: got %.6f, expected %.6f", c, got, float64(k+1))
		}
	}
	if got := g.Field("e0")[0]; got != 7.0 {
		t.Errorf("e0: got %.6f, expected 7.0", got)
	}
}

// The predictor and corrector share one update rule at half and full
// weight, so a corrector step of dt must reproduce a predictor step of
// 2*dt from the same snapshot across every advanced field.
func TestSolidMechCorrectorMatchesDoublePredictor(t *testing.T) {
	s := NewSolidMech()
	a := newGroup(t, s, 3)
	c := newGroup(t, s, 3)
	for _, g := range []*particles.Group{a, c} {
		for i := 0; i < 3; i++ {
			g.Set("u", i, 1.0+float64(i))
			g.Set("rho", i, 2650.0)
			g.Set("e", i, 10.0*float64(i))
			g.Set("au", i, 0.5)
			g.Set("ax", i, 2.0)
			g.Set("arho", i, -3.0)
			g.Set("ae", i, 1.5)
			g.Set("as01", i, 4.0)
			g.Set("as22", i, -2.0)
		}
	}

	dt := 0.2
	ba, bc := NewBinding(a), NewBinding(c)
	s.Bind(PhaseInitialize, ba)(0, a.Len(), dt)
	s.Bind(PhaseInitialize, bc)(0, c.Len(), dt)

	s.Bind(PhasePredictor, ba)(0, a.Len(), 2*dt)
	s.Bind(PhaseCorrector, bc)(0, c.Len(), dt)

	for _, field := range []string{"x", "u", "rho", "e", "s01", "s22"} {
		fa, fc := a.Field(field), c.Field(field)
		for i := range fa {
			if fa[i] != fc[i] {
				t.Errorf("%s[%d]: predictor %.12f, corrector %.12f", field, i, fa[i], fc[i])
			}
		}
	}
}

func TestSolidMechZeroDtIdempotent(t *testing.T) {
	g := newGroup(t, NewSolidMech(), 1)
	g.Set("s00", 0, 4.0)
	g.Set("e", 0, 2.0)
	g.Set("as00", 0, 100.0)
	g.Set("ae", 0, 100.0)

	runCycle(g, NewSolidMech(), 0.0, func() {})

	if got := g.Field("s00")[0]; got != 4.0 {
		t.Errorf("s00: got %.6f, expected 4.0", got)
	}
	if got := g.Field("e")[0]; got != 2.0 {
		t.Errorf("energy: got %.6f, expected 2.0", got)
	}
}
