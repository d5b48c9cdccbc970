package steppers

import (
	"math"
	"testing"
)

func TestTransportVelocityImpulseStart(t *testing.T) {
	s := NewTransportVelocity()
	g := newGroup(t, s, 1)
	g.Set("au", 0, 2.0)

	dt := 0.1
	b := NewBinding(g)
	s.Bind(PhasePredictor, b)(0, 1, dt)

	if got := g.Field("u")[0]; math.Abs(got-0.1) > 1e-15 {
		t.Errorf("velocity after predictor: got %.6f, expected 0.1", got)
	}
	if got := g.Field("uhat")[0]; math.Abs(got-0.1) > 1e-15 {
		t.Errorf("transport velocity: got %.6f, expected 0.1", got)
	}
	if got := g.Field("x")[0]; math.Abs(got-0.01) > 1e-15 {
		t.Errorf("position: got %.6f, expected 0.01", got)
	}

	s.Bind(PhaseCorrector, b)(0, 1, dt)

	if got := g.Field("u")[0]; math.Abs(got-0.2) > 1e-15 {
		t.Errorf("velocity after corrector: got %.6f, expected 0.2", got)
	}
	if got := g.Field("vmag")[0]; math.Abs(got-0.04) > 1e-15 {
		t.Errorf("squared speed: got %.6f, expected 0.04", got)
	}
}

// Positions advect with the transport velocity, so a nonzero auhat
// moves particles even when the momentum velocity stays put.
func TestTransportVelocityPositionsUseTransport(t *testing.T) {
	s := NewTransportVelocity()
	g := newGroup(t, s, 1)
	g.Set("auhat", 0, 10.0)

	dt := 0.1
	s.Bind(PhasePredictor, NewBinding(g))(0, 1, dt)

	if got := g.Field("u")[0]; got != 0.0 {
		t.Errorf("momentum velocity: got %.6f, expected 0.0", got)
	}
	// uhat = 0 + dtb2*auhat = 0.5, x = dt*uhat
	if got := g.Field("x")[0]; math.Abs(got-0.05) > 1e-15 {
		t.Errorf("position: got %.6f, expected 0.05", got)
	}
}

func TestTransportVelocityCorrectorLeavesPositions(t *testing.T) {
	s := NewTransportVelocity()
	g := newGroup(t, s, 1)
	g.Set("x", 0, 1.0)
	g.Set("u", 0, 5.0)

	s.Bind(PhaseCorrector, NewBinding(g))(0, 1, 0.1)

	if got := g.Field("x")[0]; got != 1.0 {
		t.Errorf("position: got %.6f, expected 1.0", got)
	}
}

func TestTransportVelocityNoInitialize(t *testing.T) {
	s := NewTransportVelocity()
	if s.Params(PhaseInitialize) != nil {
		t.Error("initialize should declare no parameters")
	}
	g := newGroup(t, s, 1)
	if s.Bind(PhaseInitialize, NewBinding(g)) != nil {
		t.Error("initialize should compile to a nil kernel")
	}
}

func TestTransportVelocitySquaredSpeed(t *testing.T) {
	s := NewTransportVelocity()
	g := newGroup(t, s, 1)
	g.Set("u", 0, 3.0)
	g.Set("v", 0, 4.0)

	s.Bind(PhaseCorrector, NewBinding(g))(0, 1, 0.0)

	// 3^2 + 4^2, not 5
	if got := g.Field("vmag")[0]; got != 25.0 {
		t.Errorf("squared speed: got %.6f, expected 25.0", got)
	}
}
