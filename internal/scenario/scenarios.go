package scenario

import (
	"math/rand"

	"github.com/san-kum/sphstep/internal/forces"
	"github.com/san-kum/sphstep/internal/integrator"
	"github.com/san-kum/sphstep/internal/particles"
	"github.com/san-kum/sphstep/internal/steppers"
)

const rho0 = 1000.0

// Params tunes the particle layout of a scenario build.
type Params struct {
	Spacing float64
	NX, NY  int
	Seed    int64
}

func DefaultParams() Params {
	return Params{Spacing: 0.05, NX: 20, NY: 20, Seed: 42}
}

// Setup is everything a runner needs for one named scenario.
type Setup struct {
	Name     string
	Groups   []*particles.Group
	Schemes  map[string]steppers.Scheme
	Pipeline integrator.Pipeline
	Dt       float64
	Duration float64
}

// newFluidGroup sizes a group for both the scheme's integrated fields
// and the force pipeline's hydrodynamic set.
func newFluidGroup(name string, scheme steppers.Scheme, n int) (*particles.Group, error) {
	fields, err := steppers.RequiredFields(scheme)
	if err != nil {
		return nil, err
	}
	g := particles.New(name, n, fields...)
	g.AddFields("x", "y", "u", "v", "h", "m", "rho", "p", "au", "av")
	return g, nil
}

// seedBulk fills smoothing length, particle mass and reference density
// for a 2-D layout with the given spacing.
func seedBulk(g *particles.Group, spacing float64) {
	g.Fill("h", 1.3*spacing)
	g.Fill("m", rho0*spacing*spacing)
	g.Fill("rho", rho0)
}

// fillGrid lays particles on a jittered rectangular grid anchored at
// (x0, y0). The jitter breaks the exact symmetry of the lattice.
func fillGrid(g *particles.Group, p Params, x0, y0 float64) {
	rng := rand.New(rand.NewSource(p.Seed))
	x := g.Field("x")
	y := g.Field("y")
	jitter := 0.01 * p.Spacing
	i := 0
	for r := 0; r < p.NY; r++ {
		for c := 0; c < p.NX; c++ {
			x[i] = x0 + (float64(c)+0.5)*p.Spacing + jitter*(rng.Float64()-0.5)
			y[i] = y0 + (float64(r)+0.5)*p.Spacing + jitter*(rng.Float64()-0.5)
			i++
		}
	}
}

// DamBreak collapses a water column released against the left wall of
// a wide tank. Density integrates through the continuity rate.
func DamBreak(p Params) (*Setup, error) {
	scheme := steppers.NewWCSPH()
	g, err := newFluidGroup("fluid", scheme, p.NX*p.NY)
	if err != nil {
		return nil, err
	}
	fillGrid(g, p, 0, 0)
	seedBulk(g, p.Spacing)

	pl := forces.NewWCSPH(g)
	pl.BoundsX = 3 * float64(p.NX) * p.Spacing
	pl.BoundsY = 2 * float64(p.NY) * p.Spacing

	h := 1.3 * p.Spacing
	return &Setup{
		Name:     "dam_break",
		Groups:   []*particles.Group{g},
		Schemes:  map[string]steppers.Scheme{"fluid": scheme},
		Pipeline: pl,
		Dt:       0.25 * h / pl.C0,
		Duration: 2.0,
	}, nil
}

// Drop releases a round blob above the floor of a box and lets it
// splash. Density advances in the corrector, full-step.
func Drop(p Params) (*Setup, error) {
	scheme := steppers.NewAdamiVerlet()

	// Carve a disc out of the layout grid.
	side := p.NX
	if p.NY < side {
		side = p.NY
	}
	radius := 0.5 * float64(side) * p.Spacing
	cx := 0.5 * float64(p.NX) * p.Spacing
	cy := 0.5 * float64(p.NY) * p.Spacing

	var xs, ys []float64
	for r := 0; r < p.NY; r++ {
		for c := 0; c < p.NX; c++ {
			px := (float64(c) + 0.5) * p.Spacing
			py := (float64(r) + 0.5) * p.Spacing
			dx, dy := px-cx, py-cy
			if dx*dx+dy*dy <= radius*radius {
				xs = append(xs, px)
				ys = append(ys, py)
			}
		}
	}

	g, err := newFluidGroup("fluid", scheme, len(xs))
	if err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(p.Seed))
	jitter := 0.01 * p.Spacing
	x := g.Field("x")
	y := g.Field("y")
	lift := float64(p.NY) * p.Spacing
	for i := range xs {
		x[i] = xs[i] + jitter*(rng.Float64()-0.5)
		y[i] = ys[i] + lift + jitter*(rng.Float64()-0.5)
	}
	seedBulk(g, p.Spacing)

	pl := forces.NewWCSPH(g)
	pl.BoundsX = float64(p.NX) * p.Spacing
	pl.BoundsY = 3 * float64(p.NY) * p.Spacing

	h := 1.3 * p.Spacing
	return &Setup{
		Name:     "drop",
		Groups:   []*particles.Group{g},
		Schemes:  map[string]steppers.Scheme{"fluid": scheme},
		Pipeline: pl,
		Dt:       0.25 * h / pl.C0,
		Duration: 2.0,
	}, nil
}

// Channel sets up a periodic-feeling shear layer: the upper half
// streams right, the lower half left, with background pressure keeping
// the particle distribution even. Density comes from kernel summation.
func Channel(p Params) (*Setup, error) {
	scheme := steppers.NewTransportVelocity()
	g, err := newFluidGroup("fluid", scheme, p.NX*p.NY)
	if err != nil {
		return nil, err
	}
	fillGrid(g, p, 0, 0)
	seedBulk(g, p.Spacing)

	const shear = 0.5
	mid := 0.5 * float64(p.NY) * p.Spacing
	y := g.Field("y")
	u := g.Field("u")
	uhat := g.Field("uhat")
	for i := range u {
		if y[i] > mid {
			u[i] = shear
		} else {
			u[i] = -shear
		}
		uhat[i] = u[i]
	}

	pl := forces.NewWCSPH(g)
	pl.Gravity = 0
	pl.SummationDensity = true
	pl.PB = 0.05 * rho0 * pl.C0 * pl.C0 / pl.Gamma
	pl.BoundsX = float64(p.NX) * p.Spacing
	pl.BoundsY = float64(p.NY) * p.Spacing

	h := 1.3 * p.Spacing
	return &Setup{
		Name:     "channel",
		Groups:   []*particles.Group{g},
		Schemes:  map[string]steppers.Scheme{"fluid": scheme},
		Pipeline: pl,
		Dt:       0.25 * h / (pl.C0 + shear),
		Duration: 1.0,
	}, nil
}
