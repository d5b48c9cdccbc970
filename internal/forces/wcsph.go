package forces

import (
	"math"
	"runtime"

	"github.com/san-kum/sphstep/internal/particles"
)

// Neighbor loops cost O(n) per particle, so even small chunks are
// worth a goroutine.
const forceChunk = 64

// WCSPH is a weakly-compressible SPH force pipeline. Parameters are
// plain fields; adjust them before the first evaluation.
type WCSPH struct {
	Rho0    float64 // reference density
	C0      float64 // speed of sound
	Gamma   float64 // Tait equation exponent
	Mu      float64 // dynamic viscosity
	Gravity float64 // downward acceleration
	XSPHEps float64 // XSPH velocity smoothing factor
	PB      float64 // background pressure driving transport rates

	// Soft walls push particles back into [0, BoundsX] x [0, BoundsY]
	// with a spring force of WallK per unit overshoot. BoundsX <= 0
	// disables the walls.
	WallK   float64
	BoundsX float64
	BoundsY float64

	// SummationDensity recomputes rho by kernel summation on every
	// evaluation. Leave it off for schemes that integrate the
	// continuity rate arho.
	SummationDensity bool

	Workers int

	groups []*particles.Group
	rate   float64
}

// NewWCSPH builds a pipeline over the given groups with water-like
// defaults.
func NewWCSPH(groups ...*particles.Group) *WCSPH {
	return &WCSPH{
		Rho0:    1000,
		C0:      30,
		Gamma:   7,
		Mu:      0.1,
		Gravity: 9.81,
		XSPHEps: 0.5,
		WallK:   500,
		Workers: runtime.NumCPU(),
		groups:  groups,
	}
}

// Groups returns the particle groups this pipeline evaluates.
func (w *WCSPH) Groups() []*particles.Group { return w.groups }

// Evaluate recomputes pressure, accelerations and rates for every
// group from the current positions and velocities.
func (w *WCSPH) Evaluate(_, _ float64) {
	w.rate = 0
	for _, g := range w.groups {
		w.evalGroup(g)
	}
}

// StabilityRate reports the fastest characteristic speed c0 + |v|
// seen during the last evaluation.
func (w *WCSPH) StabilityRate() float64 { return w.rate }

func (w *WCSPH) evalGroup(g *particles.Group) {
	n := g.Len()
	if n == 0 {
		return
	}
	x, y := g.Field("x"), g.Field("y")
	u, v := g.Field("u"), g.Field("v")
	h := g.Field("h")
	m := g.Field("m")
	rho := g.Field("rho")
	p := g.Field("p")
	au, av := g.Field("au"), g.Field("av")
	if x == nil || y == nil || u == nil || v == nil || h == nil ||
		m == nil || rho == nil || p == nil || au == nil || av == nil {
		return
	}
	arho := g.Field("arho")
	ax, ay := g.Field("ax"), g.Field("ay")
	auhat, avhat := g.Field("auhat"), g.Field("avhat")

	// density and Tait pressure
	b := w.Rho0 * w.C0 * w.C0 / w.Gamma
	particles.ParallelFor(w.Workers, n, forceChunk, func(start, end int) {
		for i := start; i < end; i++ {
			if w.SummationDensity {
				h2 := h[i] * h[i]
				sum := 0.0
				for j := 0; j < n; j++ {
					dx := x[i] - x[j]
					dy := y[i] - y[j]
					r2 := dx*dx + dy*dy
					if r2 < h2 {
						sum += m[j] * poly6(r2, h2)
					}
				}
				rho[i] = sum
			}
			p[i] = b * (math.Pow(rho[i]/w.Rho0, w.Gamma) - 1)
		}
	})

	// accelerations and rates
	particles.ParallelFor(w.Workers, n, forceChunk, func(start, end int) {
		for i := start; i < end; i++ {
			fu := 0.0
			fv := -w.Gravity
			xu, xv := 0.0, 0.0
			bu, bv := 0.0, 0.0
			drho := 0.0
			hi := h[i]
			h2 := hi * hi

			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				dx := x[i] - x[j]
				dy := y[i] - y[j]
				r2 := dx*dx + dy*dy
				if r2 >= h2 {
					continue
				}
				r := math.Sqrt(r2)
				if r < 1e-6 {
					continue
				}
				gx := spikyGrad(r, hi) * dx / r
				gy := spikyGrad(r, hi) * dy / r

				// symmetric pressure gradient
				fp := -m[j] * (p[i]/(rho[i]*rho[i]) + p[j]/(rho[j]*rho[j]))
				fu += fp * gx
				fv += fp * gy

				// viscosity
				fm := w.Mu * m[j] * viscLap(r, hi) / (rho[i] * rho[j])
				fu += fm * (u[j] - u[i])
				fv += fm * (v[j] - v[i])

				// continuity
				drho += m[j] * ((u[i]-u[j])*gx + (v[i]-v[j])*gy)

				// XSPH velocity smoothing
				wij := poly6(r2, h2)
				rhoBar := 0.5 * (rho[i] + rho[j])
				xu += m[j] / rhoBar * (u[j] - u[i]) * wij
				xv += m[j] / rhoBar * (v[j] - v[i]) * wij

				if auhat != nil {
					fb := -w.PB * m[j] * (1/(rho[i]*rho[i]) + 1/(rho[j]*rho[j]))
					bu += fb * gx
					bv += fb * gy
				}
			}

			if w.WallK > 0 && w.BoundsX > 0 {
				if x[i] < 0 {
					fu -= w.WallK * x[i]
				} else if x[i] > w.BoundsX {
					fu -= w.WallK * (x[i] - w.BoundsX)
				}
				if y[i] < 0 {
					fv -= w.WallK * y[i]
				} else if y[i] > w.BoundsY {
					fv -= w.WallK * (y[i] - w.BoundsY)
				}
			}

			au[i] = fu
			av[i] = fv
			if arho != nil {
				arho[i] = drho
			}
			if ax != nil && ay != nil {
				ax[i] = u[i] + w.XSPHEps*xu
				ay[i] = v[i] + w.XSPHEps*xv
			}
			if auhat != nil && avhat != nil {
				auhat[i] = bu
				avhat[i] = bv
			}
		}
	})

	for i := 0; i < n; i++ {
		s := w.C0 + math.Hypot(u[i], v[i])
		if s > w.rate {
			w.rate = s
		}
	}
}
