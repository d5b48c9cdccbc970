package steppers

// WCSPH is the weakly-compressible predictor-corrector. The initialize
// phase snapshots positions, velocities and density into the *0 fields;
// the predictor advances half a step from the snapshot and the
// corrector the full step, so both phases share one update rule.
// Positions integrate the ax/ay/az position rates, which carry the
// velocity plus any XSPH correction from the force pipeline.
type WCSPH struct{}

func NewWCSPH() *WCSPH { return &WCSPH{} }

func (s *WCSPH) Name() string { return "wcsph" }

func (s *WCSPH) Params(ph Phase) []string {
	switch ph {
	case PhaseInitialize:
		return []string{
			"d_idx",
			"d_x0", "d_y0", "d_z0", "d_x", "d_y", "d_z",
			"d_u0", "d_v0", "d_w0", "d_u", "d_v", "d_w",
			"d_rho0", "d_rho",
		}
	case PhasePredictor, PhaseCorrector:
		return []string{
			"d_idx",
			"d_x0", "d_y0", "d_z0", "d_x", "d_y", "d_z",
			"d_u0", "d_v0", "d_w0", "d_u", "d_v", "d_w",
			"d_rho0", "d_rho",
			"d_au", "d_av", "d_aw",
			"d_ax", "d_ay", "d_az",
			"d_arho", "dt",
		}
	default:
		return nil
	}
}

func (s *WCSPH) Bind(ph Phase, b *Binding) Kernel {
	switch ph {
	case PhaseInitialize:
		x0, y0, z0 := b.D("x0"), b.D("y0"), b.D("z0")
		x, y, z := b.D("x"), b.D("y"), b.D("z")
		u0, v0, w0 := b.D("u0"), b.D("v0"), b.D("w0")
		u, v, w := b.D("u"), b.D("v"), b.D("w")
		rho0, rho := b.D("rho0"), b.D("rho")
		return func(start, end int, _ float64) {
			for i := start; i < end; i++ {
				x0[i], y0[i], z0[i] = x[i], y[i], z[i]
				u0[i], v0[i], w0[i] = u[i], v[i], w[i]
				rho0[i] = rho[i]
			}
		}
	case PhasePredictor:
		return s.advance(b, 0.5)
	case PhaseCorrector:
		return s.advance(b, 1.0)
	default:
		return nil
	}
}

// advance builds the shared predictor/corrector kernel: every field is
// recomputed from its snapshot with an effective step of frac*dt.
func (s *WCSPH) advance(b *Binding, frac float64) Kernel {
	x0, y0, z0 := b.D("x0"), b.D("y0"), b.D("z0")
	x, y, z := b.D("x"), b.D("y"), b.D("z")
	u0, v0, w0 := b.D("u0"), b.D("v0"), b.D("w0")
	u, v, w := b.D("u"), b.D("v"), b.D("w")
	au, av, aw := b.D("au"), b.D("av"), b.D("aw")
	ax, ay, az := b.D("ax"), b.D("ay"), b.D("az")
	rho0, rho := b.D("rho0"), b.D("rho")
	arho := b.D("arho")
	return func(start, end int, dt float64) {
		dt *= frac
		for i := start; i < end; i++ {
			u[i] = u0[i] + dt*au[i]
			v[i] = v0[i] + dt*av[i]
			w[i] = w0[i] + dt*aw[i]

			x[i] = x0[i] + dt*ax[i]
			y[i] = y0[i] + dt*ay[i]
			z[i] = z0[i] + dt*az[i]

			rho[i] = rho0[i] + dt*arho[i]
		}
	}
}
