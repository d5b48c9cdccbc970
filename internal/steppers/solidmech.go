package steppers

// SolidMech extends the weakly-compressible predictor-corrector with
// specific internal energy and the six independent components of the
// symmetric deviatoric stress tensor. Snapshot fields follow the *0
// convention, so s01 is saved in s010 and advanced by as01.
type SolidMech struct{}

func NewSolidMech() *SolidMech { return &SolidMech{} }

func (s *SolidMech) Name() string { return "solid_mech" }

// stressComps holds the upper-triangle component suffixes in row-major
// order. The lower triangle follows by symmetry and is never stored.
var stressComps = [...]string{"00", "01", "02", "11", "12", "22"}

func (s *SolidMech) Params(ph Phase) []string {
	base := []string{
		"d_idx",
		"d_x0", "d_y0", "d_z0", "d_x", "d_y", "d_z",
		"d_u0", "d_v0", "d_w0", "d_u", "d_v", "d_w",
		"d_rho0", "d_rho",
		"d_e0", "d_e",
	}
	switch ph {
	case PhaseInitialize:
		for _, c := range stressComps {
			base = append(base, "d_s"+c+"0", "d_s"+c)
		}
		return base
	case PhasePredictor, PhaseCorrector:
		for _, c := range stressComps {
			base = append(base, "d_s"+c+"0", "d_s"+c, "d_as"+c)
		}
		return append(base,
			"d_au", "d_av", "d_aw",
			"d_ax", "d_ay", "d_az",
			"d_arho", "d_ae", "dt",
		)
	default:
		return nil
	}
}

func (s *SolidMech) Bind(ph Phase, b *Binding) Kernel {
	switch ph {
	case PhaseInitialize:
		x0, y0, z0 := b.D("x0"), b.D("y0"), b.D("z0")
		x, y, z := b.D("x"), b.D("y"), b.D("z")
		u0, v0, w0 := b.D("u0"), b.D("v0"), b.D("w0")
		u, v, w := b.D("u"), b.D("v"), b.D("w")
		rho0, rho := b.D("rho0"), b.D("rho")
		e0, e := b.D("e0"), b.D("e")
		var snap, cur [len(stressComps)][]float64
		for k, c := range stressComps {
			snap[k] = b.D("s" + c + "0")
			cur[k] = b.D("s" + c)
		}
		return func(start, end int, _ float64) {
			for i := start; i < end; i++ {
				x0[i], y0[i], z0[i] = x[i], y[i], z[i]
				u0[i], v0[i], w0[i] = u[i], v[i], w[i]
				rho0[i] = rho[i]
				e0[i] = e[i]
				for k := range snap {
					snap[k][i] = cur[k][i]
				}
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

func (s *SolidMech) advance(b *Binding, frac float64) Kernel {
	x0, y0, z0 := b.D("x0"), b.D("y0"), b.D("z0")
	x, y, z := b.D("x"), b.D("y"), b.D("z")
	u0, v0, w0 := b.D("u0"), b.D("v0"), b.D("w0")
	u, v, w := b.D("u"), b.D("v"), b.D("w")
	au, av, aw := b.D("au"), b.D("av"), b.D("aw")
	ax, ay, az := b.D("ax"), b.D("ay"), b.D("az")
	rho0, rho := b.D("rho0"), b.D("rho")
	arho := b.D("arho")
	e0, e, ae := b.D("e0"), b.D("e"), b.D("ae")
	var snap, cur, rate [len(stressComps)][]float64
	for k, c := range stressComps {
		snap[k] = b.D("s" + c + "0")
		cur[k] = b.D("s" + c)
		rate[k] = b.D("as" + c)
	}
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
			e[i] = e0[i] + dt*ae[i]

			for k := range snap {
				cur[k][i] = snap[k][i] + dt*rate[k][i]
			}
		}
	}
}
