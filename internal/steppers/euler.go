package steppers

// Euler advances velocity, position and density in a single corrector
// pass. Positions integrate the just-updated velocity, which keeps the
// scheme symplectic for separable systems.
type Euler struct{}

func NewEuler() *Euler { return &Euler{} }

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Params(ph Phase) []string {
	if ph != PhaseCorrector {
		return nil
	}
	return []string{
		"d_idx", "d_u", "d_v", "d_w",
		"d_au", "d_av", "d_aw",
		"d_x", "d_y", "d_z",
		"d_rho", "d_arho", "dt",
	}
}

func (e *Euler) Bind(ph Phase, b *Binding) Kernel {
	if ph != PhaseCorrector {
		return nil
	}
	u, v, w := b.D("u"), b.D("v"), b.D("w")
	au, av, aw := b.D("au"), b.D("av"), b.D("aw")
	x, y, z := b.D("x"), b.D("y"), b.D("z")
	rho, arho := b.D("rho"), b.D("arho")
	return func(start, end int, dt float64) {
		for i := start; i < end; i++ {
			u[i] += dt * au[i]
			v[i] += dt * av[i]
			w[i] += dt * aw[i]

			x[i] += dt * u[i]
			y[i] += dt * v[i]
			z[i] += dt * w[i]

			rho[i] += dt * arho[i]
		}
	}
}
