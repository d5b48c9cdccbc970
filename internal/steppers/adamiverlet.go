package steppers

// AdamiVerlet is a planar velocity-Verlet variant: both phases apply a
// half-step kick to the velocity and a half-step drift to the position,
// so a full step interleaves kick-drift-kick-drift with the force
// evaluation between the two phases. Density integrates over the full
// step in the corrector, which also records the squared speed in vmag.
type AdamiVerlet struct{}

func NewAdamiVerlet() *AdamiVerlet { return &AdamiVerlet{} }

func (s *AdamiVerlet) Name() string { return "adami_verlet" }

func (s *AdamiVerlet) Params(ph Phase) []string {
	switch ph {
	case PhasePredictor:
		return []string{
			"d_idx", "d_u", "d_v", "d_au", "d_av", "d_x", "d_y", "dt",
		}
	case PhaseCorrector:
		return []string{
			"d_idx", "d_u", "d_v", "d_au", "d_av", "d_x", "d_y",
			"d_rho", "d_arho", "d_vmag", "dt",
		}
	default:
		return nil
	}
}

func (s *AdamiVerlet) Bind(ph Phase, b *Binding) Kernel {
	switch ph {
	case PhasePredictor:
		u, v := b.D("u"), b.D("v")
		au, av := b.D("au"), b.D("av")
		x, y := b.D("x"), b.D("y")
		return func(start, end int, dt float64) {
			dtb2 := 0.5 * dt
			for i := start; i < end; i++ {
				u[i] += dtb2 * au[i]
				v[i] += dtb2 * av[i]

				x[i] += dtb2 * u[i]
				y[i] += dtb2 * v[i]
			}
		}
	case PhaseCorrector:
		u, v := b.D("u"), b.D("v")
		au, av := b.D("au"), b.D("av")
		x, y := b.D("x"), b.D("y")
		rho, arho := b.D("rho"), b.D("arho")
		vmag := b.D("vmag")
		return func(start, end int, dt float64) {
			dtb2 := 0.5 * dt
			for i := start; i < end; i++ {
				u[i] += dtb2 * au[i]
				v[i] += dtb2 * av[i]

				x[i] += dtb2 * u[i]
				y[i] += dtb2 * v[i]

				rho[i] += dt * arho[i]

				vmag[i] = u[i]*u[i] + v[i]*v[i]
			}
		}
	default:
		return nil
	}
}
