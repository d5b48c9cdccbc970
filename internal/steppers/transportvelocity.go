package steppers

// TransportVelocity is the planar scheme for the transport-velocity
// formulation: positions advect with a separately evolved transport
// velocity (uhat, vhat) instead of the momentum velocity. There is no
// snapshot phase; the half-step velocity increment is applied to the
// live fields in both the predictor and the corrector, which together
// make up one full step. The corrector records the squared speed in
// vmag for post-step diagnostics.
type TransportVelocity struct{}

func NewTransportVelocity() *TransportVelocity { return &TransportVelocity{} }

func (s *TransportVelocity) Name() string { return "transport_velocity" }

func (s *TransportVelocity) Params(ph Phase) []string {
	switch ph {
	case PhasePredictor:
		return []string{
			"d_idx", "d_u", "d_v", "d_au", "d_av",
			"d_uhat", "d_auhat", "d_vhat", "d_avhat",
			"d_x", "d_y", "dt",
		}
	case PhaseCorrector:
		return []string{
			"d_idx", "d_u", "d_v", "d_au", "d_av", "d_vmag", "dt",
		}
	default:
		return nil
	}
}

func (s *TransportVelocity) Bind(ph Phase, b *Binding) Kernel {
	switch ph {
	case PhasePredictor:
		u, v := b.D("u"), b.D("v")
		au, av := b.D("au"), b.D("av")
		uhat, vhat := b.D("uhat"), b.D("vhat")
		auhat, avhat := b.D("auhat"), b.D("avhat")
		x, y := b.D("x"), b.D("y")
		return func(start, end int, dt float64) {
			dtb2 := 0.5 * dt
			for i := start; i < end; i++ {
				u[i] += dtb2 * au[i]
				v[i] += dtb2 * av[i]

				uhat[i] = u[i] + dtb2*auhat[i]
				vhat[i] = v[i] + dtb2*avhat[i]

				x[i] += dt * uhat[i]
				y[i] += dt * vhat[i]
			}
		}
	case PhaseCorrector:
		u, v := b.D("u"), b.D("v")
		au, av := b.D("au"), b.D("av")
		vmag := b.D("vmag")
		return func(start, end int, dt float64) {
			dtb2 := 0.5 * dt
			for i := start; i < end; i++ {
				u[i] += dtb2 * au[i]
				v[i] += dtb2 * av[i]

				// squared speed, not the magnitude
				vmag[i] = u[i]*u[i] + v[i]*v[i]
			}
		}
	default:
		return nil
	}
}
