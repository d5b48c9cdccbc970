package metrics

import (
	"math"

	"github.com/san-kum/sphstep/internal/particles"
)

// MaxSpeed tracks the fastest particle speed seen across the whole
// run, not just the latest observation.
type MaxSpeed struct {
	name  string
	value float64
}

func NewMaxSpeed() *MaxSpeed {
	return &MaxSpeed{name: "max_speed"}
}

func (s *MaxSpeed) Name() string { return s.name }

func (s *MaxSpeed) Observe(groups []*particles.Group, t float64) {
	for _, g := range groups {
		u := g.Field("u")
		if u == nil {
			continue
		}
		v, w := g.Field("v"), g.Field("w")
		for i := 0; i < g.Len(); i++ {
			sq := u[i] * u[i]
			if v != nil {
				sq += v[i] * v[i]
			}
			if w != nil {
				sq += w[i] * w[i]
			}
			if speed := math.Sqrt(sq); speed > s.value {
				s.value = speed
			}
		}
	}
}

func (s *MaxSpeed) Value() float64 { return s.value }

func (s *MaxSpeed) Reset() { s.value = 0 }
