package metrics

import (
	"github.com/san-kum/sphstep/internal/particles"
)

type KineticEnergy struct {
	name  string
	value float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(groups []*particles.Group, t float64) {
	total := 0.0
	for _, g := range groups {
		m := g.Field("m")
		u := g.Field("u")
		if m == nil || u == nil {
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
			total += 0.5 * m[i] * sq
		}
	}
	k.value = total
}

func (k *KineticEnergy) Value() float64 { return k.value }

func (k *KineticEnergy) Reset() { k.value = 0 }
