package metrics

import (
	"github.com/san-kum/sphstep/internal/particles"
)

type TotalMass struct {
	name  string
	value float64
}

func NewTotalMass() *TotalMass {
	return &TotalMass{name: "total_mass"}
}

func (m *TotalMass) Name() string { return m.name }

func (m *TotalMass) Observe(groups []*particles.Group, t float64) {
	total := 0.0
	for _, g := range groups {
		mass := g.Field("m")
		if mass == nil {
			continue
		}
		for i := 0; i < g.Len(); i++ {
			total += mass[i]
		}
	}
	m.value = total
}

func (m *TotalMass) Value() float64 { return m.value }

func (m *TotalMass) Reset() { m.value = 0 }
