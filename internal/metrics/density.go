package metrics

import (
	"github.com/san-kum/sphstep/internal/particles"
)

type AvgDensity struct {
	name  string
	value float64
}

func NewAvgDensity() *AvgDensity {
	return &AvgDensity{name: "avg_density"}
}

func (d *AvgDensity) Name() string { return d.name }

func (d *AvgDensity) Observe(groups []*particles.Group, t float64) {
	sum := 0.0
	count := 0
	for _, g := range groups {
		rho := g.Field("rho")
		if rho == nil {
			continue
		}
		for i := 0; i < g.Len(); i++ {
			sum += rho[i]
		}
		count += g.Len()
	}
	if count == 0 {
		d.value = 0
		return
	}
	d.value = sum / float64(count)
}

func (d *AvgDensity) Value() float64 { return d.value }

func (d *AvgDensity) Reset() { d.value = 0 }
