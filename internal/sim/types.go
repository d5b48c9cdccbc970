package sim

import (
	"fmt"

	"github.com/san-kum/sphstep/internal/particles"
)

// Stepper drives one full stepping cycle over a set of particle
// groups. *integrator.Integrator satisfies it.
type Stepper interface {
	Integrate(t, dt float64, count int) error
	ComputeTimeStep(requested float64) float64
	Groups() []*particles.Group
}

type Metric interface {
	Name() string
	Observe(groups []*particles.Group, t float64)
	Value() float64
	Reset()
}

// Observer is notified at every sampling point.
type Observer interface {
	OnSample(groups []*particles.Group, t float64)
}

type Config struct {
	Dt             float64
	Duration       float64
	Adaptive       bool
	MinDt          float64
	MaxDt          float64
	SampleStride   int
	ValidateFields bool
}

func DefaultConfig() Config {
	return Config{
		Dt:             1e-3,
		Duration:       1.0,
		MinDt:          1e-6,
		MaxDt:          1e-2,
		SampleStride:   10,
		ValidateFields: true,
	}
}

type Result struct {
	Times      []float64
	Dts        []float64
	Series     map[string][]float64
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

// SimError reports a failure detected while a run was in progress.
type SimError struct {
	Step    int
	Time    float64
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("simulation error at t=%.4f (step %d): %s", e.Time, e.Step, e.Message)
}
