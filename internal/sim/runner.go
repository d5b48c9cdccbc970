package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/sphstep/internal/particles"
)

// Runner executes timed simulation runs over a Stepper, sampling
// metrics and observers at a fixed step stride.
type Runner struct {
	driver    Stepper
	metrics   []Metric
	observers []Observer
}

func New(driver Stepper) *Runner {
	return &Runner{
		driver:    driver,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run advances the driver until cfg.Duration simulated seconds have
// passed (or, without adaptive stepping, for duration/dt fixed steps).
// With Adaptive set, every step asks the driver for a Courant-limited
// step clamped to [MinDt, MaxDt]. Non-finite field values stop the run
// and land in Result.Errors rather than failing it; a step error from
// the driver aborts with the partial result. After the loop every
// metric observes the final state once more and its value lands in
// Result.Metrics.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := r.validateConfig(cfg); err != nil {
		return nil, err
	}

	stride := cfg.SampleStride
	if stride < 1 {
		stride = 1
	}
	for _, m := range r.metrics {
		m.Reset()
	}

	groups := r.driver.Groups()
	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Series:  make(map[string][]float64),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	t := 0.0
	dt := cfg.Dt
	for step := 0; ; step++ {
		if cfg.Adaptive {
			if t >= cfg.Duration {
				break
			}
		} else if step >= steps {
			break
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if cfg.Adaptive {
			dt = clamp(r.driver.ComputeTimeStep(cfg.Dt), cfg.MinDt, cfg.MaxDt)
		}

		if err := r.driver.Integrate(t, dt, step); err != nil {
			return result, err
		}
		t += dt
		result.StepsTaken++

		if cfg.ValidateFields {
			if name, ok := validGroups(groups); !ok {
				result.Errors = append(result.Errors, SimError{
					Step: step, Time: t,
					Message: "non-finite field values in group " + name,
				})
				break
			}
		}

		if step%stride == 0 {
			result.Times = append(result.Times, t)
			result.Dts = append(result.Dts, dt)
			for _, m := range r.metrics {
				m.Observe(groups, t)
				result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
			}
			for _, o := range r.observers {
				o.OnSample(groups, t)
			}
		}
	}

	for _, m := range r.metrics {
		m.Observe(groups, t)
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

func (r *Runner) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.Adaptive {
		if cfg.MinDt <= 0 {
			return fmt.Errorf("min dt must be positive for adaptive stepping, got %f", cfg.MinDt)
		}
		if cfg.MaxDt < cfg.MinDt {
			return fmt.Errorf("max dt %f below min dt %f", cfg.MaxDt, cfg.MinDt)
		}
	}
	return nil
}

// validGroups returns the first group with non-finite values, if any.
func validGroups(groups []*particles.Group) (string, bool) {
	for _, g := range groups {
		if !g.Valid() {
			return g.Name(), false
		}
	}
	return "", true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
