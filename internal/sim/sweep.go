package sim

import (
	"context"
	"sync"
)

// Sweep runs the same configuration at several step sizes, one
// goroutine per run. Every run gets a fresh driver from Build so runs
// never share particle storage.
type Sweep struct {
	Build   func() (Stepper, error)
	Metrics func() []Metric
	Dts     []float64
}

func NewSweep(build func() (Stepper, error), dts ...float64) *Sweep {
	return &Sweep{Build: build, Dts: dts}
}

// Run executes one run per step size and returns the results in Dts
// order. The first build or run error is returned alongside whatever
// results completed.
func (s *Sweep) Run(ctx context.Context, base Config) ([]*Result, error) {
	results := make([]*Result, len(s.Dts))
	errs := make([]error, len(s.Dts))

	var wg sync.WaitGroup
	for i, dt := range s.Dts {
		wg.Add(1)
		go func(idx int, dt float64) {
			defer wg.Done()

			driver, err := s.Build()
			if err != nil {
				errs[idx] = err
				return
			}
			runner := New(driver)
			if s.Metrics != nil {
				for _, m := range s.Metrics() {
					runner.AddMetric(m)
				}
			}
			cfg := base
			cfg.Dt = dt
			results[idx], errs[idx] = runner.Run(ctx, cfg)
		}(i, dt)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
