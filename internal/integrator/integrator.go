package integrator

import (
	"runtime"
	"sort"

	"github.com/san-kum/sphstep/internal/particles"
	"github.com/san-kum/sphstep/internal/steppers"
)

// DefaultCourant is the Courant number applied when none is configured.
const DefaultCourant = 0.5

// stepChunk is the smallest particle range worth its own goroutine;
// stepping kernels are a few flops per particle, so small groups run
// inline.
const stepChunk = 2048

// Pipeline evaluates the accelerations and rates the stepping schemes
// integrate. Evaluate runs once before the predictor and once before
// the corrector of every cycle. StabilityRate reports the fastest
// characteristic speed seen during the last evaluation; a non-positive
// value means no estimate is available.
type Pipeline interface {
	Evaluate(t, dt float64)
	StabilityRate() float64
}

// Option configures an Integrator during construction.
type Option func(*Integrator)

// WithCourant sets the Courant number used by ComputeTimeStep.
func WithCourant(c float64) Option {
	return func(in *Integrator) { in.courant = c }
}

// WithPipeline sets the force pipeline evaluated before the predictor
// and corrector phases. Without one, Integrate only runs the stepping
// kernels and ComputeTimeStep returns the requested step unchanged.
func WithPipeline(p Pipeline) Option {
	return func(in *Integrator) { in.pipeline = p }
}

// WithWorkers caps the goroutines used per group sweep.
func WithWorkers(n int) Option {
	return func(in *Integrator) { in.workers = n }
}

// PhaseBinding describes which fields one group's scheme touches in
// one phase. Integrators built from the same groups and assignment
// report identical binding lists.
type PhaseBinding struct {
	Group  string
	Scheme string
	Usage  steppers.Usage
}

// binding is one group's compiled slot in a phase's program.
type binding struct {
	group  *particles.Group
	scheme steppers.Scheme
	usage  steppers.Usage
}

// Integrator drives the initialize/predictor/corrector cycle over a
// fixed set of groups with a scheme compiled per group and phase.
type Integrator struct {
	groups   []*particles.Group // lexicographic by name
	schemes  map[string]steppers.Scheme
	program  [len(steppers.Phases)][]binding
	pipeline Pipeline
	courant  float64
	workers  int
}

// New validates the assignment and compiles the stepping program.
// Every group needs exactly one scheme, every assignment a matching
// group, and every field a scheme's phases declare must already exist
// in the group's storage. Any violation is returned as a *ConfigError
// and no Integrator is built.
func New(groups []*particles.Group, assignment map[string]steppers.Scheme, opts ...Option) (*Integrator, error) {
	if len(groups) == 0 {
		return nil, ErrNoGroups
	}

	byName := make(map[string]*particles.Group, len(groups))
	for _, g := range groups {
		if _, ok := byName[g.Name()]; ok {
			return nil, &ConfigError{Group: g.Name(), Wrapped: ErrDuplicateGroup}
		}
		byName[g.Name()] = g
	}
	for name, s := range assignment {
		if _, ok := byName[name]; !ok {
			e := &ConfigError{Group: name, Wrapped: ErrUnknownGroup}
			if s != nil {
				e.Scheme = s.Name()
			}
			return nil, e
		}
	}

	in := &Integrator{
		schemes: make(map[string]steppers.Scheme, len(groups)),
		courant: DefaultCourant,
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.workers < 1 {
		in.workers = 1
	}

	// Groups advance in lexicographic name order. Float results can
	// depend on that order, so it must not vary with map iteration or
	// caller slice order.
	in.groups = make([]*particles.Group, len(groups))
	copy(in.groups, groups)
	sort.Slice(in.groups, func(i, j int) bool {
		return in.groups[i].Name() < in.groups[j].Name()
	})

	for _, g := range in.groups {
		s := assignment[g.Name()]
		if s == nil {
			return nil, &ConfigError{Group: g.Name(), Wrapped: ErrUnassigned}
		}
		in.schemes[g.Name()] = s

		for _, ph := range steppers.Phases {
			if s.Params(ph) == nil {
				continue
			}
			u, err := steppers.ExtractUsage(s, ph)
			if err != nil {
				return nil, &ConfigError{Group: g.Name(), Scheme: s.Name(), Phase: ph, Wrapped: err}
			}
			for _, f := range u.Fields() {
				if !g.Has(f) {
					return nil, &ConfigError{
						Group: g.Name(), Scheme: s.Name(), Phase: ph, Field: f,
						Wrapped: ErrMissingField,
					}
				}
			}
			in.program[ph] = append(in.program[ph], binding{group: g, scheme: s, usage: u})
		}
	}
	return in, nil
}

// Integrate advances every group through one full stepping cycle. t is
// the simulation time at the start of the step and count the caller's
// step counter; both appear only in error context. The pipeline is
// evaluated before the predictor and before the corrector, each phase
// finishes for all groups before the next begins, and fields resolve
// against the groups' current backing slices, so storage growth
// between calls is picked up.
func (in *Integrator) Integrate(t, dt float64, count int) error {
	var kernels [len(steppers.Phases)][]steppers.Kernel
	for _, ph := range steppers.Phases {
		kernels[ph] = make([]steppers.Kernel, len(in.program[ph]))
		for i, b := range in.program[ph] {
			for _, f := range b.usage.Fields() {
				if !b.group.Has(f) {
					return &StepError{Step: count, Time: t, Wrapped: &ConfigError{
						Group: b.group.Name(), Scheme: b.scheme.Name(), Phase: ph, Field: f,
						Wrapped: ErrMissingField,
					}}
				}
			}
			kernels[ph][i] = b.scheme.Bind(ph, steppers.NewBinding(b.group))
		}
	}

	for _, ph := range steppers.Phases {
		if in.pipeline != nil && (ph == steppers.PhasePredictor || ph == steppers.PhaseCorrector) {
			in.pipeline.Evaluate(t, dt)
		}
		for i, b := range in.program[ph] {
			k := kernels[ph][i]
			if k == nil {
				continue
			}
			particles.ParallelFor(in.workers, b.group.Len(), stepChunk, func(start, end int) {
				k(start, end, dt)
			})
		}
	}
	return nil
}

// ComputeTimeStep returns the Courant-limited step for the current
// particle state: courant * hmin / rate, where hmin is the smallest
// smoothing length across all groups and rate the pipeline's stability
// rate. When there is no pipeline or the rate is non-positive the
// requested step is returned unchanged. The estimate is advisory;
// callers decide whether to clamp it.
func (in *Integrator) ComputeTimeStep(requested float64) float64 {
	if in.pipeline == nil {
		return requested
	}
	rate := in.pipeline.StabilityRate()
	if rate <= 0 {
		return requested
	}
	hmin := 1.0
	for _, g := range in.groups {
		if m, ok := g.Min("h"); ok && m < hmin {
			hmin = m
		}
	}
	return in.courant * hmin / rate
}

// Groups returns the destination groups in execution order.
func (in *Integrator) Groups() []*particles.Group {
	out := make([]*particles.Group, len(in.groups))
	copy(out, in.groups)
	return out
}

// Scheme returns the scheme assigned to the named group, or nil.
func (in *Integrator) Scheme(group string) steppers.Scheme {
	return in.schemes[group]
}

// Assignment returns the scheme name compiled for each group.
func (in *Integrator) Assignment() map[string]string {
	out := make(map[string]string, len(in.schemes))
	for name, s := range in.schemes {
		out[name] = s.Name()
	}
	return out
}

// Courant returns the configured Courant number.
func (in *Integrator) Courant() float64 { return in.courant }

// Bindings returns the compiled field usage of one phase in execution
// order.
func (in *Integrator) Bindings(ph steppers.Phase) []PhaseBinding {
	out := make([]PhaseBinding, len(in.program[ph]))
	for i, b := range in.program[ph] {
		out[i] = PhaseBinding{Group: b.group.Name(), Scheme: b.scheme.Name(), Usage: b.usage}
	}
	return out
}
