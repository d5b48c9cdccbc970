package steppers

import (
	"fmt"
	"sort"
	"strings"
)

// Phase identifies one stage of the stepping cycle.
type Phase int

const (
	PhaseInitialize Phase = iota
	PhasePredictor
	PhaseCorrector
)

// Phases lists the stages in execution order.
var Phases = [...]Phase{PhaseInitialize, PhasePredictor, PhaseCorrector}

func (p Phase) String() string {
	switch p {
	case PhaseInitialize:
		return "initialize"
	case PhasePredictor:
		return "predictor"
	case PhaseCorrector:
		return "corrector"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Kernel advances the particles in [start, end) by dt. A kernel works
// only on the slices captured when it was bound; nothing inside the
// loop resolves field names or dispatches through an interface.
type Kernel func(start, end int, dt float64)

// Scheme is one two-phase stepping algorithm. Implementations are
// stateless; all mutable data lives in the bound field slices.
type Scheme interface {
	// Name is the configuration name of the scheme.
	Name() string

	// Params returns the declared parameter list of a phase in the
	// d_/s_ naming convention. A nil list marks the phase as a no-op.
	Params(ph Phase) []string

	// Bind resolves the phase's fields against b once and returns the
	// compiled kernel, or nil for a no-op phase. Callers must have
	// validated the fields through ExtractUsage beforehand; Bind
	// itself does not check.
	Bind(ph Phase, b *Binding) Kernel
}

// FieldSource resolves a role-stripped field name to its flat backing
// slice, returning nil when the field does not exist. *particles.Group
// satisfies it.
type FieldSource interface {
	Field(name string) []float64
}

// Binding resolves a scheme's declared parameters against one
// destination group. Source-prefixed names resolve against the same
// group: within the stepping cycle every field a phase touches lives
// on the group being advanced.
type Binding struct {
	src FieldSource
}

func NewBinding(src FieldSource) *Binding { return &Binding{src: src} }

// D returns the backing slice for a destination field.
func (b *Binding) D(name string) []float64 { return b.src.Field(name) }

// S returns the backing slice for a source field.
func (b *Binding) S(name string) []float64 { return b.src.Field(name) }

const (
	destPrefix = "d_"
	srcPrefix  = "s_"
	idxParam   = "d_idx"
	dtParam    = "dt"
)

// Usage lists the fields one phase declares, role-stripped and sorted,
// plus whether the phase consumes the scalar step size.
type Usage struct {
	Dest    []string
	Src     []string
	NeedsDt bool
}

// Fields returns the union of destination and source names, sorted.
func (u Usage) Fields() []string {
	seen := make(map[string]bool, len(u.Dest)+len(u.Src))
	out := make([]string, 0, len(u.Dest)+len(u.Src))
	for _, lst := range [][]string{u.Dest, u.Src} {
		for _, name := range lst {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	sort.Strings(out)
	return out
}

// ExtractUsage classifies every parameter a phase declares. The index
// parameter is dropped, "dt" sets NeedsDt, and the d_/s_ prefixes sort
// names into destination and source fields. A parameter that fits none
// of these is a scheme definition error and is reported immediately
// rather than at step time.
func ExtractUsage(s Scheme, ph Phase) (Usage, error) {
	var u Usage
	seenDest := make(map[string]bool)
	seenSrc := make(map[string]bool)
	for _, p := range s.Params(ph) {
		switch {
		case p == idxParam:
			// particle index, implicit in the kernel loop
		case p == dtParam:
			u.NeedsDt = true
		case strings.HasPrefix(p, destPrefix) && len(p) > len(destPrefix):
			name := p[len(destPrefix):]
			if !seenDest[name] {
				seenDest[name] = true
				u.Dest = append(u.Dest, name)
			}
		case strings.HasPrefix(p, srcPrefix) && len(p) > len(srcPrefix):
			name := p[len(srcPrefix):]
			if !seenSrc[name] {
				seenSrc[name] = true
				u.Src = append(u.Src, name)
			}
		default:
			return Usage{}, fmt.Errorf("steppers: %s %s: parameter %q has no field role", s.Name(), ph, p)
		}
	}
	sort.Strings(u.Dest)
	sort.Strings(u.Src)
	return u, nil
}

// RequiredFields returns every field a scheme touches across all
// phases, sorted and deduplicated. Scenario builders use it to size
// groups before handing them to an integrator.
func RequiredFields(s Scheme) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, ph := range Phases {
		u, err := ExtractUsage(s, ph)
		if err != nil {
			return nil, err
		}
		for _, name := range u.Fields() {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

// ByName returns the scheme registered under a configuration name.
func ByName(name string) (Scheme, error) {
	switch name {
	case "euler":
		return NewEuler(), nil
	case "wcsph":
		return NewWCSPH(), nil
	case "solid_mech":
		return NewSolidMech(), nil
	case "transport_velocity":
		return NewTransportVelocity(), nil
	case "adami_verlet":
		return NewAdamiVerlet(), nil
	default:
		return nil, fmt.Errorf("unknown stepper: %s (valid: %s)", name, strings.Join(Names(), ", "))
	}
}

// Names lists the configuration names of all registered schemes.
func Names() []string {
	return []string{"adami_verlet", "euler", "solid_mech", "transport_velocity", "wcsph"}
}
