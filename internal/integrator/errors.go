package integrator

import (
	"errors"
	"fmt"

	"github.com/san-kum/sphstep/internal/steppers"
)

// Configuration errors detected during specialization.
var (
	// ErrNoGroups indicates construction without any particle group.
	ErrNoGroups = errors.New("integrator: no particle groups")

	// ErrDuplicateGroup indicates two groups sharing one name.
	ErrDuplicateGroup = errors.New("integrator: duplicate group name")

	// ErrUnassigned indicates a group without a stepping scheme.
	ErrUnassigned = errors.New("integrator: group has no assigned scheme")

	// ErrUnknownGroup indicates an assignment naming no known group.
	ErrUnknownGroup = errors.New("integrator: scheme assigned to unknown group")

	// ErrMissingField indicates a declared field absent from storage.
	ErrMissingField = errors.New("integrator: group storage missing field")
)

// ConfigError carries the context needed to fix a bad assignment: the
// group, the scheme and phase when known, and the field that failed to
// resolve.
type ConfigError struct {
	Group   string
	Scheme  string
	Phase   steppers.Phase
	Field   string
	Wrapped error
}

func (e *ConfigError) Error() string {
	s := fmt.Sprintf("%v: group %q", e.Wrapped, e.Group)
	if e.Scheme != "" {
		s += ", scheme " + e.Scheme
	}
	if e.Field != "" {
		s += fmt.Sprintf(", %s phase, field %q", e.Phase, e.Field)
	}
	return s
}

func (e *ConfigError) Unwrap() error { return e.Wrapped }

// StepError wraps a failure surfaced during one Integrate call with
// the step context the caller supplied.
type StepError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%g): %v", e.Step, e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error { return e.Wrapped }
