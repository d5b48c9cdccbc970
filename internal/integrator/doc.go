// Package integrator specializes a stepper assignment into a compiled
// per-group stepping program and drives the initialize/predictor/
// corrector cycle over it.
//
// Specialization happens once, inside New: every group must carry an
// assigned scheme and every field a scheme's phases declare must exist
// in that group's storage, so a bad configuration fails before the
// first step rather than at first particle access. The assignment is
// copied and immutable afterwards; swapping schemes means building a
// new Integrator.
//
// Each Integrate call resolves the bound fields against the groups'
// current backing slices before any kernel runs, so storage growth
// between calls is safe. Inside a call the three phases are separated
// by full barriers, and per-group work is chunked across workers.
package integrator
