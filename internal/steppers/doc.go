// Package steppers implements the two-phase time-stepping schemes used
// to advance particle groups.
//
// Every [Scheme] exposes the three phases initialize, predictor and
// corrector. A phase declares the fields it touches through a static
// parameter list in the d_/s_ naming convention ("d_x" is a read-write
// field on the destination group, "s_rho" a read-only source field,
// "d_idx" the particle index, "dt" the scalar step size), and compiles
// to a flat-array [Kernel] once its fields are bound:
//
//	scheme := steppers.NewWCSPH()
//	usage, _ := steppers.ExtractUsage(scheme, steppers.PhasePredictor)
//	kernel := scheme.Bind(steppers.PhasePredictor, steppers.NewBinding(group))
//	kernel(0, group.Len(), dt)
//
// Kernels apply per-particle arithmetic only; no phase of any scheme
// reads or writes another particle's slot, so a kernel may be invoked
// concurrently over disjoint index ranges.
package steppers
