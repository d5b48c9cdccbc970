// Package particles provides columnar storage for particle groups.
//
// A [Group] is a named table of double-precision fields, one dense slice
// per field, addressed by a zero-based particle index. Stepping schemes
// and force pipelines operate on the flat field slices directly; the
// index range is treated as fixed for the duration of one integration
// step, and all size changes happen between steps:
//
//	fluid := particles.NewFluid("fluid", 1000)
//	x := fluid.Field("x")
//	for i := range x {
//	    x[i] = ...
//	}
//
// Field slices returned by [Group.Field] remain valid until the next
// Append, Remove or Resize call.
//
// [ParallelFor] is the chunked loop used to sweep a field range across
// worker goroutines.
package particles
