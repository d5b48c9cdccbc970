// Package forces evaluates the accelerations and rates the stepping
// schemes integrate.
//
// [WCSPH] is a weakly-compressible pipeline over 2-D particle groups:
// kernel-summation or continuity density, Tait pressure, symmetric
// pressure gradient and laplacian viscosity into au/av, gravity, XSPH
// position rates into ax/ay, and background-pressure transport rates
// into auhat/avhat when a group carries those fields. Groups missing
// any of the core hydrodynamic fields are skipped, so passive groups
// can share an integrator with fluids.
//
// Neighbor search is brute force; the pipeline targets scenario-sized
// groups, not large production runs.
package forces
