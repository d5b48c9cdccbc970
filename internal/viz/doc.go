// Package viz provides a terminal visualization for particle runs.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Picker]: scenario browser with a layout-parameter form
//   - [Model]: live view that steps a run and scatters particle positions
//   - [Canvas]: braille-backed pixel canvas for high-fidelity rendering
//   - Theme cycling with 4 built-in color schemes
//
// # Key Bindings
//
//	Space - Pause/Resume the run
//	R     - Reset to the initial particle state
//	+/-   - More/fewer integrator cycles per frame
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help overlay
//
// # Recording
//
// The live view records sessions as GIF animations with the G key.
// Recordings are saved to the current directory under the scenario name.
package viz
