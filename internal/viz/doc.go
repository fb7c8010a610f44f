// Package viz provides terminal-based visualization for wavefunction
// simulations.
//
// The package implements a live viewer on the Bubble Tea framework:
//
//   - [Model]: tick-driven viewer stepping one frame per tick
//   - [App]: scenario picker wrapping the viewer
//   - [Canvas]: Braille pixel canvas for one-dimensional curves
//   - [Heatmap]: half-block color field for two-dimensional grids
//   - [Colormap]: viridis, magma, and grayscale ramps shared with the
//     windowed viewer and the SVG export
//
// # Key Bindings
//
//	Space - Pause/Resume
//	Right - Single step while paused
//	Left  - Scrub back through recent frames
//	M     - Cycle render mode (|psi|^2, real, imaginary)
//	C     - Cycle colormap
//	E/F   - Toggle energy and FPS readouts
//	R     - Reset to initial state
//	?     - Show help overlay
//
// # Scrubbing
//
// The viewer keeps a ring of recent frames. Scrubbing replays them
// without disturbing the live state; resuming or stepping past the
// newest frame returns to the live simulation.
package viz
