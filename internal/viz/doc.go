// Package viz renders RCD trajectories in the terminal.
//
//   - [Canvas]: braille sub-pixel canvas with per-cell colors
//   - [Camera] and [Render3D]: perspective projection of a [Wireframe]
//   - [PhaseWireframe]: the (H, M, R) path colored along [Viridis]
//   - [Summary] and [SeriesPlot]: final values and time-series plots
//   - [App]: Bubble Tea slider front end
//
// # Key Bindings
//
//	j/k   - Select slider
//	h/l   - Move slider one step (cycle drug on the last row)
//	p     - Cycle presets
//	r     - Reset to the starting configuration
//	x/y/z - Rotate (shift reverses)
//	+/-   - Zoom
//	Space - Toggle auto-rotation
package viz
