// Package viz renders the five-body system in the terminal.
//
//   - [Model]: bubbletea live view that steps the system with a compute
//     backend and draws orbit trails on a braille [Canvas]
//   - [AxisPlots]: per-axis position charts of a recorded trajectory
//   - [Camera]: tilt, yaw and zoom projection of heliocentric positions
//
// # Key Bindings
//
//	Space - Pause/Resume
//	.     - Single step while paused
//	R     - Reset to the initial state
//	[ ]   - Halve/double steps per frame
//	+ -   - Zoom
//	Arrows - Rotate and tilt
//	?     - Help overlay
package viz
