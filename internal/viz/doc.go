// Package viz is the terminal front end for the cloth.
//
// The cloth is drawn into a braille [Canvas] (2x4 dots per cell) coloured
// per cell, and driven by terminal mouse events through Bubble Tea:
//
//   - [Model]: one simulator, mouse grab and cut, HUD with live charts
//   - [RunInteractive]: preset menu and tuning screen in front of a Model
//   - [Recorder]: GIF capture of the render list
//
// # Mouse
//
// Terminal cells are mapped to a virtual viewport [VirtualWidth] pixels wide
// so pick radius and projection behave as they do in the window.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	R     - Rebuild the cloth
//	Up/Dn - Solver iterations
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	?     - Show help
package viz
