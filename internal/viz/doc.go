// Package viz shows the render loop in a terminal.
//
// Frames are downscaled to half-block cells, each cell carrying two pixels
// as truecolor foreground and background, and drawn next to a stats panel
// by a Bubble Tea program. The render loop runs on its own goroutine; the
// UI only ever sees finished frames.
//
// # Key Bindings
//
//	Space - Pause/Resume the animation
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	Q     - Quit
package viz
