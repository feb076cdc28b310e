// Package viz draws particle clouds in the terminal.
//
// Positions are projected through an orbiting [Camera] onto a braille
// [Canvas], giving 2x4 dots per character cell. [Viewer] wraps the same
// renderer in a Bubble Tea program.
//
// # Key Bindings
//
//	Arrows/hjkl - Rotate
//	+/-         - Zoom
//	A           - Toggle axes
//	Space       - Spin
//	R           - Reset camera
//	Q           - Quit
package viz
