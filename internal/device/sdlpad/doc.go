// Package sdlpad reads game controllers and keyboard input through SDL2.
//
// SDL must be driven from a single OS thread, so Run locks its goroutine to
// a thread, initializes SDL there and pumps events at the poll rate.
// Devices returns the snapshots built by the last pump and can be called
// from any goroutine.
//
// Controllers are reported in the standard gamepad layout:
//
//	0 A         4 LB       8 back      12 d-pad up
//	1 B         5 RB       9 start     13 d-pad down
//	2 X         6 LT      10 L stick   14 d-pad left
//	3 Y         7 RT      11 R stick   15 d-pad right
//	                                   16 guide
//
// with axes 0/1 for the left stick and 2/3 for the right stick, each in
// [-1, 1]. Triggers are analog buttons.
//
// Keyboard events need a focused window; WithWindow opens one.
package sdlpad
