// Package frame schedules the once-per-frame callback that drives the
// input poll loop.
//
// A Scheduler runs a callback once, on the next frame. The poll loop
// re-schedules itself from inside the callback, so cancelling the last
// handle stops the loop.
//
// Two schedulers are provided:
//
//   - Ticker fires on a clock at a fixed frame rate. It uses
//     github.com/benbjohnson/clock so tests can drive it with a mock clock.
//   - Manual fires only when Step is called, for hosts that own frame
//     timing themselves (a game engine update, a test).
package frame
