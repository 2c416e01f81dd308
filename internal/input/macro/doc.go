// Package macro records input events and plays them back.
//
// A Recorder listens on the controller and captures every delivered event
// together with its offset from the start of the recording. Recordings are
// stored as named macros; names are letters, digits, '-' and '_'.
//
//	rec := macro.NewRecorder()
//	rec.Attach(controller, types, keys)
//	rec.Start("combo")
//	// ... input arrives ...
//	m, _ := rec.Stop()
//
// A Player replays a macro through a TriggerFunc, usually
// Controller.Trigger, waiting out each step's offset so the replay keeps
// the recorded timing. Replayed events are synthetic: they reach
// listeners but leave phase tracking untouched.
//
//	player := macro.NewPlayer(controller.Trigger)
//	err := player.Play(ctx, m, 3)
//
// Macros can be saved to and loaded from a JSON file.
//
// All types in this package are safe for concurrent use.
package macro
