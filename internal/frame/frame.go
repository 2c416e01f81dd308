package frame

// Handle identifies one scheduled callback. The zero Handle is never
// returned by a scheduler.
type Handle uint64

// Scheduler runs a callback once on the next frame.
type Scheduler interface {
	// Schedule arranges for fn to run once on the next frame.
	Schedule(fn func()) Handle

	// Cancel prevents a pending callback from running.
	// Unknown or already-run handles are ignored.
	Cancel(h Handle)
}
