// Package dispatch delivers input events to the listeners matched for
// them.
//
// Delivery is synchronous: listeners run in the caller's goroutine, one
// after another, in registration order. By default the first listener
// error stops the dispatch and is returned, and a panicking listener is
// not recovered, so one misbehaving listener aborts the rest of a frame.
//
// With isolation every listener runs. A returned error goes to the
// ErrorHandler and a recovered panic to the PanicHandler, each with the
// event and the listener that failed:
//
//	d := dispatch.NewSyncDispatcher(
//	    dispatch.WithIsolation(true),
//	    dispatch.WithPanicHandler(func(ev event.Event, l event.Listener, v any, stack []byte) {
//	        logger.Error("listener panic", zap.Stringer("event", ev), zap.Any("value", v))
//	    }),
//	)
//	err := d.Dispatch(ctx, ev, listeners)
package dispatch
