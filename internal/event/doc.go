// Package event provides the listener registry of the input system.
//
// A listener subscribes to one (event type, logical key) pair. Subscribe
// accepts whitespace-separated lists for both and stores one entry per
// pair of the cross product, so compound values are never stored:
//
//	ids, err := reg.Subscribe([]string{"press hold"}, []string{"button_1 button_2"}, h, event.Options{})
//	// len(ids) == 4
//
// Unsubscribe uses the same expansion and removes the entries whose type
// and key both match.
//
// Match returns a snapshot of the listeners for one pair in registration
// order. Delivery is left to the dispatch package, which calls
// Listener.Deliver.
package event
