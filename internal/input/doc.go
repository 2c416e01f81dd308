// Package input unifies gamepad and keyboard input into one event stream.
//
// A Controller polls a DeviceProvider once per frame, maps raw buttons,
// axes and key codes onto logical keys through a keymap.Mapping, tracks
// the phase of every active key per device slot, and delivers press, hold
// and release events to registered listeners.
//
// # Frame
//
// Each frame (Tick) runs in this order:
//
//  1. Read device snapshots. A slot that appears is attached and queued
//     for a connect notification; a slot that vanishes is detached,
//     dropping its records, and queued for a disconnect notification.
//  2. Map the buttons and axes of every present slot, including one that
//     connected this frame.
//  3. Sweep: advance every record one phase, gamepad buttons first, then
//     gamepad axes, then the keyboard.
//  4. Release the lock, then deliver connection notifications followed by
//     the sweep's transitions.
//
// Keyboard events are not polled. They are written into the keyboard slot
// as they arrive and picked up by the next sweep.
//
// Listeners run with no controller lock held, so they may subscribe,
// unsubscribe, change mappings or pause the controller.
//
// # Usage
//
//	c, err := input.New(
//	    input.WithProvider(pads),
//	    input.WithKeyboard(kb),
//	    input.WithLogger(logger),
//	)
//	if err != nil {
//	    return err
//	}
//	c.On("press", "button_1 start", func(ev event.Event) error {
//	    fmt.Println(ev.Button, "pressed by", ev.Player)
//	    return nil
//	})
//	if err := c.Resume(); err != nil {
//	    return err
//	}
//	defer c.Destroy()
package input
