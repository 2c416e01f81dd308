package device

// Button is the raw state of one gamepad button.
type Button struct {
	Pressed bool
	Value   float64
}

// Snapshot is the raw state of one gamepad for one frame.
type Snapshot struct {
	Name      string
	Connected bool
	Buttons   []Button
	Axes      []float64
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	c := *s
	c.Buttons = append([]Button(nil), s.Buttons...)
	c.Axes = append([]float64(nil), s.Axes...)
	return &c
}

// KeyHandler receives a physical key code.
type KeyHandler func(code int)

// Subscription is returned by keyboard sources; Cancel detaches the handler.
type Subscription interface {
	Cancel()
}

// SubscriptionFunc adapts a function to Subscription.
type SubscriptionFunc func()

// Cancel calls f.
func (f SubscriptionFunc) Cancel() {
	f()
}
