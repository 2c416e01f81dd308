package phase

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/joyride/internal/input/key"
)

func TestStoreLifecycle(t *testing.T) {
	s := NewStore()

	if !s.Begin(key.Button1, key.Scalar(1)) {
		t.Fatal("Begin() = false on empty store")
	}
	if s.Begin(key.Button1, key.Scalar(0.5)) {
		t.Error("Begin() = true for existing record")
	}

	r, ok := s.Get(key.Button1)
	if !ok || !r.Pressed || r.Hold || r.Released {
		t.Fatalf("Get() = %+v, %v; want pressed record", r, ok)
	}
	if r.Phase() != key.Press {
		t.Errorf("Phase() = %q, want press", r.Phase())
	}

	if !s.Refresh(key.Button1, key.Scalar(0.7)) {
		t.Error("Refresh() = false for existing record")
	}
	r, _ = s.Get(key.Button1)
	if r.Value.At(0) != 0.7 || !r.Pressed {
		t.Errorf("after Refresh() record = %+v", r)
	}

	if !s.Release(key.Button1, nil) {
		t.Error("Release() = false for existing record")
	}
	r, _ = s.Get(key.Button1)
	if !r.Released || r.Hold {
		t.Errorf("after Release() record = %+v", r)
	}
	if r.Value.At(0) != 0.7 {
		t.Errorf("Release(nil) changed value to %v", r.Value)
	}

	s.Delete(key.Button1)
	if s.Has(key.Button1) || s.Len() != 0 {
		t.Error("Delete() left the record behind")
	}
	if s.Release(key.Button1, nil) || s.Refresh(key.Button1, nil) {
		t.Error("Release/Refresh on missing record returned true")
	}
}

func TestStoreGetDoesNotAlias(t *testing.T) {
	s := NewStore()
	s.Begin(key.StickAxisLeft, key.Vector(0.5, 0))

	r, _ := s.Get(key.StickAxisLeft)
	r.Value[0] = 9
	r.Hold = true

	again, _ := s.Get(key.StickAxisLeft)
	if again.Value[0] != 0.5 || again.Hold {
		t.Errorf("mutating Get() result changed the store: %+v", again)
	}
}

func TestStoreKeepsInsertionOrder(t *testing.T) {
	s := NewStore()
	for _, k := range []key.Logical{key.Start, key.Button1, key.DPadUp} {
		s.Begin(k, nil)
	}
	s.Delete(key.Button1)
	s.Begin(key.Button2, nil)

	want := []key.Logical{key.Start, key.DPadUp, key.Button2}
	if diff := cmp.Diff(want, s.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}

func TestSweepPhaseMachine(t *testing.T) {
	tr := NewTracker()
	kb := tr.Keyboard()

	kb.Begin(key.Button1, key.Scalar(1))

	got := tr.Sweep()
	want := []Transition{{Type: key.Press, Key: key.Button1, Value: key.Scalar(1), Slot: key.KeyboardSlot}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("sweep 1 mismatch (-want +got):\n%s", diff)
	}

	for i := 0; i < 2; i++ {
		got = tr.Sweep()
		want = []Transition{{Type: key.Hold, Key: key.Button1, Value: key.Scalar(1), Slot: key.KeyboardSlot}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("hold sweep %d mismatch (-want +got):\n%s", i, diff)
		}
	}

	kb.Release(key.Button1, key.Scalar(0))
	got = tr.Sweep()
	want = []Transition{{Type: key.Release, Key: key.Button1, Value: key.Scalar(0), Slot: key.KeyboardSlot}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("release sweep mismatch (-want +got):\n%s", diff)
	}
	if kb.Has(key.Button1) {
		t.Error("record still present after release sweep")
	}
	if got := tr.Sweep(); len(got) != 0 {
		t.Errorf("idle sweep emitted %v", got)
	}
}

func TestSweepTapWithinOneFrame(t *testing.T) {
	tr := NewTracker()
	kb := tr.Keyboard()

	kb.Begin(key.Button1, key.Scalar(1))
	kb.Release(key.Button1, key.Scalar(0))

	var types []key.EventType
	for i := 0; i < 3; i++ {
		for _, tn := range tr.Sweep() {
			types = append(types, tn.Type)
		}
	}

	want := []key.EventType{key.Press, key.Release}
	if diff := cmp.Diff(want, types); diff != "" {
		t.Errorf("tap transitions mismatch (-want +got):\n%s", diff)
	}
}

func TestSweepOrder(t *testing.T) {
	tr := NewTracker()
	tr.Attach(1)
	tr.Attach(0)

	p1, _ := tr.Pad(1)
	p0, _ := tr.Pad(0)
	tr.Keyboard().Begin(key.Start, nil)
	p1.Axes.Begin(key.StickAxisLeft, nil)
	p1.Buttons.Begin(key.Button2, nil)
	p0.Axes.Begin(key.StickAxisRight, nil)
	p0.Buttons.Begin(key.Button1, nil)
	p0.Buttons.Begin(key.Select, nil)

	type pair struct {
		Key  key.Logical
		Slot key.Slot
	}
	var got []pair
	for _, tn := range tr.Sweep() {
		got = append(got, pair{tn.Key, tn.Slot})
	}

	want := []pair{
		{key.Button1, 0},
		{key.Select, 0},
		{key.Button2, 1},
		{key.StickAxisRight, 0},
		{key.StickAxisLeft, 1},
		{key.Start, key.KeyboardSlot},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sweep order mismatch (-want +got):\n%s", diff)
	}
}

func TestAttachDetach(t *testing.T) {
	tr := NewTracker()

	if !tr.Attach(0) {
		t.Fatal("Attach(0) = false")
	}
	if tr.Attach(0) {
		t.Error("second Attach(0) = true")
	}

	p, _ := tr.Pad(0)
	p.Buttons.Begin(key.Button1, key.Scalar(1))

	if !tr.Detach(0) {
		t.Fatal("Detach(0) = false")
	}
	if tr.Has(0) {
		t.Error("slot 0 still tracked after Detach")
	}
	if got := tr.Sweep(); len(got) != 0 {
		t.Errorf("Detach should discard records without release, got %v", got)
	}
	if tr.Detach(0) {
		t.Error("Detach of untracked slot = true")
	}
}

func TestResetGamepadsKeepsKeyboard(t *testing.T) {
	tr := NewTracker()
	tr.Attach(0)
	tr.Attach(2)
	tr.Keyboard().Begin(key.Button1, nil)

	tr.ResetGamepads()
	if len(tr.Slots()) != 0 {
		t.Errorf("Slots() = %v after ResetGamepads", tr.Slots())
	}
	if !tr.Keyboard().Has(key.Button1) {
		t.Error("ResetGamepads cleared keyboard records")
	}

	tr.Reset()
	if tr.Keyboard().Len() != 0 {
		t.Error("Reset left keyboard records")
	}
}

func TestTrackerStores(t *testing.T) {
	tr := NewTracker()
	tr.Attach(2)
	tr.Attach(0)
	p0, _ := tr.Pad(0)
	p2, _ := tr.Pad(2)

	tests := []struct {
		ns   key.Namespace
		want []*Store
	}{
		{key.NamespaceGamepad, []*Store{p0.Buttons, p2.Buttons}},
		{key.NamespaceAxes, []*Store{p0.Axes, p2.Axes}},
		{key.NamespaceKeyboard, []*Store{tr.Keyboard()}},
		{"joystick", nil},
	}
	for _, tt := range tests {
		t.Run(string(tt.ns), func(t *testing.T) {
			got := tr.Stores(tt.ns)
			if len(got) != len(tt.want) {
				t.Fatalf("Stores(%s) returned %d stores, want %d", tt.ns, len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Stores(%s)[%d] is not the expected store", tt.ns, i)
				}
			}
		})
	}
}
