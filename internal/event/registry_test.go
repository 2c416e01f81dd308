package event

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/joyride/internal/input/key"
)

func noop(Event) error { return nil }

type pair struct {
	Type key.EventType
	Key  key.Logical
}

func pairs(ls []Listener) []pair {
	out := make([]pair, len(ls))
	for i, l := range ls {
		out[i] = pair{l.Type, l.Key}
	}
	return out
}

func TestSubscribeCrossProduct(t *testing.T) {
	r := NewRegistry()

	ids, err := r.Subscribe([]string{"press hold"}, []string{"button_1", "button_2"}, noop, Options{})
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	if len(ids) != 4 {
		t.Fatalf("Subscribe() returned %d ids, want 4", len(ids))
	}

	want := []pair{
		{key.Press, key.Button1},
		{key.Press, key.Button2},
		{key.Hold, key.Button1},
		{key.Hold, key.Button2},
	}
	if diff := cmp.Diff(want, pairs(r.All())); diff != "" {
		t.Errorf("stored listeners mismatch (-want +got):\n%s", diff)
	}

	seen := make(map[ID]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate id %s", id)
		}
		seen[id] = true
		if _, ok := r.Get(id); !ok {
			t.Errorf("Get(%s) not found", id)
		}
	}
}

func TestSubscribeErrors(t *testing.T) {
	tests := []struct {
		name  string
		types []string
		keys  []string
		h     Handler
		want  error
	}{
		{"nil handler", []string{"press"}, []string{"start"}, nil, ErrNilHandler},
		{"no type", []string{"  "}, []string{"start"}, noop, ErrEmptyType},
		{"no key", []string{"press"}, nil, noop, ErrEmptyKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			_, err := r.Subscribe(tt.types, tt.keys, tt.h, Options{})
			if !errors.Is(err, tt.want) {
				t.Errorf("Subscribe() error = %v, want %v", err, tt.want)
			}
			if r.Len() != 0 {
				t.Errorf("Len() = %d after failed Subscribe", r.Len())
			}
		})
	}
}

func TestUnsubscribeMatchesBoth(t *testing.T) {
	r := NewRegistry()
	r.Subscribe([]string{"press"}, []string{"button_1"}, noop, Options{})
	r.Subscribe([]string{"press"}, []string{"button_2"}, noop, Options{})
	r.Subscribe([]string{"hold"}, []string{"button_1"}, noop, Options{})
	r.Subscribe([]string{"press"}, []string{"button_1"}, noop, Options{})

	if n := r.Unsubscribe([]string{"press"}, []string{"button_1"}); n != 2 {
		t.Errorf("Unsubscribe() = %d, want 2", n)
	}

	want := []pair{
		{key.Press, key.Button2},
		{key.Hold, key.Button1},
	}
	if diff := cmp.Diff(want, pairs(r.All())); diff != "" {
		t.Errorf("remaining listeners mismatch (-want +got):\n%s", diff)
	}
	if len(r.Match(key.Press, key.Button2)) != 1 {
		t.Error("listener with same type and different key was removed")
	}
}

func TestUnsubscribeExpands(t *testing.T) {
	r := NewRegistry()
	r.Subscribe([]string{"press hold release"}, []string{"start select"}, noop, Options{})

	if n := r.Unsubscribe([]string{"press release"}, []string{"start select"}); n != 4 {
		t.Errorf("Unsubscribe() = %d, want 4", n)
	}
	want := []pair{{key.Hold, key.Start}, {key.Hold, key.Select}}
	if diff := cmp.Diff(want, pairs(r.All())); diff != "" {
		t.Errorf("remaining listeners mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveAndRemoveTag(t *testing.T) {
	r := NewRegistry()
	ids, _ := r.Subscribe([]string{"press"}, []string{"start"}, noop, Options{})
	r.Subscribe([]string{"press hold"}, []string{"select"}, noop, Options{Tag: "menu"})
	last, _ := r.Subscribe([]string{"release"}, []string{"start"}, noop, Options{})

	if !r.Remove(ids[0]) {
		t.Error("Remove() = false for existing id")
	}
	if r.Remove(ids[0]) {
		t.Error("Remove() = true for removed id")
	}
	if n := r.RemoveTag("menu"); n != 2 {
		t.Errorf("RemoveTag() = %d, want 2", n)
	}
	if l, ok := r.Get(last[0]); !ok || l.Type != key.Release {
		t.Errorf("Get() after removals = %+v, %v", l, ok)
	}

	r.Clear()
	if r.Len() != 0 {
		t.Errorf("Len() = %d after Clear", r.Len())
	}
}

func TestMatchIsSnapshot(t *testing.T) {
	r := NewRegistry()
	var order []string
	r.Subscribe([]string{"press"}, []string{"start"}, func(Event) error { order = append(order, "a"); return nil }, Options{})
	r.Subscribe([]string{"press"}, []string{"start"}, func(Event) error { order = append(order, "b"); return nil }, Options{})

	ls := r.Match(key.Press, key.Start)
	r.Clear()

	for _, l := range ls {
		if err := l.Deliver(Event{}); err != nil {
			t.Fatalf("Deliver() error = %v", err)
		}
	}
	if diff := cmp.Diff([]string{"a", "b"}, order); diff != "" {
		t.Errorf("call order mismatch (-want +got):\n%s", diff)
	}
}

func TestListenerDeliver(t *testing.T) {
	var got Event
	l := Listener{
		ID:      "id-1",
		Type:    key.Hold,
		Key:     key.DPadUp,
		Options: Options{Data: 42},
		Handler: func(ev Event) error { got = ev; return nil },
	}

	err := l.Deliver(Event{Value: key.Scalar(1), Player: 2})
	if err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}
	if got.Type != key.Hold || got.Button != key.DPadUp || got.Player != 2 {
		t.Errorf("event = %+v", got)
	}
	if got.Listener.ID != "id-1" || got.Listener.Options.Data != 42 {
		t.Errorf("listener not attached: %+v", got.Listener)
	}
}
