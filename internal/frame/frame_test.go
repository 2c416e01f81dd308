package frame

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
)

var (
	_ Scheduler = (*Ticker)(nil)
	_ Scheduler = (*Manual)(nil)
)

func TestNewTickerRate(t *testing.T) {
	tests := []struct {
		rate int
		want time.Duration
	}{
		{0, time.Second / DefaultRate},
		{-5, time.Second / DefaultRate},
		{50, 20 * time.Millisecond},
		{1, time.Second},
	}
	for _, tt := range tests {
		if got := NewTicker(tt.rate).Interval(); got != tt.want {
			t.Errorf("NewTicker(%d).Interval() = %v, want %v", tt.rate, got, tt.want)
		}
	}
}

func TestTickerFiresAfterInterval(t *testing.T) {
	mock := clock.NewMock()
	tk := NewTicker(50, WithClock(mock))

	fired := make(chan struct{}, 1)
	tk.Schedule(func() { fired <- struct{}{} })
	if tk.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", tk.Pending())
	}

	mock.Add(10 * time.Millisecond)
	select {
	case <-fired:
		t.Fatal("callback fired before the frame interval")
	case <-time.After(20 * time.Millisecond):
	}

	mock.Add(10 * time.Millisecond)
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("callback did not fire after the frame interval")
	}
	if tk.Pending() != 0 {
		t.Errorf("Pending() = %d after firing, want 0", tk.Pending())
	}
}

func TestTickerCancel(t *testing.T) {
	mock := clock.NewMock()
	tk := NewTicker(60, WithClock(mock))

	fired := make(chan struct{}, 1)
	h := tk.Schedule(func() { fired <- struct{}{} })
	tk.Cancel(h)
	tk.Cancel(h)
	tk.Cancel(Handle(999))

	mock.Add(time.Second)
	select {
	case <-fired:
		t.Fatal("cancelled callback fired")
	case <-time.After(20 * time.Millisecond):
	}
	if tk.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", tk.Pending())
	}
}

func TestManualStep(t *testing.T) {
	m := NewManual()
	var calls []int

	var loop func()
	loop = func() {
		calls = append(calls, len(calls))
		m.Schedule(loop)
	}
	m.Schedule(loop)

	if n := m.Step(); n != 1 {
		t.Errorf("Step() = %d, want 1", n)
	}
	if n := m.Frames(3); n != 3 {
		t.Errorf("Frames(3) = %d, want 3", n)
	}
	if len(calls) != 4 {
		t.Errorf("callback ran %d times, want 4", len(calls))
	}
	if m.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", m.Pending())
	}
}

func TestManualCancel(t *testing.T) {
	m := NewManual()
	ran := false
	h := m.Schedule(func() { ran = true })
	m.Cancel(h)

	if n := m.Step(); n != 0 || ran {
		t.Errorf("Step() = %d, ran = %v after Cancel", n, ran)
	}
	if h == 0 {
		t.Error("Schedule() returned the zero handle")
	}
}
