package app

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/joyride/internal/event"
	"github.com/dshills/joyride/internal/event/dispatch"
	"github.com/dshills/joyride/internal/input"
	"github.com/dshills/joyride/internal/input/key"
)

func TestMonitorHoldOnlyOnChange(t *testing.T) {
	var buf bytes.Buffer
	m := NewMonitor(&buf)
	ts := time.Date(2024, 1, 2, 3, 4, 5, 6e6, time.UTC)

	events := []event.Event{
		{Type: key.Press, Button: key.StickAxisLeft, Player: 0, Value: key.Vector(0.5, 0), Timestamp: ts},
		{Type: key.Hold, Button: key.StickAxisLeft, Player: 0, Value: key.Vector(0.5, 0), Timestamp: ts},
		{Type: key.Hold, Button: key.StickAxisLeft, Player: 0, Value: key.Vector(0.75, -0.25), Timestamp: ts},
		{Type: key.Hold, Button: key.StickAxisLeft, Player: 0, Value: key.Vector(0.75, -0.25), Timestamp: ts},
		{Type: key.Release, Button: key.StickAxisLeft, Player: 0, Value: key.Vector(0, 0), Timestamp: ts},
	}
	for _, ev := range events {
		if err := m.handle(ev); err != nil {
			t.Fatalf("handle: %v", err)
		}
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	for i, want := range []string{
		"03:04:05.006 press      stick_axis_left        player=0        (0.500, 0.000)",
		"03:04:05.006 hold       stick_axis_left        player=0        (0.750, -0.250)",
		"03:04:05.006 release    stick_axis_left        player=0        (0.000, 0.000)",
	} {
		if lines[i] != want {
			t.Errorf("line %d = %q, want %q", i, lines[i], want)
		}
	}
}

func TestMonitorConnection(t *testing.T) {
	var buf bytes.Buffer
	m := NewMonitor(&buf)

	m.Connection(key.Connect, 1, "")
	m.Connection(key.Disconnect, 1, "Pad")

	want := "connect    player=1        unknown device\n" +
		"disconnect player=1        Pad\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestMonitorSummary(t *testing.T) {
	var buf bytes.Buffer
	m := NewMonitor(&buf)

	m.Summary(
		input.MetricsSnapshot{Frames: 120, Transitions: 7, Connects: 1, AvgFrame: 3 * time.Millisecond},
		dispatch.Stats{Failed: 1, Panicked: 1},
	)

	want := "summary    frames=120 events=7 connects=1 disconnects=0 listener_failures=2 avg_frame=3ms\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		v    key.Value
		want string
	}{
		{key.Scalar(1), "1.000"},
		{key.Vector(0.25, -1), "(0.250, -1.000)"},
		{nil, "()"},
	}
	for _, tt := range tests {
		if got := formatValue(tt.v); got != tt.want {
			t.Errorf("formatValue(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestScreenWriterKeepsLastLines(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(20, 2)

	w := newScreenWriter(screen)
	if _, err := w.Write([]byte("one\ntwo\nthr")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := w.Write([]byte("ee\n")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got := w.Lines()
	if len(got) != 2 || got[0] != "two" || got[1] != "three" {
		t.Errorf("Lines() = %q, want [two three]", got)
	}
}
