package app

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/dshills/joyride/internal/event"
	"github.com/dshills/joyride/internal/event/dispatch"
	"github.com/dshills/joyride/internal/input"
	"github.com/dshills/joyride/internal/input/key"
)

// monitorTag tags the monitor's listeners.
const monitorTag = "monitor"

// Monitor prints one line per event for every logical key of the
// controller's mapping. Hold lines are printed only when the value
// changes, so an idle held button prints press and release only.
type Monitor struct {
	mu     sync.Mutex
	out    io.Writer
	colors map[key.EventType]*color.Color
	plain  *color.Color
	last   map[monitorKey]key.Value
}

type monitorKey struct {
	player key.Slot
	button key.Logical
}

// NewMonitor creates a monitor writing to w. Colour is used only when w
// is a terminal.
func NewMonitor(w io.Writer) *Monitor {
	m := &Monitor{
		out: w,
		colors: map[key.EventType]*color.Color{
			key.Press:      color.New(color.FgGreen, color.Bold),
			key.Hold:       color.New(color.FgCyan),
			key.Release:    color.New(color.FgYellow),
			key.Connect:    color.New(color.FgBlue, color.Bold),
			key.Disconnect: color.New(color.FgRed, color.Bold),
		},
		plain: color.New(color.Reset),
		last:  make(map[monitorKey]key.Value),
	}

	tty := isTerminal(w)
	for _, c := range append(slices.Collect(maps.Values(m.colors)), m.plain) {
		if tty {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return m
}

// Attach subscribes the monitor to press, hold and release of every key
// in c's current mapping.
func (m *Monitor) Attach(c *input.Controller) error {
	_, err := c.OnList(phaseTypes, mappedKeys(c), m.handle, event.Options{Tag: monitorTag})
	return err
}

// Detach removes the monitor's listeners from c.
func (m *Monitor) Detach(c *input.Controller) int {
	m.mu.Lock()
	m.last = make(map[monitorKey]key.Value)
	m.mu.Unlock()
	return c.OffTag(monitorTag)
}

// Connection prints a connection transition. It is an
// input.ConnectionObserver.
func (m *Monitor) Connection(t key.EventType, slot key.Slot, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if name == "" {
		name = "unknown device"
	}
	_, _ = m.color(t).Fprintf(m.out, "%-10s player=%-8s %s\n", t, slot, name)
}

// Summary prints the controller's totals.
func (m *Monitor) Summary(s input.MetricsSnapshot, d dispatch.Stats) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, _ = m.plain.Fprintf(m.out,
		"%-10s frames=%d events=%d connects=%d disconnects=%d listener_failures=%d avg_frame=%s\n",
		"summary", s.Frames, s.Transitions, s.Connects, s.Disconnects, d.Failed+d.Panicked, s.AvgFrame)
}

func (m *Monitor) handle(ev event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := monitorKey{player: ev.Player, button: ev.Button}
	switch ev.Type {
	case key.Hold:
		if slices.Equal(m.last[k], ev.Value) {
			return nil
		}
		m.last[k] = ev.Value.Clone()
	case key.Press:
		m.last[k] = ev.Value.Clone()
	case key.Release:
		delete(m.last, k)
	}

	_, _ = m.color(ev.Type).Fprintf(m.out, "%s %-10s %-22s player=%-8s %s\n",
		ev.Timestamp.Format("15:04:05.000"), ev.Type, ev.Button, ev.Player, formatValue(ev.Value))
	return nil
}

func (m *Monitor) color(t key.EventType) *color.Color {
	if c, ok := m.colors[t]; ok {
		return c
	}
	return m.plain
}

// phaseTypes are the event types the poll loop emits for keys.
var phaseTypes = []string{string(key.Press), string(key.Hold), string(key.Release)}

// mappedKeys lists every logical key of c's mapping once.
func mappedKeys(c *input.Controller) []string {
	mapping := c.Mapping()
	var keys []string
	for _, ns := range key.Namespaces {
		for _, k := range mapping.Keys(ns) {
			if !slices.Contains(keys, string(k)) {
				keys = append(keys, string(k))
			}
		}
	}
	return keys
}

func formatValue(v key.Value) string {
	parts := make([]string, len(v))
	for i, c := range v {
		parts[i] = fmt.Sprintf("%.3f", c)
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

