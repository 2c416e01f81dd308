package input

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"
)

// latencySamples is how many recent frame durations Metrics keeps.
const latencySamples = 1000

// Metrics counts poll loop activity. It is safe for concurrent use.
type Metrics struct {
	clock clock.Clock
	start time.Time

	frames      atomic.Uint64
	transitions atomic.Uint64
	connects    atomic.Uint64
	disconnects atomic.Uint64
	keyEvents   atomic.Uint64
	frameErrors atomic.Uint64

	mu      sync.Mutex
	samples []time.Duration
	next    int
	peak    time.Duration
}

// NewMetrics creates metrics timed by c.
func NewMetrics(c clock.Clock) *Metrics {
	if c == nil {
		c = clock.New()
	}
	return &Metrics{
		clock:   c,
		start:   c.Now(),
		samples: make([]time.Duration, 0, latencySamples),
	}
}

// RecordFrame records one poll loop iteration and how long it took.
func (m *Metrics) RecordFrame(d time.Duration) {
	m.frames.Add(1)

	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.samples) < latencySamples {
		m.samples = append(m.samples, d)
	} else {
		m.samples[m.next] = d
		m.next = (m.next + 1) % latencySamples
	}
	m.peak = max(m.peak, d)
}

// RecordTransitions records n delivered phase transitions.
func (m *Metrics) RecordTransitions(n int) {
	if n > 0 {
		m.transitions.Add(uint64(n))
	}
}

// RecordConnect records a gamepad connection.
func (m *Metrics) RecordConnect() { m.connects.Add(1) }

// RecordDisconnect records a gamepad disconnection.
func (m *Metrics) RecordDisconnect() { m.disconnects.Add(1) }

// RecordKeyEvent records a raw keyboard event.
func (m *Metrics) RecordKeyEvent() { m.keyEvents.Add(1) }

// RecordFrameError records a frame whose delivery failed.
func (m *Metrics) RecordFrameError() { m.frameErrors.Add(1) }

// MetricsSnapshot is a point-in-time view of Metrics. Frame durations
// cover the most recent frames only.
type MetricsSnapshot struct {
	Frames      uint64
	Transitions uint64
	Connects    uint64
	Disconnects uint64
	KeyEvents   uint64
	FrameErrors uint64

	AvgFrame  time.Duration
	P99Frame  time.Duration
	PeakFrame time.Duration

	FramesPerSecond float64
	Uptime          time.Duration
}

// Snapshot returns the current counters and frame duration statistics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	samples := slices.Clone(m.samples)
	peak := m.peak
	m.mu.Unlock()

	s := MetricsSnapshot{
		Frames:      m.frames.Load(),
		Transitions: m.transitions.Load(),
		Connects:    m.connects.Load(),
		Disconnects: m.disconnects.Load(),
		KeyEvents:   m.keyEvents.Load(),
		FrameErrors: m.frameErrors.Load(),
		PeakFrame:   peak,
		Uptime:      m.clock.Since(m.start),
	}
	if s.Uptime > 0 {
		s.FramesPerSecond = float64(s.Frames) / s.Uptime.Seconds()
	}
	if len(samples) > 0 {
		var sum time.Duration
		for _, d := range samples {
			sum += d
		}
		s.AvgFrame = sum / time.Duration(len(samples))
		slices.Sort(samples)
		s.P99Frame = samples[min(len(samples)*99/100, len(samples)-1)]
	}
	return s
}

// Fields returns the snapshot as log fields.
func (s MetricsSnapshot) Fields() []zap.Field {
	return []zap.Field{
		zap.Uint64("frames", s.Frames),
		zap.Uint64("transitions", s.Transitions),
		zap.Uint64("connects", s.Connects),
		zap.Uint64("disconnects", s.Disconnects),
		zap.Uint64("key_events", s.KeyEvents),
		zap.Uint64("frame_errors", s.FrameErrors),
		zap.Duration("avg_frame", s.AvgFrame),
		zap.Duration("p99_frame", s.P99Frame),
		zap.Duration("peak_frame", s.PeakFrame),
		zap.Float64("fps", s.FramesPerSecond),
		zap.Duration("uptime", s.Uptime),
	}
}
