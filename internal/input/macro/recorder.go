package macro

import (
	"slices"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	"github.com/dshills/joyride/internal/event"
)

// Subscriber is the part of the controller a Recorder listens on.
type Subscriber interface {
	OnList(types, keys []string, h event.Handler, opts ...event.Options) ([]event.ID, error)
	OffTag(tag string) int
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithRecorderClock sets the clock used for step offsets.
func WithRecorderClock(c clock.Clock) RecorderOption {
	return func(r *Recorder) {
		if c != nil {
			r.clock = c
		}
	}
}

// Recorder records events into named macros.
type Recorder struct {
	mu    sync.Mutex
	clock clock.Clock
	tag   string

	recording bool
	name      string
	start     time.Time
	steps     []Step

	macros map[string]Macro
}

// NewRecorder creates a recorder with no macros.
func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{
		clock:  clock.New(),
		tag:    "macro:" + uuid.NewString(),
		macros: make(map[string]Macro),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Attach subscribes the recorder to every (type, key) pair on s.
// Events arriving while no recording is active are ignored.
func (r *Recorder) Attach(s Subscriber, types, keys []string) error {
	_, err := s.OnList(types, keys, r.Record, event.Options{Tag: r.tag})
	return err
}

// Detach removes the recorder's listeners from s.
func (r *Recorder) Detach(s Subscriber) int {
	return s.OffTag(r.tag)
}

// Start begins recording into the macro name. The macro is stored when
// Stop is called, replacing any macro of the same name.
func (r *Recorder) Start(name string) error {
	if err := checkName(name); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return ErrAlreadyRecording
	}
	r.recording = true
	r.name = name
	r.start = r.clock.Now()
	r.steps = nil
	return nil
}

// Stop ends the recording and returns the macro. A recording with no
// steps is returned but not stored.
func (r *Recorder) Stop() (Macro, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		return Macro{}, ErrNotRecording
	}
	r.recording = false
	m := Macro{Name: r.name, Steps: r.steps}
	r.steps = nil
	if len(m.Steps) > 0 {
		r.macros[m.Name] = m.Clone()
	}
	return m, nil
}

// IsRecording returns true while a recording is active.
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Record appends ev to the active recording. It is an event.Handler.
func (r *Recorder) Record(ev event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		return nil
	}
	r.steps = append(r.steps, Step{
		Offset: r.clock.Since(r.start),
		Type:   ev.Type,
		Button: ev.Button,
		Value:  ev.Value.Clone(),
		Player: ev.Player,
	})
	return nil
}

// Get returns a copy of the macro called name.
func (r *Recorder) Get(name string) (Macro, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.macros[name]
	if !ok {
		return Macro{}, false
	}
	return m.Clone(), true
}

// Set stores m, replacing any macro of the same name. A macro without
// steps deletes the name.
func (r *Recorder) Set(m Macro) error {
	if err := checkName(m.Name); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(m.Steps) == 0 {
		delete(r.macros, m.Name)
		return nil
	}
	r.macros[m.Name] = m.Clone()
	return nil
}

// Delete removes the macro called name.
func (r *Recorder) Delete(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.macros, name)
}

// Names returns the stored macro names in sorted order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.macros))
	for name := range r.macros {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
