package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newWatcher(t *testing.T, opts ...Option) *Watcher {
	t.Helper()
	w, err := New(opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(w.Stop)
	return w
}

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestWatcher_WatchUnwatch(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")

	w := newWatcher(t)
	if err := w.Watch(a); err != nil {
		t.Fatalf("Watch(a): %v", err)
	}
	if err := w.Watch(b); err != nil {
		t.Fatalf("Watch(b): %v", err)
	}
	if err := w.Watch(a); err != nil {
		t.Fatalf("Watch(a) again: %v", err)
	}
	if got := w.WatchedFiles(); len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("WatchedFiles() = %v, want [%s %s]", got, a, b)
	}
	if w.dirs[dir] != 2 {
		t.Errorf("dir refcount = %d, want 2", w.dirs[dir])
	}

	if err := w.Unwatch(a); err != nil {
		t.Fatalf("Unwatch(a): %v", err)
	}
	if err := w.Unwatch(b); err != nil {
		t.Fatalf("Unwatch(b): %v", err)
	}
	if len(w.WatchedFiles()) != 0 || len(w.dirs) != 0 {
		t.Errorf("after Unwatch: files %v dirs %v", w.WatchedFiles(), w.dirs)
	}
}

func TestWatcher_WatchMissingDir(t *testing.T) {
	w := newWatcher(t)
	if err := w.Watch(filepath.Join(t.TempDir(), "nope", "a.yaml")); err == nil {
		t.Error("Watch() in missing directory succeeded")
	}
}

func TestWatcher_DetectsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "joyride.yaml")
	if err := os.WriteFile(path, []byte("threshold: 0.3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := newWatcher(t, WithDebounce(20*time.Millisecond))
	events := make(chan Event, 8)
	w.OnChange(func(e Event) { events <- e })
	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch: %v", err)
	}
	w.Start()
	if !w.IsRunning() {
		t.Fatal("IsRunning() = false after Start")
	}

	// An unrelated file in the same directory is ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("threshold: 0.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case e := <-events:
		if e.Path != path {
			t.Errorf("event path = %q, want %q", e.Path, path)
		}
		if e.Op != OpWrite && e.Op != OpCreate {
			t.Errorf("event op = %v, want write or create", e.Op)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change event")
	}
}

func TestWatcher_CoalescesBurst(t *testing.T) {
	tests := []struct {
		name string
		ops  []Operation
		want Operation
	}{
		{"writes", []Operation{OpWrite, OpWrite, OpWrite}, OpWrite},
		{"create then write", []Operation{OpCreate, OpWrite}, OpCreate},
		{"write then remove", []Operation{OpWrite, OpRemove}, OpRemove},
		{"replace", []Operation{OpRemove, OpCreate}, OpWrite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWatcher(t, WithDebounce(20*time.Millisecond))
			events := make(chan Event, 8)
			w.OnChange(func(e Event) { events <- e })
			w.Start()

			for _, op := range tt.ops {
				w.queue(Event{Path: "/cfg/joyride.yaml", Op: op, Time: time.Now()})
			}

			select {
			case e := <-events:
				if e.Op != tt.want {
					t.Errorf("op = %v, want %v", e.Op, tt.want)
				}
			case <-time.After(2 * time.Second):
				t.Fatal("no event")
			}
			select {
			case e := <-events:
				t.Errorf("unexpected second event %+v", e)
			case <-time.After(60 * time.Millisecond):
			}
		})
	}
}

func TestWatcher_HandlerPanicRecovered(t *testing.T) {
	w := newWatcher(t, WithDebounce(10*time.Millisecond))
	got := make(chan Event, 1)
	w.OnChange(func(Event) { panic("boom") })
	w.OnChange(func(e Event) { got <- e })
	w.Start()

	w.queue(Event{Path: "/cfg/a.toml", Op: OpWrite, Time: time.Now()})
	select {
	case <-got:
	case <-time.After(2 * time.Second):
		t.Fatal("second handler not called after panic")
	}
}

func TestWatcher_StopIdempotent(t *testing.T) {
	w := newWatcher(t)
	w.Start()
	w.Start()
	w.Stop()
	if w.IsRunning() {
		t.Error("IsRunning() = true after Stop")
	}
	w.Stop()
}
