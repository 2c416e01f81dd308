package script

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/dshills/joyride/internal/event"
	"github.com/dshills/joyride/internal/input"
	"github.com/dshills/joyride/internal/input/key"
)

// DefaultTimeout bounds one chunk or callback.
const DefaultTimeout = time.Second

// Host is the part of the input controller scripts drive.
type Host interface {
	OnList(types, keys []string, h event.Handler, opts ...event.Options) ([]event.ID, error)
	OffList(types, keys []string) int
	OffTag(tag string) int
	OnConnection(t key.EventType, fn input.ConnectionHandler) error
	Trigger(ctx context.Context, t key.EventType, k key.Logical, v key.Value, slot key.Slot) error
	SetGlobalThreshold(v float64) error
	Threshold() float64
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runtime) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithTimeout sets the execution timeout for each chunk and callback.
func WithTimeout(d time.Duration) Option {
	return func(r *Runtime) {
		if d > 0 {
			r.timeout = d
		}
	}
}

type trigger struct {
	typ   key.EventType
	key   key.Logical
	value key.Value
	slot  key.Slot
}

// Runtime runs Lua scripts against a Host.
type Runtime struct {
	host    Host
	logger  *zap.Logger
	timeout time.Duration
	tag     string

	mu       sync.Mutex
	L        *lua.LState
	closed   bool
	pending  []trigger
	flushing bool

	// connection callbacks, in registration order
	connect    []*lua.LFunction
	disconnect []*lua.LFunction
	installed  map[key.EventType]bool
}

// New creates a runtime bound to host.
func New(host Host, opts ...Option) *Runtime {
	r := &Runtime{
		host:      host,
		logger:    zap.NewNop(),
		timeout:   DefaultTimeout,
		tag:       "script:" + string(event.NewID()),
		installed: make(map[key.EventType]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.L = newSandboxedState(r.logger)
	r.L.SetGlobal("joyride", r.module())
	return r
}

// Tag is the listener tag of every subscription the runtime makes.
func (r *Runtime) Tag() string {
	return r.tag
}

// LoadFile runs the script at path.
func (r *Runtime) LoadFile(path string) error {
	code, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}
	return r.LoadString(filepath.Base(path), string(code))
}

// LoadString runs a chunk of Lua; name appears in error messages.
func (r *Runtime) LoadString(name, code string) error {
	err := r.run(func(L *lua.LState) error {
		fn, err := L.Load(strings.NewReader(code), name)
		if err != nil {
			return err
		}
		L.Push(fn)
		return L.PCall(0, lua.MultRet, nil)
	})
	r.flush()
	if err != nil {
		return fmt.Errorf("script %s: %w", name, err)
	}
	r.logger.Info("script loaded", zap.String("script", name))
	return nil
}

// Close removes the runtime's listeners and connection handlers and
// releases the Lua state.
func (r *Runtime) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	installed := r.installed
	r.installed = make(map[key.EventType]bool)
	r.pending = nil
	r.mu.Unlock()

	r.host.OffTag(r.tag)
	for t := range installed {
		if err := r.host.OnConnection(t, nil); err != nil && !errors.Is(err, input.ErrDestroyed) {
			r.logger.Warn("clearing connection handler", zap.Stringer("type", t), zap.Error(err))
		}
	}

	r.mu.Lock()
	r.L.Close()
	r.mu.Unlock()
	return nil
}

// run executes fn on the Lua state under the execution timeout.
func (r *Runtime) run(fn func(L *lua.LState) error) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrScriptClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	r.L.SetContext(ctx)
	defer r.L.RemoveContext()

	top := r.L.GetTop()
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("lua panic: %v", p)
		}
		r.L.SetTop(top)
		if err != nil && ctx.Err() != nil {
			err = fmt.Errorf("%w: %w", ErrTimeout, err)
		}
	}()
	return fn(r.L)
}

// call invokes a Lua function with args and flushes queued triggers.
func (r *Runtime) call(fn *lua.LFunction, args ...func(L *lua.LState) lua.LValue) error {
	err := r.run(func(L *lua.LState) error {
		L.Push(fn)
		for _, a := range args {
			L.Push(a(L))
		}
		return L.PCall(len(args), 0, nil)
	})
	r.flush()
	return err
}

// listener adapts a Lua function to an event handler.
func (r *Runtime) listener(fn *lua.LFunction) event.Handler {
	return func(ev event.Event) error {
		return r.call(fn, func(L *lua.LState) lua.LValue { return eventTable(L, ev) })
	}
}

// connection fans a connection transition out to the Lua callbacks.
func (r *Runtime) connection(t key.EventType) input.ConnectionHandler {
	return func(slot key.Slot) {
		r.mu.Lock()
		fns := r.disconnect
		if t == key.Connect {
			fns = r.connect
		}
		fns = append([]*lua.LFunction(nil), fns...)
		r.mu.Unlock()

		for _, fn := range fns {
			err := r.call(fn, func(*lua.LState) lua.LValue { return lua.LNumber(slot) })
			if err != nil {
				r.logger.Warn("connection callback failed", zap.Stringer("type", t),
					zap.Stringer("player", slot), zap.Error(err))
			}
		}
	}
}

// flush delivers queued triggers outside the Lua lock. Triggers queued by
// listeners it runs are delivered by the same loop.
func (r *Runtime) flush() {
	for {
		r.mu.Lock()
		if r.flushing || len(r.pending) == 0 {
			r.mu.Unlock()
			return
		}
		batch := r.pending
		r.pending = nil
		r.flushing = true
		r.mu.Unlock()

		for _, tr := range batch {
			if err := r.host.Trigger(context.Background(), tr.typ, tr.key, tr.value, tr.slot); err != nil {
				r.logger.Warn("script trigger failed", zap.Stringer("type", tr.typ),
					zap.Stringer("key", tr.key), zap.Error(err))
			}
		}

		r.mu.Lock()
		r.flushing = false
		r.mu.Unlock()
	}
}
