package macro

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/benbjohnson/clock"

	"github.com/dshills/joyride/internal/input/key"
)

// TriggerFunc delivers one replayed event. Controller.Trigger satisfies it.
type TriggerFunc func(ctx context.Context, t key.EventType, k key.Logical, v key.Value, slot key.Slot) error

// PlayerOption configures a Player.
type PlayerOption func(*Player)

// WithPlayerClock sets the clock used to wait between steps.
func WithPlayerClock(c clock.Clock) PlayerOption {
	return func(p *Player) {
		if c != nil {
			p.clock = c
		}
	}
}

// Player replays macros.
type Player struct {
	trigger TriggerFunc
	clock   clock.Clock

	mu      sync.Mutex
	playing atomic.Bool
	cancel  context.CancelFunc
}

// NewPlayer creates a player delivering steps through trigger.
func NewPlayer(trigger TriggerFunc, opts ...PlayerOption) *Player {
	p := &Player{trigger: trigger, clock: clock.New()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Play replays m count times (minimum 1), keeping the recorded spacing
// between steps. It blocks until playback ends, ctx is done, Cancel is
// called or a step fails.
func (p *Player) Play(ctx context.Context, m Macro, count int) error {
	if len(m.Steps) == 0 {
		return fmt.Errorf("%w: %q", ErrEmpty, m.Name)
	}
	if count < 1 {
		count = 1
	}

	ctx, cancel := context.WithCancel(ctx)

	p.mu.Lock()
	if p.playing.Load() {
		p.mu.Unlock()
		cancel()
		return ErrAlreadyPlaying
	}
	p.cancel = cancel
	p.playing.Store(true)
	p.mu.Unlock()

	defer func() {
		cancel()
		p.playing.Store(false)
		p.mu.Lock()
		p.cancel = nil
		p.mu.Unlock()
	}()

	for i := 0; i < count; i++ {
		if err := p.playOnce(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (p *Player) playOnce(ctx context.Context, m Macro) error {
	start := p.clock.Now()
	for _, s := range m.Steps {
		if wait := s.Offset - p.clock.Since(start); wait > 0 {
			t := p.clock.Timer(wait)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.trigger(ctx, s.Type, s.Button, s.Value, s.Player); err != nil {
			return fmt.Errorf("replaying %s %s: %w", s.Type, s.Button, err)
		}
	}
	return nil
}

// IsPlaying returns true while a macro is being played.
func (p *Player) IsPlaying() bool {
	return p.playing.Load()
}

// Cancel stops the macro being played.
// Safe to call even if no macro is playing.
func (p *Player) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
}
