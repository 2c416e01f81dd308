package sdlpad

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/dshills/joyride/internal/input/key"
)

func TestNormalizeAxis(t *testing.T) {
	tests := []struct {
		in   int16
		want float64
	}{
		{0, 0},
		{32767, 1},
		{-32768, -1},
		{16384, 16384.0 / 32767},
	}
	for _, tt := range tests {
		if got := normalizeAxis(tt.in); got != tt.want {
			t.Errorf("normalizeAxis(%d) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTriggerValue(t *testing.T) {
	if got := triggerValue(-5); got != 0 {
		t.Errorf("triggerValue(-5) = %v, want 0", got)
	}
	if got := triggerValue(32767); got != 1 {
		t.Errorf("triggerValue(max) = %v, want 1", got)
	}
}

func TestKeyCode(t *testing.T) {
	tests := []struct {
		sym  sdl.Keycode
		want int
		ok   bool
	}{
		{sdl.K_a, key.CodeA, true},
		{sdl.K_w, key.CodeA + int('w'-'a'), true},
		{sdl.K_0, key.Code0, true},
		{sdl.K_9, key.Code0 + 9, true},
		{sdl.K_F1, key.CodeF1, true},
		{sdl.K_F12, key.CodeF1 + 11, true},
		{sdl.K_SPACE, key.CodeSpace, true},
		{sdl.K_RSHIFT, key.CodeShift, true},
		{sdl.K_UP, key.CodeUp, true},
		{sdl.K_MUTE, 0, false},
	}
	for _, tt := range tests {
		got, ok := keyCode(tt.sym)
		if ok != tt.ok || got != tt.want {
			t.Errorf("keyCode(%d) = %d, %v; want %d, %v", tt.sym, got, ok, tt.want, tt.ok)
		}
	}
}

func TestStandardLayout(t *testing.T) {
	if len(standardButtons) != 17 {
		t.Errorf("len(standardButtons) = %d, want 17", len(standardButtons))
	}
	if len(standardAxes) != 4 {
		t.Errorf("len(standardAxes) = %d, want 4", len(standardAxes))
	}
	for _, i := range []int{6, 7} {
		if !standardButtons[i].analog {
			t.Errorf("button %d should be an analog trigger", i)
		}
	}
}
