package key

import "testing"

func TestCodeByName(t *testing.T) {
	tests := []struct {
		name string
		want Code
		ok   bool
	}{
		{"space", CodeSpace, true},
		{"Space", CodeSpace, true},
		{"esc", CodeEscape, true},
		{"escape", CodeEscape, true},
		{"w", 87, true},
		{"A", 65, true},
		{"7", 55, true},
		{"kp3", 99, true},
		{"f12", 123, true},
		{"38", 38, true},
		{"hyper", 0, false},
		{"-1", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CodeByName(tt.name)
			if ok != tt.ok || got != tt.want {
				t.Errorf("CodeByName(%q) = %d, %v; want %d, %v", tt.name, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestCodeNameRoundTrip(t *testing.T) {
	for _, c := range []Code{CodeSpace, CodeEscape, CodeUp, 87, 49, 100, 115, CodeKPAdd} {
		name := CodeName(c)
		got, ok := CodeByName(name)
		if !ok || got != c {
			t.Errorf("CodeByName(CodeName(%d)=%q) = %d, %v", c, name, got, ok)
		}
	}

	if got := CodeName(250); got != "250" {
		t.Errorf("CodeName(250) = %q, want \"250\"", got)
	}
}

func TestCodeForRune(t *testing.T) {
	tests := []struct {
		r    rune
		want Code
		ok   bool
	}{
		{'a', 65, true},
		{'W', 87, true},
		{'0', 48, true},
		{' ', CodeSpace, true},
		{'@', 0, false},
	}

	for _, tt := range tests {
		got, ok := CodeForRune(tt.r)
		if ok != tt.ok || got != tt.want {
			t.Errorf("CodeForRune(%q) = %d, %v; want %d, %v", tt.r, got, ok, tt.want, tt.ok)
		}
	}
}
