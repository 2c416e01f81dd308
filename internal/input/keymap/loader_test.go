package keymap

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/dshills/joyride/internal/input/key"
)

func TestDecodeFormats(t *testing.T) {
	want := map[key.Namespace]Table{
		key.NamespaceGamepad:  {"jump": {0}, "fire": {1, 2}},
		key.NamespaceKeyboard: {"jump": {key.CodeSpace}, "fire": {key.CodeEnter, 70}},
	}

	tests := []struct {
		name   string
		format Format
		doc    string
	}{
		{"json", FormatJSON, `{
			"gamepad": {"jump": 0, "fire": [1, 2]},
			"keyboard": {"jump": "space", "fire": ["enter", "f"]}
		}`},
		{"yaml", FormatYAML, `
gamepad:
  jump: 0
  fire: [1, 2]
keyboard:
  jump: space
  fire: [enter, f]
`},
		{"toml", FormatTOML, `
[gamepad]
jump = 0
fire = [1, 2]

[keyboard]
jump = "space"
fire = ["enter", "f"]
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(strings.NewReader(tt.doc), tt.format)
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Decode() = %v, want %v", got, want)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		doc    string
		want   error
	}{
		{"unknown namespace", FormatJSON, `{"mouse": {"jump": 0}}`, ErrUnknownNamespace},
		{"unknown key name", FormatJSON, `{"keyboard": {"jump": "hyper"}}`, ErrInvalidTable},
		{"fractional index", FormatJSON, `{"gamepad": {"jump": 1.5}}`, ErrInvalidTable},
		{"not a table", FormatJSON, `{"gamepad": 3}`, ErrInvalidTable},
		{"unsupported format", Format("ini"), `x=1`, ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc), tt.format)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadFileAndApply(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pad.yaml")
	doc := "axes:\n  tilt: [4, 6]\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	tables, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}

	m := Default()
	if err := Apply(m, tables); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if got := m.Keys(key.NamespaceAxes); !reflect.DeepEqual(got, []key.Logical{"tilt"}) {
		t.Errorf("axes keys = %v, want [tilt]", got)
	}
	if got := m.Keys(key.NamespaceGamepad); len(got) != 17 {
		t.Errorf("gamepad table changed, keys = %v", got)
	}
}

func TestApplyIsAllOrNothing(t *testing.T) {
	m := Default()
	err := Apply(m, map[key.Namespace]Table{
		key.NamespaceGamepad: {"jump": {0}},
		key.NamespaceAxes:    {"tilt": {3}},
	})
	if !errors.Is(err, ErrInvalidTable) {
		t.Fatalf("Apply() error = %v, want ErrInvalidTable", err)
	}
	if got := m.Keys(key.NamespaceGamepad); len(got) != 17 {
		t.Errorf("gamepad table replaced despite invalid axes table: %v", got)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"a.json": FormatJSON,
		"a.YML":  FormatYAML,
		"a.yaml": FormatYAML,
		"a.toml": FormatTOML,
	}
	for path, want := range tests {
		got, err := FormatFromPath(path)
		if err != nil || got != want {
			t.Errorf("FormatFromPath(%q) = %q, %v; want %q", path, got, err, want)
		}
	}
	if _, err := FormatFromPath("a.ini"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("FormatFromPath(a.ini) error = %v", err)
	}
}
