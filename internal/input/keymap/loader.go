package keymap

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/joyride/internal/input/key"
)

// Format identifies a mapping document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadFile reads a mapping document from disk.
func LoadFile(path string) (map[key.Namespace]Table, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening mapping file: %w", err)
	}
	defer f.Close()

	tables, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tables, nil
}

// Decode reads a mapping document in the given format.
func Decode(r io.Reader, format Format) (map[key.Namespace]Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading mapping: %w", err)
	}

	var raw map[string]any
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &raw)
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	case FormatTOML:
		err = toml.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s mapping: %w", format, err)
	}

	return ParseTables(raw)
}

// ParseTables converts a generic document (as produced by a JSON, YAML or
// TOML decoder) into tables. Top-level keys must be namespace names.
func ParseTables(raw map[string]any) (map[key.Namespace]Table, error) {
	tables := make(map[key.Namespace]Table, len(raw))
	for name, v := range raw {
		ns, err := key.ParseNamespace(name)
		if err != nil {
			return nil, &NamespaceError{Namespace: name}
		}

		entries, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s: expected a table, got %T", ErrInvalidTable, name, v)
		}

		t := make(Table, len(entries))
		for k, ev := range entries {
			ix, err := parseIndices(ns, ev)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", name, k, err)
			}
			t[key.Logical(k)] = ix
		}
		tables[ns] = t
	}
	return tables, nil
}

// Apply validates every table first and then replaces each namespace, so a
// bad table leaves the mapping untouched.
func Apply(m *Mapping, tables map[key.Namespace]Table) error {
	for ns, t := range tables {
		if !ns.Valid() {
			return &NamespaceError{Namespace: string(ns)}
		}
		if err := t.Validate(ns); err != nil {
			return fmt.Errorf("namespace %s: %w", ns, err)
		}
	}
	for _, ns := range key.Namespaces {
		t, ok := tables[ns]
		if !ok {
			continue
		}
		if err := m.Set(ns, t); err != nil {
			return err
		}
	}
	return nil
}

func parseIndices(ns key.Namespace, v any) (Indices, error) {
	switch x := v.(type) {
	case []any:
		ix := make(Indices, 0, len(x))
		for _, item := range x {
			n, err := parseIndex(ns, item)
			if err != nil {
				return nil, err
			}
			ix = append(ix, n)
		}
		return ix, nil
	case []int:
		return Indices(x), nil
	default:
		n, err := parseIndex(ns, v)
		if err != nil {
			return nil, err
		}
		return Indices{n}, nil
	}
}

func parseIndex(ns key.Namespace, v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case uint64:
		return int(x), nil
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("%w: non-integer index %v", ErrInvalidTable, x)
		}
		return int(x), nil
	case string:
		if ns == key.NamespaceKeyboard {
			if c, ok := key.CodeByName(x); ok {
				return c, nil
			}
			return 0, fmt.Errorf("%w: unknown key name %q", ErrInvalidTable, x)
		}
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, fmt.Errorf("%w: index %q is not a number", ErrInvalidTable, x)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: unsupported index type %T", ErrInvalidTable, v)
	}
}
