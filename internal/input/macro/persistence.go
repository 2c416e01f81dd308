package macro

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/dshills/joyride/internal/input/key"
)

// persistedStep is the JSON form of a Step.
type persistedStep struct {
	OffsetMS float64   `json:"offset_ms"`
	Type     string    `json:"type"`
	Button   string    `json:"button"`
	Value    []float64 `json:"value,omitempty"`
	Player   int       `json:"player"`
}

type persistedMacro struct {
	Name  string          `json:"name"`
	Steps []persistedStep `json:"steps"`
}

// persistedData is the root structure of a macros file.
type persistedData struct {
	Version int              `json:"version"`
	SavedAt time.Time        `json:"saved_at"`
	Macros  []persistedMacro `json:"macros"`
}

const currentVersion = 1

func toPersisted(m Macro) persistedMacro {
	pm := persistedMacro{Name: m.Name, Steps: make([]persistedStep, len(m.Steps))}
	for i, s := range m.Steps {
		pm.Steps[i] = persistedStep{
			OffsetMS: float64(s.Offset) / float64(time.Millisecond),
			Type:     string(s.Type),
			Button:   string(s.Button),
			Value:    s.Value,
			Player:   int(s.Player),
		}
	}
	return pm
}

func fromPersisted(pm persistedMacro) Macro {
	m := Macro{Name: pm.Name, Steps: make([]Step, len(pm.Steps))}
	for i, s := range pm.Steps {
		m.Steps[i] = Step{
			Offset: time.Duration(s.OffsetMS * float64(time.Millisecond)),
			Type:   key.EventType(s.Type),
			Button: key.Logical(s.Button),
			Value:  key.Value(s.Value),
			Player: key.Slot(s.Player),
		}
	}
	return m
}

// Export returns every macro of r as JSON.
func Export(r *Recorder) ([]byte, error) {
	data := persistedData{Version: currentVersion, SavedAt: r.clock.Now().UTC()}
	for _, name := range r.Names() {
		if m, ok := r.Get(name); ok {
			data.Macros = append(data.Macros, toPersisted(m))
		}
	}
	return json.MarshalIndent(data, "", "  ")
}

// Import stores the macros in data on r. With merge set, names r already
// holds are kept; otherwise they are replaced.
func Import(r *Recorder, data []byte, merge bool) error {
	var pd persistedData
	if err := json.Unmarshal(data, &pd); err != nil {
		return fmt.Errorf("failed to unmarshal macros: %w", err)
	}
	if pd.Version > currentVersion {
		return fmt.Errorf("%w: %d (max supported: %d)", ErrUnsupportedVersion, pd.Version, currentVersion)
	}

	for _, pm := range pd.Macros {
		if merge {
			if _, ok := r.Get(pm.Name); ok {
				continue
			}
		}
		if err := r.Set(fromPersisted(pm)); err != nil {
			return err
		}
	}
	return nil
}

// Save writes every macro of r to path.
// The file is written atomically using a temporary file and rename.
func Save(r *Recorder, path string) error {
	data, err := Export(r)
	if err != nil {
		return fmt.Errorf("failed to marshal macros: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Load reads the macros file at path into r, replacing macros of the same
// name. A missing file loads nothing.
func Load(r *Recorder, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read macros file: %w", err)
	}
	return Import(r, data, false)
}
