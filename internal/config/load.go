package config

import (
	"fmt"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/dshills/joyride/internal/config/loader"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "JOYRIDE_"

// Sections are the nested config sections addressable from the environment.
var sections = []string{"logging", "terminal", "evdev", "sdl"}

// Loader loads configuration layers.
type Loader struct {
	files *loader.FileLoader
	env   *loader.EnvLoader
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFileSystem reads config files from fsys.
func WithFileSystem(fsys loader.FileSystem) LoaderOption {
	return func(l *Loader) {
		l.files = loader.NewFileLoaderWithFS(fsys)
	}
}

// WithEnv replaces the environment loader; nil disables environment
// overrides.
func WithEnv(env *loader.EnvLoader) LoaderOption {
	return func(l *Loader) {
		l.env = env
	}
}

// NewLoader creates a loader reading the OS file system and JOYRIDE_
// environment variables.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		files: loader.NewFileLoader(),
		env:   loader.NewEnvLoader(EnvPrefix, sections...),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads defaults, then the file at path (if path is non-empty and the
// file exists), then the environment, and validates the result.
func (l *Loader) Load(path string) (*Config, error) {
	raw := make(map[string]any)
	if path != "" {
		file, err := l.files.Load(path)
		if err != nil {
			return nil, err
		}
		raw = loader.Merge(raw, file)
	}
	if l.env != nil {
		env, err := l.env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		raw = loader.Merge(raw, env)
	}

	cfg := Default()
	if err := decode(raw, cfg); err != nil {
		return nil, err
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load loads configuration with the default loader.
func Load(path string) (*Config, error) {
	return NewLoader().Load(path)
}

// decode writes raw onto cfg, leaving fields absent from raw untouched.
func decode(raw map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			floatToDurationHook,
		),
	})
	if err != nil {
		return fmt.Errorf("building decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}

// floatToDurationHook reads bare numbers as milliseconds, since YAML and
// JSON have no duration type.
func floatToDurationHook(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(time.Duration(0)) {
		return data, nil
	}
	switch v := data.(type) {
	case float64:
		return durationMillis(v), nil
	case int:
		return durationMillis(float64(v)), nil
	case int64:
		return durationMillis(float64(v)), nil
	case uint64:
		return durationMillis(float64(v)), nil
	}
	return data, nil
}

func durationMillis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
