package logging

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrUnknownFormat is returned for an encoding other than console or json.
var ErrUnknownFormat = errors.New("unknown log format")

// Formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config configures a Logger.
type Config struct {
	// Level is debug, info, warn or error. Unknown values mean info.
	Level string `mapstructure:"level" yaml:"level" toml:"level" json:"level"`
	// Format is console or json.
	Format string `mapstructure:"format" yaml:"format" toml:"format" json:"format"`
	// Output is stderr, stdout or a file path.
	Output string `mapstructure:"output" yaml:"output" toml:"output" json:"output"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: FormatConsole,
		Output: "stderr",
	}
}

// ParseLevel parses a level name. Unknown names map to info.
func ParseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Logger is a zap logger with a level that can change at runtime.
type Logger struct {
	*zap.Logger
	level zap.AtomicLevel
}

// New builds a logger from cfg.
func New(cfg Config) (*Logger, error) {
	def := DefaultConfig()
	if cfg.Format == "" {
		cfg.Format = def.Format
	}
	if cfg.Output == "" {
		cfg.Output = def.Output
	}
	if cfg.Format != FormatConsole && cfg.Format != FormatJSON {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, cfg.Format)
	}

	level := zap.NewAtomicLevelAt(ParseLevel(cfg.Level))
	enc := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	if cfg.Format == FormatConsole && (cfg.Output == "stderr" || cfg.Output == "stdout") {
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zc := zap.Config{
		Level:             level,
		Encoding:          cfg.Format,
		EncoderConfig:     enc,
		DisableStacktrace: true,
		OutputPaths:       []string{cfg.Output},
		ErrorOutputPaths:  []string{"stderr"},
	}
	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return &Logger{Logger: l, level: level}, nil
}

// Wrap adapts an existing zap logger. Its level cannot be changed.
func Wrap(l *zap.Logger) *Logger {
	if l == nil {
		l = zap.NewNop()
	}
	return &Logger{Logger: l, level: zap.NewAtomicLevelAt(zapcore.DebugLevel)}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return Wrap(zap.NewNop())
}

// SetLevel changes the level of a logger built by New.
func (l *Logger) SetLevel(s string) {
	l.level.SetLevel(ParseLevel(s))
}

// Level returns the current level.
func (l *Logger) Level() zapcore.Level {
	return l.level.Level()
}

// Component returns a child logger named after a component.
func Component(l *zap.Logger, name string) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l.Named(name).With(zap.String("component", name))
}
