// Package logging provides structured logging for the BBOB benchmark service.
package logging

import (
	"context"
	"os"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the configuration for the logger.
type Config struct {
	// Level is the minimum log level to output (debug, info, warn, error, fatal)
	Level string `yaml:"level"`
	// Format is the output format (json, console)
	Format string `yaml:"format"`
	// Output is the output destination (stdout, stderr, or file path)
	Output string `yaml:"output"`
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() *Config {
	return &Config{
		Level:  "info",
		Format: "json",
		Output: "stderr",
	}
}

// Logger is a structured logger backed by zap. Fields are passed as plain
// maps so callers do not need to depend on zap directly.
type Logger struct {
	zl *zap.Logger
}

// New creates a new logger with the given configuration.
func New(cfg *Config) (*Logger, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	switch cfg.Format {
	case "console", "text":
		enc = zapcore.NewConsoleEncoder(encCfg)
	default:
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	sink, err := openSink(cfg.Output)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(enc, sink, level)
	return &Logger{zl: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))}, nil
}

// NewNop returns a logger that discards everything. Useful in tests.
func NewNop() *Logger {
	return &Logger{zl: zap.NewNop()}
}

func openSink(output string) (zapcore.WriteSyncer, error) {
	switch output {
	case "stdout":
		return zapcore.Lock(os.Stdout), nil
	case "stderr", "":
		return zapcore.Lock(os.Stderr), nil
	default:
		// Treat as file path
		file, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		return zapcore.Lock(file), nil
	}
}

// WithFields returns a new Logger with the specified fields attached to
// every subsequent entry.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{zl: l.zl.With(zapFields(fields)...)}
}

// WithField returns a new Logger with the specified key-value pair.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{zl: l.zl.With(zap.Any(key, value))}
}

// WithError returns a new Logger with the error field set.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{zl: l.zl.With(zap.Error(err))}
}

// Zap exposes the underlying *zap.Logger for packages that want the
// native API.
func (l *Logger) Zap() *zap.Logger {
	return l.zl
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.zl.Sync()
}

// Debug logs a message at debug level.
func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	l.zl.Debug(msg, variadicFields(fields)...)
}

// Info logs a message at info level.
func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	l.zl.Info(msg, variadicFields(fields)...)
}

// Warn logs a message at warn level.
func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	l.zl.Warn(msg, variadicFields(fields)...)
}

// Error logs a message at error level.
func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	l.zl.Error(msg, variadicFields(fields)...)
}

// Fatal logs a message then calls os.Exit(1).
func (l *Logger) Fatal(msg string, fields ...map[string]interface{}) {
	l.zl.Fatal(msg, variadicFields(fields)...)
}

func variadicFields(fields []map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	return zapFields(fields[0])
}

// zapFields converts a field map into sorted zap fields so output ordering
// is stable.
func zapFields(m map[string]interface{}) []zap.Field {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fs := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		fs = append(fs, zap.Any(k, m[k]))
	}
	return fs
}

type ctxLoggerKey struct{}

// FromContext returns the logger stored in the context, or a default
// stderr logger if none exists.
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(ctxLoggerKey{}).(*Logger); ok {
		return logger
	}
	logger, _ := New(DefaultConfig())
	return logger
}

// WithContext returns a new context carrying the logger.
func (l *Logger) WithContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, l)
}
