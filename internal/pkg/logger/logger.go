package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements ports.Logger on top of zap.
type ZapLogger struct {
	z *zap.Logger
}

// New builds a console logger writing to stderr. verbose forces debug level;
// otherwise level ("debug", "info", "warn", "error") applies, defaulting to warn.
func New(level string, verbose bool) *ZapLogger {
	lvl := ParseLevel(level)
	if verbose {
		lvl = zapcore.DebugLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		lvl,
	)
	return &ZapLogger{z: zap.New(core)}
}

// Wrap adapts an existing zap logger, e.g. one built by zaptest.
func Wrap(z *zap.Logger) *ZapLogger {
	return &ZapLogger{z: z}
}

// NewNop discards everything.
func NewNop() *ZapLogger {
	return &ZapLogger{z: zap.NewNop()}
}

// ParseLevel maps a config string to a zap level.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	l.z.Debug(msg, toFields(fields)...)
}

func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	l.z.Info(msg, toFields(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.z.Warn(msg, toFields(fields)...)
}

func (l *ZapLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.z.Error(msg, append(toFields(fields), zap.Error(err))...)
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	return l.z.Sync()
}

func toFields(fields map[string]interface{}) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}
