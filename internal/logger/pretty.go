// internal/logger/pretty.go
package logger

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Colors for terminal output
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorCyan   = "\033[36m"
	ColorBold   = "\033[1m"
)

// Options configures the panel logger
type Options struct {
	Debug bool
	// Color enables ANSI level colors; leave off for plain log files.
	Color bool
	// File receives every entry; nil disables file output.
	File zapcore.WriteSyncer
	// Tail keeps recent entries for the dashboard; nil disables it.
	Tail *Tail
}

// PrettyEncoderConfig is a compact human-readable console layout:
// "15:04:05 [INFO] poller: Refresh failed  {"error": "..."}"
func PrettyEncoderConfig(color bool) zapcore.EncoderConfig {
	levelEncoder := plainLevelEncoder
	if color {
		levelEncoder = colorLevelEncoder
	}
	return zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         "level",
		TimeKey:          "time",
		NameKey:          "logger",
		CallerKey:        "",
		StacktraceKey:    "",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      levelEncoder,
		EncodeTime:       timeEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		EncodeName:       zapcore.FullNameEncoder,
		ConsoleSeparator: " ",
	}
}

// colorLevelEncoder formats log levels with colors
func colorLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch level {
	case zapcore.DebugLevel:
		enc.AppendString(fmt.Sprintf("%s[DEBUG]%s", ColorCyan, ColorReset))
	case zapcore.InfoLevel:
		enc.AppendString(fmt.Sprintf("%s[INFO]%s", ColorGreen, ColorReset))
	case zapcore.WarnLevel:
		enc.AppendString(fmt.Sprintf("%s[WARN]%s", ColorYellow, ColorReset))
	case zapcore.ErrorLevel:
		enc.AppendString(fmt.Sprintf("%s[ERROR]%s", ColorRed, ColorReset))
	case zapcore.FatalLevel:
		enc.AppendString(fmt.Sprintf("%s[FATAL]%s", ColorRed+ColorBold, ColorReset))
	default:
		enc.AppendString(fmt.Sprintf("[%s]", level.CapitalString()))
	}
}

func plainLevelEncoder(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + level.CapitalString() + "]")
}

// timeEncoder formats time in a readable way
func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05"))
}

// New builds the panel logger. The terminal belongs to the dashboard, so
// nothing is written to stdout: entries go to the file and to the tail.
func New(opts Options) *zap.Logger {
	level := zap.InfoLevel
	if opts.Debug {
		level = zap.DebugLevel
	}

	var cores []zapcore.Core
	if opts.File != nil {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(PrettyEncoderConfig(opts.Color)),
			opts.File,
			level,
		))
	}
	if opts.Tail != nil {
		cores = append(cores, opts.Tail.Core(level))
	}
	if len(cores) == 0 {
		return zap.NewNop()
	}

	return zap.New(zapcore.NewTee(cores...))
}
