// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stress

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
)

// Level is a logging level. Values line up with slog levels, with TRACE
// and FATAL added at either end.
type Level int

const (
	LevelTrace Level = -8
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
	LevelFatal Level = 12
)

var errInvalidLevel = errors.New("stress: invalid log level")

// ParseLevel parses a level name, case-insensitively.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(s) {
	case "TRACE":
		return LevelTrace, nil
	case "DEBUG":
		return LevelDebug, nil
	case "INFO", "":
		return LevelInfo, nil
	case "WARN":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	case "FATAL":
		return LevelFatal, nil
	}
	return LevelInfo, errInvalidLevel
}

func (level Level) String() string {
	switch level {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelFatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Logger is a leveled structured logger.
type Logger struct {
	slog  *slog.Logger
	level Level
}

// NewText creates a logger writing logfmt-style text to w.
func NewText(w io.Writer, level Level) *Logger {
	return &Logger{
		slog: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
			Level:       slog.Level(LevelTrace),
			ReplaceAttr: replaceAttr,
		})),
		level: level,
	}
}

// NewJSON creates a logger writing one JSON object per line to w.
func NewJSON(w io.Writer, level Level) *Logger {
	return &Logger{
		slog: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:       slog.Level(LevelTrace),
			ReplaceAttr: replaceAttr,
		})),
		level: level,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewText(io.Discard, LevelFatal+1)
}

// Level returns the current logging level.
func (l *Logger) Level() Level {
	return l.level
}

func (l *Logger) log(level Level, msg string, v ...any) {
	if l.level > level {
		return
	}
	l.slog.Log(context.Background(), slog.Level(level), msg, v...)
}

// Trace level message.
func (l *Logger) Trace(msg string, v ...any) { l.log(LevelTrace, msg, v...) }

// Debug level message.
func (l *Logger) Debug(msg string, v ...any) { l.log(LevelDebug, msg, v...) }

// Info level message.
func (l *Logger) Info(msg string, v ...any) { l.log(LevelInfo, msg, v...) }

// Warn level message.
func (l *Logger) Warn(msg string, v ...any) { l.log(LevelWarn, msg, v...) }

// Error level message.
func (l *Logger) Error(msg string, v ...any) { l.log(LevelError, msg, v...) }

func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		level := a.Value.Any().(slog.Level)
		a.Value = slog.StringValue(Level(level).String())
	}
	return a
}
