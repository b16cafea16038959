package log

import (
	"io"
	"log"
	"strings"
	"sync/atomic"
)

type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// LevelFromString parses a level name, falling back to INFO for unknown input.
func LevelFromString(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "NONE", "OFF":
		return LevelNone
	default:
		return LevelInfo
	}
}

// Logger is shared by every game task, so the level is read and written atomically.
type Logger struct {
	logger *log.Logger
	level  atomic.Int32
}

func New(out io.Writer, level Level) *Logger {
	l := &Logger{logger: log.New(out, "", log.Lmicroseconds)}
	l.level.Store(int32(level))
	return l
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, LevelNone)
}

func (l *Logger) enabled(level Level) bool {
	return Level(l.level.Load()) <= level
}

func (l *Logger) Debugf(format string, v ...interface{}) {
	if l.enabled(LevelDebug) {
		l.logger.Printf("DEBUG: "+format, v...)
	}
}

func (l *Logger) Infof(format string, v ...interface{}) {
	if l.enabled(LevelInfo) {
		l.logger.Printf("INFO: "+format, v...)
	}
}

func (l *Logger) Warnf(format string, v ...interface{}) {
	if l.enabled(LevelWarn) {
		l.logger.Printf("WARN: "+format, v...)
	}
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	if l.enabled(LevelError) {
		l.logger.Printf("ERROR: "+format, v...)
	}
}

func (l *Logger) SetLevel(level Level) {
	l.level.Store(int32(level))
}

func (l *Logger) Level() Level {
	return Level(l.level.Load())
}
