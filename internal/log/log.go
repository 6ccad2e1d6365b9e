// Package log provides the leveled, optionally colored logger used by the
// themer CLI, plus an adapter that turns scan events into log lines.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/abdul-hamid-achik/themer/pkg/scanner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// LogLevel controls which messages are written.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelOff
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "debug"
	case LogLevelInfo:
		return "info"
	case LogLevelWarn:
		return "warn"
	case LogLevelError:
		return "error"
	case LogLevelOff:
		return "off"
	default:
		return "info"
	}
}

// ParseLogLevel converts a level name to a LogLevel. Unknown names map to info.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "trace":
		return LogLevelDebug
	case "info":
		return LogLevelInfo
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	case "off", "none", "disabled":
		return LogLevelOff
	default:
		return LogLevelInfo
	}
}

// ColorMode selects when output is colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode converts a mode name to a ColorMode. Unknown names map to auto.
func ParseColorMode(s string) ColorMode {
	switch ColorMode(strings.ToLower(strings.TrimSpace(s))) {
	case ColorAlways:
		return ColorAlways
	case ColorNever:
		return ColorNever
	default:
		return ColorAuto
	}
}

// Logger writes leveled messages to a writer.
type Logger struct {
	mu    sync.Mutex
	out   io.Writer
	level LogLevel
	color bool
}

// New creates a Logger writing to out. Colors follow mode; in auto mode they
// are enabled only for terminals and when NO_COLOR is unset.
func New(out io.Writer, level LogLevel, mode ColorMode) *Logger {
	return &Logger{
		out:   out,
		level: level,
		color: colorEnabled(out, mode),
	}
}

// Nop returns a Logger that discards everything.
func Nop() *Logger {
	return New(io.Discard, LogLevelOff, ColorNever)
}

func colorEnabled(out io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" || strings.ToLower(os.Getenv("TERM")) == "dumb" {
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Level returns the minimum level that is written.
func (l *Logger) Level() LogLevel {
	return l.level
}

// Enabled reports whether messages at level are written.
func (l *Logger) Enabled(level LogLevel) bool {
	return l.level != LogLevelOff && level >= l.level
}

func (l *Logger) Debugf(format string, args ...any) { l.logf(LogLevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(LogLevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(LogLevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(LogLevelError, format, args...) }

func (l *Logger) logf(level LogLevel, format string, args ...any) {
	if !l.Enabled(level) {
		return
	}

	prefix := l.prefix(level)
	msg := fmt.Sprintf(format, args...)

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = fmt.Fprintf(l.out, "  %s %s\n", prefix, msg)
}

func (l *Logger) prefix(level LogLevel) string {
	var attr color.Attribute
	switch level {
	case LogLevelDebug:
		attr = color.Faint
	case LogLevelWarn:
		attr = color.FgYellow
	case LogLevelError:
		attr = color.FgRed
	default:
		attr = color.FgCyan
	}

	label := "[" + level.String() + "]"
	c := color.New(attr)
	if l.color {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(label)
}

// Observer returns a scanner.Observer that logs scan events.
// Unreadable directories are warnings; everything else is debug output.
func (l *Logger) Observer() scanner.Observer {
	return scanner.ObserverFunc(func(e scanner.Event) {
		switch e.Kind {
		case scanner.EventUnreadable:
			l.Warnf("cannot read %s: %v", e.Path, e.Err)
		case scanner.EventEscaped:
			l.Debugf("skipping %s", e.Path)
		case scanner.EventFileMatched, scanner.EventDirMatched:
			l.Debugf("matched %s %q", e.Path, e.Captures)
		case scanner.EventDescend:
			l.Debugf("descending into %s %q", e.Path, e.Captures)
		}
	})
}
