// Package eventsink provides the structured event sink the core logs
// through. There is no package-level instance, only a Sink interface a
// Pipeline is constructed with.
package eventsink

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/logrusorgru/aurora"
	"github.com/mattn/go-isatty"
)

// Level orders the four severities a Sink accepts.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	default:
		return "unknown"
	}
}

// Sink is the capability the core calls to report diagnostic events. A host
// wires in whichever implementation it wants; Console below is the default,
// RecordingSink is for tests.
type Sink interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

// Console is the default Sink: a level-gated, optionally colorized writer
// over stderr, one instance per Pipeline (never a shared global).
type Console struct {
	Color bool
	Level Level
	mu    sync.Mutex
}

// NewConsole builds a Console that auto-detects color support from whether
// stderr is a terminal.
func NewConsole(level Level) *Console {
	return &Console{
		Color: isatty.IsTerminal(os.Stderr.Fd()),
		Level: level,
	}
}

func (c *Console) Debug(msg string) { c.log(DebugLevel, msg) }
func (c *Console) Info(msg string)  { c.log(InfoLevel, msg) }
func (c *Console) Warn(msg string)  { c.log(WarnLevel, msg) }
func (c *Console) Error(msg string) { c.log(ErrorLevel, msg) }

func (c *Console) log(level Level, msg string) {
	if level < c.Level {
		return
	}

	prompt := ""
	if c.Color {
		switch level {
		case WarnLevel:
			prompt = aurora.Yellow("⚠ ").String()
		case ErrorLevel:
			prompt = aurora.Red("ⅹ ").String()
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, line := range strings.Split(msg, "\n") {
		if c.Color && level == DebugLevel {
			line = aurora.Faint(line).String()
		}
		fmt.Fprintln(os.Stderr, prompt+line)
	}
}

// Event is one recorded call, captured by RecordingSink for test assertions.
type Event struct {
	Level   Level
	Message string
}

// RecordingSink captures every event instead of writing it anywhere; tests
// assert against Events() rather than scraping stdout/stderr.
type RecordingSink struct {
	mu     sync.Mutex
	events []Event
}

func NewRecordingSink() *RecordingSink { return &RecordingSink{} }

func (r *RecordingSink) Debug(msg string) { r.record(DebugLevel, msg) }
func (r *RecordingSink) Info(msg string)  { r.record(InfoLevel, msg) }
func (r *RecordingSink) Warn(msg string)  { r.record(WarnLevel, msg) }
func (r *RecordingSink) Error(msg string) { r.record(ErrorLevel, msg) }

func (r *RecordingSink) record(level Level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Level: level, Message: msg})
}

// Events returns a snapshot of everything recorded so far.
func (r *RecordingSink) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Noop discards every event. Useful as a zero-value-safe default.
type Noop struct{}

func (Noop) Debug(string) {}
func (Noop) Info(string)  {}
func (Noop) Warn(string)  {}
func (Noop) Error(string) {}
