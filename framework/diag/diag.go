// Package diag carries the leveled diagnostics the registration driver emits
// while autowiring: informational scan progress, per-registration successes,
// heuristic warnings and per-candidate rejections. The engine only ever talks
// to the Sink interface, so any consumer can be substituted for the default
// colored console.
package diag

import (
	"fmt"
	"sync"
)

// Level is the severity of a diagnostic message.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "INFO"
	case LevelSuccess:
		return "OK"
	case LevelWarning:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Sink accepts leveled diagnostic messages. Sinks must never abort the
// batch — a diagnostic is a report, not a control signal.
type Sink interface {
	Log(level Level, format string, args ...any)
}

// ── Level helpers ─────────────────────────────────────────────────────────────

func Infof(s Sink, format string, args ...any)    { s.Log(LevelInfo, format, args...) }
func Successf(s Sink, format string, args ...any) { s.Log(LevelSuccess, format, args...) }
func Warningf(s Sink, format string, args ...any) { s.Log(LevelWarning, format, args...) }
func Errorf(s Sink, format string, args ...any)   { s.Log(LevelError, format, args...) }

// ── MinLevel ──────────────────────────────────────────────────────────────────

// MinLevel forwards to Next only the messages at or above Min. Used for the
// AUTOWIRE_QUIET switch, which keeps warnings and errors.
type MinLevel struct {
	Next Sink
	Min  Level
}

func (m MinLevel) Log(level Level, format string, args ...any) {
	if level >= m.Min {
		m.Next.Log(level, format, args...)
	}
}

// ── Collector ─────────────────────────────────────────────────────────────────

// Entry is one recorded diagnostic.
type Entry struct {
	Level   Level
	Message string
}

// Collector is a Sink that records every message, for tests and for callers
// that want to inspect a run after the fact.
type Collector struct {
	mu      sync.Mutex
	entries []Entry
}

func (c *Collector) Log(level Level, format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, Entry{Level: level, Message: fmt.Sprintf(format, args...)})
}

// Entries returns a copy of everything recorded, in emission order.
func (c *Collector) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Messages returns the recorded messages at the given level.
func (c *Collector) Messages(level Level) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for _, e := range c.entries {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

// Len returns the total number of recorded entries.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
