package logging

import (
	"fmt"
	"sync"
)

// Entry is one recorded message.
type Entry struct {
	Level   string
	Message string
}

// Recorder keeps every message, verbose ones included.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Verbose(format string, args ...any) { r.add("verbose", format, args) }
func (r *Recorder) Info(format string, args ...any)    { r.add("info", format, args) }
func (r *Recorder) Warn(format string, args ...any)    { r.add("warn", format, args) }
func (r *Recorder) Error(format string, args ...any)   { r.add("error", format, args) }

func (r *Recorder) add(level, format string, args []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	r.entries = append(r.entries, Entry{Level: level, Message: msg})
}

// Entries returns a copy of the recorded messages.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Level returns the messages recorded at level.
func (r *Recorder) Level(level string) []string {
	var out []string
	for _, e := range r.Entries() {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}
