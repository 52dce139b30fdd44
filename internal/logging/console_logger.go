package logging

import (
	"fmt"
	"io"
	"sync"

	"github.com/vvka-141/pbcore/pkg/pbcore"
)

var _ pbcore.Logger = (*ConsoleLogger)(nil)

// ConsoleLogger writes one line per message. Verbose lines are dropped unless
// verbose mode is on.
type ConsoleLogger struct {
	verbose bool
	mu      sync.Mutex
	out     io.Writer
}

// NewWriterLogger returns a logger writing to w.
func NewWriterLogger(w io.Writer, verbose bool) *ConsoleLogger {
	return &ConsoleLogger{verbose: verbose, out: w}
}

func (l *ConsoleLogger) Verbose(format string, args ...any) {
	if !l.verbose {
		return
	}
	l.write("[VERBOSE] ", format, args)
}

func (l *ConsoleLogger) Info(format string, args ...any) {
	l.write("", format, args)
}

func (l *ConsoleLogger) Warn(format string, args ...any) {
	l.write("[WARN] ", format, args)
}

func (l *ConsoleLogger) Error(format string, args ...any) {
	l.write("[ERROR] ", format, args)
}

func (l *ConsoleLogger) write(prefix, format string, args []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(args) > 0 {
		fmt.Fprintf(l.out, prefix+format+"\n", args...)
	} else {
		fmt.Fprint(l.out, prefix+format+"\n")
	}
}
