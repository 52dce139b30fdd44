package logging

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/pbcore/pkg/pbcore"
)

func TestConsoleLogger_Levels(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		log     func(l pbcore.Logger)
		want    string
	}{
		{"verbose enabled", true, func(l pbcore.Logger) { l.Verbose("test message: %s", "value") }, "[VERBOSE] test message: value\n"},
		{"verbose disabled", false, func(l pbcore.Logger) { l.Verbose("test message: %s", "value") }, ""},
		{"info", false, func(l pbcore.Logger) { l.Info("info message: %s", "value") }, "info message: value\n"},
		{"warn", false, func(l pbcore.Logger) { l.Warn("warn message") }, "[WARN] warn message\n"},
		{"error", false, func(l pbcore.Logger) { l.Error("error message: %d", 3) }, "[ERROR] error message: 3\n"},
		{"percent without args", false, func(l pbcore.Logger) { l.Info("100%") }, "100%\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewWriterLogger(&buf, tt.verbose))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestConsoleLogger_ConcurrentSafety(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, true)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.Info("message %d", id)
			logger.Verbose("verbose %d", id)
			logger.Error("error %d", id)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 30)
	for _, line := range lines {
		assert.Regexp(t, `^(message|\[VERBOSE\] verbose|\[ERROR\] error) \d$`, line)
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.Verbose("v")
	r.Warn("w %d", 1)
	r.Warn("w %d", 2)

	assert.Equal(t, []string{"w 1", "w 2"}, r.Level("warn"))
	assert.Len(t, r.Entries(), 3)
	assert.Empty(t, r.Level("error"))
}

func ExampleNullLogger() {
	logger := NewNullLogger()
	logger.Info("This message is discarded")
	logger.Warn("This too")
	fmt.Println("Done")
	// Output:
	// Done
}
