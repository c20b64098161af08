package operations

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Reporter receives the human-readable log lines and progress of a run
type Reporter interface {
	Log(line string)
	Progress(percent int)
}

// LogReporter forwards run lines to a structured logger
type LogReporter struct {
	logger *slog.Logger
}

// NewLogReporter creates a reporter writing through logger
func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogReporter{logger: logger}
}

// Log implements Reporter
func (r *LogReporter) Log(line string) {
	r.logger.Info(line)
}

// Progress implements Reporter
func (r *LogReporter) Progress(percent int) {
	r.logger.Debug("progress", slog.Int("percent", percent))
}

// BufferReporter keeps every line in memory so the log can be exported.
// Progress is not kept.
type BufferReporter struct {
	mu    sync.Mutex
	lines []string
}

// NewBufferReporter creates an empty buffer reporter
func NewBufferReporter() *BufferReporter {
	return &BufferReporter{}
}

// Log implements Reporter
func (r *BufferReporter) Log(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
}

// Progress implements Reporter
func (r *BufferReporter) Progress(int) {}

// Lines returns a copy of the captured lines
func (r *BufferReporter) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

// Export writes the captured lines to path, one per line
func (r *BufferReporter) Export(path string) error {
	lines := r.Lines()
	if len(lines) == 0 {
		return fmt.Errorf("log is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644)
}

// MultiReporter fans every call out to all of its reporters
type MultiReporter []Reporter

// Log implements Reporter
func (m MultiReporter) Log(line string) {
	for _, r := range m {
		r.Log(line)
	}
}

// Progress implements Reporter
func (m MultiReporter) Progress(percent int) {
	for _, r := range m {
		r.Progress(percent)
	}
}

// throttledReporter drops progress updates arriving faster than its limiter
// allows. 0 and 100 always pass, and log lines are never dropped.
type throttledReporter struct {
	Reporter
	limiter *rate.Limiter
}

// Throttle limits progress updates of r to one per interval
func Throttle(r Reporter, interval time.Duration) Reporter {
	if interval <= 0 {
		return r
	}
	return &throttledReporter{Reporter: r, limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Progress implements Reporter
func (t *throttledReporter) Progress(percent int) {
	if percent <= 0 || percent >= 100 || t.limiter.Allow() {
		t.Reporter.Progress(percent)
	}
}

// discardReporter ignores everything
type discardReporter struct{}

func (discardReporter) Log(string)    {}
func (discardReporter) Progress(int) {}
