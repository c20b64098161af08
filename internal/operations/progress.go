package operations

import (
	"fmt"
	"sync"
	"time"
)

// ProgressTracker tracks per-file progress of a run
type ProgressTracker struct {
	Operation string
	Total     int
	Current   int
	StartTime time.Time
	Message   string
	mu        sync.Mutex
}

// NewProgressTracker creates a new progress tracker
func NewProgressTracker(operation string, total int) *ProgressTracker {
	return &ProgressTracker{
		Operation: operation,
		Total:     total,
		StartTime: time.Now(),
	}
}

// Increment increments the current progress by 1
func (p *ProgressTracker) Increment(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Current++
	p.Message = message
}

// Percent returns completed files as a whole percentage of the total
func (p *ProgressTracker) Percent() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Total <= 0 {
		return 100
	}
	return p.Current * 100 / p.Total
}

// StatusLine renders "i/total file(s)"
func (p *ProgressTracker) StatusLine() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return fmt.Sprintf("%d/%d file(s)", p.Current, p.Total)
}

// GetETA calculates the estimated time remaining
func (p *ProgressTracker) GetETA() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Current == 0 || p.Total == 0 {
		return "calculating..."
	}

	elapsed := time.Since(p.StartTime)
	rate := float64(p.Current) / elapsed.Seconds()
	if rate == 0 {
		return "calculating..."
	}

	remaining := float64(p.Total-p.Current) / rate
	if remaining < 60 {
		return fmt.Sprintf("%.0f seconds", remaining)
	} else if remaining < 3600 {
		return fmt.Sprintf("%.0f minutes", remaining/60)
	}
	return fmt.Sprintf("%.1f hours", remaining/3600)
}
