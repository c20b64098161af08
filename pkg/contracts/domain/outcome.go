package domain

import (
	"fmt"
	"time"
)

// OperationType names one of the batch operations
type OperationType string

const (
	OperationClean      OperationType = "clean"
	OperationVerify     OperationType = "verify"
	OperationValidate   OperationType = "validate"
	OperationMasterList OperationType = "masterlist"
)

// OutcomeStatus is the tagged result of processing one input unit
type OutcomeStatus string

const (
	OutcomeSuccess OutcomeStatus = "success"
	OutcomeSkipped OutcomeStatus = "skipped"
	OutcomeFailed  OutcomeStatus = "failed"
)

// Outcome records what happened to one input file (or archive member)
type Outcome struct {
	Input      string        `json:"input"`
	Member     string        `json:"member,omitempty"`
	Status     OutcomeStatus `json:"status"`
	OutputPath string        `json:"output_path,omitempty"`
	Reason     string        `json:"reason,omitempty"`
	Err        error         `json:"-"`
}

// Succeeded creates a success outcome
func Succeeded(input, output string) Outcome {
	return Outcome{Input: input, Status: OutcomeSuccess, OutputPath: output}
}

// Skipped creates a skip outcome; the run continues
func Skipped(input, reason string) Outcome {
	return Outcome{Input: input, Status: OutcomeSkipped, Reason: reason}
}

// Failed creates a failure outcome; the run continues
func Failed(input string, err error) Outcome {
	o := Outcome{Input: input, Status: OutcomeFailed, Err: err}
	if err != nil {
		o.Reason = err.Error()
	}
	return o
}

// Report aggregates the outcomes of one run
type Report struct {
	Operation OperationType `json:"operation"`
	RunID     string        `json:"run_id"`
	Outcomes  []Outcome     `json:"outcomes"`
	Succeeded int           `json:"succeeded"`
	Skipped   int           `json:"skipped"`
	Failed    int           `json:"failed"`
	Elapsed   time.Duration `json:"elapsed"`
	Cancelled bool          `json:"cancelled"`
	Outputs   []string      `json:"outputs,omitempty"`
}

// Add appends an outcome and updates the counters
func (r *Report) Add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Status {
	case OutcomeSuccess:
		r.Succeeded++
		if o.OutputPath != "" && !r.hasOutput(o.OutputPath) {
			r.Outputs = append(r.Outputs, o.OutputPath)
		}
	case OutcomeSkipped:
		r.Skipped++
	case OutcomeFailed:
		r.Failed++
	}
}

func (r *Report) hasOutput(path string) bool {
	for _, p := range r.Outputs {
		if p == path {
			return true
		}
	}
	return false
}

// Summary is the one-line completion message shown at the end of a run
func (r *Report) Summary() string {
	if r.Cancelled {
		return fmt.Sprintf("Cancelled after %d file(s) in %.2fs", r.Succeeded, r.Elapsed.Seconds())
	}
	return fmt.Sprintf("Processed %d file(s) in %.2fs (%d skipped, %d failed)",
		r.Succeeded, r.Elapsed.Seconds(), r.Skipped, r.Failed)
}
