// Package operations runs the four feed batch operations.
//
// A Runner executes Clean, Verify, Validate and MasterList. Each takes an
// immutable request and a Reporter, processes its inputs one at a time in
// order, and returns a domain.Report with one Outcome per input unit
// (archive member for Clean, file otherwise).
//
// Errors returned directly are preconditions: an invalid request, a missing
// dependency, an unreadable lookup workbook, an unusable output folder, or a
// second run of an operation that is already running. Anything that goes
// wrong with a single input is recorded as a failed or skipped Outcome and
// the run continues.
//
// Cancellation is checked between inputs only. A cancelled run returns its
// partial report with Cancelled set; Verify still writes the summary rows it
// gathered.
//
// Runs are traced with OpenTelemetry spans and, when a Metrics value is
// attached, counted in a Prometheus registry that the CLI writes out as a
// textfile on exit.
package operations
