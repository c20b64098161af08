// Package shared holds helpers used by more than one package.
//
// The testutil subpackage provides feed fixtures (delimited files, zip
// archives, lookup workbooks) and a capturing slog handler for log
// assertions. Nothing in this tree is imported by production code.
package shared
