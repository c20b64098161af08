package operations

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strconv"

	"feedcli/internal/dataprocessing"
	apperrors "feedcli/internal/errors"
	"feedcli/pkg/contracts/domain"
)

// Verify totals the configured columns of every file and writes all summary
// rows once, after the last file, to the summary workbook. A cancelled run
// still writes the rows gathered so far. Files that fail to read get no row.
func (r *Runner) Verify(ctx context.Context, req VerifyRequest, rep Reporter) (*domain.Report, error) {
	release, err := r.acquire(domain.OperationVerify)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := r.validator.Validate(req); err != nil {
		r.metrics.ObserveRejected(domain.OperationVerify)
		return nil, err
	}
	if r.workbook == nil {
		r.metrics.ObserveRejected(domain.OperationVerify)
		return nil, apperrors.NewDependencyMissingError("workbook writer")
	}
	if err := r.fileValidator.ValidateOutputDirectory(req.OutputDir); err != nil {
		r.metrics.ObserveRejected(domain.OperationVerify)
		return nil, apperrors.NewStorageError("output folder is not usable", err)
	}

	rep = r.reporter(rep)
	columns := r.sumColumns()
	var rows []domain.SummaryRow

	report := r.runInputs(ctx, domain.OperationVerify, req.Files, rep, func(ctx context.Context, path string) []domain.Outcome {
		name := filepath.Base(path)
		// Verify reads comma separated files as-is, without sniffing; blank lines count as rows
		table, err := dataprocessing.ParseFile(path, dataprocessing.ParseOptions{Delimiter: ',', KeepBlankLines: true})
		if err != nil {
			rep.Log(fmt.Sprintf("ERROR: %s → %v", name, err))
			return []domain.Outcome{domain.Failed(path, apperrors.NewParseError(name, err))}
		}

		row := dataprocessing.AggregateColumns(name, table, columns)
		rows = append(rows, row)
		rep.Log(fmt.Sprintf("%s → rows=%d, c4=%s, c5=%s, c6=%s",
			name, row.Rows, formatTotal(row.SumCol4), formatTotal(row.SumCol5), formatTotal(row.SumCol6)))
		return []domain.Outcome{domain.Succeeded(path, "")}
	})

	summaryPath := filepath.Join(req.OutputDir, r.cfg.Verify.SummaryFile)
	written, err := r.workbook.WriteSummary(summaryPath, r.cfg.Verify.SheetName, rows)
	if err != nil {
		rep.Log(fmt.Sprintf("ERROR: failed to save summary: %v", err))
		report.Add(domain.Failed(summaryPath, apperrors.NewStorageError("failed to save summary workbook", err)))
		return report, nil
	}
	report.Outputs = append(report.Outputs, written)
	rep.Log(fmt.Sprintf("Saved summary to: %s", written))
	return report, nil
}

func (r *Runner) sumColumns() [3]int {
	cols := dataprocessing.DefaultSumColumns
	copy(cols[:], r.cfg.Verify.Columns)
	return cols
}

// formatTotal renders a rounded total with at least one decimal place
func formatTotal(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
