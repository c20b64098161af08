package operations

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"feedcli/internal/config"
	"feedcli/internal/dataprocessing"
	apperrors "feedcli/internal/errors"
	"feedcli/internal/exporter"
	"feedcli/pkg/contracts/domain"
)

// MasterList compares one column of the first two files and writes a single
// column table to the working directory: the difference on the configured
// diff column, or the union on the configured union column. Any further files
// are ignored. Failing to read either file fails the run's single outcome.
func (r *Runner) MasterList(ctx context.Context, req MasterListRequest, rep Reporter) (*domain.Report, error) {
	release, err := r.acquire(domain.OperationMasterList)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := r.validator.Validate(req); err != nil {
		r.metrics.ObserveRejected(domain.OperationMasterList)
		return nil, err
	}

	workDir := req.WorkDir
	if workDir == "" {
		if workDir, err = os.Getwd(); err != nil {
			r.metrics.ObserveRejected(domain.OperationMasterList)
			return nil, apperrors.NewStorageError("failed to resolve working directory", err)
		}
	}

	rep = r.reporter(rep)
	writer := exporter.NewCSVWriter(&config.Paths{WorkDir: workDir, OutputDir: workDir})
	pair := req.Files[:2]

	// The pair is one unit of work: both files are needed to produce anything.
	report := r.runInputs(ctx, domain.OperationMasterList, pair[:1], rep, func(ctx context.Context, _ string) []domain.Outcome {
		return []domain.Outcome{r.compare(writer, req.Mode, pair[0], pair[1], rep)}
	})
	return report, nil
}

func (r *Runner) compare(writer *exporter.CSVWriter, mode MasterListMode, first, second string, rep Reporter) domain.Outcome {
	mc := r.cfg.MasterList
	col, outName, header, title := mc.DiffColumn, mc.DiffFile, mc.DiffHeader, "Find New SKU"
	if mode == MasterListUnion {
		col, outName, header, title = mc.UnionColumn, mc.UnionFile, mc.UnionHeader, "Unique Corporate List"
	}
	rep.Log(fmt.Sprintf("Running %s...", title))

	a, err := r.readMasterColumn(first, col)
	if err != nil {
		rep.Log(fmt.Sprintf("Error: %v", err))
		return domain.Failed(first, err)
	}
	b, err := r.readMasterColumn(second, col)
	if err != nil {
		rep.Log(fmt.Sprintf("Error: %v", err))
		return domain.Failed(second, err)
	}

	var result []dataprocessing.Value
	if mode == MasterListUnion {
		result = dataprocessing.Union(a, b)
	} else {
		result = dataprocessing.Difference(a, b)
	}

	written, err := writer.WriteColumn(outName, header, dataprocessing.Strings(result))
	if err != nil {
		rep.Log(fmt.Sprintf("Error: %v", err))
		return domain.Failed(first, apperrors.NewStorageError("failed to write output", err))
	}

	rep.Log(fmt.Sprintf("%s Completed. Output saved as %s", title, written))
	return domain.Succeeded(first, written)
}

// readMasterColumn reads a comma separated file with a header row and returns
// the typed values of column col
func (r *Runner) readMasterColumn(path string, col int) ([]dataprocessing.Value, error) {
	name := filepath.Base(path)
	table, err := dataprocessing.ParseFile(path, dataprocessing.ParseOptions{Delimiter: ','})
	if err != nil {
		return nil, apperrors.NewParseError(name, err)
	}
	values, err := dataprocessing.ReadColumn(table, col)
	if err != nil {
		return nil, apperrors.NewParseError(name, err)
	}
	return values, nil
}
