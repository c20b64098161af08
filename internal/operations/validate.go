package operations

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"feedcli/internal/dataprocessing"
	apperrors "feedcli/internal/errors"
	"feedcli/internal/exporter"
	"feedcli/pkg/contracts/domain"
)

// Validate matches every file name against the lookup workbook and writes
// the reshaped content of each matched file to processed_<stem>.csv. The
// lookup workbook is loaded before any file is touched; failing to load it
// aborts the run.
func (r *Runner) Validate(ctx context.Context, req ValidateRequest, rep Reporter) (*domain.Report, error) {
	release, err := r.acquire(domain.OperationValidate)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := r.validator.Validate(req); err != nil {
		r.metrics.ObserveRejected(domain.OperationValidate)
		return nil, err
	}
	if r.lookupLoader == nil {
		r.metrics.ObserveRejected(domain.OperationValidate)
		return nil, apperrors.NewDependencyMissingError("lookup workbook reader")
	}

	lookup, err := r.loadLookup(req.LookupPath)
	if err != nil {
		r.metrics.ObserveRejected(domain.OperationValidate)
		return nil, err
	}
	if err := r.fileValidator.ValidateOutputDirectory(req.OutputDir); err != nil {
		r.metrics.ObserveRejected(domain.OperationValidate)
		return nil, apperrors.NewStorageError("output folder is not usable", err)
	}

	rep = r.reporter(rep)
	writer := outputWriter(req.OutputDir)

	report := r.runInputs(ctx, domain.OperationValidate, req.Files, rep, func(ctx context.Context, path string) []domain.Outcome {
		return []domain.Outcome{r.validateFile(writer, lookup, path, rep)}
	})
	return report, nil
}

func (r *Runner) loadLookup(path string) (*dataprocessing.LookupTable, error) {
	if err := r.fileValidator.ValidateExcelFile(path); err != nil {
		return nil, apperrors.NewLookupLoadError("lookup workbook is not readable", err)
	}
	lookup, err := r.lookupLoader(path, r.cfg.Validate.KeyColumn, r.cfg.Validate.ValueColumn)
	if err != nil {
		return nil, apperrors.NewLookupLoadError(fmt.Sprintf("failed to read %s", filepath.Base(path)), err)
	}
	r.logger.Info("Lookup table loaded",
		slog.String("lookup", path),
		slog.Int("entries", lookup.Len()))
	return lookup, nil
}

func (r *Runner) validateFile(writer *exporter.CSVWriter, lookup *dataprocessing.LookupTable, path string, rep Reporter) domain.Outcome {
	name := filepath.Base(path)

	value, ok := lookup.Match(name)
	if !ok {
		err := apperrors.NewMatchNotFoundError(name)
		rep.Log(fmt.Sprintf("No match in lookup for: %s", name))
		o := domain.Skipped(path, err.Message)
		o.Err = err
		return o
	}

	data, err := os.ReadFile(path)
	if err != nil {
		rep.Log(fmt.Sprintf("Error %s: %v", name, err))
		return domain.Failed(path, apperrors.NewParseError(name, err))
	}

	outName := r.cfg.Validate.OutputPrefix + strings.TrimSuffix(name, filepath.Ext(name)) + ".csv"
	written, err := writer.WriteText(outName, dataprocessing.ReshapeContent(data, value))
	if err != nil {
		rep.Log(fmt.Sprintf("Error %s: %v", name, err))
		return domain.Failed(path, apperrors.NewStorageError("failed to write output", err))
	}

	rep.Log(fmt.Sprintf("Created: %s", outName))
	return domain.Succeeded(path, written)
}
