package operations

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"feedcli/internal/dataprocessing"
	apperrors "feedcli/internal/errors"
	"feedcli/internal/exporter"
	"feedcli/internal/files"
	"feedcli/pkg/contracts/domain"
)

// Clean unpacks each archive and writes its cleaned members to
// <archive-base>_processed.csv. A bad archive or member is reported and
// skipped; only request preconditions return an error.
func (r *Runner) Clean(ctx context.Context, req CleanRequest, rep Reporter) (*domain.Report, error) {
	release, err := r.acquire(domain.OperationClean)
	if err != nil {
		return nil, err
	}
	defer release()

	if err := r.validator.Validate(req); err != nil {
		r.metrics.ObserveRejected(domain.OperationClean)
		return nil, err
	}
	if err := r.fileValidator.ValidateOutputDirectory(req.OutputDir); err != nil {
		r.metrics.ObserveRejected(domain.OperationClean)
		return nil, apperrors.NewStorageError("output folder is not usable", err)
	}

	rep = r.reporter(rep)
	writer := outputWriter(req.OutputDir)

	report := r.runInputs(ctx, domain.OperationClean, req.Archives, rep, func(ctx context.Context, archive string) []domain.Outcome {
		return r.cleanArchive(ctx, writer, archive, req, rep)
	})
	return report, nil
}

func (r *Runner) cleanArchive(ctx context.Context, writer *exporter.CSVWriter, archive string, req CleanRequest, rep Reporter) []domain.Outcome {
	name := filepath.Base(archive)
	rep.Log(fmt.Sprintf("Cleaning ZIP: %s", name))

	if err := r.fileValidator.ValidateArchiveFile(archive); err != nil {
		rep.Log(fmt.Sprintf("ERROR processing %s: %v", name, err))
		return []domain.Outcome{domain.Failed(archive, apperrors.NewArchiveError(archive, err))}
	}

	ws, err := r.extractor.Extract(ctx, archive)
	if err != nil {
		rep.Log(fmt.Sprintf("ERROR processing %s: %v", name, err))
		return []domain.Outcome{domain.Failed(archive, apperrors.NewArchiveError(archive, err))}
	}
	defer ws.Close()

	members, err := ws.Members()
	if err != nil {
		rep.Log(fmt.Sprintf("ERROR processing %s: %v", name, err))
		return []domain.Outcome{domain.Failed(archive, apperrors.NewArchiveError(archive, err))}
	}
	if len(members) == 0 {
		reason := fmt.Sprintf("no %s members in %s", r.extractor.MemberExt, name)
		rep.Log(reason)
		return []domain.Outcome{domain.Skipped(archive, reason)}
	}

	outName := ws.ArchiveBase + r.cfg.Clean.OutputSuffix
	if req.CombineMembers || req.AppendOutput {
		return r.cleanCombined(writer, archive, outName, members, req.AppendOutput, rep)
	}
	return r.cleanEach(writer, archive, outName, members, rep)
}

// cleanEach rewrites the archive output once per member, so the last
// member that parses wins.
func (r *Runner) cleanEach(writer *exporter.CSVWriter, archive, outName string, members []files.Member, rep Reporter) []domain.Outcome {
	outcomes := make([]domain.Outcome, 0, len(members))
	for _, m := range members {
		rows, err := r.cleanMember(m)
		if err != nil {
			rep.Log(fmt.Sprintf("ERROR cleaning %s: %v", m.Name, err))
			outcomes = append(outcomes, memberOutcome(domain.Failed(archive, err), m))
			continue
		}

		path, err := writer.WriteCSV(outName, r.cleanWriteOptions(rows, false))
		if err != nil {
			rep.Log(fmt.Sprintf("ERROR cleaning %s: %v", m.Name, err))
			outcomes = append(outcomes, memberOutcome(domain.Failed(archive, apperrors.NewStorageError("failed to write output", err)), m))
			continue
		}
		rep.Log(fmt.Sprintf("  → Saved: %s", filepath.Base(path)))
		outcomes = append(outcomes, memberOutcome(domain.Succeeded(archive, path), m))
	}
	return outcomes
}

// cleanCombined streams every member that parses into one output file
func (r *Runner) cleanCombined(writer *exporter.CSVWriter, archive, outName string, members []files.Member, appendOutput bool, rep Reporter) []domain.Outcome {
	stream, err := writer.CreateStreamWriter(outName, r.cleanWriteOptions(nil, appendOutput))
	if err != nil {
		rep.Log(fmt.Sprintf("ERROR processing %s: %v", filepath.Base(archive), err))
		return []domain.Outcome{domain.Failed(archive, apperrors.NewStorageError("failed to open output", err))}
	}

	outcomes := make([]domain.Outcome, 0, len(members))
	for _, m := range members {
		rows, err := r.cleanMember(m)
		if err == nil {
			err = stream.WriteRecords(rows)
		}
		if err != nil {
			rep.Log(fmt.Sprintf("ERROR cleaning %s: %v", m.Name, err))
			outcomes = append(outcomes, memberOutcome(domain.Failed(archive, err), m))
			continue
		}
		outcomes = append(outcomes, memberOutcome(domain.Succeeded(archive, stream.Path()), m))
	}

	if err := stream.Close(); err != nil {
		r.logger.Error("failed to close combined output",
			slog.String("archive", archive),
			slog.String("error", err.Error()))
		for i := range outcomes {
			if outcomes[i].Status == domain.OutcomeSuccess {
				outcomes[i] = memberOutcome(domain.Failed(archive, apperrors.NewStorageError("failed to write output", err)), files.Member{Name: outcomes[i].Member})
			}
		}
		return outcomes
	}
	rep.Log(fmt.Sprintf("  → Saved: %s", filepath.Base(stream.Path())))
	return outcomes
}

// cleanWriteOptions returns the output format of clean results: CRLF rows,
// with a BOM when configured
func (r *Runner) cleanWriteOptions(rows [][]string, appendOutput bool) exporter.WriteOptions {
	return exporter.WriteOptions{
		Records:   rows,
		Append:    appendOutput,
		BOMPrefix: r.cfg.Clean.UTF8BOM,
		UseCRLF:   true,
	}
}

// cleanMember parses one member and returns its cleaned rows
func (r *Runner) cleanMember(m files.Member) ([][]string, error) {
	table, err := dataprocessing.ParseFile(m.Path, r.parseOptions())
	if err != nil {
		return nil, apperrors.NewParseError(m.Name, err)
	}
	cleaned := dataprocessing.CleanTable(table, m.ArchiveBase)

	rows := make([][]string, len(cleaned))
	for i, rec := range cleaned {
		rows[i] = rec
	}
	return rows, nil
}

func memberOutcome(o domain.Outcome, m files.Member) domain.Outcome {
	o.Member = m.Name
	return o
}
