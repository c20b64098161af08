package main

import (
	"context"

	"github.com/spf13/cobra"

	"feedcli/internal/files"
	"feedcli/internal/operations"
	"feedcli/pkg/contracts/domain"
)

// expand resolves args against the working directory and replaces
// directories with the files under them ending in ext
func expand(workDir string, args []string, ext string) ([]string, error) {
	return files.NewDiscovery(workDir).ExpandInputs(args, ext)
}

func newCleanCmd(a *app) *cobra.Command {
	var outDir string
	var combine, appendOutput bool

	cmd := &cobra.Command{
		Use:   "clean ARCHIVE|DIR...",
		Short: "Unpack zip archives and clean their CSV members",
		Long: `Each archive is extracted to a temporary folder. Every CSV member loses
its header and footer rows, quotes and surrounding whitespace, rows with
fewer than three fields and rows whose second and third fields match.
The archive name is appended to each row and the result is written to
<archive>_processed.csv.

By default every member rewrites the same output, so the last member wins.
Use --combine-members to keep the rows of all members, and --append to add
them to the output left by an earlier run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := a.paths(outDir)
			if err != nil {
				return err
			}
			archives, err := expand(paths.WorkDir, args, files.ArchiveExt)
			if err != nil {
				return err
			}
			req := operations.CleanRequest{
				Archives:       archives,
				OutputDir:      paths.OutputDir,
				CombineMembers: combine || a.cfg.Clean.CombineMembers,
				AppendOutput:   appendOutput || a.cfg.Clean.AppendOutput,
			}
			return a.run(cmd, func(ctx context.Context, rep operations.Reporter) (*domain.Report, error) {
				return a.runner.Clean(ctx, req, rep)
			})
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "output folder (required)")
	cmd.Flags().BoolVar(&combine, "combine-members", false, "append every member into the archive output")
	cmd.Flags().BoolVar(&appendOutput, "append", false, "add to an existing archive output instead of replacing it (implies --combine-members)")
	return cmd
}

func newVerifyCmd(a *app) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "verify FILE|DIR...",
		Short: "Total three numeric columns per file into a summary workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := a.paths(outDir)
			if err != nil {
				return err
			}
			inputs, err := expand(paths.WorkDir, args, files.CSVExt)
			if err != nil {
				return err
			}
			req := operations.VerifyRequest{Files: inputs, OutputDir: paths.OutputDir}
			return a.run(cmd, func(ctx context.Context, rep operations.Reporter) (*domain.Report, error) {
				return a.runner.Verify(ctx, req, rep)
			})
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "output folder (required)")
	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	var outDir, lookup string

	cmd := &cobra.Command{
		Use:   "validate FILE|DIR... --lookup WORKBOOK",
		Short: "Reshape files whose name is listed in a lookup workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := a.paths(outDir)
			if err != nil {
				return err
			}
			inputs, err := expand(paths.WorkDir, args, files.CSVExt)
			if err != nil {
				return err
			}
			req := operations.ValidateRequest{Files: inputs, OutputDir: paths.OutputDir}
			if lookup != "" {
				req.LookupPath = paths.Resolve(lookup)
			}
			return a.run(cmd, func(ctx context.Context, rep operations.Reporter) (*domain.Report, error) {
				return a.runner.Validate(ctx, req, rep)
			})
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "", "output folder (required)")
	cmd.Flags().StringVar(&lookup, "lookup", "", "lookup workbook (.xlsx)")
	return cmd
}

func newMasterListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "masterlist diff|union FIRST SECOND",
		Short:     "Compare one column of two files",
		ValidArgs: []string{string(operations.MasterListDifference), string(operations.MasterListUnion)},
		Long: `diff writes the distinct values of the first file's fourth column that do
not appear in the second file's fourth column. union writes the distinct
values of the first column of both files. Output goes to the working
directory. Files after the second are ignored.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := a.paths("")
			if err != nil {
				return err
			}
			req := operations.MasterListRequest{
				Files:   paths.ResolveAll(args[1:]),
				Mode:    operations.MasterListMode(args[0]),
				WorkDir: paths.WorkDir,
			}
			return a.run(cmd, func(ctx context.Context, rep operations.Reporter) (*domain.Report, error) {
				return a.runner.MasterList(ctx, req, rep)
			})
		},
	}
}
