package operations

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "feedcli/internal/errors"
	"feedcli/internal/shared/testutil"
	"feedcli/pkg/contracts/domain"
)

type failingWorkbook struct{}

func (failingWorkbook) WriteSummary(string, string, []domain.SummaryRow) (string, error) {
	return "", errors.New("disk full")
}

type capturingWorkbook struct {
	path  string
	sheet string
	rows  []domain.SummaryRow
}

func (c *capturingWorkbook) WriteSummary(path, sheet string, rows []domain.SummaryRow) (string, error) {
	c.path, c.sheet, c.rows = path, sheet, rows
	return path, nil
}

func TestVerify_Totals(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		testutil.WriteFile(t, dir, "a.csv", "h,h,h,h,h,h\n1,2,3,1.5,2,x\n2,2,3,2.5,abc,y\n"),
		testutil.WriteFile(t, dir, "b.csv", "1,2,3,0.333,nan,1e2\n1,2,3,0.333,inf,1\n"),
	}

	wb := &capturingWorkbook{}
	rep := NewBufferReporter()
	r := newTestRunner(t, WithWorkbookWriter(wb))
	report, err := r.Verify(context.Background(), VerifyRequest{Files: files, OutputDir: dir}, rep)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, filepath.Join(dir, "Column Totals Summary.xlsx"), wb.path)
	assert.Equal(t, "Summary", wb.sheet)
	assert.Equal(t, []domain.SummaryRow{
		{FileName: "a.csv", Rows: 3, SumCol4: 4, SumCol5: 2, SumCol6: 0},
		{FileName: "b.csv", Rows: 2, SumCol4: 0.67, SumCol5: 0, SumCol6: 101},
	}, wb.rows)

	lines := rep.Lines()
	assert.Contains(t, lines, "a.csv → rows=3, c4=4.0, c5=2.0, c6=0.0")
	assert.Contains(t, lines, "b.csv → rows=2, c4=0.67, c5=0.0, c6=101.0")
	assert.Equal(t, "Saved summary to: "+wb.path, lines[len(lines)-1])
}

func TestVerify_BlankLinesCountAsRows(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		testutil.WriteFile(t, dir, "gaps.csv", "1,2,3,4,5,6\n\n7,8,9,10,11,12\n\n"),
	}

	wb := &capturingWorkbook{}
	r := newTestRunner(t, WithWorkbookWriter(wb))
	_, err := r.Verify(context.Background(), VerifyRequest{Files: files, OutputDir: dir}, NewBufferReporter())
	require.NoError(t, err)

	assert.Equal(t, []domain.SummaryRow{
		{FileName: "gaps.csv", Rows: 4, SumCol4: 14, SumCol5: 16, SumCol6: 18},
	}, wb.rows)
}

func TestVerify_WritesWorkbook(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		testutil.WriteFile(t, dir, "a.csv", "1,2,3,4,5,6\n"),
		filepath.Join(dir, "missing.csv"),
	}

	r := newTestRunner(t)
	report, err := r.Verify(context.Background(), VerifyRequest{Files: files, OutputDir: dir}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 1, report.Failed)
	assert.True(t, apperrors.IsType(report.Outcomes[1].Err, apperrors.ErrTypeParseFailure))

	summary := filepath.Join(dir, "Column Totals Summary.xlsx")
	require.Equal(t, []string{summary}, report.Outputs)

	f, err := excelize.OpenFile(summary)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Summary")
	require.NoError(t, err)
	require.Len(t, rows, 2, "failed files get no row")
	assert.Equal(t, domain.SummaryHeader, rows[0])
	assert.Equal(t, "a.csv", rows[1][0])
	assert.Equal(t, "1", rows[1][1])
}

func TestVerify_Preconditions(t *testing.T) {
	dir := t.TempDir()
	file := testutil.WriteFile(t, dir, "a.csv", "1,2,3,4,5,6\n")

	r := newTestRunner(t, WithWorkbookWriter(nil))
	_, err := r.Verify(context.Background(), VerifyRequest{Files: []string{file}, OutputDir: dir}, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeDependencyMissing))

	r = newTestRunner(t)
	_, err = r.Verify(context.Background(), VerifyRequest{Files: []string{" "}, OutputDir: dir}, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeMissingInput))
}

func TestVerify_SummaryWriteFailure(t *testing.T) {
	dir := t.TempDir()
	file := testutil.WriteFile(t, dir, "a.csv", "1,2,3,4,5,6\n")

	rep := NewBufferReporter()
	r := newTestRunner(t, WithWorkbookWriter(failingWorkbook{}))
	report, err := r.Verify(context.Background(), VerifyRequest{Files: []string{file}, OutputDir: dir}, rep)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, 1, report.Failed)
	assert.Empty(t, report.Outputs)
	assert.True(t, apperrors.IsType(report.Outcomes[1].Err, apperrors.ErrTypeStorage))
}

func TestFormatTotal(t *testing.T) {
	assert.Equal(t, "4.0", formatTotal(4))
	assert.Equal(t, "0.0", formatTotal(0))
	assert.Equal(t, "-2.5", formatTotal(-2.5))
	assert.Equal(t, "0.67", formatTotal(0.67))
}
