package operations

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedcli/internal/dataprocessing"
	apperrors "feedcli/internal/errors"
	"feedcli/internal/shared/testutil"
	"feedcli/pkg/contracts/domain"
)

var lookupHeader = []string{"File Name", "Add in File"}

func TestValidate_MatchedFileIsReshaped(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	lookup := testutil.WriteLookupWorkbook(t, in, "lookup.xlsx", lookupHeader,
		[]interface{}{"sale_jan.csv", 42},
		[]interface{}{"other.csv", "X"},
	)
	file := testutil.WriteFile(t, in, "Sale_Jan.csv", "\ufeffa,b,c d,e,f,g,h\r\nshort,line\r\n")

	rep := NewBufferReporter()
	r := newTestRunner(t)
	report, err := r.Validate(context.Background(), ValidateRequest{
		Files:      []string{file},
		LookupPath: lookup,
		OutputDir:  out,
	}, rep)
	require.NoError(t, err)

	outPath := filepath.Join(out, "processed_Sale_Jan.csv")
	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, []string{outPath}, report.Outputs)
	assert.Equal(t, "a,b,c d,e,f,g,42,0,0,c\nshort,line", testutil.ReadFile(t, outPath))
	assert.Contains(t, rep.Lines(), "Created: processed_Sale_Jan.csv")
}

func TestValidate_UnmatchedFileIsSkipped(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	files := []string{
		testutil.WriteFile(t, in, "sale_report0010.csv", "a,b,c,d,e,f,g\n"),
		testutil.WriteFile(t, in, "Sales_Report 001.CSV", "a,b,c,d,e,f,g\n"),
	}

	loader := func(string, string, string) (*dataprocessing.LookupTable, error) {
		return dataprocessing.NewLookupTable([][2]string{{"sale_report001.csv", "7"}}), nil
	}
	lookup := testutil.WriteFile(t, in, "lookup.xlsx", "stub")

	rep := NewBufferReporter()
	r := newTestRunner(t, WithLookupLoader(loader))
	report, err := r.Validate(context.Background(), ValidateRequest{
		Files:      files,
		LookupPath: lookup,
		OutputDir:  out,
	}, rep)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, report.Succeeded)
	assert.Equal(t, domain.OutcomeSkipped, report.Outcomes[0].Status)
	assert.True(t, apperrors.IsType(report.Outcomes[0].Err, apperrors.ErrTypeMatchNotFound))
	assert.Contains(t, rep.Lines(), "No match in lookup for: sale_report0010.csv")

	assert.NoFileExists(t, filepath.Join(out, "processed_sale_report0010.csv"))
	assert.Equal(t, "a,b,c,d,e,f,7,0,0,c", testutil.ReadFile(t, filepath.Join(out, "processed_Sales_Report 001.csv")))
}

func TestValidate_LookupFailureAbortsBeforeFiles(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	file := testutil.WriteFile(t, in, "a.csv", "a,b,c,d,e,f,g\n")

	tests := []struct {
		name   string
		lookup string
		opts   []Option
	}{
		{"missing workbook", filepath.Join(in, "nope.xlsx"), nil},
		{"not a workbook", testutil.WriteFile(t, in, "lookup.txt", "x"), nil},
		{"corrupt workbook", testutil.WriteFile(t, in, "corrupt.xlsx", "not a zip"), nil},
		{"missing header", testutil.WriteLookupWorkbook(t, in, "noheader.xlsx", []string{"Name", "Value"}), nil},
		{
			name:   "loader error",
			lookup: testutil.WriteFile(t, in, "stub.xlsx", "x"),
			opts: []Option{WithLookupLoader(func(string, string, string) (*dataprocessing.LookupTable, error) {
				return nil, errors.New("boom")
			})},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := NewBufferReporter()
			r := newTestRunner(t, tt.opts...)
			report, err := r.Validate(context.Background(), ValidateRequest{
				Files:      []string{file},
				LookupPath: tt.lookup,
				OutputDir:  out,
			}, rep)
			require.Error(t, err)
			assert.Nil(t, report)
			assert.True(t, apperrors.IsType(err, apperrors.ErrTypeLookupLoad))
			assert.True(t, apperrors.IsPrecondition(err))
			assert.Empty(t, rep.Lines())
			assert.NoDirExists(t, out)
		})
	}
}

func TestValidate_NoLookupReader(t *testing.T) {
	in := t.TempDir()
	file := testutil.WriteFile(t, in, "a.csv", "a\n")

	r := newTestRunner(t, WithLookupLoader(nil))
	_, err := r.Validate(context.Background(), ValidateRequest{
		Files:      []string{file},
		LookupPath: filepath.Join(in, "lookup.xlsx"),
		OutputDir:  in,
	}, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeDependencyMissing))
}
