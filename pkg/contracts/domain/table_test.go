package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTable_Body(t *testing.T) {
	tests := []struct {
		name  string
		table Table
		want  Table
	}{
		{
			name:  "four rows drop header and footer",
			table: Table{{"h"}, {"a"}, {"b"}, {"f"}},
			want:  Table{{"a"}, {"b"}},
		},
		{
			name:  "three rows keep the middle",
			table: Table{{"h"}, {"a"}, {"f"}},
			want:  Table{{"a"}},
		},
		{
			name:  "two rows kept as is",
			table: Table{{"a"}, {"b"}},
			want:  Table{{"a"}, {"b"}},
		},
		{
			name:  "single row kept",
			table: Table{{"a"}},
			want:  Table{{"a"}},
		},
		{
			name:  "empty",
			table: Table{},
			want:  Table{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.table.Body())
		})
	}
}

func TestRecord_Field(t *testing.T) {
	r := Record{"a", "b"}

	v, ok := r.Field(1)
	assert.True(t, ok)
	assert.Equal(t, "b", v)

	_, ok = r.Field(2)
	assert.False(t, ok)

	_, ok = r.Field(-1)
	assert.False(t, ok)
}

func TestReport_Add(t *testing.T) {
	r := &Report{Operation: OperationValidate}
	r.Add(Succeeded("a.csv", "/out/processed_a.csv"))
	r.Add(Skipped("b.csv", "no match"))
	r.Add(Failed("c.csv", errors.New("boom")))
	r.Elapsed = 1500 * time.Millisecond

	assert.Equal(t, 1, r.Succeeded)
	assert.Equal(t, 1, r.Skipped)
	assert.Equal(t, 1, r.Failed)
	assert.Equal(t, []string{"/out/processed_a.csv"}, r.Outputs)
	assert.Equal(t, "boom", r.Outcomes[2].Reason)
	assert.Equal(t, "Processed 1 file(s) in 1.50s (1 skipped, 1 failed)", r.Summary())

	r.Cancelled = true
	assert.Equal(t, "Cancelled after 1 file(s) in 1.50s", r.Summary())
}
