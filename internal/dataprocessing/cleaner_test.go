package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"feedcli/pkg/contracts/domain"
)

func TestCleanTable(t *testing.T) {
	tests := []struct {
		name  string
		table domain.Table
		want  []domain.Record
	}{
		{
			name: "four rows keep the middle two",
			table: domain.Table{
				{"header", "h1", "h2"},
				{"1", "a", "b"},
				{"2", "c", "d"},
				{"footer", "f1", "f2"},
			},
			want: []domain.Record{
				{"1", "a", "b", "feed"},
				{"2", "c", "d", "feed"},
			},
		},
		{
			name: "two rows are all kept",
			table: domain.Table{
				{"1", "a", "b"},
				{"2", "c", "d"},
			},
			want: []domain.Record{
				{"1", "a", "b", "feed"},
				{"2", "c", "d", "feed"},
			},
		},
		{
			name: "equal second and third fields are dropped ignoring case",
			table: domain.Table{
				{"1", "Same", "SAME"},
				{"2", "x", "y"},
			},
			want: []domain.Record{{"2", "x", "y", "feed"}},
		},
		{
			name: "short rows are dropped",
			table: domain.Table{
				{"header", "h1", "h2"},
				{"1", "a"},
				{"only"},
				{"2", "b", "c"},
				{"footer", "f1", "f2"},
			},
			want: []domain.Record{{"2", "b", "c", "feed"}},
		},
		{
			name: "quotes and whitespace are stripped before comparing",
			table: domain.Table{
				{` "1" `, ` "x" `, `X `},
				{"2", ` "p"`, "q"},
			},
			want: []domain.Record{{"2", "p", "q", "feed"}},
		},
		{
			name:  "empty table",
			table: domain.Table{},
			want:  []domain.Record{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanTable(tt.table, "feed"))
		})
	}
}

func TestCleanTable_DoesNotMutateInput(t *testing.T) {
	table := domain.Table{{" 1 ", "a", "b"}}
	CleanTable(table, "x")
	assert.Equal(t, domain.Table{{" 1 ", "a", "b"}}, table)
}
