package dataprocessing

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"feedcli/pkg/contracts/domain"
)

// DefaultSumColumns are the zero-based columns the verify operation totals
var DefaultSumColumns = [3]int{3, 4, 5}

// AggregateColumns counts every row of table and totals the three given
// columns. Cells that are missing or not numeric contribute zero. Totals are
// rounded to two decimal places.
func AggregateColumns(fileName string, table domain.Table, columns [3]int) domain.SummaryRow {
	var sums [3]decimal.Decimal

	for _, rec := range table {
		for i, col := range columns {
			cell, ok := rec.Field(col)
			if !ok {
				continue
			}
			if v, ok := parseNumber(cell); ok {
				sums[i] = sums[i].Add(v)
			}
		}
	}

	return domain.SummaryRow{
		FileName: fileName,
		Rows:     len(table),
		SumCol4:  sums[0].Round(2).InexactFloat64(),
		SumCol5:  sums[1].Round(2).InexactFloat64(),
		SumCol6:  sums[2].Round(2).InexactFloat64(),
	}
}

// parseNumber parses a cell the way a float conversion would, rejecting NaN and infinities
func parseNumber(cell string) (decimal.Decimal, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}
