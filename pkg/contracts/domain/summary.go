package domain

// SummaryHeader is the fixed header of the column totals workbook
var SummaryHeader = []string{"File Name", "Total Rows", "Sum Col 4", "Sum Col 5", "Sum Col 6"}

// SummaryRow holds the per-file totals produced by the verify operation
type SummaryRow struct {
	FileName string  `json:"file_name" validate:"required"`
	Rows     int     `json:"rows" validate:"min=0"`
	SumCol4  float64 `json:"sum_col_4"`
	SumCol5  float64 `json:"sum_col_5"`
	SumCol6  float64 `json:"sum_col_6"`
}

// Cells returns the row in workbook column order
func (s SummaryRow) Cells() []interface{} {
	return []interface{}{s.FileName, s.Rows, s.SumCol4, s.SumCol5, s.SumCol6}
}
