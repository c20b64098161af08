// Package exporter writes feedcli run outputs.
//
// CSVWriter writes delimited files (whole-table, streaming, single-column and
// plain newline-joined text). ExcelWriter writes the verify summary workbook
// with auto-sized columns. Relative paths resolve against the run's output
// directory.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(paths)
//	path, err := writer.WriteCSV("feed_processed.csv", exporter.WriteOptions{
//	    Records: rows,
//	    UseCRLF: true,
//	})
//
//	summary := exporter.NewExcelWriter(writer)
//	path, err = summary.WriteSummary("Column Totals Summary.xlsx", "Summary", summaryRows)
package exporter
