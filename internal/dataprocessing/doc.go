// Package dataprocessing holds the pure transforms behind the feedcli batch
// operations. Nothing here touches the output directory; callers own file
// placement and reporting.
//
// # Components
//
//  1. Parser: sniffs the delimiter and reads delimited text into a domain.Table
//  2. Cleaner: drops header/footer and self-referential rows, appends a label
//  3. Aggregator: counts rows and totals three numeric columns
//  4. Normalizer and LookupTable: map file names to augmentation values
//  5. Reshaper: rewrites lines with the matched augmentation value
//  6. Set operations: typed difference and union over one column of two tables
//
// # Usage
//
//	table, err := dataprocessing.ParseFile("member.csv", dataprocessing.ParseOptions{})
//	if err != nil {
//	    return err
//	}
//	rows := dataprocessing.CleanTable(table, "archive")
//
// Matching a file against a lookup workbook:
//
//	lt, err := dataprocessing.LoadLookupTable("lookup.xlsx", "File Name", "Add in File")
//	if err != nil {
//	    return err
//	}
//	if value, ok := lt.Match("Sales_Jan.csv"); ok {
//	    out := dataprocessing.ReshapeContent(data, value)
//	}
//
// # Positional access
//
// Vendor files have no schema. Every column access goes through
// domain.Record.Field, which reports whether the row is long enough.
package dataprocessing
