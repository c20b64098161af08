package dataprocessing

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"feedcli/pkg/contracts/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseOptions controls how delimited text is read
type ParseOptions struct {
	// Delimiter is the field separator. Zero means sniff it from the input.
	Delimiter rune
	// SniffBytes caps the sample used for sniffing. Zero means DefaultSniffBytes.
	SniffBytes int
	// KeepBlankLines returns every empty line as a record with no fields, in
	// place, instead of skipping it.
	KeepBlankLines bool
}

// StripBOM removes a leading UTF-8 byte order mark
func StripBOM(b []byte) []byte {
	return bytes.TrimPrefix(b, utf8BOM)
}

// CleanField strips quote characters and surrounding whitespace from a field
func CleanField(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, `"`, ""))
}

// Parse reads delimited text into a table. Field values are returned as the
// csv reader produced them; callers that need cleaned fields use CleanField.
func Parse(r io.Reader, opts ParseOptions) (domain.Table, error) {
	sniffBytes := opts.SniffBytes
	if sniffBytes <= 0 {
		sniffBytes = DefaultSniffBytes
	}

	lines := &lineCounter{r: r}
	br := bufio.NewReaderSize(lines, sniffBytes+len(utf8BOM))
	if head, _ := br.Peek(len(utf8BOM)); bytes.Equal(head, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, fmt.Errorf("failed to skip byte order mark: %w", err)
		}
		lines.skipped = len(utf8BOM)
	}

	delim := opts.Delimiter
	if delim == 0 {
		sample, err := br.Peek(sniffBytes)
		if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
			return nil, fmt.Errorf("failed to read sample: %w", err)
		}
		delim = Sniff(sample, sniffBytes)
	}

	reader := csv.NewReader(br)
	reader.Comma = delim
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	var table domain.Table
	next := 1 // line the next record starts on when nothing is skipped
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse record %d: %w", len(table)+1, err)
		}
		if opts.KeepBlankLines {
			line, _ := reader.FieldPos(0)
			for ; next < line; next++ {
				table = append(table, domain.Record{})
			}
			next = line + 1 + newlines(rec)
		}
		table = append(table, domain.Record(rec))
	}
	if opts.KeepBlankLines {
		for total := lines.count(); next <= total; next++ {
			table = append(table, domain.Record{})
		}
	}
	return table, nil
}

// newlines counts the line breaks inside the quoted fields of rec
func newlines(rec []string) int {
	n := 0
	for _, f := range rec {
		n += strings.Count(f, "\n")
	}
	return n
}

// lineCounter counts the lines read through it
type lineCounter struct {
	r       io.Reader
	n       int
	breaks  int
	partial bool
	skipped int
}

func (c *lineCounter) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	for _, b := range p[:n] {
		c.partial = b != '\n'
		if b == '\n' {
			c.breaks++
		}
	}
	c.n += n
	return n, err
}

// count returns the number of lines read, including an unterminated last line.
// A skipped byte order mark alone is not a line.
func (c *lineCounter) count() int {
	if c.partial && c.n > c.skipped {
		return c.breaks + 1
	}
	return c.breaks
}

// ParseFile opens path and parses it with opts
func ParseFile(path string, opts ParseOptions) (domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return Parse(f, opts)
}
