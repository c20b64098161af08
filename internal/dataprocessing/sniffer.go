package dataprocessing

import (
	"bytes"
)

// DefaultSniffBytes is how much of a file the delimiter sniffer looks at
const DefaultSniffBytes = 4096

// DefaultDelimiter is used when sniffing finds no consistent candidate
const DefaultDelimiter = ','

// minConsistency is the lowest share of sampled lines, in percent, that must
// agree on a candidate's per-line count
const minConsistency = 90

// candidateDelimiters in tie-break preference order
var candidateDelimiters = []rune{',', '\t', ';', '|', ':'}

// Sniff guesses the field delimiter from at most limit bytes of sample.
// A limit of zero or less means DefaultSniffBytes.
//
// For each candidate the most common non-zero per-line count outside quotes
// is taken as its field layout. A candidate qualifies when that count holds
// on at least 90% of the non-blank sampled lines, so a title or footer line
// does not disqualify it. Candidates agreeing on more lines are tried first;
// among those the highest count wins and equal counts are broken by
// preference order. With no qualifying candidate Sniff returns a comma.
func Sniff(sample []byte, limit int) rune {
	if limit <= 0 {
		limit = DefaultSniffBytes
	}
	truncated := len(sample) >= limit
	if len(sample) > limit {
		sample = sample[:limit]
	}
	lines := sampleLines(sample, truncated)
	if len(lines) == 0 {
		return DefaultDelimiter
	}

	layouts := make(map[rune]layout, len(candidateDelimiters))
	for _, cand := range candidateDelimiters {
		layouts[cand] = modalCount(lines, byte(cand))
	}

	for threshold := 100; threshold >= minConsistency; threshold-- {
		best, bestCount := rune(0), 0
		for _, cand := range candidateDelimiters {
			l := layouts[cand]
			if l.count == 0 || l.lines*100 < threshold*len(lines) {
				continue
			}
			if l.count > bestCount {
				best, bestCount = cand, l.count
			}
		}
		if best != 0 {
			return best
		}
	}
	return DefaultDelimiter
}

// sampleLines splits the sample into non-blank lines. A sample cut at the
// sniff limit usually ends mid-line, so that trailing fragment is ignored.
func sampleLines(sample []byte, truncated bool) [][]byte {
	sample = StripBOM(sample)
	raw := bytes.Split(sample, []byte("\n"))
	if truncated && len(raw) > 1 && !bytes.HasSuffix(sample, []byte("\n")) {
		raw = raw[:len(raw)-1]
	}

	lines := make([][]byte, 0, len(raw))
	for _, line := range raw {
		line = bytes.TrimRight(line, "\r")
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// layout is a candidate's most common per-line count and how many lines have it
type layout struct {
	count int
	lines int
}

// modalCount finds the most frequent non-zero per-line count of delim.
// Equally frequent counts resolve to the larger one.
func modalCount(lines [][]byte, delim byte) layout {
	freq := make(map[int]int)
	for _, line := range lines {
		if n := countOutsideQuotes(line, delim); n > 0 {
			freq[n]++
		}
	}

	var best layout
	for count, n := range freq {
		if n > best.lines || (n == best.lines && count > best.count) {
			best = layout{count: count, lines: n}
		}
	}
	return best
}

func countOutsideQuotes(line []byte, delim byte) int {
	n := 0
	inQuotes := false
	for _, b := range line {
		switch {
		case b == '"':
			inQuotes = !inQuotes
		case b == delim && !inQuotes:
			n++
		}
	}
	return n
}
