package dataprocessing

import (
	"strings"
)

// minReshapeFields is the shortest line ReshapeLine rewrites
const minReshapeFields = 7

// ReshapeLine rewrites one comma separated line for the validate operation:
// the first six fields, then value, two literal zeros and the first
// whitespace-separated token of the third field. Lines with fewer than seven
// fields, or whose third field has no token, are returned unchanged.
func ReshapeLine(line, value string) string {
	parts := strings.Split(line, ",")
	if len(parts) < minReshapeFields {
		return line
	}

	tokens := strings.Fields(parts[2])
	if len(tokens) == 0 {
		return line
	}

	out := make([]string, 0, 10)
	out = append(out, parts[:6]...)
	out = append(out, value, "0", "0", tokens[0])
	return strings.Join(out, ",")
}

// ReshapeContent applies ReshapeLine to every line of data and joins the
// result with "\n". Invalid UTF-8 and a leading byte order mark are dropped.
func ReshapeContent(data []byte, value string) string {
	text := strings.ToValidUTF8(string(StripBOM(data)), "")
	lines := SplitLines(text)
	for i, line := range lines {
		lines[i] = ReshapeLine(line, value)
	}
	return strings.Join(lines, "\n")
}

// SplitLines splits text on "\n", "\r\n" and "\r". A trailing line break does
// not produce an empty final line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
