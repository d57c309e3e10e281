package differ

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// isLineBreak reports whether r terminates a line. The set matches the
// Unicode line boundaries: LF, CR, VT, FF, the file/group/record separators,
// NEL and the line and paragraph separators.
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// SplitLinesKeepEnds splits text into lines, keeping terminators.
// "\r\n" counts as one terminator. A final line without a terminator
// gets "\n" so every line is complete.
func SplitLinesKeepEnds(text string) []string {
	if text == "" {
		return []string{}
	}

	lines := make([]string, 0, strings.Count(text, "\n")+1)
	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		end := i + size
		if r == '\r' && end < len(text) && text[end] == '\n' {
			end++
		}
		if isLineBreak(r) {
			lines = append(lines, text[start:end])
			start = end
		}
		i = end
	}
	if start < len(text) {
		lines = append(lines, text[start:]+"\n")
	}
	return lines
}

// TrimLineBreak removes the terminator of a line returned by SplitLinesKeepEnds
func TrimLineBreak(line string) string {
	if strings.HasSuffix(line, "\r\n") {
		return line[:len(line)-2]
	}
	r, size := utf8.DecodeLastRuneInString(line)
	if size > 0 && isLineBreak(r) {
		return line[:len(line)-size]
	}
	return line
}

// lineKeyText rewrites lines for the "\n"-only line mode of diffmatchpatch.
// Terminators other than "\n" are kept in quoted form so that two lines
// differing only by their terminator stay distinct.
func lineKeyText(lines []string) string {
	var sb strings.Builder
	for _, line := range lines {
		body := TrimLineBreak(line)
		sb.WriteString(body)
		if term := line[len(body):]; term != "\n" {
			sb.WriteByte(0)
			sb.WriteString(strconv.QuoteToASCII(term))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
