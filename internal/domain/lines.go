package domain

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// lineIndex maps rune offsets (as reported by regexp2) to lines and byte offsets.
type lineIndex struct {
	lines      []string // lines with their terminators
	runeStarts []int
	byteStarts []int
}

func newLineIndex(text string) *lineIndex {
	idx := &lineIndex{lines: splitLinesKeepEnds(text)}
	idx.runeStarts = make([]int, len(idx.lines))
	idx.byteStarts = make([]int, len(idx.lines))

	runes, bytes := 0, 0
	for i, line := range idx.lines {
		idx.runeStarts[i] = runes
		idx.byteStarts[i] = bytes
		runes += utf8.RuneCountInString(line)
		bytes += len(line)
	}

	return idx
}

// lineOf returns the 0-based line that contains the rune at offset.
func (idx *lineIndex) lineOf(runeOffset int) int {
	line := sort.Search(len(idx.runeStarts), func(i int) bool {
		return idx.runeStarts[i] > runeOffset
	}) - 1

	if line < 0 {
		return 0
	}

	return line
}

// byteOffset converts a rune offset into a byte offset.
func (idx *lineIndex) byteOffset(runeOffset int) int {
	if len(idx.lines) == 0 {
		return 0
	}

	line := idx.lineOf(runeOffset)
	col := runeOffset - idx.runeStarts[line]

	b := idx.byteStarts[line]
	for _, r := range idx.lines[line] {
		if col == 0 {
			break
		}

		b += utf8.RuneLen(r)
		col--
	}

	return b
}

// splitLinesKeepEnds splits text after every "\n", keeping the terminator.
func splitLinesKeepEnds(text string) []string {
	if text == "" {
		return nil
	}

	lines := strings.SplitAfter(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}

	return s + "\n"
}

// dedent removes indent from the start of every line that carries it.
func dedent(lines []string, indent string) string {
	var b strings.Builder

	for _, line := range lines {
		b.WriteString(strings.TrimPrefix(line, indent))
	}

	return b.String()
}
