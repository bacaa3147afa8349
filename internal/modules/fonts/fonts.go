package fonts

import (
	"strings"
	"unicode/utf16"
)

// Style selects one of the Unicode look-alike alphabets used to render
// "rich text" inside a plain LinkedIn post.
type Style int

const (
	Normal Style = iota
	Bold
	Italic
	BoldItalic
	Monospace
	Script
	DoubleStruck
)

var styleNames = map[Style]string{
	Normal:       "normal",
	Bold:         "bold",
	Italic:       "italic",
	BoldItalic:   "boldItalic",
	Monospace:    "monospace",
	Script:       "script",
	DoubleStruck: "doubleStruck",
}

func (s Style) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return "normal"
}

// ParseStyle resolves a style name; unknown names map to Normal.
func ParseStyle(name string) (Style, bool) {
	for style, n := range styleNames {
		if strings.EqualFold(n, name) {
			return style, true
		}
	}
	return Normal, false
}

// Each style owns a fixed table from {A-Z, a-z, 0-9} to its alternate code
// points in the Mathematical Alphanumeric Symbols block. A handful of letters
// predate that block and live in Letterlike Symbols instead; those are the
// per-style overrides. Styles without digit forms leave digits unmapped.
var (
	boldTable = buildTable('\U0001D400', '\U0001D41A', '\U0001D7CE', nil)

	italicTable = buildTable('\U0001D434', '\U0001D44E', 0, map[rune]rune{
		'h': 'ℎ',
	})

	boldItalicTable = buildTable('\U0001D468', '\U0001D482', 0, nil)

	monospaceTable = buildTable('\U0001D670', '\U0001D68A', '\U0001D7F6', nil)

	scriptTable = buildTable('\U0001D49C', '\U0001D4B6', 0, map[rune]rune{
		'B': 'ℬ', 'E': 'ℰ', 'F': 'ℱ', 'H': 'ℋ',
		'I': 'ℐ', 'L': 'ℒ', 'M': 'ℳ', 'R': 'ℛ',
		'e': 'ℯ', 'g': 'ℊ', 'o': 'ℴ',
	})

	doubleStruckTable = buildTable('\U0001D538', '\U0001D552', '\U0001D7D8', map[rune]rune{
		'C': 'ℂ', 'H': 'ℍ', 'N': 'ℕ', 'P': 'ℙ',
		'Q': 'ℚ', 'R': 'ℝ', 'Z': 'ℤ',
	})

	styleTables = map[Style]map[rune]rune{
		Bold:         boldTable,
		Italic:       italicTable,
		BoldItalic:   boldItalicTable,
		Monospace:    monospaceTable,
		Script:       scriptTable,
		DoubleStruck: doubleStruckTable,
	}

	// foldTable maps every emitted code point back to its ASCII source.
	foldTable = buildFoldTable()
)

func buildTable(upperBase, lowerBase, digitBase rune, overrides map[rune]rune) map[rune]rune {
	table := make(map[rune]rune, 62)
	for i := rune(0); i < 26; i++ {
		table['A'+i] = upperBase + i
		table['a'+i] = lowerBase + i
	}
	if digitBase != 0 {
		for i := rune(0); i < 10; i++ {
			table['0'+i] = digitBase + i
		}
	}
	for src, dst := range overrides {
		table[src] = dst
	}
	return table
}

func buildFoldTable() map[rune]rune {
	fold := make(map[rune]rune, 62*len(styleTables))
	for _, table := range styleTables {
		for src, dst := range table {
			fold[dst] = src
		}
	}
	return fold
}

// foldRune returns the plain ASCII source of a styled code point,
// or the rune itself when it is not one of ours.
func foldRune(r rune) rune {
	if base, ok := foldTable[r]; ok {
		return base
	}
	return r
}

// mapRune restyles a single rune. Styled input is folded to ASCII first so
// that restyling operates on the current content, not an undo stack.
func mapRune(r rune, style Style) rune {
	base := foldRune(r)
	if style == Normal {
		return base
	}
	if mapped, ok := styleTables[style][base]; ok {
		return mapped
	}
	return r
}

// Apply restyles every mappable character of text.
func Apply(text string, style Style) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		b.WriteRune(mapRune(r, style))
	}
	return b.String()
}

// TransformRange restyles the [start, end) code-point range of text and
// returns the new full text plus the new end offset in UTF-16 units, which
// grows when mapped characters move to the supplementary plane.
// Out-of-range offsets clamp to the content length.
func TransformRange(text string, start, end int, style Style) (string, int) {
	runes := []rune(text)
	start = clamp(start, 0, len(runes))
	end = clamp(end, 0, len(runes))
	if end < start {
		end = start
	}

	out := make([]rune, len(runes))
	copy(out, runes)
	for i := start; i < end; i++ {
		out[i] = mapRune(out[i], style)
	}

	newEnd := 0
	for i := 0; i < end; i++ {
		newEnd += utf16RuneLen(out[i])
	}
	return string(out), newEnd
}

// Fold converts every styled code point in text back to plain ASCII.
func Fold(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		b.WriteRune(foldRune(r))
	}
	return b.String()
}

func utf16RuneLen(r rune) int {
	if utf16.IsSurrogate(r) {
		return 1
	}
	if r > 0xFFFF {
		return 2
	}
	return 1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
