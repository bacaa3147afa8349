package fonts

import (
	"testing"
	"unicode/utf8"
)

func TestParseStyle(t *testing.T) {
	testCases := []struct {
		name  string
		want  Style
		known bool
	}{
		{"bold", Bold, true},
		{"BOLD", Bold, true},
		{"doubleStruck", DoubleStruck, true},
		{"doublestruck", DoubleStruck, true},
		{"normal", Normal, true},
		{"comic-sans", Normal, false},
	}
	for _, tc := range testCases {
		got, ok := ParseStyle(tc.name)
		if got != tc.want || ok != tc.known {
			t.Errorf("ParseStyle(%q) = (%v, %v), want (%v, %v)", tc.name, got, ok, tc.want, tc.known)
		}
	}
}

func TestApplyBold(t *testing.T) {
	got := Apply("Hello", Bold)
	want := "\U0001D407\U0001D41E\U0001D425\U0001D425\U0001D428"
	if got != want {
		t.Errorf("Apply bold = %q, want %q", got, want)
	}
}

func TestApplyPreservesUnmapped(t *testing.T) {
	got := Apply("Big news, 100%!", Bold)
	for _, r := range got {
		switch r {
		case ' ', ',', '%', '!':
			// punctuation and spaces pass through
		default:
			if r < 0x80 {
				t.Errorf("ascii rune %q survived bold transform", r)
			}
		}
	}
}

func TestLetterlikeOverrides(t *testing.T) {
	testCases := []struct {
		style Style
		in    string
		want  string
	}{
		{Italic, "h", "ℎ"},
		{Script, "Hello", "ℋℯ\U0001D4C1\U0001D4C1ℴ"},
		{DoubleStruck, "NZ", "ℕℤ"},
	}
	for _, tc := range testCases {
		if got := Apply(tc.in, tc.style); got != tc.want {
			t.Errorf("Apply(%q, %v) = %q, want %q", tc.in, tc.style, got, tc.want)
		}
	}
}

func TestDigits(t *testing.T) {
	// Italic and script have no digit forms; digits pass through.
	if got := Apply("42", Italic); got != "42" {
		t.Errorf("italic digits = %q, want unchanged", got)
	}
	if got := Apply("42", Bold); got != "\U0001D7D2\U0001D7D0" {
		t.Errorf("bold digits = %q", got)
	}
}

func TestFoldRoundTrip(t *testing.T) {
	styles := []Style{Bold, Italic, BoldItalic, Monospace, Script, DoubleStruck}
	inputs := []string{
		"Hello World 123",
		"The quick brown fox JUMPS over 9 lazy dogs",
		"punctuation, stays. as-is!",
	}
	for _, style := range styles {
		for _, in := range inputs {
			styled := Apply(in, style)
			if got := Fold(styled); got != in {
				t.Errorf("Fold(Apply(%q, %v)) = %q, want original", in, style, got)
			}
		}
	}
}

func TestRestyleOperatesOnCurrentContent(t *testing.T) {
	// Bold glyphs restyled italic must land on italic glyphs directly,
	// never passing through an intermediate plain state in the output.
	styled, _ := TransformRange("Hello", 0, 5, Bold)
	if styled == "Hello" {
		t.Fatal("bold transform did not change text")
	}
	restyled, _ := TransformRange(styled, 0, 5, Italic)
	want := Apply("Hello", Italic)
	if restyled != want {
		t.Errorf("restyle bold→italic = %q, want %q", restyled, want)
	}
}

func TestTransformRangePartial(t *testing.T) {
	got, _ := TransformRange("say Hello now", 4, 9, Bold)
	want := "say " + Apply("Hello", Bold) + " now"
	if got != want {
		t.Errorf("partial transform = %q, want %q", got, want)
	}
}

func TestTransformRangeClamps(t *testing.T) {
	testCases := []struct {
		name       string
		start, end int
	}{
		{"end beyond length", 0, 99},
		{"start negative", -3, 5},
		{"both out of range", -10, 200},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := TransformRange("Hello", tc.start, tc.end, Bold)
			if want := Apply("Hello", Bold); got != want {
				t.Errorf("clamped transform = %q, want %q", got, want)
			}
		})
	}

	// Inverted range collapses to empty selection.
	got, _ := TransformRange("Hello", 4, 2, Bold)
	if got != "Hello" {
		t.Errorf("inverted range transformed text: %q", got)
	}
}

func TestTransformRangeEmptySelection(t *testing.T) {
	got, end := TransformRange("Hello", 2, 2, Bold)
	if got != "Hello" {
		t.Errorf("empty selection changed text: %q", got)
	}
	if end != 2 {
		t.Errorf("empty selection end = %d, want 2", end)
	}
}

func TestTransformRangeNewEndOffset(t *testing.T) {
	// Five supplementary-plane code points occupy two UTF-16 units each.
	_, end := TransformRange("Hello", 0, 5, Bold)
	if end != 10 {
		t.Errorf("new end offset = %d, want 10", end)
	}

	// Mixed: "say Hello" with only "Hello" bolded → 4 BMP + 5*2 = 14.
	_, end = TransformRange("say Hello", 4, 9, Bold)
	if end != 14 {
		t.Errorf("new end offset = %d, want 14", end)
	}
}

func TestStyledRunsAreValidUTF8(t *testing.T) {
	for style := range styleTables {
		styled := Apply("AZaz09", style)
		if !utf8.ValidString(styled) {
			t.Errorf("style %v produced invalid UTF-8: %q", style, styled)
		}
	}
}
