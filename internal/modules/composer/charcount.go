package composer

import "unicode/utf8"

// Account reports draft length against the post ceiling. Counting is done in
// Unicode code points: styled glyphs and emoji occupy two UTF-16 units but
// count once, matching how LinkedIn meters post length.
type Account struct {
	Count       int     `json:"count"`
	IsOverLimit bool    `json:"isOverLimit"`
	Percentage  float64 `json:"percentage"`
}

// CountCharacters returns the number of Unicode code points in text.
func CountCharacters(text string) int {
	return utf8.RuneCountInString(text)
}

// ComputeAccount derives the character accounting for text against max.
// Percentage is clamped to [0, 100] even when the count exceeds the limit.
func ComputeAccount(text string, max int) Account {
	count := CountCharacters(text)
	pct := 0.0
	if max > 0 {
		pct = float64(count) / float64(max) * 100
	}
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return Account{
		Count:       count,
		IsOverLimit: max > 0 && count > max,
		Percentage:  pct,
	}
}
