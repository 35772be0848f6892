package textutil

import "math"

// Fingerprint is a character-trigram frequency vector of a normalized name.
// County names are short, so word tokens carry too little signal.
type Fingerprint struct {
	grams map[string]float64
	norm  float64
}

// NewFingerprint builds a fingerprint from the normalized form of text.
// Returns nil if text is blank.
func NewFingerprint(text string) *Fingerprint {
	grams := Trigrams(text)
	if len(grams) == 0 {
		return nil
	}
	counts := make(map[string]float64, len(grams))
	for _, g := range grams {
		counts[g]++
	}
	var norm float64
	for _, count := range counts {
		norm += count * count
	}
	return &Fingerprint{grams: counts, norm: math.Sqrt(norm)}
}

// Trigrams returns the overlapping three-rune windows of the normalized,
// space-padded text.
func Trigrams(text string) []string {
	normalized := NormalizeName(text)
	if normalized == "" {
		return nil
	}
	runes := []rune(" " + normalized + " ")
	out := make([]string, 0, len(runes))
	for i := 0; i+3 <= len(runes); i++ {
		out = append(out, string(runes[i:i+3]))
	}
	return out
}

// GramCount returns the number of distinct trigrams.
func (f *Fingerprint) GramCount() int {
	if f == nil {
		return 0
	}
	return len(f.grams)
}
