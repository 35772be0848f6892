package textutil

import "sort"

// CosineSimilarity computes the cosine similarity between two fingerprints.
// Returns 0 if either fingerprint is nil or has zero norm.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	var dot float64
	for gram, count := range a.grams {
		if other, ok := b.grams[gram]; ok {
			dot += count * other
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (a.norm * b.norm)
}

// minSuggestScore keeps wildly different names out of suggestions.
const minSuggestScore = 0.35

// SuggestName returns the candidate most similar to value, or "" when nothing
// is close. Ties resolve to the alphabetically first candidate.
func SuggestName(value string, candidates []string) string {
	target := NewFingerprint(value)
	if target == nil {
		return ""
	}
	sorted := append([]string(nil), candidates...)
	sort.Strings(sorted)

	best := ""
	bestScore := minSuggestScore
	for _, candidate := range sorted {
		score := CosineSimilarity(target, NewFingerprint(candidate))
		if score > bestScore {
			best, bestScore = candidate, score
		}
	}
	return best
}
