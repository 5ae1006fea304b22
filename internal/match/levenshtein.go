package match

import "github.com/agext/levenshtein"

// Distance returns the edit distance between a and b, counted in runes.
func Distance(a, b string) int {
	return levenshtein.Distance(a, b, nil)
}

// Similarity returns 1 minus the edit distance of a and b divided by the
// length of the longer string. Two empty strings are identical.
func Similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}

	return levenshtein.Similarity(a, b, nil)
}

// IdentSimilarity compares two identifiers after normalizing them, so
// "strip_option" and "StripOption" score 1.
func IdentSimilarity(a, b string) float64 {
	return Similarity(NormalizeIdent(a), NormalizeIdent(b))
}
