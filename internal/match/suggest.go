package match

import (
	"sort"
)

// suggestThreshold is the minimum normalized similarity for a suggestion.
const suggestThreshold = 0.5

// Suggest returns up to limit candidates similar to name, best first. Ties
// keep the order of candidates. An exact normalized match ("Tags" for
// "tags") always ranks first.
func Suggest(name string, candidates []string, limit int) []string {
	type scored struct {
		name  string
		score float64
		index int
	}

	var ranked []scored

	for i, c := range candidates {
		if c == name {
			continue
		}

		score := IdentSimilarity(name, c)
		if score >= suggestThreshold {
			ranked = append(ranked, scored{name: c, score: score, index: i})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.name
	}

	return out
}
