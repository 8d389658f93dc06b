package ui

import (
	"sort"
	"strings"
)

// maxSuggestionDistance bounds the edit distance of a "did you mean" hit
const maxSuggestionDistance = 3

// Suggest returns up to limit candidates within a small edit distance of
// target, closest first. Matching ignores case; ties keep candidate order.
func Suggest(target string, candidates []string, limit int) []string {
	type hit struct {
		name string
		dist int
	}

	lower := strings.ToLower(target)
	var hits []hit
	for _, c := range candidates {
		d := editDistance(lower, strings.ToLower(c))
		if d <= maxSuggestionDistance || (lower != "" && strings.Contains(strings.ToLower(c), lower)) {
			hits = append(hits, hit{name: c, dist: d})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].dist < hits[j].dist
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}
	return out
}

// editDistance is the Levenshtein distance between a and b, in runes
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
