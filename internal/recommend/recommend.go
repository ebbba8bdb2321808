// Package recommend suggests valid names for mistyped user input. It is
// used wherever a transformer name fails to resolve.
package recommend

import (
	"sort"
	"strings"
)

// Names score below this normalized edit distance to qualify as similar.
// Distance is Levenshtein divided by the longer name's length, so 0 is an
// exact match and 1 shares nothing.
const SimilarityThreshold = 0.5

// MaxSuggestions caps the length of a suggestion list.
const MaxSuggestions = 3

// Ranked returns candidates within the similarity threshold, closest
// first, ties broken by candidate declaration order, capped at
// MaxSuggestions. Matching is case-insensitive.
func Ranked(name string, candidates []string) []string {
	type scored struct {
		name  string
		score float64
		order int
	}
	lower := strings.ToLower(name)
	var near []scored
	for i, cand := range candidates {
		score := normalizedDistance(lower, strings.ToLower(cand))
		if score <= SimilarityThreshold {
			near = append(near, scored{name: cand, score: score, order: i})
		}
	}
	sort.SliceStable(near, func(i, j int) bool {
		if near[i].score != near[j].score {
			return near[i].score < near[j].score
		}
		return near[i].order < near[j].order
	})
	if len(near) > MaxSuggestions {
		near = near[:MaxSuggestions]
	}
	out := make([]string, len(near))
	for i, s := range near {
		out[i] = s.name
	}
	return out
}

// FindSimilar renders a ranked suggestion clause ready to append to an
// unknown-name error message. Empty when no candidate is close enough.
func FindSimilar(name string, candidates []string) string {
	ranked := Ranked(name, candidates)
	if len(ranked) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(" Did you mean:")
	for _, cand := range ranked {
		sb.WriteString("\n    ")
		sb.WriteString(cand)
	}
	return sb.String()
}

func normalizedDistance(a, b string) float64 {
	if a == b {
		return 0
	}
	longest := max(len(a), len(b))
	if longest == 0 {
		return 0
	}
	return float64(levenshtein(a, b)) / float64(longest)
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
