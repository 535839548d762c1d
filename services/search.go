package services

import (
	"sort"
	"strings"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

const suggestionThreshold = 0.5

// normalizeInput lowercases and strips accents so "José" matches "jose"
func normalizeInput(input string) string {
	input = strings.TrimSpace(input)
	return strings.ToLower(unidecode.Unidecode(input))
}

func calculateSimilarity(a, b string) float64 {
	distance := levenshtein.DistanceForStrings([]rune(a), []rune(b), levenshtein.DefaultOptions)
	maxLen := float64(len([]rune(a)))
	if l := float64(len([]rune(b))); l > maxLen {
		maxLen = l
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(distance)/maxLen
}

type suggestion struct {
	index int
	score float64
}

// rankSuggestions returns indexes into candidates ordered by closeness to
// query. Prefix and substring hits rank first, then fuzzy matches.
func rankSuggestions(query string, candidates []string, limit int) []int {
	q := normalizeInput(query)
	if q == "" || len(candidates) == 0 {
		return nil
	}
	normalized := make([]string, len(candidates))
	for i, c := range candidates {
		normalized[i] = normalizeInput(c)
	}

	closest := ""
	if len(q) >= 2 {
		closest = closestmatch.New(normalized, []int{2, 3}).Closest(q)
	}

	var ranked []suggestion
	for i, name := range normalized {
		score := bestTokenSimilarity(q, name)
		switch {
		case strings.HasPrefix(name, q):
			score += 2
		case strings.Contains(name, q):
			score += 1
		}
		if closest != "" && name == closest {
			score += 0.5
		}
		if score >= suggestionThreshold {
			ranked = append(ranked, suggestion{index: i, score: score})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]int, len(ranked))
	for i, r := range ranked {
		out[i] = r.index
	}
	return out
}

// bestTokenSimilarity compares query against the whole name and each word
func bestTokenSimilarity(query, name string) float64 {
	best := calculateSimilarity(query, name)
	for _, token := range strings.Fields(name) {
		if s := calculateSimilarity(query, token); s > best {
			best = s
		}
	}
	return best
}
