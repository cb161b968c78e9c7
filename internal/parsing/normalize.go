// Package parsing provides text normalization and tokenization shared by the analyzers.
package parsing

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// wordRunRe matches maximal runs of Unicode word characters.
	wordRunRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)
)

// NormalizeText lowercases text, collapses whitespace runs to a single space and trims.
func NormalizeText(text string) string {
	text = strings.ToLower(text)
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// WordRuns returns the maximal word-character runs in text that are at least minLen runes long.
func WordRuns(text string, minLen int) []string {
	runs := wordRunRe.FindAllString(text, -1)
	if minLen <= 1 {
		return runs
	}
	out := make([]string, 0, len(runs))
	for _, r := range runs {
		if utf8.RuneCountInString(r) >= minLen {
			out = append(out, r)
		}
	}
	return out
}

// Length returns the number of characters (runes) in text.
func Length(text string) int {
	return utf8.RuneCountInString(text)
}

// TopN returns up to n distinct terms ordered by descending count.
// Ties keep the order in which terms first appeared.
func TopN(terms []string, n int) []string {
	counts := make(map[string]int, len(terms))
	order := make([]string, 0, len(terms))
	for _, t := range terms {
		if _, seen := counts[t]; !seen {
			order = append(order, t)
		}
		counts[t]++
	}

	ranked := order
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})

	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
