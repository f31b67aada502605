// Package tags cleans free-text tag lists and scores their overlap with a
// search query. Pure functions, no dependencies on other domain packages.
package tags

import (
	"strings"
	"unicode"
)

// Normalization limits.
const (
	MaxTagLength = 50
	MaxTagCount  = 20
)

// fuzzyThreshold is the minimum normalized edit similarity that counts as a
// fuzzy tag match.
const fuzzyThreshold = 0.7

// Normalize splits raw tag text on commas, semicolons, and whitespace,
// strips characters outside letters/digits/hyphen/underscore, lowercases,
// truncates each tag to MaxTagLength runes, and deduplicates preserving
// first-seen order, capped at MaxTagCount. Blank input yields nil.
func Normalize(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})

	seen := make(map[string]struct{}, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		tag := cleanTag(p)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
		if len(out) == MaxTagCount {
			break
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// cleanTag keeps letters (including CJK), digits, hyphen, and underscore,
// lowercased, truncated to MaxTagLength runes.
func cleanTag(s string) string {
	var b strings.Builder
	n := 0
	for _, r := range strings.ToLower(s) {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
			continue
		}
		b.WriteRune(r)
		n++
		if n == MaxTagLength {
			break
		}
	}
	return b.String()
}

// Relevance scores tag overlap with a query in [0, 1]. Each tag contributes
// 1.0 for an exact match against a query term, 0.6 for substring containment
// in either direction, or 0.4 for a fuzzy match above the similarity
// threshold. The sum is normalized by the larger of tag count and term count.
func Relevance(tagList []string, query string) float64 {
	terms := strings.Fields(strings.ToLower(query))
	if len(tagList) == 0 || len(terms) == 0 {
		return 0
	}

	var sum float64
	for _, tag := range tagList {
		tag = strings.ToLower(tag)
		var best float64
		for _, term := range terms {
			switch {
			case tag == term:
				best = 1.0
			case strings.Contains(tag, term) || strings.Contains(term, tag):
				if best < 0.6 {
					best = 0.6
				}
			case Similarity(tag, term) > fuzzyThreshold:
				if best < 0.4 {
					best = 0.4
				}
			}
			if best == 1.0 {
				break
			}
		}
		sum += best
	}

	denom := len(tagList)
	if len(terms) > denom {
		denom = len(terms)
	}
	score := sum / float64(denom)
	if score > 1 {
		score = 1
	}
	return score
}

// Similarity is the normalized Levenshtein similarity of two strings:
// 1 - distance/maxLen, computed over runes. Two empty strings are identical.
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 1
	}
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	return 1 - float64(levenshtein(ra, rb))/float64(maxLen)
}

// levenshtein computes edit distance with a single rolling row.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		cur := prev[0]
		prev[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			ins := prev[j] + 1
			del := prev[j-1] + 1
			sub := cur + cost
			cur = prev[j]
			prev[j] = min3(ins, del, sub)
		}
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
