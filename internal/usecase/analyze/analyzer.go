// Package analyze turns a raw query string into structured search criteria:
// query type, complexity, keywords, phrases, and filter hints. Single pass,
// deterministic, no I/O.
package analyze

import (
	"regexp"
	"strings"

	"github.com/kailas-cloud/imagedex/internal/domain/image"
	"github.com/kailas-cloud/imagedex/internal/domain/search/criteria"
)

// phraseRegex extracts double-quoted substrings from the original query.
var phraseRegex = regexp.MustCompile(`"([^"]+)"`)

// Analyzer classifies queries against injected keyword tables.
type Analyzer struct {
	tables Tables
}

// New creates an analyzer.
func New(tables Tables) *Analyzer {
	return &Analyzer{tables: tables}
}

// Analyze parses a raw query into criteria. Idempotent and side-effect-free.
func (a *Analyzer) Analyze(query string) criteria.Criteria {
	normalized := normalize(query)
	tokens := strings.Fields(normalized)

	c := criteria.Criteria{
		OriginalQuery: query,
		Query:         normalized,
		Type:          a.classify(tokens),
		Complexity:    complexityOf(len(tokens)),
		Keywords:      a.extractKeywords(tokens),
		Phrases:       extractPhrases(query),

		HasNegation:      strings.Contains(normalized, "not ") || strings.Contains(normalized, "-"),
		HasComparison:    hasComparison(normalized),
		HasTimeReference: containsAny(normalized, "recent", "old", "new"),
	}

	a.populateTechnicalFilter(normalized, tokens, &c.Technical)
	a.populateVisualFilter(normalized, &c.Visual)
	a.populateContentFilter(normalized, tokens, &c.Content)

	return c
}

// normalize trims, lowercases, and collapses internal whitespace.
func normalize(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}

// classify picks the primary query type by keyword-set membership, checked
// in fixed priority order; the first category with a hit wins.
func (a *Analyzer) classify(tokens []string) criteria.QueryType {
	for _, probe := range []struct {
		set map[string]struct{}
		typ criteria.QueryType
	}{
		{a.tables.ColorKeywords, criteria.TypeColor},
		{a.tables.TechnicalKeywords, criteria.TypeTechnical},
		{a.tables.VisualKeywords, criteria.TypeVisual},
		{a.tables.ContentKeywords, criteria.TypeContent},
	} {
		for _, tok := range tokens {
			if _, ok := probe.set[tok]; ok {
				return probe.typ
			}
		}
	}
	return criteria.TypeSemantic
}

func complexityOf(tokenCount int) criteria.Complexity {
	switch {
	case tokenCount <= 2:
		return criteria.ComplexitySimple
	case tokenCount <= 5:
		return criteria.ComplexityMedium
	default:
		return criteria.ComplexityComplex
	}
}

func hasComparison(q string) bool {
	return strings.Contains(q, ">") || strings.Contains(q, "<") ||
		strings.Contains(q, "larger than") || strings.Contains(q, "smaller than")
}

// extractKeywords drops stop-words and tokens of length <= 2, deduplicating
// while preserving order.
func (a *Analyzer) extractKeywords(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	var out []string
	for _, tok := range tokens {
		if len([]rune(tok)) <= 2 {
			continue
		}
		if _, stop := a.tables.StopWords[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
	}
	return out
}

// extractPhrases returns all double-quoted substrings of the original
// (non-normalized) query, in order of appearance.
func extractPhrases(original string) []string {
	matches := phraseRegex.FindAllStringSubmatch(original, -1)
	if len(matches) == 0 {
		return nil
	}
	phrases := make([]string, 0, len(matches))
	for _, m := range matches {
		if p := strings.TrimSpace(m[1]); p != "" {
			phrases = append(phrases, p)
		}
	}
	return phrases
}

func (a *Analyzer) populateTechnicalFilter(q string, tokens []string, f *criteria.TechnicalFilter) {
	if containsAny(q, "transparent", "transparency") {
		f.HasTransparency = boolPtr(true)
	}
	if containsAny(q, "animated", "animation", "gif") {
		f.Animated = boolPtr(true)
	}

	seen := map[string]struct{}{}
	for _, tok := range tokens {
		if format, ok := a.tables.Formats[tok]; ok {
			if _, dup := seen[format]; !dup {
				seen[format] = struct{}{}
				f.FileFormats = append(f.FileFormats, format)
			}
		}
	}

	switch {
	case containsAny(q, "4k", "ultra hd", "ultra high resolution"):
		f.MinResolution = image.ResolutionUltraHigh
	case containsAny(q, "high resolution", "hd", "high quality"):
		f.MinResolution = image.ResolutionHigh
	}
	if containsAny(q, "low resolution", "low quality") {
		f.MaxResolution = image.ResolutionLow
	}
}

func (a *Analyzer) populateVisualFilter(q string, f *criteria.VisualFilter) {
	switch {
	case strings.Contains(q, "panoram"):
		f.Orientation = image.OrientationPanoramic
	case containsAny(q, "landscape", "wide", "horizontal"):
		f.Orientation = image.OrientationLandscape
	case containsAny(q, "portrait", "vertical", "tall"):
		f.Orientation = image.OrientationPortrait
	case strings.Contains(q, "square"):
		f.Orientation = image.OrientationSquare
	}

	if containsAny(q, "bright", "light") {
		f.MinBrightness = floatPtr(0.6)
	}
	if containsAny(q, "dark", "dim") {
		f.MaxBrightness = floatPtr(0.4)
	}
	if strings.Contains(q, "high contrast") {
		f.MinContrast = floatPtr(0.6)
	}
	if strings.Contains(q, "low contrast") {
		f.MaxContrast = floatPtr(0.4)
	}
	if containsAny(q, "saturated", "vivid", "colorful") {
		f.MinSaturation = floatPtr(0.6)
	}
	if containsAny(q, "muted", "desaturated", "monochrome") {
		f.MaxSaturation = floatPtr(0.4)
	}

	for _, tok := range strings.Fields(q) {
		if _, ok := a.tables.ColorKeywords[tok]; ok {
			f.ColorKeywords = append(f.ColorKeywords, tok)
		}
	}
}

func (a *Analyzer) populateContentFilter(q string, tokens []string, f *criteria.ContentFilter) {
	seen := map[string]struct{}{}
	for _, tok := range tokens {
		if cat, ok := a.tables.Categories[tok]; ok {
			if _, dup := seen[cat]; !dup {
				seen[cat] = struct{}{}
				f.Categories = append(f.Categories, cat)
			}
		}
	}

	if containsAny(q, "text", "typography") {
		f.HasText = boolPtr(true)
	}
	if strings.Contains(q, "face") {
		f.HasFaces = boolPtr(true)
	}
	if strings.Contains(q, "object") {
		f.HasObjects = boolPtr(true)
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func boolPtr(v bool) *bool { return &v }

func floatPtr(v float64) *float64 { return &v }
