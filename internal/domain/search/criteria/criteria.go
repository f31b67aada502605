// Package criteria holds the structured representation of a parsed search
// query. A Criteria is built once per request by the query analyzer and is
// read-only afterwards.
package criteria

import "github.com/kailas-cloud/imagedex/internal/domain/image"

// QueryType is the primary intent class detected for a query.
type QueryType string

// Query types, in analyzer priority order (first match wins).
const (
	TypeColor     QueryType = "color"
	TypeTechnical QueryType = "technical"
	TypeVisual    QueryType = "visual"
	TypeContent   QueryType = "content"
	TypeSemantic  QueryType = "semantic"
)

// Complexity buckets a query by token count: 1-2 simple, 3-5 medium, 6+ complex.
type Complexity string

// Complexity levels.
const (
	ComplexitySimple  Complexity = "simple"
	ComplexityMedium  Complexity = "medium"
	ComplexityComplex Complexity = "complex"
)

// TechnicalFilter narrows candidates by file-level attributes.
// Slice fields are OR-sets; distinct fields combine conjunctively.
type TechnicalFilter struct {
	FileFormats     []string // canonical uppercase
	MinResolution   image.Resolution
	MaxResolution   image.Resolution
	MinFileSize     int64
	MaxFileSize     int64
	HasTransparency *bool
	Animated        *bool
}

// Empty reports whether no technical predicate is set.
func (f *TechnicalFilter) Empty() bool {
	return len(f.FileFormats) == 0 &&
		f.MinResolution == image.ResolutionUnknown && f.MaxResolution == image.ResolutionUnknown &&
		f.MinFileSize == 0 && f.MaxFileSize == 0 &&
		f.HasTransparency == nil && f.Animated == nil
}

// VisualFilter narrows candidates by visual attributes.
type VisualFilter struct {
	Orientation   image.Orientation
	MinBrightness *float64
	MaxBrightness *float64
	MinContrast   *float64
	MaxContrast   *float64
	MinSaturation *float64
	MaxSaturation *float64
	ColorKeywords []string
}

// Empty reports whether no visual predicate is set.
func (f *VisualFilter) Empty() bool {
	return f.Orientation == image.OrientationNone &&
		f.MinBrightness == nil && f.MaxBrightness == nil &&
		f.MinContrast == nil && f.MaxContrast == nil &&
		f.MinSaturation == nil && f.MaxSaturation == nil &&
		len(f.ColorKeywords) == 0
}

// ContentFilter narrows candidates by content classification.
type ContentFilter struct {
	Categories []string
	HasText    *bool
	HasFaces   *bool
	HasObjects *bool
}

// Empty reports whether no content predicate is set.
func (f *ContentFilter) Empty() bool {
	return len(f.Categories) == 0 && f.HasText == nil && f.HasFaces == nil && f.HasObjects == nil
}

// Criteria is the parsed form of one search query. Built by the analyzer,
// never mutated afterwards, discarded when the request completes.
type Criteria struct {
	OriginalQuery string
	Query         string // trimmed, lowercased, whitespace-collapsed
	Type          QueryType
	Complexity    Complexity

	Keywords []string // stop-words removed, len > 2, deduplicated in order
	Phrases  []string // double-quoted substrings of the original query

	HasNegation      bool
	HasComparison    bool
	HasTimeReference bool

	Technical TechnicalFilter
	Visual    VisualFilter
	Content   ContentFilter
}

// TermCount is the number of match terms (phrases plus keywords) used to
// normalize text-field scores.
func (c *Criteria) TermCount() int {
	return len(c.Phrases) + len(c.Keywords)
}

// HasFilters reports whether any filter group carries a predicate.
func (c *Criteria) HasFilters() bool {
	return !c.Technical.Empty() || !c.Visual.Empty() || !c.Content.Empty()
}
