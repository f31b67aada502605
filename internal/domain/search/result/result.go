// Package result holds scored search hits and the assembled result page.
package result

import "github.com/kailas-cloud/imagedex/internal/domain/image"

// Confidence is a coarse display bucket derived from the total score.
type Confidence string

// Confidence buckets.
const (
	ConfidenceHigh    Confidence = "HIGH"
	ConfidenceMedium  Confidence = "MEDIUM"
	ConfidenceLow     Confidence = "LOW"
	ConfidenceMinimal Confidence = "MINIMAL"
)

// ConfidenceFor buckets a total score: HIGH >=0.8, MEDIUM >=0.5, LOW >=0.2.
func ConfidenceFor(score float64) Confidence {
	switch {
	case score >= 0.8:
		return ConfidenceHigh
	case score >= 0.5:
		return ConfidenceMedium
	case score >= 0.2:
		return ConfidenceLow
	default:
		return ConfidenceMinimal
	}
}

// Scored is one candidate with its component scores and final total.
// Component scores are each in [0, 1]; the total is never negative but is
// not capped above (bonuses keep it near 1.3 at most).
type Scored struct {
	record           image.Record
	descriptionScore float64
	tagScore         float64
	filenameScore    float64
	metadataScore    float64
	bonus            float64
	penalty          float64
	total            float64
}

// NewScored creates a scored result.
func NewScored(
	rec image.Record,
	description, tag, filename, metadata float64,
	bonus, penalty, total float64,
) Scored {
	return Scored{
		record:           rec,
		descriptionScore: description,
		tagScore:         tag,
		filenameScore:    filename,
		metadataScore:    metadata,
		bonus:            bonus,
		penalty:          penalty,
		total:            total,
	}
}

// ID returns the record identifier.
func (s *Scored) ID() string { return s.record.ID }

// Record returns the scored image record.
func (s *Scored) Record() image.Record { return s.record }

// DescriptionScore returns the description component score.
func (s *Scored) DescriptionScore() float64 { return s.descriptionScore }

// TagScore returns the tag component score.
func (s *Scored) TagScore() float64 { return s.tagScore }

// FilenameScore returns the filename component score.
func (s *Scored) FilenameScore() float64 { return s.filenameScore }

// MetadataScore returns the metadata component score.
func (s *Scored) MetadataScore() float64 { return s.metadataScore }

// Bonus returns the additive adjustment.
func (s *Scored) Bonus() float64 { return s.bonus }

// Penalty returns the subtractive adjustment.
func (s *Scored) Penalty() float64 { return s.penalty }

// Total returns the final relevance score.
func (s *Scored) Total() float64 { return s.total }

// Confidence returns the display bucket for the total score.
func (s *Scored) Confidence() Confidence { return ConfidenceFor(s.total) }

// Page is one page of ranked results plus pagination and strategy metadata.
type Page struct {
	results      []Scored
	totalResults int
	currentPage  int
	pageSize     int
	totalPages   int
	strategy     string
	rankerUsed   bool
}

// NewPage creates a result page. totalResults counts all post-threshold
// results, not just this slice; totalPages is derived from it.
func NewPage(results []Scored, totalResults, currentPage, pageSize int, strategy string, rankerUsed bool) Page {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalResults + pageSize - 1) / pageSize
	}
	return Page{
		results:      results,
		totalResults: totalResults,
		currentPage:  currentPage,
		pageSize:     pageSize,
		totalPages:   totalPages,
		strategy:     strategy,
		rankerUsed:   rankerUsed,
	}
}

// Results returns the page slice.
func (p *Page) Results() []Scored { return p.results }

// TotalResults returns the post-threshold result count.
func (p *Page) TotalResults() int { return p.totalResults }

// CurrentPage returns the 1-based page number.
func (p *Page) CurrentPage() int { return p.currentPage }

// PageSize returns the page size.
func (p *Page) PageSize() int { return p.pageSize }

// TotalPages returns ceil(totalResults / pageSize).
func (p *Page) TotalPages() int { return p.totalPages }

// Strategy returns a human-readable description of how the page was ranked.
func (p *Page) Strategy() string { return p.strategy }

// RankerUsed reports whether the external ranker narrowed the candidate set.
func (p *Page) RankerUsed() bool { return p.rankerUsed }
