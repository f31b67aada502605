// Package request validates and normalizes search API parameters.
package request

import (
	"fmt"

	"github.com/kailas-cloud/imagedex/internal/domain"
	"github.com/kailas-cloud/imagedex/internal/domain/image"
)

// Search parameter limits.
const (
	MaxQueryLength  = 1024
	DefaultPageSize = 20
	MaxPageSize     = 100
	DefaultMinScore = 0.1
)

// Limits carries the deployment's pagination and score-threshold bounds.
// Zero or negative fields fall back to the package defaults.
type Limits struct {
	DefaultPageSize int
	MaxPageSize     int
	DefaultMinScore float64
}

func (l Limits) withDefaults() Limits {
	if l.DefaultPageSize <= 0 {
		l.DefaultPageSize = DefaultPageSize
	}
	if l.MaxPageSize <= 0 {
		l.MaxPageSize = MaxPageSize
	}
	if l.DefaultMinScore <= 0 {
		l.DefaultMinScore = DefaultMinScore
	}
	return l
}

// Request is a validated search request.
type Request struct {
	query       string
	page        int
	pageSize    int
	minScore    float64
	fileFormats []string
	orientation image.Orientation
}

// New validates search parameters against the package default limits.
func New(
	query string,
	page, pageSize int,
	minScore *float64,
	fileFormats []string,
	orientation string,
) (Request, error) {
	return NewWithLimits(Limits{}, query, page, pageSize, minScore, fileFormats, orientation)
}

// NewWithLimits validates search parameters. Pages are 1-based; zero
// page/pageSize select the configured defaults, and pageSize is clamped to
// the configured maximum. A nil minScore selects the configured default. An
// empty query is allowed only when a format or orientation filter is present.
func NewWithLimits(
	limits Limits,
	query string,
	page, pageSize int,
	minScore *float64,
	fileFormats []string,
	orientation string,
) (Request, error) {
	limits = limits.withDefaults()
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidQuery, MaxQueryLength)
	}

	orient := image.ParseOrientation(orientation)
	if orientation != "" && orient == image.OrientationNone {
		return Request{}, fmt.Errorf("%w: unknown orientation %q", domain.ErrInvalidQuery, orientation)
	}
	if query == "" && len(fileFormats) == 0 && orient == image.OrientationNone {
		return Request{}, fmt.Errorf("%w: query is required when no filters are given", domain.ErrInvalidQuery)
	}

	if page < 0 {
		return Request{}, fmt.Errorf("%w: page must be >= 1, got %d", domain.ErrInvalidPagination, page)
	}
	if page == 0 {
		page = 1
	}
	if pageSize < 0 {
		return Request{}, fmt.Errorf("%w: page_size must be > 0, got %d", domain.ErrInvalidPagination, pageSize)
	}
	if pageSize == 0 {
		pageSize = limits.DefaultPageSize
	}
	if pageSize > limits.MaxPageSize {
		pageSize = limits.MaxPageSize
	}

	score := limits.DefaultMinScore
	if minScore != nil {
		if *minScore < 0 || *minScore > 1 {
			return Request{}, fmt.Errorf("%w: min_score must be between 0 and 1", domain.ErrInvalidQuery)
		}
		score = *minScore
	}

	return Request{
		query:       query,
		page:        page,
		pageSize:    pageSize,
		minScore:    score,
		fileFormats: fileFormats,
		orientation: orient,
	}, nil
}

// Query returns the raw query text.
func (r *Request) Query() string { return r.query }

// Page returns the 1-based page number.
func (r *Request) Page() int { return r.page }

// PageSize returns the page size.
func (r *Request) PageSize() int { return r.pageSize }

// MinScore returns the minimum total score a result must reach.
func (r *Request) MinScore() float64 { return r.minScore }

// FileFormats returns the explicit format filter, if any.
func (r *Request) FileFormats() []string { return r.fileFormats }

// Orientation returns the explicit orientation filter, if any.
func (r *Request) Orientation() image.Orientation { return r.orientation }
