package search

import (
	"context"

	"github.com/kailas-cloud/imagedex/internal/domain/image"
	"github.com/kailas-cloud/imagedex/internal/domain/search/criteria"
)

// Repository fetches the candidate set for parsed criteria.
type Repository interface {
	FetchCandidates(ctx context.Context, c *criteria.Criteria) ([]image.Record, error)
}

// Ranker is the external relevance ranker capability. Rank returns candidate
// ids in model order; an empty slice is an explicit "no matches" answer. Any
// error means the ranker could not serve this request and the caller must
// fall back to heuristic scoring.
type Ranker interface {
	Enabled() bool
	Rank(ctx context.Context, query string, candidates []image.Record) ([]string, error)
}
