package score

import "github.com/kailas-cloud/imagedex/internal/domain/search/criteria"

// weights is the per-component weighting of the four sub-scores.
type weights struct {
	description float64
	tag         float64
	filename    float64
	metadata    float64
}

// weightsFor returns the weight distribution for a query type. Each row
// sums to 1.0 before the complexity skew.
func weightsFor(t criteria.QueryType) weights {
	switch t {
	case criteria.TypeSemantic:
		return weights{description: 0.45, tag: 0.35, filename: 0.15, metadata: 0.05}
	case criteria.TypeTechnical:
		return weights{description: 0.20, tag: 0.20, filename: 0.20, metadata: 0.40}
	case criteria.TypeVisual:
		return weights{description: 0.30, tag: 0.25, filename: 0.15, metadata: 0.30}
	case criteria.TypeColor:
		return weights{description: 0.35, tag: 0.35, filename: 0.15, metadata: 0.15}
	case criteria.TypeContent:
		return weights{description: 0.40, tag: 0.30, filename: 0.15, metadata: 0.15}
	default:
		return weights{description: 0.40, tag: 0.30, filename: 0.20, metadata: 0.10}
	}
}

// adjustForComplexity skews weights for complex queries toward text signals.
// The result intentionally no longer sums to exactly 1.0.
func (w weights) adjustForComplexity(c criteria.Complexity) weights {
	if c != criteria.ComplexityComplex {
		return w
	}
	w.description *= 1.1
	if w.description > 0.5 {
		w.description = 0.5
	}
	w.tag *= 1.1
	if w.tag > 0.4 {
		w.tag = 0.4
	}
	w.filename *= 0.9
	w.metadata *= 0.9
	return w
}
