// Package search orchestrates the relevance pipeline: analyze the query,
// fetch candidates, optionally narrow them through the external ranker,
// score heuristically, then threshold, sort, and paginate.
package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/imagedex/internal/domain/image"
	"github.com/kailas-cloud/imagedex/internal/domain/search/criteria"
	"github.com/kailas-cloud/imagedex/internal/domain/search/request"
	"github.com/kailas-cloud/imagedex/internal/domain/search/result"
	"github.com/kailas-cloud/imagedex/internal/logger"
	"github.com/kailas-cloud/imagedex/internal/usecase/analyze"
	"github.com/kailas-cloud/imagedex/internal/usecase/score"
)

// Service runs searches. Stateless per request; safe for concurrent use.
type Service struct {
	repo     Repository
	ranker   Ranker
	analyzer *analyze.Analyzer
	scorer   *score.Scorer
}

// New creates a search service. ranker may be nil when no external model is
// configured at all.
func New(repo Repository, ranker Ranker, analyzer *analyze.Analyzer, scorer *score.Scorer) *Service {
	return &Service{repo: repo, ranker: ranker, analyzer: analyzer, scorer: scorer}
}

// Search executes one search request and returns the assembled page.
func (s *Service) Search(ctx context.Context, req *request.Request) (result.Page, error) {
	log := logger.FromContext(ctx)

	c := s.analyzer.Analyze(req.Query())
	applyRequestFilters(&c, req)

	candidates, err := s.repo.FetchCandidates(ctx, &c)
	if err != nil {
		return result.Page{}, fmt.Errorf("fetch candidates: %w", err)
	}
	if len(candidates) == 0 {
		return result.NewPage(nil, 0, req.Page(), req.PageSize(), strategyFor(false, &c), false), nil
	}

	pool, rankerUsed := s.narrowCandidates(ctx, &c, candidates, log)

	scored, err := s.scorer.ScoreAll(ctx, pool, &c)
	if err != nil {
		return result.Page{}, err
	}

	return assemble(scored, &c, req, rankerUsed), nil
}

// narrowCandidates runs the external ranker when it is enabled. A non-empty
// id list narrows the pool to model order input; an explicit no-match answer
// or any failure keeps the full candidate set for heuristic scoring.
func (s *Service) narrowCandidates(
	ctx context.Context, c *criteria.Criteria, candidates []image.Record, log *zap.Logger,
) ([]image.Record, bool) {
	if s.ranker == nil || !s.ranker.Enabled() {
		return candidates, false
	}

	ids, err := s.ranker.Rank(ctx, c.Query, candidates)
	if err != nil {
		log.Warn("ranker unavailable, falling back to heuristic scoring", zap.Error(err))
		return candidates, false
	}
	if len(ids) == 0 {
		log.Debug("ranker reported no matches, scoring full candidate set")
		return candidates, false
	}

	byID := make(map[string]image.Record, len(candidates))
	for _, rec := range candidates {
		byID[rec.ID] = rec
	}
	subset := make([]image.Record, 0, len(ids))
	for _, id := range ids {
		if rec, ok := byID[id]; ok {
			subset = append(subset, rec)
		}
	}
	if len(subset) == 0 {
		return candidates, false
	}
	return subset, true
}

// assemble applies the min-score threshold, sorting, and pagination. The
// ranker narrows; the heuristic score decides the final order. Ties are
// broken by id ascending so pagination stays stable across calls.
func assemble(
	scored []result.Scored, c *criteria.Criteria, req *request.Request, rankerUsed bool,
) result.Page {
	filtered := scored[:0]
	for _, sc := range scored {
		if sc.Total() >= req.MinScore() {
			filtered = append(filtered, sc)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].Total() != filtered[j].Total() {
			return filtered[i].Total() > filtered[j].Total()
		}
		return filtered[i].ID() < filtered[j].ID()
	})

	total := len(filtered)
	start := (req.Page() - 1) * req.PageSize()
	if start > total {
		start = total
	}
	end := start + req.PageSize()
	if end > total {
		end = total
	}

	return result.NewPage(
		filtered[start:end], total, req.Page(), req.PageSize(),
		strategyFor(rankerUsed, c), rankerUsed,
	)
}

// applyRequestFilters merges explicit API filters into the analyzed
// criteria; explicit values win over detected hints.
func applyRequestFilters(c *criteria.Criteria, req *request.Request) {
	if formats := req.FileFormats(); len(formats) > 0 {
		c.Technical.FileFormats = normalizeFormats(formats)
	}
	if o := req.Orientation(); o != image.OrientationNone {
		c.Visual.Orientation = o
	}
}

func normalizeFormats(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		f = strings.ToUpper(strings.TrimSpace(f))
		if f == "JPG" {
			f = "JPEG"
		}
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// strategyFor builds the human-readable ranking strategy description.
func strategyFor(rankerUsed bool, c *criteria.Criteria) string {
	if rankerUsed {
		return fmt.Sprintf("model-narrowed candidates, heuristically re-scored (%s query)", c.Type)
	}
	return fmt.Sprintf("heuristic multi-factor scoring (%s query)", c.Type)
}
