// Package score implements the local multi-factor relevance scorer: four
// component scores with query-type-dependent weights, plus freshness,
// richness, and popularity adjustments. Pure per candidate, so scoring runs
// in parallel across the candidate set.
package score

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/imagedex/internal/domain/image"
	"github.com/kailas-cloud/imagedex/internal/domain/search/criteria"
	"github.com/kailas-cloud/imagedex/internal/domain/search/result"
	"github.com/kailas-cloud/imagedex/internal/domain/tags"
)

// fuzzyThreshold is the minimum similarity for the residual fuzzy term rule.
const fuzzyThreshold = 0.7

// metadataCheckBonus is the per-check award when a record field matches a
// requested filter.
const metadataCheckBonus = 0.8

// Scorer computes relevance scores. Zero-value is not usable; call New.
type Scorer struct {
	now     func() time.Time
	workers int
}

// New creates a scorer using the wall clock.
func New() *Scorer {
	return &Scorer{now: time.Now, workers: runtime.GOMAXPROCS(0)}
}

// WithNow overrides the clock, for tests.
func (s *Scorer) WithNow(now func() time.Time) *Scorer {
	s.now = now
	return s
}

// Score computes the full scored result for one candidate.
func (s *Scorer) Score(rec image.Record, c *criteria.Criteria) result.Scored {
	descScore := descriptionScore(rec.Description, c)
	tagScore := tagRelevance(rec, c)
	fileScore := filenameScore(rec, c)
	metaScore := metadataScore(rec, c)

	w := weightsFor(c.Type).adjustForComplexity(c.Complexity)
	weighted := w.description*descScore + w.tag*tagScore + w.filename*fileScore + w.metadata*metaScore

	now := s.now()
	bonus := freshnessBonus(rec, c, now) + richnessBonus(rec) + popularityBonus(rec)
	penalty := penalties(rec, c, now)

	total := weighted + bonus - penalty
	if total < 0 {
		total = 0
	}

	return result.NewScored(rec, descScore, tagScore, fileScore, metaScore, bonus, penalty, total)
}

// ScoreAll scores candidates in parallel and returns only those with a
// positive total, preserving candidate order.
func (s *Scorer) ScoreAll(
	ctx context.Context, records []image.Record, c *criteria.Criteria,
) ([]result.Scored, error) {
	if len(records) == 0 {
		return nil, nil
	}

	scored := make([]result.Scored, len(records))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range records {
		i := i
		g.Go(func() error {
			scored[i] = s.Score(records[i], c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("score candidates: %w", err)
	}

	out := make([]result.Scored, 0, len(scored))
	for _, sc := range scored {
		if sc.Total() > 0 {
			out = append(out, sc)
		}
	}
	return out, nil
}

// descriptionScore matches phrases and keywords against the description.
// Phrases award 1.0 per hit; keywords award 1.0 for a whole-field match,
// 0.6 for substring, else up to 0.4x fuzzy similarity against the
// description's words. Normalized by term count, clamped to 1.
func descriptionScore(description string, c *criteria.Criteria) float64 {
	field := strings.ToLower(strings.TrimSpace(description))
	if field == "" || c.TermCount() == 0 {
		return 0
	}

	words := strings.Fields(field)
	var sum float64

	for _, phrase := range c.Phrases {
		if strings.Contains(field, strings.ToLower(phrase)) {
			sum += 1.0
		}
	}
	for _, kw := range c.Keywords {
		switch {
		case field == kw:
			sum += 1.0
		case strings.Contains(field, kw):
			sum += 0.6
		default:
			if sim := bestSimilarity(kw, words); sim > fuzzyThreshold {
				sum += 0.4 * sim
			}
		}
	}

	return clamp1(sum / float64(max1(c.TermCount())))
}

// tagRelevance scores the processed tags and, when AI-generated tags exist,
// takes the max of the tag score and the AI tag score discounted by 0.8.
func tagRelevance(rec image.Record, c *criteria.Criteria) float64 {
	score := tags.Relevance(tags.Normalize(rec.Tags), c.Query)
	if rec.AITags != "" {
		aiScore := tags.Relevance(tags.Normalize(rec.AITags), c.Query) * 0.8
		if aiScore > score {
			score = aiScore
		}
	}
	return score
}

// filenameScore applies the phrase/keyword substring rule (no fuzzy term) to
// the original name and the stored name, discounting the stored name by 0.8.
func filenameScore(rec image.Record, c *criteria.Criteria) float64 {
	original := nameMatchScore(rec.OriginalName, c)
	stored := nameMatchScore(rec.FileName, c) * 0.8
	if stored > original {
		return stored
	}
	return original
}

func nameMatchScore(name string, c *criteria.Criteria) float64 {
	field := strings.ToLower(strings.TrimSpace(name))
	if field == "" || c.TermCount() == 0 {
		return 0
	}

	var sum float64
	for _, phrase := range c.Phrases {
		if strings.Contains(field, strings.ToLower(phrase)) {
			sum += 1.0
		}
	}
	for _, kw := range c.Keywords {
		switch {
		case field == kw:
			sum += 1.0
		case strings.Contains(field, kw):
			sum += 0.6
		}
	}

	return clamp1(sum / float64(max1(c.TermCount())))
}

// metadataScore awards a fixed bonus per requested filter the record
// satisfies, normalized by the number of requested checks. No requested
// checks means no metadata signal.
func metadataScore(rec image.Record, c *criteria.Criteria) float64 {
	checks, matched := 0, 0
	check := func(ok bool) {
		checks++
		if ok {
			matched++
		}
	}

	tf := &c.Technical
	if len(tf.FileFormats) > 0 {
		check(containsFold(tf.FileFormats, rec.Format))
	}
	if tf.MinResolution != image.ResolutionUnknown || tf.MaxResolution != image.ResolutionUnknown {
		check(rec.Resolution.Within(tf.MinResolution, tf.MaxResolution))
	}
	if tf.HasTransparency != nil {
		check(rec.HasTransparency == *tf.HasTransparency)
	}
	if tf.Animated != nil {
		check(rec.Animated == *tf.Animated)
	}

	vf := &c.Visual
	if vf.Orientation != image.OrientationNone {
		check(rec.Orientation == vf.Orientation)
	}
	if vf.MinBrightness != nil || vf.MaxBrightness != nil {
		check(withinBounds(rec.Brightness, vf.MinBrightness, vf.MaxBrightness))
	}
	if vf.MinContrast != nil || vf.MaxContrast != nil {
		check(withinBounds(rec.Contrast, vf.MinContrast, vf.MaxContrast))
	}
	if vf.MinSaturation != nil || vf.MaxSaturation != nil {
		check(withinBounds(rec.Saturation, vf.MinSaturation, vf.MaxSaturation))
	}

	if len(c.Content.Categories) > 0 {
		check(containsFold(c.Content.Categories, rec.Category))
	}

	if checks == 0 {
		return 0
	}
	return clamp1(float64(matched) * metadataCheckBonus / float64(checks))
}

// freshnessBonus rewards recent uploads, more strongly for time-referencing
// queries. Unknown upload time earns nothing.
func freshnessBonus(rec image.Record, c *criteria.Criteria, now time.Time) float64 {
	days := rec.AgeDays(now)
	if days < 0 {
		return 0
	}
	factor := 0.05
	if c.HasTimeReference {
		factor = 0.2
	}
	bonus := factor * (1 - days/365)
	if bonus < 0 {
		return 0
	}
	return bonus
}

// richnessBonus awards 0.02 per populated enrichment field, capped at 0.1.
func richnessBonus(rec image.Record) float64 {
	fields := []bool{
		strings.TrimSpace(rec.Description) != "",
		strings.TrimSpace(rec.Tags) != "",
		strings.TrimSpace(rec.AITags) != "",
		strings.TrimSpace(rec.SemanticKeywords) != "",
		rec.CameraModel != "",
		rec.HasGPS,
	}
	var bonus float64
	for _, populated := range fields {
		if populated {
			bonus += 0.02
		}
	}
	if bonus > 0.1 {
		bonus = 0.1
	}
	return bonus
}

// popularityBonus grows logarithmically with views, capped at 0.05.
func popularityBonus(rec image.Record) float64 {
	bonus := math.Log(float64(rec.ViewCount)+1) * 0.01
	if bonus > 0.05 {
		bonus = 0.05
	}
	return bonus
}

// penalties subtracts for missing description/tags and for stale records on
// time-referencing queries.
func penalties(rec image.Record, c *criteria.Criteria, now time.Time) float64 {
	var p float64
	if strings.TrimSpace(rec.Description) == "" {
		p += 0.05
	}
	if strings.TrimSpace(rec.Tags) == "" {
		p += 0.03
	}
	if c.HasTimeReference {
		if days := rec.AgeDays(now); days > 365 {
			p += 0.1
		}
	}
	return p
}

func bestSimilarity(term string, words []string) float64 {
	var best float64
	for _, w := range words {
		if sim := tags.Similarity(term, w); sim > best {
			best = sim
		}
	}
	return best
}

func withinBounds(v float64, min, max *float64) bool {
	if min != nil && v < *min {
		return false
	}
	if max != nil && v > *max {
		return false
	}
	return true
}

func containsFold(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

func clamp1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}

func max1(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
