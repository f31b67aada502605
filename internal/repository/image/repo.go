// Package image stores image metadata as one Redis/Valkey hash per record
// and implements the candidate filter: structured predicates combine
// conjunctively across filter fields and disjunctively across values within
// one field.
package image

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/imagedex/internal/domain"
	domimg "github.com/kailas-cloud/imagedex/internal/domain/image"
	"github.com/kailas-cloud/imagedex/internal/domain/search/criteria"
)

// DefaultKeyPrefix namespaces image hashes in the store.
const DefaultKeyPrefix = "imagedex:image:"

// store is the consumer interface for image records (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	HIncrBy(ctx context.Context, key, field string, delta int64) (int64, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/images.Repository and usecase/search.Repository.
type Repo struct {
	store  store
	prefix string
}

// New creates an image repository.
func New(s store) *Repo {
	return &Repo{store: s, prefix: DefaultKeyPrefix}
}

// WithKeyPrefix overrides the hash key prefix.
func (r *Repo) WithKeyPrefix(prefix string) *Repo {
	if prefix != "" {
		r.prefix = prefix
	}
	return r
}

// Upsert creates or updates a record. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, rec *domimg.Record) (bool, error) {
	key := r.key(rec.ID)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, wrapStore(err))
	}
	if err := r.store.HSet(ctx, key, recordToFields(rec)); err != nil {
		return false, fmt.Errorf("hset %s: %w", key, wrapStore(err))
	}
	return !exists, nil
}

// Get returns a record by ID.
func (r *Repo) Get(ctx context.Context, id string) (domimg.Record, error) {
	key := r.key(id)
	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domimg.Record{}, fmt.Errorf("hgetall %s: %w", key, wrapStore(err))
	}
	if len(fields) == 0 {
		return domimg.Record{}, domain.ErrImageNotFound
	}
	return recordFromFields(id, fields), nil
}

// Delete removes a record. Deleting a missing record is not an error.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.store.Del(ctx, r.key(id)); err != nil {
		return fmt.Errorf("del %s: %w", r.key(id), wrapStore(err))
	}
	return nil
}

// IncrViews bumps the view counter and returns the new value.
func (r *Repo) IncrViews(ctx context.Context, id string) (int64, error) {
	v, err := r.store.HIncrBy(ctx, r.key(id), fieldViewCount, 1)
	if err != nil {
		return 0, fmt.Errorf("hincrby %s: %w", r.key(id), wrapStore(err))
	}
	return v, nil
}

// Count returns the number of stored records.
func (r *Repo) Count(ctx context.Context) (int, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"*")
	if err != nil {
		return 0, fmt.Errorf("scan: %w", wrapStore(err))
	}
	return len(keys), nil
}

// FetchCandidates returns all records matching the criteria's filters and,
// when the criteria carry keywords or phrases, at least one text hit.
func (r *Repo) FetchCandidates(ctx context.Context, c *criteria.Criteria) ([]domimg.Record, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan candidates: %w", wrapStore(err))
	}
	if len(keys) == 0 {
		return nil, nil
	}

	hashes, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", wrapStore(err))
	}

	out := make([]domimg.Record, 0, len(hashes))
	for i, fields := range hashes {
		if len(fields) == 0 {
			continue // deleted between scan and fetch
		}
		rec := recordFromFields(strings.TrimPrefix(keys[i], r.prefix), fields)
		if matches(&rec, c) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *Repo) key(id string) string { return r.prefix + id }

// wrapStore tags a store failure so callers can match domain.ErrStoreUnavailable.
func wrapStore(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}

// matches applies all filter groups conjunctively.
func matches(rec *domimg.Record, c *criteria.Criteria) bool {
	return matchesTechnical(rec, &c.Technical) &&
		matchesVisual(rec, &c.Visual) &&
		matchesContent(rec, &c.Content) &&
		matchesText(rec, c)
}

func matchesTechnical(rec *domimg.Record, f *criteria.TechnicalFilter) bool {
	if len(f.FileFormats) > 0 && !containsFold(f.FileFormats, rec.Format) {
		return false
	}
	if f.MinResolution != domimg.ResolutionUnknown || f.MaxResolution != domimg.ResolutionUnknown {
		if !rec.Resolution.Within(f.MinResolution, f.MaxResolution) {
			return false
		}
	}
	if f.MinFileSize > 0 && rec.FileSizeBytes < f.MinFileSize {
		return false
	}
	if f.MaxFileSize > 0 && rec.FileSizeBytes > f.MaxFileSize {
		return false
	}
	if f.HasTransparency != nil && rec.HasTransparency != *f.HasTransparency {
		return false
	}
	if f.Animated != nil && rec.Animated != *f.Animated {
		return false
	}
	return true
}

func matchesVisual(rec *domimg.Record, f *criteria.VisualFilter) bool {
	if f.Orientation != domimg.OrientationNone && rec.Orientation != f.Orientation {
		return false
	}
	if !within(rec.Brightness, f.MinBrightness, f.MaxBrightness) {
		return false
	}
	if !within(rec.Contrast, f.MinContrast, f.MaxContrast) {
		return false
	}
	if !within(rec.Saturation, f.MinSaturation, f.MaxSaturation) {
		return false
	}
	if len(f.ColorKeywords) > 0 && !anyColorHit(rec, f.ColorKeywords) {
		return false
	}
	return true
}

func matchesContent(rec *domimg.Record, f *criteria.ContentFilter) bool {
	if len(f.Categories) > 0 && !containsFold(f.Categories, rec.Category) {
		return false
	}
	// HasText/HasFaces/HasObjects have no record counterpart yet; the
	// extraction pipeline does not emit those flags.
	return true
}

// matchesText requires at least one keyword or phrase substring hit across
// the record's searchable text when the criteria carry any terms.
func matchesText(rec *domimg.Record, c *criteria.Criteria) bool {
	if c.TermCount() == 0 {
		return true
	}
	haystack := strings.ToLower(strings.Join([]string{
		rec.FileName, rec.OriginalName, rec.Description,
		rec.Tags, rec.AITags, rec.SemanticKeywords, rec.Category,
	}, " "))

	for _, phrase := range c.Phrases {
		if strings.Contains(haystack, strings.ToLower(phrase)) {
			return true
		}
	}
	for _, kw := range c.Keywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

// anyColorHit probes color words against tags, description, and category.
func anyColorHit(rec *domimg.Record, colors []string) bool {
	haystack := strings.ToLower(rec.Tags + " " + rec.AITags + " " + rec.Description + " " + rec.Category)
	for _, color := range colors {
		if strings.Contains(haystack, color) {
			return true
		}
	}
	return false
}

func within(v float64, min, max *float64) bool {
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
