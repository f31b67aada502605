// Package images manages stored image metadata records: the write path of
// the hosting application. Upload I/O and attribute extraction happen
// upstream; this service owns validation and persistence of the results.
package images

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/imagedex/internal/domain"
	"github.com/kailas-cloud/imagedex/internal/domain/image"
	"github.com/kailas-cloud/imagedex/internal/logger"
)

// Repository is the storage contract for image records.
type Repository interface {
	Upsert(ctx context.Context, rec *image.Record) (bool, error)
	Get(ctx context.Context, id string) (image.Record, error)
	Delete(ctx context.Context, id string) error
	IncrViews(ctx context.Context, id string) (int64, error)
	Count(ctx context.Context) (int, error)
}

// Service handles image record CRUD.
type Service struct {
	repo Repository
}

// New creates an images service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Upsert validates and stores a record. Returns true if it was created.
func (s *Service) Upsert(ctx context.Context, rec *image.Record) (bool, error) {
	if err := validate(rec); err != nil {
		return false, err
	}
	created, err := s.repo.Upsert(ctx, rec)
	if err != nil {
		return false, fmt.Errorf("upsert image %s: %w", rec.ID, err)
	}
	return created, nil
}

// Get returns a record and bumps its view counter. A counter failure is
// logged, not surfaced: serving the record matters more than the statistic.
func (s *Service) Get(ctx context.Context, id string) (image.Record, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return image.Record{}, fmt.Errorf("get image %s: %w", id, err)
	}

	if views, err := s.repo.IncrViews(ctx, id); err != nil {
		logger.FromContext(ctx).Warn("failed to bump view counter",
			zap.String("image_id", id), zap.Error(err))
	} else {
		rec.ViewCount = views
	}
	return rec, nil
}

// Delete removes a record.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete image %s: %w", id, err)
	}
	return nil
}

// Count returns the number of stored records.
func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count images: %w", err)
	}
	return n, nil
}

// validate enforces record invariants. The identifier must be numeric: the
// ranker protocol exchanges digit-only ids.
func validate(rec *image.Record) error {
	if rec.ID == "" {
		return fmt.Errorf("%w: id is required", domain.ErrInvalidImage)
	}
	for _, r := range rec.ID {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: id must be numeric, got %q", domain.ErrInvalidImage, rec.ID)
		}
	}
	for name, v := range map[string]float64{
		"brightness": rec.Brightness,
		"contrast":   rec.Contrast,
		"saturation": rec.Saturation,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s must be between 0 and 1", domain.ErrInvalidImage, name)
		}
	}
	if rec.Width < 0 || rec.Height < 0 || rec.FileSizeBytes < 0 || rec.ViewCount < 0 {
		return fmt.Errorf("%w: dimensions, size, and views must be non-negative", domain.ErrInvalidImage)
	}
	return nil
}
