// Package health reports service readiness: store connectivity plus ranker
// configuration state.
package health

import (
	"context"

	"github.com/kailas-cloud/imagedex/internal/version"
)

// StoreChecker checks metadata store connectivity.
type StoreChecker interface {
	Ping(ctx context.Context) error
}

// RankerInfo reports whether the external ranker is configured.
type RankerInfo interface {
	Enabled() bool
}

// Status is the health report.
type Status struct {
	Healthy       bool   `json:"healthy"`
	Store         string `json:"store"`
	RankerEnabled bool   `json:"ranker_enabled"`
	Version       string `json:"version"`
}

// Service checks service health.
type Service struct {
	store  StoreChecker
	ranker RankerInfo
}

// New creates a health service. ranker may be nil.
func New(store StoreChecker, ranker RankerInfo) *Service {
	return &Service{store: store, ranker: ranker}
}

// Check pings the store and reports ranker availability. A disabled ranker
// is healthy; search falls back to heuristic scoring.
func (s *Service) Check(ctx context.Context) Status {
	st := Status{
		Healthy: true,
		Store:   "ok",
		Version: version.Version,
	}
	if err := s.store.Ping(ctx); err != nil {
		st.Healthy = false
		st.Store = err.Error()
	}
	if s.ranker != nil {
		st.RankerEnabled = s.ranker.Enabled()
	}
	return st
}
