package result

import (
	"testing"

	"github.com/kailas-cloud/imagedex/internal/domain/image"
)

func TestConfidenceFor(t *testing.T) {
	tests := []struct {
		score float64
		want  Confidence
	}{
		{1.2, ConfidenceHigh},
		{0.8, ConfidenceHigh},
		{0.79, ConfidenceMedium},
		{0.5, ConfidenceMedium},
		{0.49, ConfidenceLow},
		{0.2, ConfidenceLow},
		{0.19, ConfidenceMinimal},
		{0, ConfidenceMinimal},
	}
	for _, tt := range tests {
		if got := ConfidenceFor(tt.score); got != tt.want {
			t.Errorf("ConfidenceFor(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestScored_Accessors(t *testing.T) {
	rec := image.Record{ID: "42", FileName: "sunset.jpg"}
	s := NewScored(rec, 0.9, 0.5, 0.3, 0.2, 0.1, 0.05, 0.85)

	if s.ID() != "42" {
		t.Errorf("ID = %q", s.ID())
	}
	if s.Total() != 0.85 {
		t.Errorf("Total = %v", s.Total())
	}
	if s.Confidence() != ConfidenceHigh {
		t.Errorf("Confidence = %q, want HIGH", s.Confidence())
	}
	if s.Bonus() != 0.1 || s.Penalty() != 0.05 {
		t.Errorf("Bonus/Penalty = %v/%v", s.Bonus(), s.Penalty())
	}
}

func TestNewPage_TotalPages(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 20, 5},
		{5, 0, 0},
	}
	for _, tt := range tests {
		p := NewPage(nil, tt.total, 1, tt.size, "heuristic", false)
		if got := p.TotalPages(); got != tt.want {
			t.Errorf("TotalPages(total=%d size=%d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}
