package score

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/kailas-cloud/imagedex/internal/domain/image"
	"github.com/kailas-cloud/imagedex/internal/domain/search/criteria"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestScorer() *Scorer {
	return New().WithNow(func() time.Time { return testNow })
}

func semanticCriteria(keywords ...string) *criteria.Criteria {
	return &criteria.Criteria{
		Type:       criteria.TypeSemantic,
		Complexity: criteria.ComplexitySimple,
		Keywords:   keywords,
	}
}

func TestDescriptionScore(t *testing.T) {
	tests := []struct {
		name string
		desc string
		c    *criteria.Criteria
		want float64
	}{
		{
			name: "whole field match",
			desc: "sunset",
			c:    semanticCriteria("sunset"),
			want: 1.0,
		},
		{
			name: "substring match",
			desc: "a beautiful sunset over the ocean",
			c:    semanticCriteria("sunset"),
			want: 0.6,
		},
		{
			name: "phrase match",
			desc: "golden gate bridge at dusk",
			c: &criteria.Criteria{
				Type:    criteria.TypeSemantic,
				Phrases: []string{"golden gate bridge"},
			},
			want: 1.0,
		},
		{
			name: "empty description",
			desc: "",
			c:    semanticCriteria("sunset"),
			want: 0,
		},
		{
			name: "no terms",
			desc: "anything",
			c:    &criteria.Criteria{Type: criteria.TypeSemantic},
			want: 0,
		},
		{
			name: "normalized by term count",
			desc: "a beautiful sunset over the ocean",
			c:    semanticCriteria("sunset", "mountains"),
			want: 0.3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := descriptionScore(tt.desc, tt.c)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("descriptionScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDescriptionScore_FuzzyResidual(t *testing.T) {
	// "sunsit" against the word "sunset": similarity 5/6, above threshold,
	// and no substring hit.
	got := descriptionScore("sunset view", semanticCriteria("sunsit"))
	want := 0.4 * (5.0 / 6.0)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("descriptionScore = %v, want %v", got, want)
	}
}

func TestTagRelevance_AITagsDiscounted(t *testing.T) {
	c := &criteria.Criteria{Query: "sunset", Keywords: []string{"sunset"}}

	exact := image.Record{Tags: "sunset"}
	if got := tagRelevance(exact, c); got != 1.0 {
		t.Errorf("exact tag score = %v, want 1.0", got)
	}

	aiOnly := image.Record{AITags: "sunset"}
	if got := tagRelevance(aiOnly, c); math.Abs(got-0.8) > 1e-9 {
		t.Errorf("ai tag score = %v, want 0.8", got)
	}

	// the stronger of the two sources wins
	both := image.Record{Tags: "beach", AITags: "sunset"}
	if got := tagRelevance(both, c); math.Abs(got-0.8) > 1e-9 {
		t.Errorf("combined score = %v, want 0.8", got)
	}
}

func TestFilenameScore(t *testing.T) {
	c := semanticCriteria("sunset")

	original := image.Record{OriginalName: "sunset.jpg"}
	if got := filenameScore(original, c); math.Abs(got-0.6) > 1e-9 {
		t.Errorf("original name substring = %v, want 0.6", got)
	}

	stored := image.Record{FileName: "sunset.jpg"}
	if got := filenameScore(stored, c); math.Abs(got-0.48) > 1e-9 {
		t.Errorf("stored name discounted = %v, want 0.48", got)
	}

	// no fuzzy rule for filenames
	typo := image.Record{OriginalName: "sunsit.jpg"}
	if got := filenameScore(typo, c); got != 0 {
		t.Errorf("fuzzy filename = %v, want 0", got)
	}
}

func TestMetadataScore(t *testing.T) {
	rec := image.Record{
		Format:          "PNG",
		HasTransparency: true,
		Orientation:     image.OrientationLandscape,
		Brightness:      0.7,
	}

	c := &criteria.Criteria{
		Technical: criteria.TechnicalFilter{
			FileFormats:     []string{"PNG"},
			HasTransparency: boolPtr(true),
		},
	}
	// both checks pass: 2 * 0.8 / 2 = 0.8
	if got := metadataScore(rec, c); math.Abs(got-0.8) > 1e-9 {
		t.Errorf("metadataScore = %v, want 0.8", got)
	}

	// one of two checks passes: 0.8 / 2 = 0.4
	c.Technical.FileFormats = []string{"JPEG"}
	if got := metadataScore(rec, c); math.Abs(got-0.4) > 1e-9 {
		t.Errorf("metadataScore = %v, want 0.4", got)
	}

	// no requested checks yields no signal
	if got := metadataScore(rec, &criteria.Criteria{}); got != 0 {
		t.Errorf("metadataScore with no filters = %v, want 0", got)
	}
}

func TestMetadataScore_BrightnessBounds(t *testing.T) {
	c := &criteria.Criteria{
		Visual: criteria.VisualFilter{MinBrightness: floatPtr(0.6)},
	}
	bright := image.Record{Brightness: 0.7}
	if got := metadataScore(bright, c); math.Abs(got-0.8) > 1e-9 {
		t.Errorf("bright record = %v, want 0.8", got)
	}
	dark := image.Record{Brightness: 0.3}
	if got := metadataScore(dark, c); got != 0 {
		t.Errorf("dark record = %v, want 0", got)
	}
}

func TestFreshnessBonus(t *testing.T) {
	plain := &criteria.Criteria{}
	timed := &criteria.Criteria{HasTimeReference: true}

	fresh := image.Record{CreatedAt: testNow.Add(-24 * time.Hour)}
	stale := image.Record{CreatedAt: testNow.AddDate(-2, 0, 0)}
	unknown := image.Record{}

	if got := freshnessBonus(fresh, timed, testNow); math.Abs(got-0.2*(1-1.0/365)) > 1e-9 {
		t.Errorf("fresh timed bonus = %v", got)
	}
	if got := freshnessBonus(fresh, plain, testNow); math.Abs(got-0.05*(1-1.0/365)) > 1e-9 {
		t.Errorf("fresh plain bonus = %v", got)
	}
	if got := freshnessBonus(stale, timed, testNow); got != 0 {
		t.Errorf("stale bonus = %v, want 0", got)
	}
	if got := freshnessBonus(unknown, timed, testNow); got != 0 {
		t.Errorf("unknown-age bonus = %v, want 0", got)
	}
}

func TestRichnessBonus(t *testing.T) {
	if got := richnessBonus(image.Record{}); got != 0 {
		t.Errorf("bare record = %v, want 0", got)
	}

	partial := image.Record{Description: "d", Tags: "t"}
	if got := richnessBonus(partial); math.Abs(got-0.04) > 1e-9 {
		t.Errorf("two fields = %v, want 0.04", got)
	}

	full := image.Record{
		Description:      "d",
		Tags:             "t",
		AITags:           "a",
		SemanticKeywords: "s",
		CameraModel:      "m",
		HasGPS:           true,
	}
	if got := richnessBonus(full); math.Abs(got-0.1) > 1e-9 {
		t.Errorf("all fields = %v, want 0.1 (cap)", got)
	}
}

func TestPopularityBonus(t *testing.T) {
	if got := popularityBonus(image.Record{}); got != 0 {
		t.Errorf("zero views = %v, want 0", got)
	}
	if got := popularityBonus(image.Record{ViewCount: 100}); math.Abs(got-math.Log(101)*0.01) > 1e-9 {
		t.Errorf("100 views = %v", got)
	}
	if got := popularityBonus(image.Record{ViewCount: 1_000_000}); got != 0.05 {
		t.Errorf("huge views = %v, want 0.05 (cap)", got)
	}
}

func TestPenalties(t *testing.T) {
	plain := &criteria.Criteria{}
	timed := &criteria.Criteria{HasTimeReference: true}

	bare := image.Record{}
	if got := penalties(bare, plain, testNow); math.Abs(got-0.08) > 1e-9 {
		t.Errorf("missing desc+tags penalty = %v, want 0.08", got)
	}

	stale := image.Record{
		Description: "d",
		Tags:        "t",
		CreatedAt:   testNow.AddDate(-2, 0, 0),
	}
	if got := penalties(stale, timed, testNow); math.Abs(got-0.1) > 1e-9 {
		t.Errorf("stale penalty = %v, want 0.1", got)
	}
	if got := penalties(stale, plain, testNow); got != 0 {
		t.Errorf("stale without time reference = %v, want 0", got)
	}
}

func TestScore_NeverNegative(t *testing.T) {
	s := newTestScorer()
	// no matching signal at all; penalties alone would push below zero
	sc := s.Score(image.Record{ID: "1"}, semanticCriteria("zzzzzz"))
	if sc.Total() != 0 {
		t.Errorf("Total = %v, want 0", sc.Total())
	}
}

func TestScore_ExactFilenameScenario(t *testing.T) {
	s := newTestScorer()
	rec := image.Record{
		ID:           "7",
		OriginalName: "sunset.jpg",
		Description:  "a beautiful sunset over the ocean",
		Tags:         "sunset, beach",
		CreatedAt:    testNow.Add(-24 * time.Hour),
	}
	c := semanticCriteria("sunset")
	c.Query = "sunset"

	sc := s.Score(rec, c)
	if sc.DescriptionScore() != 0.6 {
		t.Errorf("DescriptionScore = %v, want 0.6", sc.DescriptionScore())
	}
	if sc.TagScore() != 0.5 {
		t.Errorf("TagScore = %v, want 0.5", sc.TagScore())
	}
	if sc.FilenameScore() != 0.6 {
		t.Errorf("FilenameScore = %v, want 0.6", sc.FilenameScore())
	}
	if sc.Total() <= 0 {
		t.Errorf("Total = %v, want > 0", sc.Total())
	}
}

func TestScoreAll_DropsZeroTotals(t *testing.T) {
	s := newTestScorer()
	records := []image.Record{
		{ID: "1", Description: "sunset at the beach", Tags: "sunset"},
		{ID: "2"},
		{ID: "3", OriginalName: "sunset.png", Description: "x", Tags: "y"},
	}
	c := semanticCriteria("sunset")
	c.Query = "sunset"

	out, err := s.ScoreAll(context.Background(), records, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d results, want 2", len(out))
	}
	if out[0].ID() != "1" || out[1].ID() != "3" {
		t.Errorf("order = %s, %s; want 1, 3", out[0].ID(), out[1].ID())
	}
}

func TestScoreAll_Empty(t *testing.T) {
	out, err := newTestScorer().ScoreAll(context.Background(), nil, semanticCriteria("x"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != nil {
		t.Errorf("got %v, want nil", out)
	}
}

func boolPtr(v bool) *bool { return &v }

func floatPtr(v float64) *float64 { return &v }
