package analyze

import (
	"reflect"
	"testing"

	"github.com/kailas-cloud/imagedex/internal/domain/image"
	"github.com/kailas-cloud/imagedex/internal/domain/search/criteria"
)

func newAnalyzer() *Analyzer {
	return New(DefaultTables())
}

func TestAnalyze_Classification(t *testing.T) {
	tests := []struct {
		query string
		want  criteria.QueryType
	}{
		{"red sunset", criteria.TypeColor},
		{"high resolution photo", criteria.TypeTechnical},
		{"dark moody scene", criteria.TypeVisual},
		{"nature photography", criteria.TypeContent},
		{"serenity mood", criteria.TypeSemantic},
		// color outranks technical when both are present
		{"blue png icon", criteria.TypeColor},
		// technical outranks visual
		{"transparent landscape shot", criteria.TypeTechnical},
	}
	a := newAnalyzer()
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c := a.Analyze(tt.query)
			if c.Type != tt.want {
				t.Errorf("type = %q, want %q", c.Type, tt.want)
			}
		})
	}
}

func TestAnalyze_Complexity(t *testing.T) {
	tests := []struct {
		query string
		want  criteria.Complexity
	}{
		{"sunset", criteria.ComplexitySimple},
		{"red sunset", criteria.ComplexitySimple},
		{"red sunset over beach", criteria.ComplexityMedium},
		{"a very bright red sunset", criteria.ComplexityMedium},
		{"a very bright red sunset over the mountains", criteria.ComplexityComplex},
	}
	a := newAnalyzer()
	for _, tt := range tests {
		if c := a.Analyze(tt.query); c.Complexity != tt.want {
			t.Errorf("Analyze(%q).Complexity = %q, want %q", tt.query, c.Complexity, tt.want)
		}
	}
}

func TestAnalyze_NormalizesQuery(t *testing.T) {
	c := newAnalyzer().Analyze("  Red   SUNSET  ")
	if c.Query != "red sunset" {
		t.Errorf("Query = %q, want %q", c.Query, "red sunset")
	}
	if c.OriginalQuery != "  Red   SUNSET  " {
		t.Errorf("OriginalQuery = %q", c.OriginalQuery)
	}
}

func TestAnalyze_Flags(t *testing.T) {
	a := newAnalyzer()

	if c := a.Analyze("beach not people"); !c.HasNegation {
		t.Error("expected negation flag for 'not '")
	}
	if c := a.Analyze("beach -people"); !c.HasNegation {
		t.Error("expected negation flag for '-'")
	}
	if c := a.Analyze("images larger than 5mb"); !c.HasComparison {
		t.Error("expected comparison flag")
	}
	if c := a.Analyze("width > 1000"); !c.HasComparison {
		t.Error("expected comparison flag for '>'")
	}
	if c := a.Analyze("recent uploads"); !c.HasTimeReference {
		t.Error("expected time reference flag")
	}
	if c := a.Analyze("sunset beach"); c.HasNegation || c.HasComparison || c.HasTimeReference {
		t.Error("expected no flags on plain query")
	}
}

func TestAnalyze_Keywords(t *testing.T) {
	c := newAnalyzer().Analyze("the red sunset on the red beach")
	want := []string{"red", "sunset", "beach"}
	if !reflect.DeepEqual(c.Keywords, want) {
		t.Errorf("Keywords = %v, want %v", c.Keywords, want)
	}
}

func TestAnalyze_Phrases(t *testing.T) {
	c := newAnalyzer().Analyze(`photos of "golden gate bridge" at "blue hour"`)
	want := []string{"golden gate bridge", "blue hour"}
	if !reflect.DeepEqual(c.Phrases, want) {
		t.Errorf("Phrases = %v, want %v", c.Phrases, want)
	}

	if c := newAnalyzer().Analyze("no quotes here"); c.Phrases != nil {
		t.Errorf("Phrases = %v, want nil", c.Phrases)
	}
}

func TestAnalyze_TechnicalFilter(t *testing.T) {
	c := newAnalyzer().Analyze("transparent png image")

	if c.Type != criteria.TypeTechnical {
		t.Fatalf("type = %q, want TECHNICAL", c.Type)
	}
	if c.Technical.HasTransparency == nil || !*c.Technical.HasTransparency {
		t.Error("expected HasTransparency=true")
	}
	if !reflect.DeepEqual(c.Technical.FileFormats, []string{"PNG"}) {
		t.Errorf("FileFormats = %v, want [PNG]", c.Technical.FileFormats)
	}
}

func TestAnalyze_ResolutionBounds(t *testing.T) {
	a := newAnalyzer()

	if c := a.Analyze("4k wallpaper"); c.Technical.MinResolution != image.ResolutionUltraHigh {
		t.Errorf("4k MinResolution = %v", c.Technical.MinResolution)
	}
	if c := a.Analyze("high resolution photo"); c.Technical.MinResolution != image.ResolutionHigh {
		t.Errorf("hd MinResolution = %v", c.Technical.MinResolution)
	}
	if c := a.Analyze("low quality thumbnail"); c.Technical.MaxResolution != image.ResolutionLow {
		t.Errorf("MaxResolution = %v", c.Technical.MaxResolution)
	}
}

func TestAnalyze_VisualFilter(t *testing.T) {
	a := newAnalyzer()

	c := a.Analyze("bright landscape photo")
	if c.Visual.Orientation != image.OrientationLandscape {
		t.Errorf("Orientation = %q, want LANDSCAPE", c.Visual.Orientation)
	}
	if c.Visual.MinBrightness == nil || *c.Visual.MinBrightness != 0.6 {
		t.Errorf("MinBrightness = %v, want 0.6", c.Visual.MinBrightness)
	}

	c = a.Analyze("dark muted panorama")
	if c.Visual.Orientation != image.OrientationPanoramic {
		t.Errorf("Orientation = %q, want PANORAMIC", c.Visual.Orientation)
	}
	if c.Visual.MaxBrightness == nil || *c.Visual.MaxBrightness != 0.4 {
		t.Errorf("MaxBrightness = %v", c.Visual.MaxBrightness)
	}
	if c.Visual.MaxSaturation == nil || *c.Visual.MaxSaturation != 0.4 {
		t.Errorf("MaxSaturation = %v", c.Visual.MaxSaturation)
	}

	c = a.Analyze("red and gold abstract")
	if !reflect.DeepEqual(c.Visual.ColorKeywords, []string{"red", "gold"}) {
		t.Errorf("ColorKeywords = %v", c.Visual.ColorKeywords)
	}
}

func TestAnalyze_ContentFilter(t *testing.T) {
	a := newAnalyzer()

	c := a.Analyze("city building photos")
	// both tokens map to canonical categories, deduplicated
	want := []string{"urban", "architecture"}
	if !reflect.DeepEqual(c.Content.Categories, want) {
		t.Errorf("Categories = %v, want %v", c.Content.Categories, want)
	}

	c = a.Analyze("photos with faces and text")
	if c.Content.HasFaces == nil || !*c.Content.HasFaces {
		t.Error("expected HasFaces=true")
	}
	if c.Content.HasText == nil || !*c.Content.HasText {
		t.Error("expected HasText=true")
	}
}
