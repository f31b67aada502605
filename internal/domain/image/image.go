// Package image defines the metadata record for a hosted image and its
// categorical attributes. Records are produced by the upload/extraction
// pipeline and are read-only inputs to search scoring.
package image

import (
	"strings"
	"time"
)

// Resolution is a coarse resolution category with a defined ordering.
type Resolution int

// Resolution categories, ordered LOW < MEDIUM < HIGH < ULTRA_HIGH.
const (
	ResolutionUnknown Resolution = iota
	ResolutionLow
	ResolutionMedium
	ResolutionHigh
	ResolutionUltraHigh
)

var resolutionNames = map[Resolution]string{
	ResolutionLow:       "LOW",
	ResolutionMedium:    "MEDIUM",
	ResolutionHigh:      "HIGH",
	ResolutionUltraHigh: "ULTRA_HIGH",
}

// String returns the wire name of the category, or "" for unknown.
func (r Resolution) String() string { return resolutionNames[r] }

// ParseResolution maps a wire name to a category. Unrecognized or empty
// input yields ResolutionUnknown.
func ParseResolution(s string) Resolution {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LOW":
		return ResolutionLow
	case "MEDIUM":
		return ResolutionMedium
	case "HIGH":
		return ResolutionHigh
	case "ULTRA_HIGH", "ULTRAHIGH":
		return ResolutionUltraHigh
	default:
		return ResolutionUnknown
	}
}

// Within reports whether r falls inside the [min, max] ordinal bounds.
// An unknown bound is open; an unknown r never satisfies a set bound.
func (r Resolution) Within(min, max Resolution) bool {
	if min == ResolutionUnknown && max == ResolutionUnknown {
		return true
	}
	if r == ResolutionUnknown {
		return false
	}
	if min != ResolutionUnknown && r < min {
		return false
	}
	if max != ResolutionUnknown && r > max {
		return false
	}
	return true
}

// Orientation is the aspect-ratio class of an image.
type Orientation string

// Orientation values.
const (
	OrientationNone      Orientation = ""
	OrientationLandscape Orientation = "LANDSCAPE"
	OrientationPortrait  Orientation = "PORTRAIT"
	OrientationSquare    Orientation = "SQUARE"
	OrientationPanoramic Orientation = "PANORAMIC"
)

// ParseOrientation maps a wire name to an orientation, "" for unrecognized.
func ParseOrientation(s string) Orientation {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LANDSCAPE":
		return OrientationLandscape
	case "PORTRAIT":
		return OrientationPortrait
	case "SQUARE":
		return OrientationSquare
	case "PANORAMIC":
		return OrientationPanoramic
	default:
		return OrientationNone
	}
}

// Record is the stored metadata of one hosted image. ID is the only
// required field; everything else may be absent, and scoring degrades the
// corresponding sub-score to zero rather than failing.
type Record struct {
	ID               string
	FileName         string
	OriginalName     string
	Description      string
	Tags             string // delimiter-separated free text
	AITags           string // model-generated, same delimiters
	SemanticKeywords string
	Format           string // canonical uppercase, e.g. "JPEG"
	Width            int
	Height           int
	FileSizeBytes    int64
	Resolution       Resolution
	Orientation      Orientation
	Brightness       float64 // 0.0-1.0
	Contrast         float64 // 0.0-1.0
	Saturation       float64 // 0.0-1.0
	HasTransparency  bool
	Animated         bool
	Category         string
	CameraModel      string
	HasGPS           bool
	CreatedAt        time.Time
	ViewCount        int64
}

// AgeDays returns the record age in fractional days at the given instant.
// A zero CreatedAt returns -1, meaning the upload time is unknown.
func (r *Record) AgeDays(now time.Time) float64 {
	if r.CreatedAt.IsZero() {
		return -1
	}
	return now.Sub(r.CreatedAt).Hours() / 24
}
