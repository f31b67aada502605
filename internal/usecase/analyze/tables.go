package analyze

// Tables holds the immutable keyword sets the analyzer classifies against.
// They are built once at startup and injected, so tests can substitute
// smaller tables.
type Tables struct {
	StopWords         map[string]struct{}
	ColorKeywords     map[string]struct{}
	TechnicalKeywords map[string]struct{}
	VisualKeywords    map[string]struct{}
	ContentKeywords   map[string]struct{}

	// Formats maps query tokens to canonical file format names.
	Formats map[string]string
	// Categories maps query tokens to canonical content categories.
	Categories map[string]string
}

// DefaultTables returns the production keyword tables.
func DefaultTables() Tables {
	return Tables{
		StopWords: toSet(
			"the", "a", "an", "and", "or", "but", "in", "on", "at", "to",
			"for", "of", "with", "by",
		),
		ColorKeywords: toSet(
			"red", "blue", "green", "yellow", "orange", "purple", "pink",
			"black", "white", "gray", "grey", "brown", "crimson", "scarlet",
			"navy", "azure", "cyan", "teal", "lime", "olive", "gold",
			"violet", "magenta", "beige", "turquoise", "maroon",
		),
		TechnicalKeywords: toSet(
			"jpg", "jpeg", "png", "gif", "webp", "bmp", "svg", "tiff",
			"resolution", "quality", "size", "format", "pixel", "pixels",
			"megapixel", "dpi", "hd", "4k", "transparent", "transparency",
			"animated", "animation", "compressed", "compression",
		),
		VisualKeywords: toSet(
			"landscape", "portrait", "square", "panoramic", "panorama",
			"bright", "dark", "dim", "light", "contrast", "saturated",
			"saturation", "vivid", "muted", "desaturated", "monochrome",
			"blurry", "sharp", "wide", "tall", "vertical", "horizontal",
		),
		ContentKeywords: toSet(
			"nature", "people", "person", "architecture", "building", "art",
			"technology", "tech", "animal", "animals", "food", "travel",
			"city", "urban", "abstract",
		),
		Formats: map[string]string{
			"jpg":  "JPEG",
			"jpeg": "JPEG",
			"png":  "PNG",
			"gif":  "GIF",
			"webp": "WEBP",
			"bmp":  "BMP",
			"svg":  "SVG",
			"tiff": "TIFF",
		},
		Categories: map[string]string{
			"nature":       "nature",
			"people":       "people",
			"person":       "people",
			"architecture": "architecture",
			"building":     "architecture",
			"art":          "art",
			"technology":   "technology",
			"tech":         "technology",
			"animal":       "animals",
			"animals":      "animals",
			"food":         "food",
			"travel":       "travel",
			"city":         "urban",
			"urban":        "urban",
			"abstract":     "abstract",
		},
	}
}

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
