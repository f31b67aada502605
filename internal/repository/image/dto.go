package image

import (
	"strconv"
	"time"

	domimg "github.com/kailas-cloud/imagedex/internal/domain/image"
)

// Hash field names for a stored image record.
const (
	fieldFileName         = "file_name"
	fieldOriginalName     = "original_name"
	fieldDescription      = "description"
	fieldTags             = "tags"
	fieldAITags           = "ai_tags"
	fieldSemanticKeywords = "semantic_keywords"
	fieldFormat           = "format"
	fieldWidth            = "width"
	fieldHeight           = "height"
	fieldFileSize         = "file_size"
	fieldResolution       = "resolution"
	fieldOrientation      = "orientation"
	fieldBrightness       = "brightness"
	fieldContrast         = "contrast"
	fieldSaturation       = "saturation"
	fieldTransparency     = "has_transparency"
	fieldAnimated         = "animated"
	fieldCategory         = "category"
	fieldCameraModel      = "camera_model"
	fieldHasGPS           = "has_gps"
	fieldCreatedAt        = "created_at"
	fieldViewCount        = "view_count"
)

// recordToFields flattens a record into hash fields. Zero-valued optional
// fields are stored anyway; the hash is the full record.
func recordToFields(rec *domimg.Record) map[string]string {
	fields := map[string]string{
		fieldFileName:         rec.FileName,
		fieldOriginalName:     rec.OriginalName,
		fieldDescription:      rec.Description,
		fieldTags:             rec.Tags,
		fieldAITags:           rec.AITags,
		fieldSemanticKeywords: rec.SemanticKeywords,
		fieldFormat:           rec.Format,
		fieldWidth:            strconv.Itoa(rec.Width),
		fieldHeight:           strconv.Itoa(rec.Height),
		fieldFileSize:         strconv.FormatInt(rec.FileSizeBytes, 10),
		fieldResolution:       rec.Resolution.String(),
		fieldOrientation:      string(rec.Orientation),
		fieldBrightness:       formatFloat(rec.Brightness),
		fieldContrast:         formatFloat(rec.Contrast),
		fieldSaturation:       formatFloat(rec.Saturation),
		fieldTransparency:     strconv.FormatBool(rec.HasTransparency),
		fieldAnimated:         strconv.FormatBool(rec.Animated),
		fieldCategory:         rec.Category,
		fieldCameraModel:      rec.CameraModel,
		fieldHasGPS:           strconv.FormatBool(rec.HasGPS),
		fieldViewCount:        strconv.FormatInt(rec.ViewCount, 10),
	}
	if !rec.CreatedAt.IsZero() {
		fields[fieldCreatedAt] = rec.CreatedAt.UTC().Format(time.RFC3339)
	}
	return fields
}

// recordFromFields rebuilds a record from hash fields. Malformed numeric
// fields degrade to zero values; scoring treats them as absent.
func recordFromFields(id string, fields map[string]string) domimg.Record {
	rec := domimg.Record{
		ID:               id,
		FileName:         fields[fieldFileName],
		OriginalName:     fields[fieldOriginalName],
		Description:      fields[fieldDescription],
		Tags:             fields[fieldTags],
		AITags:           fields[fieldAITags],
		SemanticKeywords: fields[fieldSemanticKeywords],
		Format:           fields[fieldFormat],
		Resolution:       domimg.ParseResolution(fields[fieldResolution]),
		Orientation:      domimg.ParseOrientation(fields[fieldOrientation]),
		Category:         fields[fieldCategory],
		CameraModel:      fields[fieldCameraModel],
	}

	rec.Width, _ = strconv.Atoi(fields[fieldWidth])
	rec.Height, _ = strconv.Atoi(fields[fieldHeight])
	rec.FileSizeBytes, _ = strconv.ParseInt(fields[fieldFileSize], 10, 64)
	rec.Brightness, _ = strconv.ParseFloat(fields[fieldBrightness], 64)
	rec.Contrast, _ = strconv.ParseFloat(fields[fieldContrast], 64)
	rec.Saturation, _ = strconv.ParseFloat(fields[fieldSaturation], 64)
	rec.HasTransparency, _ = strconv.ParseBool(fields[fieldTransparency])
	rec.Animated, _ = strconv.ParseBool(fields[fieldAnimated])
	rec.HasGPS, _ = strconv.ParseBool(fields[fieldHasGPS])
	rec.ViewCount, _ = strconv.ParseInt(fields[fieldViewCount], 10, 64)

	if raw := fields[fieldCreatedAt]; raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			rec.CreatedAt = t
		}
	}

	return rec
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
