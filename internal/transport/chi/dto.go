package chi

import (
	"time"

	"github.com/kailas-cloud/imagedex/internal/domain/image"
	"github.com/kailas-cloud/imagedex/internal/domain/search/result"
)

// Error response codes.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeNotFound         = "not_found"
	codeUnauthorized     = "unauthorized"
	codeStoreError       = "store_error"
	codeInternalError    = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// searchRequest is the POST /search body.
type searchRequest struct {
	Query       string   `json:"query"`
	Page        int      `json:"page,omitempty"`
	PageSize    int      `json:"page_size,omitempty"`
	MinScore    *float64 `json:"min_score,omitempty"`
	FileFormats []string `json:"file_formats,omitempty"`
	Orientation string   `json:"orientation,omitempty"`
}

// scoredResultDTO is one ranked hit in the search response.
type scoredResultDTO struct {
	ID               string  `json:"id"`
	FileName         string  `json:"file_name,omitempty"`
	OriginalName     string  `json:"original_name,omitempty"`
	Description      string  `json:"description,omitempty"`
	DescriptionScore float64 `json:"description_score"`
	TagScore         float64 `json:"tag_score"`
	FilenameScore    float64 `json:"filename_score"`
	MetadataScore    float64 `json:"metadata_score"`
	Bonus            float64 `json:"bonus"`
	Penalty          float64 `json:"penalty"`
	TotalScore       float64 `json:"total_score"`
	Confidence       string  `json:"confidence"`
}

// pagedResponse is the search response body.
type pagedResponse struct {
	Results      []scoredResultDTO `json:"results"`
	TotalResults int               `json:"total_results"`
	CurrentPage  int               `json:"current_page"`
	PageSize     int               `json:"page_size"`
	TotalPages   int               `json:"total_pages"`
	Strategy     string            `json:"strategy"`
	RankerUsed   bool              `json:"ranker_used"`
}

func pageToDTO(p *result.Page) pagedResponse {
	results := make([]scoredResultDTO, len(p.Results()))
	for i, sc := range p.Results() {
		rec := sc.Record()
		results[i] = scoredResultDTO{
			ID:               sc.ID(),
			FileName:         rec.FileName,
			OriginalName:     rec.OriginalName,
			Description:      rec.Description,
			DescriptionScore: sc.DescriptionScore(),
			TagScore:         sc.TagScore(),
			FilenameScore:    sc.FilenameScore(),
			MetadataScore:    sc.MetadataScore(),
			Bonus:            sc.Bonus(),
			Penalty:          sc.Penalty(),
			TotalScore:       sc.Total(),
			Confidence:       string(sc.Confidence()),
		}
	}
	return pagedResponse{
		Results:      results,
		TotalResults: p.TotalResults(),
		CurrentPage:  p.CurrentPage(),
		PageSize:     p.PageSize(),
		TotalPages:   p.TotalPages(),
		Strategy:     p.Strategy(),
		RankerUsed:   p.RankerUsed(),
	}
}

// imageDTO is the wire form of an image record.
type imageDTO struct {
	ID               string  `json:"id"`
	FileName         string  `json:"file_name,omitempty"`
	OriginalName     string  `json:"original_name,omitempty"`
	Description      string  `json:"description,omitempty"`
	Tags             string  `json:"tags,omitempty"`
	AITags           string  `json:"ai_tags,omitempty"`
	SemanticKeywords string  `json:"semantic_keywords,omitempty"`
	Format           string  `json:"format,omitempty"`
	Width            int     `json:"width,omitempty"`
	Height           int     `json:"height,omitempty"`
	FileSizeBytes    int64   `json:"file_size_bytes,omitempty"`
	Resolution       string  `json:"resolution,omitempty"`
	Orientation      string  `json:"orientation,omitempty"`
	Brightness       float64 `json:"brightness,omitempty"`
	Contrast         float64 `json:"contrast,omitempty"`
	Saturation       float64 `json:"saturation,omitempty"`
	HasTransparency  bool    `json:"has_transparency,omitempty"`
	Animated         bool    `json:"animated,omitempty"`
	Category         string  `json:"category,omitempty"`
	CameraModel      string  `json:"camera_model,omitempty"`
	HasGPS           bool    `json:"has_gps,omitempty"`
	CreatedAt        string  `json:"created_at,omitempty"`
	ViewCount        int64   `json:"view_count,omitempty"`
}

func imageToDTO(rec *image.Record) imageDTO {
	dto := imageDTO{
		ID:               rec.ID,
		FileName:         rec.FileName,
		OriginalName:     rec.OriginalName,
		Description:      rec.Description,
		Tags:             rec.Tags,
		AITags:           rec.AITags,
		SemanticKeywords: rec.SemanticKeywords,
		Format:           rec.Format,
		Width:            rec.Width,
		Height:           rec.Height,
		FileSizeBytes:    rec.FileSizeBytes,
		Resolution:       rec.Resolution.String(),
		Orientation:      string(rec.Orientation),
		Brightness:       rec.Brightness,
		Contrast:         rec.Contrast,
		Saturation:       rec.Saturation,
		HasTransparency:  rec.HasTransparency,
		Animated:         rec.Animated,
		Category:         rec.Category,
		CameraModel:      rec.CameraModel,
		HasGPS:           rec.HasGPS,
		ViewCount:        rec.ViewCount,
	}
	if !rec.CreatedAt.IsZero() {
		dto.CreatedAt = rec.CreatedAt.UTC().Format(time.RFC3339)
	}
	return dto
}

func imageFromDTO(id string, dto *imageDTO) (image.Record, error) {
	rec := image.Record{
		ID:               id,
		FileName:         dto.FileName,
		OriginalName:     dto.OriginalName,
		Description:      dto.Description,
		Tags:             dto.Tags,
		AITags:           dto.AITags,
		SemanticKeywords: dto.SemanticKeywords,
		Format:           dto.Format,
		Width:            dto.Width,
		Height:           dto.Height,
		FileSizeBytes:    dto.FileSizeBytes,
		Resolution:       image.ParseResolution(dto.Resolution),
		Orientation:      image.ParseOrientation(dto.Orientation),
		Brightness:       dto.Brightness,
		Contrast:         dto.Contrast,
		Saturation:       dto.Saturation,
		HasTransparency:  dto.HasTransparency,
		Animated:         dto.Animated,
		Category:         dto.Category,
		CameraModel:      dto.CameraModel,
		HasGPS:           dto.HasGPS,
		ViewCount:        dto.ViewCount,
	}
	if dto.CreatedAt != "" {
		t, err := time.Parse(time.RFC3339, dto.CreatedAt)
		if err != nil {
			return image.Record{}, err
		}
		rec.CreatedAt = t
	}
	return rec, nil
}
