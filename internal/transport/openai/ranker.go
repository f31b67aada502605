// Package openai implements the external relevance ranker on the
// OpenAI-compatible chat completions API. The ranker is optional: when the
// configuration lacks an endpoint, credential, or model, it reports itself
// disabled and the search service scores heuristically instead.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/imagedex/internal/domain"
	"github.com/kailas-cloud/imagedex/internal/domain/image"
	"github.com/kailas-cloud/imagedex/internal/metrics"
)

// NoMatchSentinel is the literal answer the model returns when nothing matches.
const NoMatchSentinel = "NO_MATCHES"

// Defaults for optional configuration fields.
const (
	DefaultMaxCandidates = 40
	DefaultTimeout       = 30 * time.Second
	DefaultMaxTokens     = 256
)

// placeholderKeys are credential values left over from config templates;
// treated the same as an empty credential.
var placeholderKeys = map[string]struct{}{
	"changeme":     {},
	"your-api-key": {},
	"sk-xxx":       {},
}

// Config holds the ranker settings.
type Config struct {
	APIKey        string
	BaseURL       string
	Model         string
	Temperature   float32
	MaxTokens     int
	Timeout       time.Duration
	MaxCandidates int
	Logger        *zap.Logger
}

// Ranker calls an external language model to order candidate ids by
// relevance to a query.
type Ranker struct {
	client        *openai.Client
	model         string
	temperature   float32
	maxTokens     int
	timeout       time.Duration
	maxCandidates int
	enabled       bool
	logger        *zap.Logger
}

// NewRanker creates a ranker. A missing endpoint, credential, or model
// disables it; that is a mode switch, not an error.
func NewRanker(cfg *Config) *Ranker {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	_, placeholder := placeholderKeys[cfg.APIKey]
	enabled := cfg.APIKey != "" && !placeholder && cfg.BaseURL != "" && cfg.Model != ""

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL

	r := &Ranker{
		client:        openai.NewClientWithConfig(clientCfg),
		model:         cfg.Model,
		temperature:   cfg.Temperature,
		maxTokens:     cfg.MaxTokens,
		timeout:       cfg.Timeout,
		maxCandidates: cfg.MaxCandidates,
		enabled:       enabled,
		logger:        logger,
	}
	if r.maxTokens <= 0 {
		r.maxTokens = DefaultMaxTokens
	}
	if r.timeout <= 0 {
		r.timeout = DefaultTimeout
	}
	if r.maxCandidates <= 0 || r.maxCandidates > DefaultMaxCandidates {
		r.maxCandidates = DefaultMaxCandidates
	}
	return r
}

// Enabled reports whether the ranker is configured for use.
func (r *Ranker) Enabled() bool { return r.enabled }

// Rank asks the model to order candidate ids by relevance. It returns an
// empty (non-nil) slice for an explicit no-match answer. Any transport or
// parse failure wraps domain.ErrRankerUnavailable so callers fall back to
// heuristic scoring.
func (r *Ranker) Rank(ctx context.Context, query string, candidates []image.Record) ([]string, error) {
	if !r.enabled {
		return nil, domain.ErrRankerUnavailable
	}
	if len(candidates) == 0 {
		return []string{}, nil
	}
	if len(candidates) > r.maxCandidates {
		candidates = candidates[:r.maxCandidates]
	}
	metrics.RankerCandidates.Observe(float64(len(candidates)))

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       r.model,
		Temperature: r.temperature,
		MaxTokens:   r.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(query, candidates)},
		},
	})
	duration := time.Since(start)

	if err != nil {
		metrics.RankerRequestsTotal.WithLabelValues(r.model, "error").Inc()
		metrics.RankerErrorsTotal.WithLabelValues(r.model, "api_error").Inc()
		return nil, parseAPIError(err)
	}
	metrics.RankerRequestsTotal.WithLabelValues(r.model, "success").Inc()
	metrics.RankerRequestDuration.WithLabelValues(r.model).Observe(duration.Seconds())

	if len(resp.Choices) == 0 {
		metrics.RankerErrorsTotal.WithLabelValues(r.model, "empty_response").Inc()
		return nil, fmt.Errorf("empty completion response: %w", domain.ErrRankerUnavailable)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	ids, err := parseRankedIDs(content, candidates)
	if err != nil {
		metrics.RankerErrorsTotal.WithLabelValues(r.model, "parse_error").Inc()
		r.logger.Warn("ranker returned unparseable content",
			zap.String("model", r.model),
			zap.String("content", truncate(content, 200)),
		)
		return nil, err
	}
	return ids, nil
}

// buildPrompt serializes the query and candidate metadata into an
// instruction that demands a bare comma-separated id list.
func buildPrompt(query string, candidates []image.Record) string {
	var b strings.Builder

	b.WriteString("You rank images by relevance to a search query.\n\n")
	b.WriteString("Query: ")
	b.WriteString(query)
	b.WriteString("\n\nCandidate images:\n")

	for _, rec := range candidates {
		writeCandidate(&b, &rec)
	}

	b.WriteString("\nAnswer with the ids of relevant images only, ordered from most ")
	b.WriteString("to least relevant, separated by commas.\n")
	b.WriteString("If no image is relevant, answer with exactly: ")
	b.WriteString(NoMatchSentinel)
	b.WriteString("\n")
	b.WriteString("Do not explain. Do not use sentences.\n")
	b.WriteString("Good answer: 12, 7, 31\n")
	b.WriteString("Bad answer: The most relevant image is 12 because...\n")
	b.WriteString("Bad answer: Here is the ranking:\n")

	return b.String()
}

func writeCandidate(b *strings.Builder, rec *image.Record) {
	fmt.Fprintf(b, "- id: %s\n", rec.ID)
	writeField(b, "file", rec.FileName)
	writeField(b, "original name", rec.OriginalName)
	writeField(b, "format", rec.Format)
	if rec.Width > 0 && rec.Height > 0 {
		fmt.Fprintf(b, "  dimensions: %dx%d\n", rec.Width, rec.Height)
	}
	writeField(b, "resolution", rec.Resolution.String())
	if rec.FileSizeBytes > 0 {
		fmt.Fprintf(b, "  file size: %d bytes\n", rec.FileSizeBytes)
	}
	writeField(b, "orientation", string(rec.Orientation))
	if rec.Brightness > 0 {
		fmt.Fprintf(b, "  brightness: %.2f\n", rec.Brightness)
	}
	writeField(b, "description", rec.Description)
	writeField(b, "tags", rec.Tags)
	writeField(b, "ai tags", rec.AITags)
	writeField(b, "semantic keywords", rec.SemanticKeywords)
	writeField(b, "category", rec.Category)
	if !rec.CreatedAt.IsZero() {
		fmt.Fprintf(b, "  uploaded: %s\n", rec.CreatedAt.UTC().Format(time.RFC3339))
	}
	if rec.ViewCount > 0 {
		fmt.Fprintf(b, "  views: %d\n", rec.ViewCount)
	}
}

func writeField(b *strings.Builder, name, value string) {
	if value != "" {
		fmt.Fprintf(b, "  %s: %s\n", name, value)
	}
}

// parseRankedIDs splits the model answer on commas and whitespace, strips
// everything but digits per token, and drops ids not present in the
// candidate set, preserving model order. The no-match sentinel yields an
// empty list, which is distinct from a parse failure.
func parseRankedIDs(content string, candidates []image.Record) ([]string, error) {
	if content == NoMatchSentinel {
		return []string{}, nil
	}

	known := make(map[string]struct{}, len(candidates))
	for _, rec := range candidates {
		known[rec.ID] = struct{}{}
	}

	tokens := strings.FieldsFunc(content, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})

	sawDigits := false
	seen := make(map[string]struct{}, len(tokens))
	var ids []string
	for _, tok := range tokens {
		id := digitsOnly(tok)
		if id == "" {
			continue
		}
		sawDigits = true
		if _, ok := known[id]; !ok {
			continue // hallucinated id
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if !sawDigits {
		return nil, fmt.Errorf("%w: no identifiers in %q: %w",
			domain.ErrRankerResponse, truncate(content, 100), domain.ErrRankerUnavailable)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// parseAPIError extracts a readable message from the API error, wrapping it
// with domain.ErrRankerUnavailable so the caller's fallback triggers.
func parseAPIError(err error) error {
	wrap := domain.ErrRankerUnavailable

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("ranker API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("ranker API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("ranker request failed: %v: %w", err, wrap)
}
