// Package gemini adapts the Gemini API to the semantic research
// extraction contract. The adapter enforces a fixed minimum delay
// between calls to stay inside the model's throughput quota and maps
// throttling responses to the extraction layer's rate-limit sentinel so
// the caller's backoff loop can engage.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/facultymetrics/dossier/internal/extract"
	"github.com/facultymetrics/dossier/pkg/formatting"
)

// maxPromptChars bounds the document text sent per request. Scanned
// dossier files can run far past the useful context for field
// extraction.
const maxPromptChars = 20000

const instruction = `You extract bibliographic fields from faculty research documents.
Respond with strict JSON only, no prose and no markdown fences, matching exactly:
{"title": string, "journal": string, "reviewer": string, "indexing": string, "date_published": string, "contribution": number}
"contribution" is the faculty member's authorship percentage from 0 to 100; use 100 when sole authorship is stated or implied.
Use an empty string for any field the document does not state.`

// truncatePrompt bounds the document text to maxPromptChars bytes,
// cutting on a rune boundary so the request body stays valid UTF-8.
func truncatePrompt(text string) string {
	if len(text) <= maxPromptChars {
		return text
	}
	cut := maxPromptChars
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// Extractor calls the Gemini API for research field extraction. It
// satisfies extract.SemanticExtractor.
type Extractor struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
	logger  *slog.Logger
}

// New creates an Extractor from finalized configuration.
func New(ctx context.Context, cfg *Config, logger *slog.Logger) (*Extractor, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Extractor{
		client:  client,
		model:   cfg.Model,
		limiter: rate.NewLimiter(rate.Every(cfg.MinDelayDuration()), 1),
		logger:  logger.With("system", "gemini"),
	}, nil
}

// ExtractResearch sends one document's text to the model and parses the
// strict-JSON field response. A throttling response surfaces as
// extract.ErrRateLimited.
func (e *Extractor) ExtractResearch(ctx context.Context, text string) (extract.ResearchFields, error) {
	text = truncatePrompt(text)

	if err := e.limiter.Wait(ctx); err != nil {
		return extract.ResearchFields{}, fmt.Errorf("waiting for request slot: %w", err)
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		Temperature:       genai.Ptr[float32](0),
	}

	resp, err := e.client.Models.GenerateContent(ctx, e.model,
		genai.Text(text), config)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) && apiErr.Code == 429 {
			e.logger.Warn("gemini throttled request")
			return extract.ResearchFields{}, fmt.Errorf("%w: %s", extract.ErrRateLimited, apiErr.Message)
		}
		return extract.ResearchFields{}, fmt.Errorf("generate content: %w", err)
	}

	raw := resp.Text()
	fields, err := formatting.Parse[extract.ResearchFields](raw)
	if err != nil {
		return extract.ResearchFields{}, fmt.Errorf("parse model response: %w", err)
	}

	e.logger.Info("research fields extracted",
		"title", fields.Title,
		"contribution", fields.Contribution,
	)
	return fields, nil
}
