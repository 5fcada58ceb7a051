// Package extract implements the per-evidence-type extraction
// strategies and the registry that dispatches to them. Every strategy
// honors the same contract: it receives document text plus the faculty
// identity and returns zero or more evidence items, never an error that
// escapes the registry. Internal failures and unknown evidence types
// degrade to an empty result with a logged warning so one bad document
// cannot abort an upload batch.
package extract

import (
	"context"
	"log/slog"

	"github.com/facultymetrics/dossier/internal/evidence"
)

// Request carries the inputs common to every extraction strategy.
// SubCriterion is the (possibly corrected) classifier sub-criterion
// code; strategies that score from the code alone consult it, the rest
// ignore it.
type Request struct {
	Text         string
	FacultyName  string
	SubCriterion string
}

// Extractor is one extraction strategy. Implementations may return an
// error for internal failures; the registry converts it to an empty
// result.
type Extractor interface {
	Extract(ctx context.Context, req Request) ([]evidence.Item, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, req Request) ([]evidence.Item, error)

func (f ExtractorFunc) Extract(ctx context.Context, req Request) ([]evidence.Item, error) {
	return f(ctx, req)
}

// Registry dispatches an evidence type to its registered strategy.
type Registry struct {
	extractors map[evidence.Type]Extractor
	logger     *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		extractors: make(map[evidence.Type]Extractor),
		logger:     logger.With("system", "extract"),
	}
}

// Register binds a strategy to an evidence type, replacing any previous
// binding.
func (r *Registry) Register(t evidence.Type, extractor Extractor) {
	r.extractors[t] = extractor
}

// Extract runs the strategy registered for t. An unknown type, a
// strategy error, or a strategy panic yields an empty result with a
// warning; the caller proceeds to persist a zero-score record.
func (r *Registry) Extract(ctx context.Context, t evidence.Type, req Request) (items []evidence.Item) {
	extractor, ok := r.extractors[t]
	if !ok {
		r.logger.Warn("no extractor registered for evidence type", "evidence_type", string(t))
		return nil
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn("extractor panicked",
				"evidence_type", string(t),
				"panic", rec,
			)
			items = nil
		}
	}()

	items, err := extractor.Extract(ctx, req)
	if err != nil {
		r.logger.Warn("extraction failed",
			"evidence_type", string(t),
			"error", err,
		)
		return nil
	}

	r.logger.Info("extraction complete",
		"evidence_type", string(t),
		"items", len(items),
	)
	return items
}
