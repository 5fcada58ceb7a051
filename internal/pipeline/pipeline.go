// Package pipeline sequences one upload's evaluation: fetch, triage,
// classify, correct, route, extract, score, persist, export. The run is
// synchronous and single-threaded per upload; every run terminates in
// exactly one persisted record, completed or failed, and a failed
// upload is always distinguishable from a completed zero-score one.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/facultymetrics/dossier/internal/classifier"
	"github.com/facultymetrics/dossier/internal/evidence"
	"github.com/facultymetrics/dossier/internal/extract"
	"github.com/facultymetrics/dossier/internal/ledger"
	"github.com/facultymetrics/dossier/internal/triage"
	"github.com/facultymetrics/dossier/internal/uploads"
)

// errNoValidFiles is the terminal failure message for an upload whose
// source link yields no usable files.
var errNoValidFiles = errors.New("No valid files found")

// Aggregation policies for multi-file uploads.
const (
	// PolicyCombined scores one combined-text determination per upload.
	PolicyCombined = "combined"
	// PolicyPerFile sums independently scored per-file results.
	PolicyPerFile = "perfile"
)

// Source fetches an upload's files. Fetch failures surface as an empty
// or partial list, never an error.
type Source interface {
	Fetch(ctx context.Context, link string) []triage.FileArtifact
}

// Runtime holds the pipeline's collaborators for the life of the
// process.
type Runtime struct {
	source       Source
	classifier   classifier.Client
	registry     *extract.Registry
	uploads      uploads.System
	sink         ledger.Sink
	policy       string
	previewLimit int
	logger       *slog.Logger
}

// NewRuntime wires a pipeline runtime. The sink may be nil to disable
// ledger export.
func NewRuntime(
	source Source,
	client classifier.Client,
	registry *extract.Registry,
	system uploads.System,
	sink ledger.Sink,
	cfg *Config,
	logger *slog.Logger,
) *Runtime {
	return &Runtime{
		source:       source,
		classifier:   client,
		registry:     registry,
		uploads:      system,
		sink:         sink,
		policy:       cfg.Aggregation,
		previewLimit: cfg.PreviewLimit,
		logger:       logger.With("system", "pipeline"),
	}
}

// Process runs the full pipeline for one registered upload. Any panic
// or error inside the run marks the upload failed with the captured
// message; the record is never lost. The returned upload reflects the
// terminal state.
func (r *Runtime) Process(ctx context.Context, id uuid.UUID) (*uploads.Upload, error) {
	upload, err := r.uploads.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.uploads.MarkProcessing(ctx, id); err != nil {
		return nil, err
	}

	completed, runErr := r.run(ctx, upload)
	if runErr != nil {
		if failErr := r.uploads.Fail(ctx, id, runErr.Error()); failErr != nil {
			r.logger.Error("could not persist failed status",
				"id", id,
				"error", failErr,
			)
		}
		return r.uploads.Find(ctx, id)
	}
	return completed, nil
}

func (r *Runtime) run(ctx context.Context, upload *uploads.Upload) (result *uploads.Upload, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("pipeline panicked", "id", upload.ID, "panic", rec)
			result, err = nil, fmt.Errorf("pipeline panic: %v", rec)
		}
	}()

	artifacts := r.source.Fetch(ctx, upload.DriveLink)
	if len(artifacts) == 0 {
		return nil, errNoValidFiles
	}

	anchor := triage.SelectAnchor(artifacts)
	anchorText := artifacts[anchor].Text
	combined, pages := triage.Combine(artifacts, anchor)

	classification := r.classifier.Classify(ctx, anchorText)
	classification, correction := triage.Correct(classification, anchorText)

	evidenceType := evidence.Route(
		classification.PrimaryKRA,
		classification.Criterion,
		classification.SubCriterion,
	)

	items := r.extract(ctx, evidenceType, upload.FacultyName, classification.SubCriterion, combined, artifacts)

	total := 0.0
	for _, item := range items {
		total += item.TotalScore
	}

	record := uploads.ScoreRecord{
		TotalScore:     total,
		EvidenceType:   string(evidenceType),
		Explanation:    explain(classification, correction, evidenceType),
		ExtractedItems: items,
	}

	cmd := uploads.CompleteCommand{
		EvidenceType: string(evidenceType),
		PrimaryKRA:   classification.PrimaryKRA,
		Criterion:    classification.Criterion,
		SubCriterion: classification.SubCriterion,
		Confidence:   classification.Confidence,
		PageCount:    pages,
		TextPreview:  preview(combined, r.previewLimit),
		Record:       record,
	}
	if correction.Applied {
		cmd.OriginalCriterion = &correction.OriginalCriterion
		cmd.OriginalSubCriterion = &correction.OriginalSubCriterion
	}

	completed, err := r.uploads.Complete(ctx, upload.ID, cmd)
	if err != nil {
		return nil, fmt.Errorf("persist score record: %w", err)
	}

	r.export(ctx, completed, evidenceType, items)
	return completed, nil
}

// extract dispatches under the configured aggregation policy: one
// combined-text determination, or a sum over independently scored
// files.
func (r *Runtime) extract(
	ctx context.Context,
	evidenceType evidence.Type,
	facultyName, subCriterion, combined string,
	artifacts []triage.FileArtifact,
) []evidence.Item {
	if evidenceType == evidence.TypeNone {
		r.logger.Info("no evidence family mapped, skipping extraction")
		return nil
	}

	if r.policy == PolicyPerFile {
		var items []evidence.Item
		for _, artifact := range artifacts {
			items = append(items, r.registry.Extract(ctx, evidenceType, extract.Request{
				Text:         artifact.Text,
				FacultyName:  facultyName,
				SubCriterion: subCriterion,
			})...)
		}
		return items
	}

	return r.registry.Extract(ctx, evidenceType, extract.Request{
		Text:         combined,
		FacultyName:  facultyName,
		SubCriterion: subCriterion,
	})
}

// export sends scored evidence to the faculty ledger. Export is best
// effort; a failure is logged and the completed upload stands.
func (r *Runtime) export(ctx context.Context, upload *uploads.Upload, evidenceType evidence.Type, items []evidence.Item) {
	if r.sink == nil || upload.SpreadsheetID == "" {
		return
	}

	for _, item := range items {
		var err error
		switch evidenceType {
		case evidence.TypeEvaluation:
			semester, year := ledger.SplitSemesterAY(item.SemesterAY)
			err = r.sink.SendEvaluation(ctx, upload.SpreadsheetID, ledger.EvaluationEntry{
				AcademicYear:   year,
				Semester:       semester,
				EvaluationType: item.EvaluationType,
				TotalScore:     item.TotalScore,
				DriveLink:      upload.DriveLink,
			})
		case evidence.TypeProgram:
			err = r.sink.SendProgram(ctx, upload.SpreadsheetID, ledger.ProgramEntry{
				ProgramName:     item.ProgramName,
				ProgramType:     item.ProgramAction,
				BoardResolution: item.BoardResolution,
				AcademicYear:    item.AcademicYear,
				Role:            item.Role,
				Score:           item.TotalScore,
				DriveLink:       upload.DriveLink,
			})
		case evidence.TypeResearch:
			err = r.sink.SendResearch(ctx, upload.SpreadsheetID, ledger.ResearchEntry{
				Title:         item.Title,
				ResearchType:  item.Subtype,
				Journal:       item.Journal,
				Reviewer:      item.Reviewer,
				Indexing:      item.Indexing,
				DatePublished: item.DatePublished,
				AuthorMode:    item.AuthorMode,
				Contribution:  item.ContributionPercent,
				Score:         item.TotalScore,
				DriveLink:     upload.DriveLink,
			})
		default:
			continue
		}

		if err != nil {
			r.logger.Warn("ledger export failed",
				"id", upload.ID,
				"evidence_type", string(evidenceType),
				"error", err,
			)
		}
	}
}

// preview bounds the stored text to limit bytes, cutting on a rune
// boundary so the stored preview stays valid UTF-8. A non-positive
// limit keeps the full text.
func preview(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	return text[:limit]
}

func explain(result classifier.Result, correction triage.Correction, evidenceType evidence.Type) string {
	var parts []string
	if result.Explanation != "" {
		parts = append(parts, result.Explanation)
	}
	if correction.Applied {
		parts = append(parts, fmt.Sprintf(
			"Classification corrected from criterion %s/%s to B/2.1 (program leadership).",
			correction.OriginalCriterion, correction.OriginalSubCriterion,
		))
	}
	if evidenceType == evidence.TypeNone {
		parts = append(parts, "No evidence family mapped for this classification; extraction skipped.")
	}
	return strings.Join(parts, " ")
}
