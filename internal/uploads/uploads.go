// Package uploads implements the dossier upload domain: the persisted
// record of one evidence submission, its lifecycle through the
// evaluation pipeline, and the final score record. Every pipeline run
// ends by persisting exactly one terminal state here, completed or
// failed.
package uploads

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/facultymetrics/dossier/internal/evidence"
)

// Upload statuses, in lifecycle order. Completed and failed are
// terminal.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Upload represents one evidence submission and its evaluation outcome.
// OriginalCriterion and OriginalSubCriterion are populated only when the
// classification correction rule fired, preserving the uncorrected
// values for audit.
type Upload struct {
	ID                   uuid.UUID       `json:"id"`
	FacultyName          string          `json:"faculty_name"`
	FacultyRank          string          `json:"faculty_rank"`
	SpreadsheetID        string          `json:"spreadsheet_id"`
	DriveLink            string          `json:"drive_link"`
	Status               string          `json:"status"`
	EvidenceType         string          `json:"evidence_type"`
	PrimaryKRA           string          `json:"primary_kra"`
	Criterion            string          `json:"criterion"`
	SubCriterion         string          `json:"sub_criterion"`
	Confidence           float64         `json:"confidence"`
	OriginalCriterion    *string         `json:"original_criterion"`
	OriginalSubCriterion *string         `json:"original_sub_criterion"`
	TotalScore           float64         `json:"total_score"`
	PageCount            int             `json:"page_count"`
	ScoreRecord          json.RawMessage `json:"score_record"`
	TextPreview          string          `json:"text_preview"`
	ErrorMessage         *string         `json:"error_message"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
}

// CreateCommand carries the data needed to register a new upload.
type CreateCommand struct {
	FacultyName   string
	FacultyRank   string
	SpreadsheetID string
	DriveLink     string
}

// ScoreRecord is the persisted evaluation outcome for one upload.
type ScoreRecord struct {
	TotalScore     float64         `json:"total_score"`
	EvidenceType   string          `json:"evidence_type"`
	Explanation    string          `json:"explanation"`
	ExtractedItems []evidence.Item `json:"extracted_items"`
}

// CompleteCommand carries the terminal result of a successful pipeline
// run.
type CompleteCommand struct {
	EvidenceType         string
	PrimaryKRA           string
	Criterion            string
	SubCriterion         string
	Confidence           float64
	OriginalCriterion    *string
	OriginalSubCriterion *string
	PageCount            int
	TextPreview          string
	Record               ScoreRecord
}
