package uploads

import (
	"github.com/facultymetrics/dossier/pkg/query"
	"github.com/facultymetrics/dossier/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "uploads", "u").
	Project("id", "ID").
	Project("faculty_name", "FacultyName").
	Project("faculty_rank", "FacultyRank").
	Project("spreadsheet_id", "SpreadsheetID").
	Project("drive_link", "DriveLink").
	Project("status", "Status").
	Project("evidence_type", "EvidenceType").
	Project("primary_kra", "PrimaryKRA").
	Project("criterion", "Criterion").
	Project("sub_criterion", "SubCriterion").
	Project("confidence", "Confidence").
	Project("original_criterion", "OriginalCriterion").
	Project("original_sub_criterion", "OriginalSubCriterion").
	Project("total_score", "TotalScore").
	Project("page_count", "PageCount").
	Project("score_record", "ScoreRecord").
	Project("text_preview", "TextPreview").
	Project("error_message", "ErrorMessage").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for upload queries.
// Nil fields are ignored. Status and EvidenceType use exact matching;
// FacultyName uses case-insensitive contains matching.
type Filters struct {
	Status       *string `json:"status,omitempty"`
	EvidenceType *string `json:"evidence_type,omitempty"`
	FacultyName  *string `json:"faculty_name,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereEquals("EvidenceType", f.EvidenceType).
		WhereContains("FacultyName", f.FacultyName)
}

func scanUpload(s repository.Scanner) (Upload, error) {
	var u Upload
	err := s.Scan(
		&u.ID,
		&u.FacultyName,
		&u.FacultyRank,
		&u.SpreadsheetID,
		&u.DriveLink,
		&u.Status,
		&u.EvidenceType,
		&u.PrimaryKRA,
		&u.Criterion,
		&u.SubCriterion,
		&u.Confidence,
		&u.OriginalCriterion,
		&u.OriginalSubCriterion,
		&u.TotalScore,
		&u.PageCount,
		&u.ScoreRecord,
		&u.TextPreview,
		&u.ErrorMessage,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}
