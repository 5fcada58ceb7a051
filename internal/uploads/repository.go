package uploads

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/facultymetrics/dossier/pkg/pagination"
	"github.com/facultymetrics/dossier/pkg/query"
	"github.com/facultymetrics/dossier/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an upload repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "uploads"),
		pagination: pagination,
	}
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Upload], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "FacultyName", "EvidenceType")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count uploads: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanUpload)
	if err != nil {
		return nil, fmt.Errorf("query uploads: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Upload, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	u, err := repository.QueryOne(ctx, r.db, q, args, scanUpload)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &u, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Upload, error) {
	q := `
		INSERT INTO uploads(id, faculty_name, faculty_rank, spreadsheet_id, drive_link)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, faculty_name, faculty_rank, spreadsheet_id, drive_link, status, evidence_type,
			primary_kra, criterion, sub_criterion, confidence,
			original_criterion, original_sub_criterion,
			total_score, page_count, score_record, text_preview, error_message, created_at, updated_at`

	insertArgs := []any{
		uuid.New(),
		cmd.FacultyName,
		cmd.FacultyRank,
		cmd.SpreadsheetID,
		cmd.DriveLink,
	}

	u, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Upload, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanUpload)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("upload created", "id", u.ID, "faculty_name", u.FacultyName)
	return &u, nil
}

func (r *repo) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(
			ctx, tx,
			"UPDATE uploads SET status = $1, updated_at = now() WHERE id = $2",
			StatusProcessing, id,
		)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("upload processing", "id", id)
	return nil
}

func (r *repo) Complete(ctx context.Context, id uuid.UUID, cmd CompleteCommand) (*Upload, error) {
	record, err := json.Marshal(cmd.Record)
	if err != nil {
		return nil, fmt.Errorf("marshal score record: %w", err)
	}

	q := `
		UPDATE uploads
		SET status = $1, evidence_type = $2,
			primary_kra = $3, criterion = $4, sub_criterion = $5, confidence = $6,
			original_criterion = $7, original_sub_criterion = $8,
			total_score = $9, page_count = $10, score_record = $11, text_preview = $12,
			error_message = NULL, updated_at = now()
		WHERE id = $13
		RETURNING id, faculty_name, faculty_rank, spreadsheet_id, drive_link, status, evidence_type,
			primary_kra, criterion, sub_criterion, confidence,
			original_criterion, original_sub_criterion,
			total_score, page_count, score_record, text_preview, error_message, created_at, updated_at`

	updateArgs := []any{
		StatusCompleted,
		cmd.EvidenceType,
		cmd.PrimaryKRA,
		cmd.Criterion,
		cmd.SubCriterion,
		cmd.Confidence,
		cmd.OriginalCriterion,
		cmd.OriginalSubCriterion,
		cmd.Record.TotalScore,
		cmd.PageCount,
		record,
		cmd.TextPreview,
		id,
	}

	u, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Upload, error) {
		return repository.QueryOne(ctx, tx, q, updateArgs, scanUpload)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("upload completed",
		"id", u.ID,
		"evidence_type", u.EvidenceType,
		"total_score", u.TotalScore,
	)
	return &u, nil
}

func (r *repo) Fail(ctx context.Context, id uuid.UUID, message string) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(
			ctx, tx,
			"UPDATE uploads SET status = $1, error_message = $2, updated_at = now() WHERE id = $3",
			StatusFailed, message, id,
		)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Warn("upload failed", "id", id, "error", message)
	return nil
}
