package uploads

import (
	"context"

	"github.com/google/uuid"

	"github.com/facultymetrics/dossier/pkg/pagination"
)

// System defines the public contract for upload domain operations.
type System interface {
	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Upload], error)

	Find(ctx context.Context, id uuid.UUID) (*Upload, error)
	Create(ctx context.Context, cmd CreateCommand) (*Upload, error)
	MarkProcessing(ctx context.Context, id uuid.UUID) error
	Complete(ctx context.Context, id uuid.UUID, cmd CompleteCommand) (*Upload, error)
	Fail(ctx context.Context, id uuid.UUID, message string) error
}
