package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/google/uuid"
)

// RenderRepo defines the persistence operations for render history.
type RenderRepo interface {
	// Save inserts or replaces a record.
	Save(ctx context.Context, record *dmn.RenderRecord) error

	// ByID retrieves a record by its ID.
	// Returns dmn.ErrRenderNotFound if there is none.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.RenderRecord, error)

	// Recent returns at most limit records, newest first.
	Recent(ctx context.Context, limit int) ([]*dmn.RenderRecord, error)
}
