package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/google/uuid"
)

// MazeRenderer generates maze images and keeps track of what it rendered.
type MazeRenderer interface {
	// Render generates a maze for req and returns it as a PNG.
	Render(ctx context.Context, req dmn.RenderRequest) (*dmn.RenderResult, error)

	// Regenerate renders a previously recorded maze again from its seed.
	Regenerate(ctx context.Context, id uuid.UUID) (*dmn.RenderResult, error)

	// Record returns the history entry with the given id.
	Record(ctx context.Context, id uuid.UUID) (*dmn.RenderRecord, error)

	// History returns the most recent render records, newest first.
	History(ctx context.Context, limit int) ([]*dmn.RenderRecord, error)
}
