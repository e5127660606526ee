package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrRenderNotFound = errors.New("render not found")

// RenderRequest holds the parameters of one maze image.
type RenderRequest struct {
	Width       int
	Height      int
	CellSize    int
	Seed        int64 // zero picks a seed
	WallColor   string
	Background  string
	StrokeWidth float32
}

// RenderRecord is the stored history entry of a rendered maze. The seed and style
// are enough to render the same image again.
type RenderRecord struct {
	ID          uuid.UUID `bson:"_id" json:"id"`
	Width       int       `bson:"width" json:"width"`
	Height      int       `bson:"height" json:"height"`
	CellSize    int       `bson:"cellSize" json:"cell_size"`
	Seed        int64     `bson:"seed" json:"seed"`
	WallColor   string    `bson:"wallColor,omitempty" json:"wall_color,omitempty"`
	Background  string    `bson:"background,omitempty" json:"background,omitempty"`
	StrokeWidth float32   `bson:"strokeWidth,omitempty" json:"stroke_width,omitempty"`
	Bytes       int       `bson:"bytes" json:"bytes"`
	Cached      bool      `bson:"cached" json:"cached"`
	ElapsedMs   int64     `bson:"elapsedMs" json:"elapsed_ms"`
	CreatedAt   time.Time `bson:"createdAt" json:"created_at"`
}

// Request returns the parameters that reproduce the record's image.
func (r *RenderRecord) Request() RenderRequest {
	return RenderRequest{
		Width:       r.Width,
		Height:      r.Height,
		CellSize:    r.CellSize,
		Seed:        r.Seed,
		WallColor:   r.WallColor,
		Background:  r.Background,
		StrokeWidth: r.StrokeWidth,
	}
}

// RenderResult is a rendered PNG together with its history entry.
type RenderResult struct {
	Record *RenderRecord
	PNG    []byte
}
