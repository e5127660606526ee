// Package mazeapi exposes maze rendering and render history over HTTP.
package mazeapi

import (
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/google/uuid"
)

// RenderQuery holds the query parameters of a maze image request. Omitted sizes
// fall back to the controller's defaults.
type RenderQuery struct {
	Width       int     `form:"width" binding:"omitempty,min=1"`
	Height      int     `form:"height" binding:"omitempty,min=1"`
	CellSize    int     `form:"cell_size" binding:"omitempty,min=1"`
	Seed        int64   `form:"seed"`
	WallColor   string  `form:"wall_color"`
	Background  string  `form:"background"`
	StrokeWidth float32 `form:"stroke_width" binding:"omitempty,min=0"`
}

// HistoryQuery holds the query parameters of a history listing.
type HistoryQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

// RenderResponse describes one rendered maze.
type RenderResponse struct {
	ID          uuid.UUID `json:"id"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	CellSize    int       `json:"cell_size"`
	Seed        int64     `json:"seed"`
	WallColor   string    `json:"wall_color,omitempty"`
	Background  string    `json:"background,omitempty"`
	StrokeWidth float32   `json:"stroke_width,omitempty"`
	Bytes       int       `json:"bytes"`
	Cached      bool      `json:"cached"`
	ElapsedMs   int64     `json:"elapsed_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// HistoryResponse lists recent renders, newest first.
type HistoryResponse struct {
	Renders []RenderResponse `json:"renders"`
}

func toRenderResponse(r *dmn.RenderRecord) RenderResponse {
	return RenderResponse{
		ID:          r.ID,
		Width:       r.Width,
		Height:      r.Height,
		CellSize:    r.CellSize,
		Seed:        r.Seed,
		WallColor:   r.WallColor,
		Background:  r.Background,
		StrokeWidth: r.StrokeWidth,
		Bytes:       r.Bytes,
		Cached:      r.Cached,
		ElapsedMs:   r.ElapsedMs,
		CreatedAt:   r.CreatedAt,
	}
}
