package mazeapi

import (
	"errors"
	"net/http"
	"strconv"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	pngContentType = "image/png"

	HeaderMazeID    = "X-Maze-Id"
	HeaderMazeSeed  = "X-Maze-Seed"
	HeaderMazeCache = "X-Maze-Cache"
)

var ErrNilRenderer = errors.New("maze renderer is nil")

// Defaults are the sizes used when a request leaves them out.
type Defaults struct {
	Width    int
	Height   int
	CellSize int
}

// MazeController serves maze images and render history.
type MazeController struct {
	renderer i.MazeRenderer
	defaults Defaults
}

// NewMazeController initializes a MazeController.
func NewMazeController(renderer i.MazeRenderer, defaults Defaults) (*MazeController, error) {
	if renderer == nil {
		return nil, ErrNilRenderer
	}
	return &MazeController{
		renderer: renderer,
		defaults: defaults,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/maze.png", mc.render)
}

// RegisterProtected registers protected routes.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes")
	{
		mazes.GET("", mc.history)
		mazes.GET("/:ID", mc.record)
		mazes.GET("/:ID/image", mc.image)
	}
}

// render generates a maze image from the query parameters.
func (mc *MazeController) render(ctx *gin.Context) {
	var query RenderQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := dmn.RenderRequest{
		Width:       orDefault(query.Width, mc.defaults.Width),
		Height:      orDefault(query.Height, mc.defaults.Height),
		CellSize:    orDefault(query.CellSize, mc.defaults.CellSize),
		Seed:        query.Seed,
		WallColor:   query.WallColor,
		Background:  query.Background,
		StrokeWidth: query.StrokeWidth,
	}

	res, err := mc.renderer.Render(ctx.Request.Context(), req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	writePNG(ctx, res)
}

// history lists recent renders.
func (mc *MazeController) history(ctx *gin.Context) {
	var query HistoryQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records, err := mc.renderer.History(ctx.Request.Context(), query.Limit)
	if err != nil {
		respondError(ctx, err)
		return
	}

	response := HistoryResponse{Renders: make([]RenderResponse, 0, len(records))}
	for _, r := range records {
		response.Renders = append(response.Renders, toRenderResponse(r))
	}
	ctx.JSON(http.StatusOK, response)
}

// record returns one render's metadata.
func (mc *MazeController) record(ctx *gin.Context) {
	ID, ok := parseID(ctx)
	if !ok {
		return
	}

	record, err := mc.renderer.Record(ctx.Request.Context(), ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toRenderResponse(record))
}

// image renders a recorded maze again.
func (mc *MazeController) image(ctx *gin.Context) {
	ID, ok := parseID(ctx)
	if !ok {
		return
	}

	res, err := mc.renderer.Regenerate(ctx.Request.Context(), ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	writePNG(ctx, res)
}

func parseID(ctx *gin.Context) (uuid.UUID, bool) {
	ID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return ID, true
}

func writePNG(ctx *gin.Context, res *dmn.RenderResult) {
	cache := "miss"
	if res.Record.Cached {
		cache = "hit"
	}
	ctx.Header(HeaderMazeID, res.Record.ID.String())
	ctx.Header(HeaderMazeSeed, strconv.FormatInt(res.Record.Seed, 10))
	ctx.Header(HeaderMazeCache, cache)
	ctx.Data(http.StatusOK, pngContentType, res.PNG)
}

func respondError(ctx *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		ctx.JSON(status, gin.H{"error": "failed to render maze"})
		return
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidDimensions),
		errors.Is(err, service.ErrInvalidCellSize),
		errors.Is(err, service.ErrInvalidStyle):
		return http.StatusBadRequest
	case errors.Is(err, dmn.ErrRenderNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrHistoryDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
