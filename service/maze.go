package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/beka-birhanu/vinom-maze/wilson"
	"github.com/google/uuid"
)

const (
	defaultMaxDimension = 200
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
	maxCellSize         = 100
	defaultMaxPixels    = 1 << 24
	cacheKeyFmt         = "%s:png:%dx%d:s%d:seed%d:%s:%s:%g"
	defaultCachePrefix  = "maze"
)

var (
	ErrInvalidDimensions = errors.New("maze dimensions out of range")
	ErrInvalidCellSize   = errors.New("cell size out of range")
	ErrInvalidStyle      = errors.New("invalid maze style")
	ErrGenerationFailed  = errors.New("maze generation failed")
	ErrHistoryDisabled   = errors.New("render history is not configured")
	ErrNilLogger         = errors.New("logger is required")
)

// Options tunes a MazeService. Zero fields take defaults.
type Options struct {
	MaxDimension int    // largest accepted width or height
	MaxPixels    int    // largest accepted image area, capped by maze.MaxImagePixels
	CachePrefix  string // namespace of cache keys
	Now          func() time.Time
	NewID        func() uuid.UUID
}

// MazeService renders Wilson mazes, caching images and recording history when
// a cache and repository are available.
type MazeService struct {
	cache  i.PNGCache
	repo   i.RenderRepo
	logger i.Logger
	opts   *Options
}

// NewMazeService creates a MazeService. cache and repo may be nil.
func NewMazeService(cache i.PNGCache, repo i.RenderRepo, logger i.Logger, opts *Options) (*MazeService, error) {
	if logger == nil {
		return nil, ErrNilLogger
	}

	if opts == nil {
		opts = &Options{}
	}
	if opts.MaxDimension <= 0 {
		opts.MaxDimension = defaultMaxDimension
	}
	if opts.MaxPixels <= 0 {
		opts.MaxPixels = defaultMaxPixels
	}
	opts.MaxPixels = min(opts.MaxPixels, maze.MaxImagePixels)
	if opts.CachePrefix == "" {
		opts.CachePrefix = defaultCachePrefix
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.New
	}

	return &MazeService{
		cache:  cache,
		repo:   repo,
		logger: logger,
		opts:   opts,
	}, nil
}

// Render validates req, then serves the image from the cache or generates it.
// Every call is recorded in the history.
func (s *MazeService) Render(ctx context.Context, req dmn.RenderRequest) (*dmn.RenderResult, error) {
	started := s.opts.Now()

	style, err := s.validate(req)
	if err != nil {
		return nil, err
	}
	if req.Seed == 0 {
		req.Seed = s.pickSeed()
	}

	key := s.cacheKey(req)
	data, cached := s.lookup(ctx, key)
	if !cached {
		if s.cache != nil {
			unlock, err := s.cache.Lock(ctx, key)
			if err != nil {
				s.logger.Warn(fmt.Sprintf("Locking %s: %v", key, err))
			} else {
				defer unlock()
				// another request may have rendered it while we waited
				data, cached = s.lookup(ctx, key)
			}
		}
	}

	if !cached {
		data, err = s.draw(req, style)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.Set(ctx, key, data); err != nil {
				s.logger.Warn(fmt.Sprintf("Caching %s: %v", key, err))
			}
		}
	}

	record := &dmn.RenderRecord{
		ID:          s.opts.NewID(),
		Width:       req.Width,
		Height:      req.Height,
		CellSize:    req.CellSize,
		Seed:        req.Seed,
		WallColor:   req.WallColor,
		Background:  req.Background,
		StrokeWidth: req.StrokeWidth,
		Bytes:       len(data),
		Cached:      cached,
		ElapsedMs:   s.opts.Now().Sub(started).Milliseconds(),
		CreatedAt:   started.UTC(),
	}
	s.record(ctx, record)

	s.logger.Info(fmt.Sprintf("Rendered %dx%d maze seed=%d cached=%t bytes=%d", req.Width, req.Height, req.Seed, cached, len(data)))
	return &dmn.RenderResult{Record: record, PNG: data}, nil
}

// Regenerate renders a recorded maze again. The image is not cached or recorded.
func (s *MazeService) Regenerate(ctx context.Context, id uuid.UUID) (*dmn.RenderResult, error) {
	if s.repo == nil {
		return nil, ErrHistoryDisabled
	}

	record, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	req := record.Request()
	style, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	data, err := s.draw(req, style)
	if err != nil {
		return nil, err
	}
	return &dmn.RenderResult{Record: record, PNG: data}, nil
}

// Record returns the history entry with the given id.
func (s *MazeService) Record(ctx context.Context, id uuid.UUID) (*dmn.RenderRecord, error) {
	if s.repo == nil {
		return nil, ErrHistoryDisabled
	}
	return s.repo.ByID(ctx, id)
}

// History returns up to limit recent records. Out of range limits fall back to defaults.
func (s *MazeService) History(ctx context.Context, limit int) ([]*dmn.RenderRecord, error) {
	if s.repo == nil {
		return nil, ErrHistoryDisabled
	}

	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	limit = min(limit, maxHistoryLimit)

	return s.repo.Recent(ctx, limit)
}

func (s *MazeService) validate(req dmn.RenderRequest) (maze.Style, error) {
	if req.Width < 1 || req.Width > s.opts.MaxDimension || req.Height < 1 || req.Height > s.opts.MaxDimension {
		return maze.Style{}, fmt.Errorf("%w: %dx%d, each side must be in 1..%d", ErrInvalidDimensions, req.Width, req.Height, s.opts.MaxDimension)
	}
	if req.CellSize < 1 || req.CellSize > maxCellSize {
		return maze.Style{}, fmt.Errorf("%w: %d, must be in 1..%d", ErrInvalidCellSize, req.CellSize, maxCellSize)
	}
	if px := req.Width * req.CellSize * req.Height * req.CellSize; px > s.opts.MaxPixels {
		return maze.Style{}, fmt.Errorf("%w: %d, a %dx%d maze would be %d pixels, over the %d limit",
			ErrInvalidCellSize, req.CellSize, req.Width, req.Height, px, s.opts.MaxPixels)
	}
	if req.StrokeWidth < 0 || req.StrokeWidth > float32(req.CellSize) {
		return maze.Style{}, fmt.Errorf("%w: stroke width %g", ErrInvalidStyle, req.StrokeWidth)
	}

	style, err := maze.StyleFromNames(req.WallColor, req.Background, req.StrokeWidth)
	if err != nil {
		return maze.Style{}, fmt.Errorf("%w: %w", ErrInvalidStyle, err)
	}
	return style, nil
}

// draw generates the maze for req.Seed and encodes it. The same request always
// gives the same bytes.
func (s *MazeService) draw(req dmn.RenderRequest, style maze.Style) ([]byte, error) {
	m := wilson.New(req.Width, req.Height).Generate(rand.New(rand.NewSource(req.Seed)))
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	var buf bytes.Buffer
	if err := m.EncodePNG(&buf, req.CellSize, style); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *MazeService) lookup(ctx context.Context, key string) ([]byte, bool) {
	if s.cache == nil {
		return nil, false
	}

	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("Reading cache %s: %v", key, err))
		return nil, false
	}
	return data, ok
}

func (s *MazeService) record(ctx context.Context, record *dmn.RenderRecord) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Save(ctx, record); err != nil {
		s.logger.Error(fmt.Sprintf("Saving render %s: %v", record.ID, err))
	}
}

func (s *MazeService) cacheKey(req dmn.RenderRequest) string {
	return fmt.Sprintf(cacheKeyFmt, s.opts.CachePrefix, req.Width, req.Height, req.CellSize, req.Seed, req.WallColor, req.Background, req.StrokeWidth)
}

func (s *MazeService) pickSeed() int64 {
	seed := s.opts.Now().UnixNano()
	if seed == 0 {
		seed = 1
	}
	return seed
}
