package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"sync"
	"testing"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *fakeLogger) log(level, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+" "+message)
}

func (l *fakeLogger) Debug(message string) { l.log("DEBUG", message) }
func (l *fakeLogger) Info(message string)  { l.log("INFO", message) }
func (l *fakeLogger) Warn(message string)  { l.log("WARN", message) }
func (l *fakeLogger) Error(message string) { l.log("ERROR", message) }

type fakeCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	locks   int
	getErr  error
	setErr  error
	lockErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	data, ok := c.data[key]
	return data, ok, nil
}

func (c *fakeCache) Set(_ context.Context, key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.setErr != nil {
		return c.setErr
	}
	c.data[key] = data
	return nil
}

func (c *fakeCache) Lock(context.Context, string) (func(), error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lockErr != nil {
		return nil, c.lockErr
	}
	c.locks++
	return func() {}, nil
}

type fakeRepo struct {
	mu      sync.Mutex
	records []*dmn.RenderRecord
	saveErr error
}

func (r *fakeRepo) Save(_ context.Context, record *dmn.RenderRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.records = append(r.records, record)
	return nil
}

func (r *fakeRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.RenderRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, dmn.ErrRenderNotFound
}

func (r *fakeRepo) Recent(_ context.Context, limit int) ([]*dmn.RenderRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*dmn.RenderRecord
	for j := len(r.records) - 1; j >= 0 && len(out) < limit; j-- {
		out = append(out, r.records[j])
	}
	return out, nil
}

func fixedClock() func() time.Time {
	t := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return t }
}

func newTestService(t *testing.T, cache i.PNGCache, repo i.RenderRepo) (*MazeService, *fakeLogger) {
	t.Helper()
	logger := &fakeLogger{}
	svc, err := NewMazeService(cache, repo, logger, &Options{MaxDimension: 50, Now: fixedClock()})
	require.NoError(t, err)
	return svc, logger
}

func TestNewMazeService(t *testing.T) {
	_, err := NewMazeService(nil, nil, nil, nil)
	assert.ErrorIs(t, err, ErrNilLogger)

	svc, err := NewMazeService(nil, nil, &fakeLogger{}, nil)
	require.NoError(t, err)
	assert.Equal(t, defaultMaxDimension, svc.opts.MaxDimension)
	assert.Equal(t, defaultCachePrefix, svc.opts.CachePrefix)
	assert.Equal(t, defaultMaxPixels, svc.opts.MaxPixels)

	svc, err = NewMazeService(nil, nil, &fakeLogger{}, &Options{MaxPixels: maze.MaxImagePixels * 4})
	require.NoError(t, err)
	assert.Equal(t, maze.MaxImagePixels, svc.opts.MaxPixels)
}

func TestPixelLimit(t *testing.T) {
	ctx := context.Background()
	logger := &fakeLogger{}
	svc, err := NewMazeService(nil, nil, logger, &Options{MaxDimension: 200, MaxPixels: 100 * 100})
	require.NoError(t, err)

	_, err = svc.Render(ctx, dmn.RenderRequest{Width: 10, Height: 10, CellSize: 10, Seed: 3})
	assert.NoError(t, err)

	_, err = svc.Render(ctx, dmn.RenderRequest{Width: 10, Height: 11, CellSize: 10, Seed: 3})
	assert.ErrorIs(t, err, ErrInvalidCellSize)
	assert.NotErrorIs(t, err, maze.ErrRenderFailed)

	svc, err = NewMazeService(nil, nil, logger, &Options{MaxDimension: 200})
	require.NoError(t, err)
	_, err = svc.Render(ctx, dmn.RenderRequest{Width: 200, Height: 200, CellSize: 100, Seed: 1})
	assert.ErrorIs(t, err, ErrInvalidCellSize)
}

func TestRender(t *testing.T) {
	ctx := context.Background()
	req := dmn.RenderRequest{Width: 8, Height: 6, CellSize: 10, Seed: 42}

	t.Run("Without cache or repository", func(t *testing.T) {
		svc, _ := newTestService(t, nil, nil)

		res, err := svc.Render(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.Record.Cached)
		assert.Equal(t, int64(42), res.Record.Seed)
		assert.Equal(t, len(res.PNG), res.Record.Bytes)

		img, err := png.Decode(bytes.NewReader(res.PNG))
		require.NoError(t, err)
		assert.Equal(t, 80, img.Bounds().Dx())
		assert.Equal(t, 60, img.Bounds().Dy())
	})

	t.Run("Same seed gives the same image", func(t *testing.T) {
		svc, _ := newTestService(t, nil, nil)

		a, err := svc.Render(ctx, req)
		require.NoError(t, err)
		b, err := svc.Render(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, a.PNG, b.PNG)
		assert.NotEqual(t, a.Record.ID, b.Record.ID)
	})

	t.Run("Zero seed picks one", func(t *testing.T) {
		svc, _ := newTestService(t, nil, nil)

		res, err := svc.Render(ctx, dmn.RenderRequest{Width: 3, Height: 3, CellSize: 5})
		require.NoError(t, err)
		assert.Equal(t, fixedClock()().UnixNano(), res.Record.Seed)
	})

	t.Run("Second request is served from cache", func(t *testing.T) {
		cache, repo := newFakeCache(), &fakeRepo{}
		svc, _ := newTestService(t, cache, repo)

		first, err := svc.Render(ctx, req)
		require.NoError(t, err)
		second, err := svc.Render(ctx, req)
		require.NoError(t, err)

		assert.False(t, first.Record.Cached)
		assert.True(t, second.Record.Cached)
		assert.Equal(t, first.PNG, second.PNG)
		assert.Equal(t, 1, cache.locks)
		assert.Len(t, cache.data, 1)
		assert.Len(t, repo.records, 2)
	})

	t.Run("Cache and repository failures are logged", func(t *testing.T) {
		cache := newFakeCache()
		cache.getErr = errors.New("connection refused")
		cache.setErr = errors.New("connection refused")
		cache.lockErr = errors.New("lock taken")
		repo := &fakeRepo{saveErr: errors.New("timeout")}
		svc, logger := newTestService(t, cache, repo)

		res, err := svc.Render(ctx, req)
		require.NoError(t, err)
		assert.NotEmpty(t, res.PNG)

		var warns, errs int
		for _, line := range logger.lines {
			switch line[:4] {
			case "WARN":
				warns++
			case "ERRO":
				errs++
			}
		}
		assert.Equal(t, 3, warns)
		assert.Equal(t, 1, errs)
	})

	t.Run("Validation", func(t *testing.T) {
		svc, _ := newTestService(t, nil, nil)

		tests := []struct {
			name string
			req  dmn.RenderRequest
			err  error
		}{
			{"zero width", dmn.RenderRequest{Width: 0, Height: 5, CellSize: 5}, ErrInvalidDimensions},
			{"too tall", dmn.RenderRequest{Width: 5, Height: 51, CellSize: 5}, ErrInvalidDimensions},
			{"zero cell", dmn.RenderRequest{Width: 5, Height: 5, CellSize: 0}, ErrInvalidCellSize},
			{"huge cell", dmn.RenderRequest{Width: 5, Height: 5, CellSize: maxCellSize + 1}, ErrInvalidCellSize},
			{"unknown colour", dmn.RenderRequest{Width: 5, Height: 5, CellSize: 5, WallColor: "sparkly"}, ErrInvalidStyle},
			{"thick stroke", dmn.RenderRequest{Width: 5, Height: 5, CellSize: 5, StrokeWidth: 6}, ErrInvalidStyle},
			{"too many pixels", dmn.RenderRequest{Width: 50, Height: 50, CellSize: maxCellSize, Seed: 1}, ErrInvalidCellSize},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Render(ctx, tt.req)
				assert.ErrorIs(t, err, tt.err)
			})
		}
	})
}

func TestRegenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("Reproduces the recorded image", func(t *testing.T) {
		repo := &fakeRepo{}
		svc, _ := newTestService(t, nil, repo)

		res, err := svc.Render(ctx, dmn.RenderRequest{Width: 12, Height: 9, CellSize: 6, Seed: 7, WallColor: "navy"})
		require.NoError(t, err)

		again, err := svc.Regenerate(ctx, res.Record.ID)
		require.NoError(t, err)
		assert.Equal(t, res.PNG, again.PNG)
		assert.Equal(t, res.Record.ID, again.Record.ID)
		assert.Len(t, repo.records, 1)
	})

	t.Run("Unknown id", func(t *testing.T) {
		svc, _ := newTestService(t, nil, &fakeRepo{})
		_, err := svc.Regenerate(ctx, uuid.New())
		assert.ErrorIs(t, err, dmn.ErrRenderNotFound)

		_, err = svc.Record(ctx, uuid.New())
		assert.ErrorIs(t, err, dmn.ErrRenderNotFound)
	})

	t.Run("No repository", func(t *testing.T) {
		svc, _ := newTestService(t, nil, nil)
		_, err := svc.Regenerate(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrHistoryDisabled)

		_, err = svc.Record(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrHistoryDisabled)
	})
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	svc, _ := newTestService(t, nil, repo)

	for seed := int64(1); seed <= 3; seed++ {
		_, err := svc.Render(ctx, dmn.RenderRequest{Width: 2, Height: 2, CellSize: 4, Seed: seed})
		require.NoError(t, err)
	}

	records, err := svc.History(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(3), records[0].Seed)
	assert.Equal(t, int64(2), records[1].Seed)

	records, err = svc.History(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	noRepo, _ := newTestService(t, nil, nil)
	_, err = noRepo.History(ctx, 5)
	assert.ErrorIs(t, err, ErrHistoryDisabled)
}

func TestCacheKey(t *testing.T) {
	svc, _ := newTestService(t, nil, nil)
	key := svc.cacheKey(dmn.RenderRequest{Width: 3, Height: 4, CellSize: 5, Seed: 6, WallColor: "red"})
	assert.Equal(t, fmt.Sprintf("maze:png:3x4:s5:seed6:red::%g", float32(0)), key)
}
