package maze

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/image/vector"
)

const (
	// WallAlpha is the opacity of wall strokes, roughly 80%.
	WallAlpha = 200

	// DefaultStrokeWidth matches the hairline stroke of common vector rasterizers.
	DefaultStrokeWidth = 1.0

	// MaxImagePixels bounds the area of a rendered image.
	MaxImagePixels = 1 << 28
)

// Rendering errors.
var (
	ErrEmptyMaze       = errors.New("maze has no cells")
	ErrInvalidCellSize = errors.New("cell size must be positive")
	ErrRenderFailed    = errors.New("render failed")
	ErrUnknownColor    = errors.New("unknown color name")
)

// Segment is a straight wall between two points, in pixels.
type Segment struct {
	X0, Y0 float32
	X1, Y1 float32
}

// Horizontal reports whether the segment runs along the x axis.
func (s Segment) Horizontal() bool {
	return s.Y0 == s.Y1
}

// Style controls how walls are painted.
type Style struct {
	WallColor   color.Color // Stroke colour of every wall
	Background  color.Color // Fill colour; nil keeps the image transparent
	StrokeWidth float32     // Stroke width in pixels
}

// DefaultStyle paints black walls at WallAlpha opacity on a transparent background.
func DefaultStyle() Style {
	black := colornames.Black
	return Style{
		WallColor:   color.NRGBA{R: black.R, G: black.G, B: black.B, A: WallAlpha},
		StrokeWidth: DefaultStrokeWidth,
	}
}

// StyleFromNames builds a style from SVG colour names such as "black" or "darkcyan".
// An empty wall name keeps the default wall colour and an empty background name keeps
// the image transparent.
func StyleFromNames(wall, background string, strokeWidth float32) (Style, error) {
	style := DefaultStyle()

	if wall != "" {
		c, ok := colornames.Map[strings.ToLower(wall)]
		if !ok {
			return Style{}, fmt.Errorf("%w: %q", ErrUnknownColor, wall)
		}
		style.WallColor = color.NRGBA{R: c.R, G: c.G, B: c.B, A: WallAlpha}
	}

	if background != "" {
		c, ok := colornames.Map[strings.ToLower(background)]
		if !ok {
			return Style{}, fmt.Errorf("%w: %q", ErrUnknownColor, background)
		}
		style.Background = c
	}

	if strokeWidth > 0 {
		style.StrokeWidth = strokeWidth
	}
	return style, nil
}

// Walls lists every wall to draw for the given cell size.
//
// For each cell, in row-major order, the north wall is listed unless it is open or the
// cell is the entrance (0,0), then the west wall unless it is open. The south border
// follows, stopping one cell short of the east edge to leave the exit, and finally the
// east border.
func (m *Maze) Walls(cellSize int) []Segment {
	if m.IsEmpty() || cellSize <= 0 {
		return nil
	}

	s := float32(cellSize)
	walls := make([]Segment, 0, m.Len()+2)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			cell := m.Cell(x, y)
			left, top := float32(x)*s, float32(y)*s

			if !(cell.NorthOpen() || (x == 0 && y == 0)) {
				walls = append(walls, Segment{X0: left, Y0: top, X1: left + s, Y1: top})
			}
			if !cell.WestOpen() {
				walls = append(walls, Segment{X0: left, Y0: top, X1: left, Y1: top + s})
			}
		}
	}

	width, height := float32(m.Width)*s, float32(m.Height)*s
	if m.Width > 1 {
		walls = append(walls, Segment{X0: 0, Y0: height, X1: float32(m.Width-1) * s, Y1: height})
	}
	walls = append(walls, Segment{X0: width, Y0: 0, X1: width, Y1: height})

	return walls
}

// CheckImageSize reports whether a width by height maze drawn with cellSize pixel
// cells fits in an image, returning its pixel dimensions.
func CheckImageSize(width, height, cellSize int) (int, int, error) {
	if width < 1 || height < 1 {
		return 0, 0, ErrEmptyMaze
	}
	if cellSize <= 0 {
		return 0, 0, ErrInvalidCellSize
	}

	w, h := width*cellSize, height*cellSize
	if w/cellSize != width || h/cellSize != height || w > MaxImagePixels/h {
		return 0, 0, fmt.Errorf("%w: %dx%d cells of %d pixels exceeds the image limit", ErrRenderFailed, width, height, cellSize)
	}
	return w, h, nil
}

// Render rasterizes the maze walls into an image of Width*cellSize by Height*cellSize
// pixels. Each wall is stroked and composited separately, anti-aliased.
func (m *Maze) Render(cellSize int, style Style) (*image.RGBA, error) {
	width, height, err := CheckImageSize(m.Width, m.Height, cellSize)
	if err != nil {
		return nil, err
	}
	if style.WallColor == nil {
		style.WallColor = DefaultStyle().WallColor
	}
	if style.StrokeWidth <= 0 {
		style.StrokeWidth = DefaultStrokeWidth
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if style.Background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(style.Background), image.Point{}, draw.Src)
	}

	src := image.NewUniform(style.WallColor)
	z := vector.NewRasterizer(0, 0)
	for _, wall := range m.Walls(cellSize) {
		strokeSegment(z, img, src, wall, style.StrokeWidth/2)
	}

	return img, nil
}

// EncodePNG renders the maze and writes it to w as a PNG image.
func (m *Maze) EncodePNG(w io.Writer, cellSize int, style Style) error {
	img, err := m.Render(cellSize, style)
	if err != nil {
		return err
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}
	return nil
}

// strokeSegment fills the butt-capped rectangle around an axis-aligned segment.
// The rasterizer is sized to the stroke's pixel bounds so that each wall only
// touches the pixels it covers.
func strokeSegment(z *vector.Rasterizer, dst *image.RGBA, src image.Image, s Segment, halfWidth float32) {
	x0, x1 := min(s.X0, s.X1), max(s.X0, s.X1)
	y0, y1 := min(s.Y0, s.Y1), max(s.Y0, s.Y1)
	if s.Horizontal() {
		y0, y1 = y0-halfWidth, y1+halfWidth
	} else {
		x0, x1 = x0-halfWidth, x1+halfWidth
	}

	bounds := dst.Bounds()
	x0, y0 = max(x0, float32(bounds.Min.X)), max(y0, float32(bounds.Min.Y))
	x1, y1 = min(x1, float32(bounds.Max.X)), min(y1, float32(bounds.Max.Y))
	if x1 <= x0 || y1 <= y0 {
		return
	}

	r := image.Rect(
		int(math.Floor(float64(x0))), int(math.Floor(float64(y0))),
		int(math.Ceil(float64(x1))), int(math.Ceil(float64(y1))),
	)
	ox, oy := float32(r.Min.X), float32(r.Min.Y)

	z.Reset(r.Dx(), r.Dy())
	z.MoveTo(x0-ox, y0-oy)
	z.LineTo(x1-ox, y0-oy)
	z.LineTo(x1-ox, y1-oy)
	z.LineTo(x0-ox, y1-oy)
	z.ClosePath()
	z.Draw(dst, r, src, image.Point{})
}
