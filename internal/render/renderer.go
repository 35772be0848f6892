package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"

	"github.com/twpayne/go-geom"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"speciesmap/internal/areas"
	"speciesmap/internal/choropleth"
	"speciesmap/internal/compose"
	"speciesmap/internal/palette"
)

// Options sets the physical page and styling.
type Options struct {
	DPI          int
	WidthInches  float64
	HeightInches float64
	Background   color.NRGBA
	Outline      color.NRGBA
	Text         color.NRGBA
	FillOpacity  float64
	// LineWidth is the outline width in points.
	LineWidth float64
}

// Font sizes in points.
const (
	titleSize   = 20
	legendSize  = 12
	captionSize = 10
	lineSpacing = 1.3
	marginInch  = 0.35
)

// Renderer draws composed pages over one area set. It is not safe for
// concurrent use.
type Renderer struct {
	opts   Options
	areas  []areas.Area
	bounds *geom.Bounds
	faces  *faceCache
}

// New returns a renderer for set.
func New(set *areas.Set, opts Options) (*Renderer, error) {
	if opts.DPI <= 0 {
		return nil, fmt.Errorf("render dpi must be positive, got %d", opts.DPI)
	}
	if opts.WidthInches <= 0 || opts.HeightInches <= 0 {
		return nil, fmt.Errorf("render page size must be positive, got %.2fx%.2f", opts.WidthInches, opts.HeightInches)
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = 0.7
	}
	if opts.Text == (color.NRGBA{}) {
		opts.Text = color.NRGBA{A: 0xff}
	}
	bounds := set.Bounds()
	if bounds == nil {
		return nil, areas.ErrNoAreas
	}
	return &Renderer{
		opts:   opts,
		areas:  set.All(),
		bounds: bounds,
		faces:  &faceCache{dpi: float64(opts.DPI)},
	}, nil
}

// Close releases cached font faces.
func (r *Renderer) Close() {
	r.faces.close()
}

// Size returns the page size in pixels.
func (r *Renderer) Size() (int, int) {
	return int(math.Round(r.opts.WidthInches * float64(r.opts.DPI))),
		int(math.Round(r.opts.HeightInches * float64(r.opts.DPI)))
}

func (r *Renderer) px(points float64) float64 {
	return points * float64(r.opts.DPI) / 72
}

// Render draws page onto a new image.
func (r *Renderer) Render(page compose.Page) (*image.RGBA, error) {
	w, h := r.Size()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.opts.Background), image.Point{}, draw.Src)

	margin := int(marginInch * float64(r.opts.DPI))
	y, err := r.drawHeader(img, page, margin)
	if err != nil {
		return nil, err
	}

	grid := image.Rect(margin, y, w-margin, h-margin)
	if grid.Dx() <= 0 || grid.Dy() <= 0 || page.Columns <= 0 || page.Rows <= 0 {
		return img, nil
	}
	cellW := grid.Dx() / page.Columns
	cellH := grid.Dy() / page.Rows
	for _, cell := range page.Cells {
		if cell.Empty {
			continue
		}
		x0 := grid.Min.X + cell.Column*cellW
		y0 := grid.Min.Y + cell.Row*cellH
		if err := r.drawCell(img, image.Rect(x0, y0, x0+cellW, y0+cellH), cell); err != nil {
			return nil, err
		}
	}
	return img, nil
}

func (r *Renderer) drawHeader(img *image.RGBA, page compose.Page, top int) (int, error) {
	width := img.Bounds().Dx()
	titleFace, err := r.faces.face(Bold, titleSize)
	if err != nil {
		return 0, err
	}
	y := top + titleFace.Metrics().Ascent.Ceil()
	r.drawCentered(img, []styledRun{{text: page.Title, face: titleFace}}, width/2, y)
	y += int(r.px(titleSize * lineSpacing))

	if strings.TrimSpace(page.Legend) != "" {
		legendFace, err := r.faces.face(Regular, legendSize)
		if err != nil {
			return 0, err
		}
		for _, line := range strings.Split(page.Legend, "\n") {
			r.drawCentered(img, []styledRun{{text: line, face: legendFace}}, width/2, y)
			y += int(r.px(legendSize * lineSpacing))
		}
	}
	return y + int(r.px(legendSize)), nil
}

func (r *Renderer) drawCell(img *image.RGBA, cell image.Rectangle, c compose.Cell) error {
	regular, err := r.faces.face(Regular, captionSize)
	if err != nil {
		return err
	}
	italic, err := r.faces.face(Italic, captionSize)
	if err != nil {
		return err
	}

	line := int(r.px(captionSize * lineSpacing))
	pad := int(r.px(4))
	mapRect := image.Rect(cell.Min.X+pad, cell.Min.Y+pad, cell.Max.X-pad, cell.Max.Y-pad-2*line)
	if mapRect.Dx() > 0 && mapRect.Dy() > 0 {
		r.drawMap(img, mapRect, c.Overlay)
	}

	var runs []styledRun
	for _, span := range c.Caption.Spans() {
		face := regular
		if span.Italic {
			face = italic
		}
		runs = append(runs, styledRun{text: span.Text, face: face})
	}
	center := (cell.Min.X + cell.Max.X) / 2
	baseline := cell.Max.Y - pad - line - regular.Metrics().Descent.Ceil()
	r.drawCentered(img, runs, center, baseline)
	r.drawCentered(img, []styledRun{{text: c.Detail, face: regular}}, center, baseline+line)
	return nil
}

// fit maps area coordinates into rect, preserving aspect ratio and centering.
type fit struct {
	minX, maxY float64
	scale      float64
	offX, offY float64
}

func (r *Renderer) fitTo(rect image.Rectangle) fit {
	dx := r.bounds.Max(0) - r.bounds.Min(0)
	dy := r.bounds.Max(1) - r.bounds.Min(1)
	if dx <= 0 {
		dx = 1
	}
	if dy <= 0 {
		dy = 1
	}
	scale := math.Min(float64(rect.Dx())/dx, float64(rect.Dy())/dy)
	return fit{
		minX:  r.bounds.Min(0),
		maxY:  r.bounds.Max(1),
		scale: scale,
		offX:  (float64(rect.Dx()) - dx*scale) / 2,
		offY:  (float64(rect.Dy()) - dy*scale) / 2,
	}
}

func (f fit) point(c geom.Coord) (float32, float32) {
	x := (c.X()-f.minX)*f.scale + f.offX
	y := (f.maxY-c.Y())*f.scale + f.offY
	return float32(x), float32(y)
}

func (r *Renderer) drawMap(img *image.RGBA, rect image.Rectangle, overlay choropleth.Overlay) {
	f := r.fitTo(rect)
	z := vector.NewRasterizer(rect.Dx(), rect.Dy())

	for _, area := range r.areas {
		fill, ok := overlay[area.Key]
		if !ok {
			fill = r.opts.Background
		}
		z.Reset(rect.Dx(), rect.Dy())
		z.DrawOp = draw.Over
		for _, ring := range rings(area.Geometry) {
			addRing(z, f, ring)
		}
		src := image.NewUniform(palette.WithOpacity(fill, r.opts.FillOpacity))
		z.Draw(img, rect, src, image.Point{})
	}

	half := float32(math.Max(r.px(r.opts.LineWidth), 1) / 2)
	z.Reset(rect.Dx(), rect.Dy())
	z.DrawOp = draw.Over
	for _, area := range r.areas {
		for _, ring := range rings(area.Geometry) {
			strokeRing(z, f, ring, half)
		}
	}
	z.Draw(img, rect, image.NewUniform(r.opts.Outline), image.Point{})
}

func rings(g geom.T) [][]geom.Coord {
	switch t := g.(type) {
	case *geom.Polygon:
		return t.Coords()
	case *geom.MultiPolygon:
		var out [][]geom.Coord
		for _, poly := range t.Coords() {
			out = append(out, poly...)
		}
		return out
	default:
		return nil
	}
}

func addRing(z *vector.Rasterizer, f fit, ring []geom.Coord) {
	if len(ring) < 3 {
		return
	}
	x, y := f.point(ring[0])
	z.MoveTo(x, y)
	for _, c := range ring[1:] {
		x, y = f.point(c)
		z.LineTo(x, y)
	}
	z.ClosePath()
}

// strokeRing adds one quad per segment. All quads share an orientation so
// overlapping joints do not cancel.
func strokeRing(z *vector.Rasterizer, f fit, ring []geom.Coord, half float32) {
	for i := 0; i+1 < len(ring); i++ {
		ax, ay := f.point(ring[i])
		bx, by := f.point(ring[i+1])
		dx, dy := bx-ax, by-ay
		length := float32(math.Hypot(float64(dx), float64(dy)))
		if length == 0 {
			continue
		}
		nx, ny := -dy/length*half, dx/length*half
		z.MoveTo(ax+nx, ay+ny)
		z.LineTo(bx+nx, by+ny)
		z.LineTo(bx-nx, by-ny)
		z.LineTo(ax-nx, ay-ny)
		z.ClosePath()
	}
}

type styledRun struct {
	text string
	face font.Face
}

func (r *Renderer) drawCentered(img *image.RGBA, runs []styledRun, centerX, baseline int) {
	var width fixed.Int26_6
	for _, run := range runs {
		width += font.MeasureString(run.face, run.text)
	}
	dot := fixed.P(centerX, baseline)
	dot.X -= width / 2
	src := image.NewUniform(r.opts.Text)
	for _, run := range runs {
		d := &font.Drawer{Dst: img, Src: src, Face: run.face, Dot: dot}
		d.DrawString(run.text)
		dot = d.Dot
	}
}
