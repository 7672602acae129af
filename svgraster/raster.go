// Implements a raster backend to preview extracted polylines,
// by wrapping rasterx.
package svgraster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/benoitkugler/svglines/svgdoc"
	"github.com/benoitkugler/svglines/svgdraw"
	"github.com/benoitkugler/svglines/svgread"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

var _ svgdraw.Driver = (*Renderer)(nil) // assert interface conformance

// Renderer strokes polylines with a rasterx.Dasher.
type Renderer struct {
	dasher *rasterx.Dasher
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		svgdraw.Round: rasterx.Round,
		svgdraw.Bevel: rasterx.Bevel,
		svgdraw.Miter: rasterx.Miter,
	}

	capToFunc = [...]rasterx.CapFunc{
		svgdraw.ButtCap:   rasterx.ButtCap,
		svgdraw.SquareCap: rasterx.SquareCap,
		svgdraw.RoundCap:  rasterx.RoundCap,
	}
)

// NewRenderer returns a renderer using the given stroke style.
// If scanner is nil, a default scanner rasterx.ScannerGV drawing into `img`
// is used.
func NewRenderer(img draw.Image, scanner rasterx.Scanner, opts svgdraw.StrokeOptions) *Renderer {
	b := img.Bounds()
	if scanner == nil {
		scanner = rasterx.NewScannerGV(b.Dx(), b.Dy(), img, b)
	}
	rd := &Renderer{dasher: rasterx.NewDasher(b.Dx(), b.Dy(), scanner)}
	rd.dasher.SetStroke(
		fixed.Int26_6(opts.Width*64), 4*64, capToFunc[opts.Cap], capToFunc[opts.Cap],
		rasterx.RoundGap, joinToJoin[opts.Join], nil, 0,
	)
	r, g, bl, a := opts.RGBA()
	rd.dasher.SetColor(color.NRGBA{R: r, G: g, B: bl, A: a})
	return rd
}

func (rd *Renderer) Clear() { rd.dasher.Clear() }

func (rd *Renderer) Start(a fixed.Point26_6) { rd.dasher.Start(a) }

func (rd *Renderer) Line(b fixed.Point26_6) { rd.dasher.Line(b) }

func (rd *Renderer) Stop(closeLoop bool) { rd.dasher.Stop(closeLoop) }

func (rd *Renderer) Draw() { rd.dasher.Draw() }

// Options defines the output image.
type Options struct {
	// Width and Height of the image, in pixels. When zero, the size of the
	// polylines bounding box (plus margins) is used.
	Width, Height int
	Margin        float64 // in pixels, on each side
	Stroke        svgdraw.StrokeOptions
	Background    color.Color // nil for transparent
}

func (opts Options) size(bbox svgdoc.Bounds) (w, h int) {
	w, h = opts.Width, opts.Height
	if w <= 0 {
		w = int(math.Ceil(bbox.W + 2*opts.Margin))
	}
	if h <= 0 {
		h = int(math.Ceil(bbox.H + 2*opts.Margin))
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// RasterLines draws the polylines into a new image, scaled to fit
// the image size.
func RasterLines(lines svgread.Lines, opts Options) *image.RGBA {
	bbox, _ := svgdraw.BoundingBox(lines)
	w, h := opts.size(bbox)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if opts.Background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)
	}
	m := svgdraw.FitMatrix(bbox, float64(w), float64(h), opts.Margin)
	svgdraw.DrawLines(lines, NewRenderer(img, nil, opts.Stroke), m)
	return img
}

// WritePNG encodes the image `img` to `w`.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// WriteFile rasterizes the polylines and saves them as a PNG file.
func WriteFile(lines svgread.Lines, opts Options, file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err = WritePNG(f, RasterLines(lines, opts)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
