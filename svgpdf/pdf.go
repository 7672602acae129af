// Implements a PDF backend to preview extracted polylines,
// by wrapping github.com/jung-kurt/gofpdf.
package svgpdf

import (
	"io"

	"github.com/benoitkugler/svglines/svgdraw"
	"github.com/benoitkugler/svglines/svgread"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/fixed"
)

var _ svgdraw.Driver = Renderer{} // assert interface conformance

// pixels to PDF points
const pxToPt = 72. / 96.

// Renderer strokes the polylines on the current page of `pdf`.
type Renderer struct {
	pdf *gofpdf.Fpdf
}

// NewRenderer returns a renderer which will
// write to the given `pdf`, using the points as unit,
// and sets its stroke style.
func NewRenderer(pdf *gofpdf.Fpdf, opts svgdraw.StrokeOptions) Renderer {
	r, g, b, a := opts.RGBA()
	pdf.SetDrawColor(int(r), int(g), int(b))
	pdf.SetAlpha(float64(a)/255, "")
	pdf.SetLineWidth(opts.Width * pxToPt)
	pdf.SetLineCapStyle(opts.Cap.String())
	pdf.SetLineJoinStyle(opts.Join.String())
	return Renderer{pdf: pdf}
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	x, y := svgdraw.FromFixed(a)
	return x * pxToPt, y * pxToPt
}

func (Renderer) Clear() {}

func (r Renderer) Start(a fixed.Point26_6) { r.pdf.MoveTo(fixedTof(a)) }

func (r Renderer) Line(b fixed.Point26_6) { r.pdf.LineTo(fixedTof(b)) }

func (r Renderer) Stop(closeLoop bool) {
	if closeLoop {
		r.pdf.ClosePath()
	}
}

func (r Renderer) Draw() { r.pdf.DrawPath("D") }

// Options defines the PDF page.
type Options struct {
	// Width and Height of the page, in pixels (96 per inch).
	// When zero, the size of the polylines bounding box (plus margins) is used.
	Width, Height float64
	Margin        float64 // in pixels, on each side
	Stroke        svgdraw.StrokeOptions
}

func newDocument(lines svgread.Lines, opts Options) *gofpdf.Fpdf {
	bbox, _ := svgdraw.BoundingBox(lines)
	w, h := opts.Width, opts.Height
	if w <= 0 {
		w = bbox.W + 2*opts.Margin
	}
	if h <= 0 {
		h = bbox.H + 2*opts.Margin
	}
	// gofpdf rejects empty pages
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: w * pxToPt, Ht: h * pxToPt},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	svgdraw.DrawLines(lines, NewRenderer(pdf, opts.Stroke), svgdraw.FitMatrix(bbox, w, h, opts.Margin))
	return pdf
}

// RenderLines writes a one page PDF document showing the polylines.
func RenderLines(lines svgread.Lines, opts Options, w io.Writer) error {
	return newDocument(lines, opts).Output(w)
}

// WriteFile is the same as RenderLines, saving to `file`.
func WriteFile(lines svgread.Lines, opts Options, file string) error {
	return newDocument(lines, opts).OutputFileAndClose(file)
}
