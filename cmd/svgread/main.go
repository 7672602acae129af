// Command svgread extracts the polylines of SVG files, as a
// plotter would draw them, and optionally renders a preview.
//
// Usage:
//
//	svgread [flags] file.svg [file.svg ...]
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/benoitkugler/svglines/svgdoc"
	"github.com/benoitkugler/svglines/svgdraw"
	"github.com/benoitkugler/svglines/svgpdf"
	"github.com/benoitkugler/svglines/svgraster"
	"github.com/benoitkugler/svglines/svgread"
	"github.com/benoitkugler/svglines/units"
	"golang.org/x/image/colornames"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "svgread:", err)
		}
		os.Exit(1)
	}
}

type config struct {
	quantization units.Length
	pngFile      string
	pdfFile      string
	width        units.Length
	margin       units.Length
	color        string
	dump         bool
	strict       bool
	warn         bool
	verbose      bool
	files        []string
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	cfg := config{
		quantization: units.MustParse(svgread.DefaultQuantization),
		width:        units.MustParse("0.5mm"),
		margin:       units.MustParse("5mm"),
	}
	fs := flag.NewFlagSet("svgread", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Var(&cfg.quantization, "q", "maximum chord length used to approximate curves (shorthand)")
	fs.Var(&cfg.quantization, "quantization", "maximum chord length used to approximate curves, with optional unit")
	fs.StringVar(&cfg.pngFile, "png", "", "write a PNG preview of the polylines to this file")
	fs.StringVar(&cfg.pdfFile, "pdf", "", "write a PDF preview of the polylines to this file")
	fs.Var(&cfg.width, "width", "stroke width of the previews")
	fs.Var(&cfg.margin, "margin", "margin of the previews")
	fs.StringVar(&cfg.color, "color", "black", "stroke color of the previews (SVG color name)")
	fs.BoolVar(&cfg.dump, "dump", false, "print the polylines, one per line, as x,y pairs")
	fs.BoolVar(&cfg.strict, "strict", false, "fail on unsupported SVG elements")
	fs.BoolVar(&cfg.warn, "warn", false, "log unsupported SVG elements")
	fs.BoolVar(&cfg.verbose, "v", false, "verbose logging")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: svgread [flags] file.svg [file.svg ...]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	cfg.files = fs.Args()
	if len(cfg.files) == 0 {
		fs.Usage()
		return cfg, errors.New("missing input file")
	}
	if cfg.quantization <= 0 {
		return cfg, fmt.Errorf("%w: %s", svgread.ErrInvalidQuantization, cfg.quantization)
	}
	return cfg, nil
}

func (cfg config) errorMode() svgdoc.ErrorMode {
	switch {
	case cfg.strict:
		return svgdoc.StrictErrorMode
	case cfg.warn:
		return svgdoc.WarnErrorMode
	default:
		return svgdoc.IgnoreErrorMode
	}
}

func (cfg config) stroke() (svgdraw.StrokeOptions, error) {
	c, ok := colornames.Map[strings.ToLower(cfg.color)]
	if !ok {
		return svgdraw.StrokeOptions{}, fmt.Errorf("unknown color %q", cfg.color)
	}
	return svgdraw.StrokeOptions{
		Width: float64(cfg.width),
		Color: c,
		Join:  svgdraw.Round,
		Cap:   svgdraw.RoundCap,
	}, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelDebug
	}
	svgdoc.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer svgdoc.SetLogger(nil)

	stroke, err := cfg.stroke()
	if err != nil {
		return err
	}

	all, err := svgread.ExtractAll(cfg.files, float64(cfg.quantization), cfg.errorMode())
	if err != nil {
		return err
	}

	out := bufio.NewWriter(stdout)
	var merged svgread.Lines
	for i, lines := range all {
		merged = append(merged, lines...)
		if cfg.dump {
			writeLines(out, lines)
		} else {
			fmt.Fprintf(out, "%s: %d lines, %d points\n", cfg.files[i], lines.Len(), lines.PointCount())
		}
	}
	if err := out.Flush(); err != nil {
		return err
	}

	if cfg.pngFile != "" {
		opts := svgraster.Options{Margin: float64(cfg.margin), Stroke: stroke, Background: color.White}
		if err := svgraster.WriteFile(merged, opts, cfg.pngFile); err != nil {
			return fmt.Errorf("png preview: %w", err)
		}
		svgdoc.Logger().Debug("preview written", "file", cfg.pngFile)
	}
	if cfg.pdfFile != "" {
		opts := svgpdf.Options{Margin: float64(cfg.margin), Stroke: stroke}
		if err := svgpdf.WriteFile(merged, opts, cfg.pdfFile); err != nil {
			return fmt.Errorf("pdf preview: %w", err)
		}
		svgdoc.Logger().Debug("preview written", "file", cfg.pdfFile)
	}
	return nil
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// writeLines prints one polyline per line
func writeLines(w io.Writer, lines svgread.Lines) {
	for _, line := range lines {
		for i, p := range line {
			if i > 0 {
				io.WriteString(w, " ")
			}
			io.WriteString(w, formatFloat(p.X)+","+formatFloat(p.Y))
		}
		io.WriteString(w, "\n")
	}
}
