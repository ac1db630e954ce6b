package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNothingToExport = errors.New("nothing to export")
	ErrUnknownFormat   = errors.New("unknown format")
)

// Longest side of exported images, in pixels.
const exportMaxSide = 1600.0

// Colors of the rendered map.
const (
	colorBackground    = "#f8fafc"
	colorGrid          = "#e5e7eb"
	colorEdge          = "#cbd5e1"
	colorEdgeSelected  = "#ef4444"
	colorNodeFrom      = "#3b82f6"
	colorNodeTo        = "#2563eb"
	colorSelectedFrom  = "#ef4444"
	colorSelectedTo    = "#dc2626"
	colorNodeStroke    = "#94a3b8"
	colorSelectedRing  = "#dc2626"
	titleFontSize      = 14.0
	titleLineHeightEms = 1.2
	gridSpacing        = 24.0
)

type ExportOptions struct {
	Path       string
	Format     string
	Tree       *Node
	SelectedID string
	View       Rect
	Layout     LayoutConfig
	Fit        FitConfig
	Text       TextConfig
}

func (o ExportOptions) format() string {
	if o.Format != "" {
		return strings.ToLower(o.Format)
	}
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(o.Path)), ".")
}

// Export renders the tree to opts.Path as PNG, SVG or TXT. A zero View is
// replaced by the fitted view window.
func Export(opts ExportOptions) error {
	if opts.Tree == nil {
		return ErrNothingToExport
	}
	l := opts.Layout.Layout(opts.Tree)
	if opts.View.Empty() {
		opts.View = FitLayout(l, opts.Layout, opts.Fit)
	}

	switch opts.format() {
	case "png":
		return exportPNG(opts, l)
	case "svg":
		return exportSVG(opts, l)
	case "txt":
		return exportVisualTXT(opts, l)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.format())
	}
}

// ExportAll writes one file per path concurrently. The layout is read-only,
// so the renderers share nothing mutable.
func ExportAll(ctx context.Context, base ExportOptions, paths []string) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, path := range paths {
		opts := base
		opts.Path = path
		opts.Format = ""
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := Export(opts); err != nil {
				return fmt.Errorf("export %s: %w", opts.Path, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// imageSize scales the view window so its longest side is exportMaxSide.
func imageSize(view Rect) (int, int, float64) {
	scale := exportMaxSide / math.Max(view.Width, view.Height)
	return int(math.Ceil(view.Width * scale)), int(math.Ceil(view.Height * scale)), scale
}

func exportPNG(opts ExportOptions, l *Layout) error {
	width, height, scale := imageSize(opts.View)
	px := func(x, y float64) (float64, float64) {
		return (x - opts.View.X) * scale, (y - opts.View.Y) * scale
	}

	dc := gg.NewContext(width, height)
	dc.SetHexColor(colorBackground)
	dc.Clear()

	dc.SetHexColor(colorGrid)
	dc.SetLineWidth(1)
	step := gridSpacing * scale
	for x := 0.0; x < float64(width); x += step {
		dc.DrawLine(x, 0, x, float64(height))
	}
	for y := 0.0; y < float64(height); y += step {
		dc.DrawLine(0, y, float64(width), y)
	}
	dc.Stroke()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	fontSize := titleFontSize * scale
	dc.SetFontFace(truetype.NewFace(ttfFont, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	dc.SetLineCapRound()
	dc.SetLineWidth(2 * scale)
	for _, e := range l.Edges {
		x1, y1 := px(e.X1, e.Y1)
		x2, y2 := px(e.X2, e.Y2)
		if e.FromID == opts.SelectedID {
			dc.SetHexColor(colorEdgeSelected)
		} else {
			dc.SetHexColor(colorEdge)
		}
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
	}

	nodes := nodesByID(opts.Tree)
	radius := opts.Layout.NodeRadius * scale
	for _, p := range l.Positions {
		n := nodes[p.ID]
		cx, cy := px(p.X, p.Y)
		selected := p.ID == opts.SelectedID

		from, to := colorNodeFrom, colorNodeTo
		if selected {
			from, to = colorSelectedFrom, colorSelectedTo
		}
		grad := gg.NewLinearGradient(cx-radius, cy-radius, cx+radius, cy+radius)
		grad.AddColorStop(0, hexColor(from))
		grad.AddColorStop(1, hexColor(to))
		dc.DrawCircle(cx, cy, radius)
		dc.SetFillStyle(grad)
		dc.FillPreserve()
		if selected {
			dc.SetHexColor(colorSelectedRing)
			dc.SetLineWidth(3 * scale)
		} else {
			dc.SetHexColor(colorNodeStroke)
			dc.SetLineWidth(1 * scale)
		}
		dc.Stroke()

		dc.SetColor(color.White)
		lines := WrapTitle(n.Title, opts.Text.TitleChars, opts.Text.TitleLines)
		for i, line := range lines {
			dc.DrawStringAnchored(line, cx, cy+titleLineOffset(i, len(lines))*fontSize, 0.5, 0.5)
		}
	}

	return dc.SavePNG(opts.Path)
}

func exportSVG(opts ExportOptions, l *Layout) error {
	return writeExportFile(opts.Path, func(w io.Writer) error {
		writeSVG(w, opts, l)
		return nil
	})
}

func writeSVG(w io.Writer, opts ExportOptions, l *Layout) {
	width, height, _ := imageSize(opts.View)
	view := opts.View
	canvas := svg.New(w)
	canvas.Startview(width, height,
		int(math.Floor(view.X)), int(math.Floor(view.Y)),
		int(math.Ceil(view.Width)), int(math.Ceil(view.Height)))

	canvas.Def()
	canvas.LinearGradient("nodeGradient", 0, 0, 100, 100, []svg.Offcolor{
		{Offset: 0, Color: colorNodeFrom, Opacity: 1},
		{Offset: 100, Color: colorNodeTo, Opacity: 1},
	})
	canvas.LinearGradient("selectedGradient", 0, 0, 100, 100, []svg.Offcolor{
		{Offset: 0, Color: colorSelectedFrom, Opacity: 1},
		{Offset: 100, Color: colorSelectedTo, Opacity: 1},
	})
	canvas.DefEnd()

	canvas.Rect(int(math.Floor(view.X)), int(math.Floor(view.Y)),
		int(math.Ceil(view.Width)), int(math.Ceil(view.Height)),
		"fill:"+colorBackground)

	for _, e := range l.Edges {
		stroke := colorEdge
		if e.FromID == opts.SelectedID {
			stroke = colorEdgeSelected
		}
		canvas.Line(round(e.X1), round(e.Y1), round(e.X2), round(e.Y2),
			"stroke:"+stroke+";stroke-width:2;stroke-linecap:round")
	}

	nodes := nodesByID(opts.Tree)
	radius := round(opts.Layout.NodeRadius)
	for _, p := range l.Positions {
		n := nodes[p.ID]
		cx, cy := round(p.X), round(p.Y)

		fill, stroke, strokeWidth := "url(#nodeGradient)", "rgba(0,0,0,0.15)", 1
		if p.ID == opts.SelectedID {
			fill, stroke, strokeWidth = "url(#selectedGradient)", colorSelectedRing, 3
		}

		canvas.Gid(n.ID)
		if preview := PreviewText(n.Summary, opts.Text.PreviewLength); preview != "" {
			canvas.Title(preview)
		}
		canvas.Circle(cx, cy, radius,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:%d", fill, stroke, strokeWidth))
		lines := WrapTitle(n.Title, opts.Text.TitleChars, opts.Text.TitleLines)
		for i, line := range lines {
			y := cy + round(titleLineOffset(i, len(lines))*titleFontSize)
			canvas.Text(cx, y, line,
				"fill:white;font-size:14px;font-weight:500;text-anchor:middle;dominant-baseline:middle")
		}
		canvas.Gend()
	}

	canvas.End()
}

func exportVisualTXT(opts ExportOptions, l *Layout) error {
	canvas := NewCanvas(txtExportCols, txtExportRows, opts.View)
	canvas.Draw(opts.Tree, l, opts.SelectedID, opts.Text)
	return writeExportFile(opts.Path, func(w io.Writer) error {
		for _, line := range canvas.Lines() {
			if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeExportFile creates path and hands render a buffered writer. Write,
// flush and close errors are all reported.
func writeExportFile(path string, render func(w io.Writer) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
	}()

	w := bufio.NewWriter(file)
	if err := render(w); err != nil {
		return err
	}
	return w.Flush()
}

// titleLineOffset centers a block of title lines on the node, in ems.
func titleLineOffset(i, n int) float64 {
	return (float64(i) - float64(n-1)/2) * titleLineHeightEms
}

func nodesByID(tree *Node) map[string]*Node {
	nodes := make(map[string]*Node)
	Walk(tree, func(n *Node, _ int) bool {
		nodes[n.ID] = n
		return true
	})
	return nodes
}

// hexColor parses one of the #rrggbb color constants above.
func hexColor(hex string) color.Color {
	var r, g, b uint8
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		panic(fmt.Sprintf("invalid color constant %q: %v", hex, err))
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func round(v float64) int {
	return int(math.Round(v))
}
