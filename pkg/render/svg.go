// Package render produces visual artifacts from packed layouts. The SVG
// sink writes the markup directly: the geometry is already computed by the
// layout engine, so no drawing library is involved.
package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/dashgrid/pkg/board"
)

// Default rendering parameters.
const (
	defaultCellSize = 64
	cellGap         = 8
	cornerRadius    = 6
)

const itemInteractionCSS = `
    .item { transition: opacity 0.15s ease; }
    .item:hover { opacity: 0.85; }
    .item-label { font-family: ui-sans-serif, system-ui, sans-serif; }`

// SVGOption configures the SVG renderer.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	cellSize int
	labels   bool
	title    string
}

// WithCellSize sets the pixel size of one grid cell.
func WithCellSize(px int) SVGOption {
	return func(r *svgRenderer) {
		if px > 0 {
			r.cellSize = px
		}
	}
}

// WithoutLabels disables item ID labels.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// WithTitle adds a document title element.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// itemPalette cycles per item so adjacent rects stay distinguishable.
var itemPalette = []string{
	"#5b8dee", "#4fb286", "#e4b363", "#c97b84", "#8d7dca", "#5bbcd6",
}

// RenderSVG renders a packed layout as an SVG document.
func RenderSVG(l board.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{cellSize: defaultCellSize, labels: true}
	for _, opt := range opts {
		opt(&r)
	}

	rows := max(l.Rows, 1)
	width := l.Columns*r.cellSize + (l.Columns+1)*cellGap
	height := rows*r.cellSize + (rows+1)*cellGap

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		width, height, width, height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escape(r.title))
	}
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", itemInteractionCSS)
	fmt.Fprintf(&buf, `  <rect width="%d" height="%d" fill="#f4f4f5"/>`+"\n", width, height)

	for i, p := range l.Placements {
		x := p.X*(r.cellSize+cellGap) + cellGap
		y := p.Y*(r.cellSize+cellGap) + cellGap
		w := p.W*r.cellSize + (p.W-1)*cellGap
		h := p.H*r.cellSize + (p.H-1)*cellGap
		fill := itemPalette[i%len(itemPalette)]

		fmt.Fprintf(&buf,
			`  <rect class="item" id="item-%s" x="%d" y="%d" width="%d" height="%d" rx="%d" fill="%s"/>`+"\n",
			escape(p.ID), x, y, w, h, cornerRadius, fill)

		if r.labels {
			fmt.Fprintf(&buf,
				`  <text class="item-label" x="%d" y="%d" font-size="%d" fill="#ffffff" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
				x+w/2, y+h/2, r.cellSize/4, escape(p.ID))
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// escape replaces the XML metacharacters that can appear in item IDs.
func escape(s string) string {
	var buf bytes.Buffer
	for _, c := range s {
		switch c {
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '&':
			buf.WriteString("&amp;")
		case '"':
			buf.WriteString("&quot;")
		default:
			buf.WriteRune(c)
		}
	}
	return buf.String()
}
