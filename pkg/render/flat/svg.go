package flat

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/mypoly/pkg/catalog"
	"github.com/matzehuels/mypoly/pkg/color"
)

// Canvas size of the fragment coordinate system.
const (
	ViewWidth  = 400
	ViewHeight = 500
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	width, height float64
	background    *color.Color
	body          bool
}

// WithSize sets the width and height attributes of the document. The view
// box is always 400x500.
func WithSize(w, h float64) SVGOption {
	return func(r *svgRenderer) { r.width, r.height = w, h }
}

// WithBackground fills the canvas with c before drawing.
func WithBackground(c color.Color) SVGOption {
	return func(r *svgRenderer) { r.background = &c }
}

// WithoutBody omits the body layer.
func WithoutBody() SVGOption { return func(r *svgRenderer) { r.body = false } }

// RenderSVG writes scene as an SVG document.
func RenderSVG(scene Scene, opts ...SVGOption) []byte {
	r := svgRenderer{width: ViewWidth, height: ViewHeight, body: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%.0f" height="%.0f">`+"\n",
		ViewWidth, ViewHeight, r.width, r.height)
	if r.background != nil {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%d" height="%d" fill="%s" />`+"\n",
			ViewWidth, ViewHeight, r.background.Hex())
	}
	if r.body && !scene.Body.Empty() {
		writeGroup(&buf, "body-group", scene.Body)
	}
	for _, c := range scene.Order {
		writeGroup(&buf, GroupID(c), scene.Fragments[c])
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// GroupID returns the id of the group that holds category c.
func GroupID(c catalog.Category) string {
	if c == catalog.Face {
		return "head-group"
	}
	return string(c) + "-group"
}

func writeGroup(buf *bytes.Buffer, id string, f Fragment) {
	hex := f.Color.Hex()
	if f.Empty() {
		fmt.Fprintf(buf, `  <g id="%s" data-option="%s" />`+"\n", id, f.OptionID)
		return
	}
	fmt.Fprintf(buf, `  <g id="%s" data-option="%s" fill="%s" color="%s">`+"\n", id, f.OptionID, hex, hex)
	buf.WriteString("    ")
	buf.WriteString(strings.ReplaceAll(f.Markup, "currentColor", hex))
	buf.WriteString("\n  </g>\n")
}
