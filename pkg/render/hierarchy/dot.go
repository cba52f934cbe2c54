// Package hierarchy draws the part tree of a 3D character as a diagram.
//
// [ToDOT] produces Graphviz DOT source with one box per node: groups are
// dashed, parts are filled with their material color and list their
// geometry. [RenderSVG] lays the graph out with the embedded Graphviz
// library, so no external binary is needed.
//
//	dot := hierarchy.ToDOT(c.Root(), hierarchy.Options{Detailed: true})
//	svg, err := hierarchy.RenderSVG(ctx, dot)
package hierarchy

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mypoly/pkg/errors"
	"github.com/matzehuels/mypoly/pkg/model"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds the geometry spec and transform to each label.
	// When false, only the part name is shown.
	Detailed bool
}

// ToDOT converts the subtree rooted at root to DOT.
func ToDOT(root *model.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph parts {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	var edges []string
	model.Walk(root, func(n *model.Node, _ int) bool {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Name, strings.Join(fmtAttrs(n, opts.Detailed), ", "))
		for _, c := range n.Children() {
			edges = append(edges, fmt.Sprintf("  %q -> %q;\n", n.Name, c.Name))
		}
		return true
	})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *model.Node, detailed bool) string {
	if !detailed {
		return n.Name
	}
	t := n.Transform
	parts := []string{n.Name}
	if n.Geometry != nil {
		parts = append(parts, n.Geometry.Spec().String())
	}
	parts = append(parts,
		fmt.Sprintf("pos: %.2f %.2f %.2f", t.Position[0], t.Position[1], t.Position[2]),
		fmt.Sprintf("scale: %.2f %.2f %.2f", t.Scale[0], t.Scale[1], t.Scale[2]))
	return strings.Join(parts, "\n")
}

func fmtAttrs(n *model.Node, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, detailed))}
	if n.IsGroup() {
		return append(attrs, "style=\"rounded,dashed\"")
	}
	if m := n.Material; m != nil {
		fc := "black"
		if _, _, l := m.Color.Colorful().Hcl(); l < 0.55 {
			fc = "white"
		}
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", m.Color.Hex()), fmt.Sprintf("fontcolor=%s", fc))
	}
	return attrs
}

// RenderSVG lays out dot with Graphviz and returns the SVG document.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with a plain
// pixel-sized one.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
