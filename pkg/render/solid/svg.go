package solid

import (
	"bytes"
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/mypoly/pkg/color"
	"github.com/matzehuels/mypoly/pkg/model"
)

// View box shared with the flat renderer.
const (
	ViewWidth  = 400
	ViewHeight = 500
)

// Lighting defaults.
const (
	DefaultAmbient     = 0.45
	DefaultDirectional = 0.65
)

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	eye, target mgl64.Vec3
	fovy        float64
	yaw         float64
	light       mgl64.Vec3
	ambient     float64
	directional float64
	background  *color.Color
	outline     bool
}

// WithCamera places the camera at eye looking at target.
func WithCamera(eye, target mgl64.Vec3) SVGOption {
	return func(r *svgRenderer) { r.eye, r.target = eye, target }
}

// WithYaw turns the character around the vertical axis by angle radians.
func WithYaw(angle float64) SVGOption { return func(r *svgRenderer) { r.yaw = angle } }

// WithLight sets the direction the light comes from.
func WithLight(dir mgl64.Vec3) SVGOption { return func(r *svgRenderer) { r.light = dir } }

// WithBackground fills the view box with c before drawing.
func WithBackground(c color.Color) SVGOption {
	return func(r *svgRenderer) { r.background = &c }
}

// WithOutline strokes every triangle with its own fill color, which hides
// antialiasing seams between adjacent faces.
func WithOutline() SVGOption { return func(r *svgRenderer) { r.outline = true } }

type triangle struct {
	pts   [3]mgl64.Vec2
	depth float64
	fill  color.Color
}

// RenderSVG draws c as flat-shaded SVG.
func RenderSVG(c *model.Character, opts ...SVGOption) []byte {
	r := svgRenderer{
		eye:         mgl64.Vec3{0, 0.35, 3.4},
		target:      mgl64.Vec3{0, 0.15, 0},
		fovy:        mgl64.DegToRad(40),
		light:       mgl64.Vec3{0.5, 1, 0.8},
		ambient:     DefaultAmbient,
		directional: DefaultDirectional,
	}
	for _, opt := range opts {
		opt(&r)
	}

	tris := r.project(c.Root())
	slices.SortStableFunc(tris, func(a, b triangle) int {
		return cmp.Compare(b.depth, a.depth)
	})

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		ViewWidth, ViewHeight, ViewWidth, ViewHeight)
	if r.background != nil {
		fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%d" height="%d" fill="%s" />`+"\n",
			ViewWidth, ViewHeight, r.background.Hex())
	}
	for _, t := range tris {
		hex := t.fill.Hex()
		fmt.Fprintf(&buf, `  <path d="M%.2f,%.2f L%.2f,%.2f L%.2f,%.2f Z" fill="%s"`,
			t.pts[0][0], t.pts[0][1], t.pts[1][0], t.pts[1][1], t.pts[2][0], t.pts[2][1], hex)
		if r.outline {
			fmt.Fprintf(&buf, ` stroke="%s" stroke-width="0.5" stroke-linejoin="round"`, hex)
		}
		buf.WriteString(" />\n")
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) project(root *model.Node) []triangle {
	view := mgl64.LookAtV(r.eye, r.target, mgl64.Vec3{0, 1, 0})
	proj := mgl64.Perspective(r.fovy, float64(ViewWidth)/ViewHeight, 0.1, 100)
	yaw := mgl64.HomogRotate3DY(r.yaw)
	light := r.light.Normalize()

	var out []triangle
	model.Walk(root, func(n *model.Node, _ int) bool {
		if n.Geometry == nil || n.Material == nil {
			return true
		}
		world := yaw.Mul4(n.World())
		g := n.Geometry
		for _, f := range g.Faces {
			var w [3]mgl64.Vec3
			for i, idx := range f {
				w[i] = mgl64.TransformCoordinate(g.Points[idx], world)
			}
			normal := w[1].Sub(w[0]).Cross(w[2].Sub(w[0]))
			if normal.Len() == 0 {
				continue
			}
			normal = normal.Normalize()
			centroid := w[0].Add(w[1]).Add(w[2]).Mul(1.0 / 3)
			if normal.Dot(r.eye.Sub(centroid)) <= 0 {
				continue
			}

			var t triangle
			for i := range w {
				v := mgl64.TransformCoordinate(w[i], view)
				t.depth += -v.Z() / 3
				ndc := mgl64.TransformCoordinate(v, proj)
				t.pts[i] = mgl64.Vec2{
					(ndc.X() + 1) / 2 * ViewWidth,
					(1 - ndc.Y()) / 2 * ViewHeight,
				}
			}
			t.fill = r.shade(n.Material, normal, light)
			out = append(out, t)
		}
		return true
	})
	return out
}

func (r *svgRenderer) shade(m *model.Material, normal, light mgl64.Vec3) color.Color {
	if m.Unlit {
		return m.Color
	}
	k := r.ambient + r.directional*math.Max(0, normal.Dot(light))
	return m.Color.Shade(k)
}
