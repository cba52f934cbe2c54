package mesh

import (
	"bufio"
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl64"
)

// OBJWriter streams geometries as Wavefront OBJ objects. Vertex and normal
// indices are global across objects, so the writer keeps running offsets.
type OBJWriter struct {
	w       *bufio.Writer
	vOffset int
	nOffset int
	err     error
}

// NewOBJWriter returns a writer that emits a header comment immediately.
func NewOBJWriter(w io.Writer, header string) *OBJWriter {
	o := &OBJWriter{w: bufio.NewWriter(w)}
	if header != "" {
		o.printf("# %s\n", header)
	}
	return o
}

// MaterialLibrary references an MTL file for the objects that follow.
func (o *OBJWriter) MaterialLibrary(name string) {
	o.printf("mtllib %s\n", name)
}

// Object writes g transformed by world under the given object and material names.
func (o *OBJWriter) Object(name, material string, g *Geometry, world mgl64.Mat4) error {
	if o.err != nil {
		return o.err
	}
	o.printf("o %s\n", name)
	if material != "" {
		o.printf("usemtl %s\n", material)
	}
	for _, p := range g.Points {
		v := mgl64.TransformCoordinate(p, world)
		o.printf("v %.5f %.5f %.5f\n", v[0], v[1], v[2])
	}
	// Normals go through the inverse transpose so they stay perpendicular
	// under non-uniform scale.
	normalMat := world.Mat3().Inv().Transpose()
	for _, n := range g.Normals {
		wn := normalMat.Mul3x1(n)
		if wn.Len() > 0 {
			wn = wn.Normalize()
		}
		o.printf("vn %.5f %.5f %.5f\n", wn[0], wn[1], wn[2])
	}
	for i, f := range g.Faces {
		// OBJ indices are 1-based.
		n := o.nOffset + i + 1
		o.printf("f %d//%d %d//%d %d//%d\n",
			o.vOffset+f[0]+1, n, o.vOffset+f[1]+1, n, o.vOffset+f[2]+1, n)
	}
	o.vOffset += len(g.Points)
	o.nOffset += len(g.Normals)
	return o.err
}

// Flush writes any buffered data to the underlying writer.
func (o *OBJWriter) Flush() error {
	if o.err != nil {
		return o.err
	}
	return o.w.Flush()
}

func (o *OBJWriter) printf(format string, args ...any) {
	if o.err != nil {
		return
	}
	_, o.err = fmt.Fprintf(o.w, format, args...)
}
