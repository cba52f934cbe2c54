package solid

import (
	"bufio"
	"fmt"
	"io"

	"github.com/matzehuels/mypoly/pkg/buildinfo"
	"github.com/matzehuels/mypoly/pkg/errors"
	"github.com/matzehuels/mypoly/pkg/mesh"
	"github.com/matzehuels/mypoly/pkg/model"
)

const fixedMaterial = "unlit"

// WriteOBJ writes every part of c in world space. If mtllib is not empty the
// output references it so viewers pick up [WriteMTL] colors.
func WriteOBJ(w io.Writer, c *model.Character, mtllib string) error {
	o := mesh.NewOBJWriter(w, buildinfo.Short())
	if mtllib != "" {
		o.MaterialLibrary(mtllib)
	}
	var err error
	model.Walk(c.Root(), func(n *model.Node, _ int) bool {
		if n.Geometry == nil {
			return true
		}
		err = o.Object(n.Name, materialName(n.Material), n.Geometry, n.World())
		return err == nil
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write obj")
	}
	return o.Flush()
}

// WriteMTL writes one material per shared slot plus the fixed eye material.
func WriteMTL(w io.Writer, c *model.Character) error {
	bw := bufio.NewWriter(w)
	writeMaterial := func(name string, m *model.Material) {
		r, g, b := float64(m.Color.R)/255, float64(m.Color.G)/255, float64(m.Color.B)/255
		fmt.Fprintf(bw, "newmtl %s\nKd %.4f %.4f %.4f\n", name, r, g, b)
		if m.Unlit {
			bw.WriteString("illum 0\n\n")
		} else {
			fmt.Fprintf(bw, "Ns %.1f\nillum 2\n\n", (1-m.Roughness)*1000)
		}
	}
	for _, slot := range c.Slots() {
		m, _ := c.Material(slot)
		writeMaterial(string(slot), m)
	}
	if eye := c.Root().Find(model.PartEyeLeft); eye != nil && eye.Material != nil {
		writeMaterial(fixedMaterial, eye.Material)
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write mtl")
	}
	return nil
}

func materialName(m *model.Material) string {
	switch {
	case m == nil:
		return ""
	case m.Slot == "":
		return fixedMaterial
	default:
		return string(m.Slot)
	}
}
