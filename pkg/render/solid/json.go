package solid

import (
	"encoding/json"

	"github.com/matzehuels/mypoly/pkg/errors"
	"github.com/matzehuels/mypoly/pkg/model"
)

type jsonOutput struct {
	HeadShape string                  `json:"head_shape"`
	Hairstyle string                  `json:"hairstyle"`
	Shape     jsonShape               `json:"shape"`
	Materials map[string]jsonMaterial `json:"materials"`
	Root      jsonNode                `json:"root"`
}

type jsonShape struct {
	Height   float64 `json:"height"`
	Build    float64 `json:"build"`
	HeadSize float64 `json:"head_size"`
}

type jsonMaterial struct {
	Color     string  `json:"color"`
	Roughness float64 `json:"roughness"`
	Metalness float64 `json:"metalness"`
	Owners    int     `json:"owners"`
}

type jsonNode struct {
	Name      string        `json:"name"`
	Position  [3]float64    `json:"position"`
	Rotation  [3]float64    `json:"rotation"`
	Scale     [3]float64    `json:"scale"`
	Geometry  *jsonGeometry `json:"geometry,omitempty"`
	Material  string        `json:"material,omitempty"`
	Color     string        `json:"color,omitempty"`
	Children  []jsonNode    `json:"children,omitempty"`
}

type jsonGeometry struct {
	Kind      string `json:"kind"`
	Spec      string `json:"spec"`
	Triangles int    `json:"triangles"`
}

// RenderJSON describes the part tree of c as indented JSON.
func RenderJSON(c *model.Character) ([]byte, error) {
	sh := c.Shape()
	out := jsonOutput{
		HeadShape: c.HeadShape(),
		Hairstyle: c.Hairstyle(),
		Shape:     jsonShape{Height: sh.Height, Build: sh.Build, HeadSize: sh.HeadSize},
		Materials: make(map[string]jsonMaterial),
		Root:      buildNode(c.Root()),
	}
	for _, slot := range c.Slots() {
		m, _ := c.Material(slot)
		out.Materials[string(slot)] = jsonMaterial{
			Color:     m.Color.Hex(),
			Roughness: m.Roughness,
			Metalness: m.Metalness,
			Owners:    len(c.Owners(slot)),
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode model")
	}
	return data, nil
}

func buildNode(n *model.Node) jsonNode {
	t := n.Transform
	out := jsonNode{
		Name:     n.Name,
		Position: t.Position,
		Rotation: t.Rotation,
		Scale:    t.Scale,
	}
	if g := n.Geometry; g != nil {
		out.Geometry = &jsonGeometry{Kind: string(g.Kind()), Spec: g.Spec().String(), Triangles: g.TriangleCount()}
	}
	if m := n.Material; m != nil {
		out.Material = string(m.Slot)
		out.Color = m.Color.Hex()
	}
	for _, child := range n.Children() {
		out.Children = append(out.Children, buildNode(child))
	}
	return out
}
