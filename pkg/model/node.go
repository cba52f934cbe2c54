package model

import (
	"slices"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/mypoly/pkg/mesh"
)

// Node is an element of the part hierarchy.
type Node struct {
	Name      string
	Transform Transform
	Geometry  *mesh.Geometry // nil for groups
	Material  *Material      // nil for groups

	parent   *Node
	children []*Node
}

// NewGroup returns an empty group node.
func NewGroup(name string, t Transform) *Node {
	return &Node{Name: name, Transform: t}
}

// NewPart returns a leaf node drawing g with m.
func NewPart(name string, t Transform, g *mesh.Geometry, m *Material) *Node {
	return &Node{Name: name, Transform: t, Geometry: g, Material: m}
}

// IsGroup reports whether the node carries no geometry.
func (n *Node) IsGroup() bool { return n.Geometry == nil }

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the child list.
func (n *Node) Children() []*Node { return slices.Clone(n.children) }

// Add attaches child to n, detaching it from any previous parent.
func (n *Node) Add(child *Node) {
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from n. It reports whether child was attached.
func (n *Node) Remove(child *Node) bool {
	i := slices.Index(n.children, child)
	if i < 0 {
		return false
	}
	n.children = slices.Delete(n.children, i, i+1)
	child.parent = nil
	return true
}

// World returns the node's transform composed with all of its ancestors.
func (n *Node) World() mgl64.Mat4 {
	m := n.Transform.Matrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.Transform.Matrix().Mul4(m)
	}
	return m
}

// Find returns the first node named name in the subtree, depth first.
func (n *Node) Find(name string) *Node {
	var found *Node
	Walk(n, func(x *Node, _ int) bool {
		if x.Name == name {
			found = x
			return false
		}
		return true
	})
	return found
}

// Walk visits n and its descendants depth first, passing the depth of each
// node. Returning false from fn stops the walk.
func Walk(n *Node, fn func(*Node, int) bool) {
	walk(n, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) bool {
	if !fn(n, depth) {
		return false
	}
	for _, c := range n.children {
		if !walk(c, depth+1, fn) {
			return false
		}
	}
	return true
}
