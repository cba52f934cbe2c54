package model

import (
	"math"
	"slices"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/mypoly/pkg/catalog"
	"github.com/matzehuels/mypoly/pkg/color"
	"github.com/matzehuels/mypoly/pkg/errors"
	"github.com/matzehuels/mypoly/pkg/mesh"
	"github.com/matzehuels/mypoly/pkg/observability"
	"github.com/matzehuels/mypoly/pkg/state"
)

// Part names.
const (
	PartRoot      = "character"
	PartTorso     = "torso"
	PartHeadGroup = "head-group"
	PartHead      = "head"
	PartEyeLeft   = "eye-left"
	PartEyeRight  = "eye-right"
	PartHairGroup = "hair-group"
	PartHair      = "hair"
	PartLegLeft   = "leg-left"
	PartLegRight  = "leg-right"
	PartShoeLeft  = "shoe-left"
	PartShoeRight = "shoe-right"
	PartArmLeft   = "arm-left"
	PartArmRight  = "arm-right"
)

// Body dimensions.
const (
	neckHeight = 0.8
	legLength  = 0.8
	legX       = 0.15
	armX       = 0.4
	armY       = 0.45
	armTilt    = 0.2
	shoeHeight = 0.08

	// BobAmplitude and BobFrequency shape the idle animation.
	BobAmplitude = 0.05
	BobFrequency = 2.0
)

var (
	torsoSpec = mesh.Cylinder(0.3, 0.25, 0.7, 5)
	eyeSpec   = mesh.Box(0.05, 0.05, 0.02)
	legSpec   = mesh.Cylinder(0.08, 0.06, legLength, 5)
	armSpec   = mesh.Cylinder(0.07, 0.05, 0.7, 5)
	shoeSpec  = mesh.Box(0.14, shoeHeight, 0.22)
)

// ScaleParams carries the optional inputs of [Character.UpdateScale]. Nil
// fields leave the corresponding proportion unchanged.
type ScaleParams struct {
	Height   *float64
	Build    *float64
	HeadSize *float64
}

// WithHeight returns a copy of p with Height set.
func (p ScaleParams) WithHeight(v float64) ScaleParams { p.Height = &v; return p }

// WithBuild returns a copy of p with Build set.
func (p ScaleParams) WithBuild(v float64) ScaleParams { p.Build = &v; return p }

// WithHeadSize returns a copy of p with HeadSize set.
func (p ScaleParams) WithHeadSize(v float64) ScaleParams { p.HeadSize = &v; return p }

// ScaleOf returns params setting all three proportions from sh.
func ScaleOf(sh state.Shape) ScaleParams {
	return ScaleParams{}.WithHeight(sh.Height).WithBuild(sh.Build).WithHeadSize(sh.HeadSize)
}

// Option configures [New].
type Option func(*Character)

// WithPool allocates geometries from p instead of a private pool.
func WithPool(p *mesh.Pool) Option {
	return func(c *Character) { c.pool = p }
}

// Character is the assembled 3D mannequin.
type Character struct {
	catalog *catalog.Catalog
	pool    *mesh.Pool

	root      *Node
	torso     *Node
	headGroup *Node
	head      *Node
	hairGroup *Node
	legs      [2]*Node
	shoes     [2]*Node

	materials map[catalog.Slot]*Material
	owners    map[catalog.Slot][]*Node

	headShape string
	hairstyle string
	shape     state.Shape
	closed    bool
}

// New builds the default character: first head shape, first hairstyle, unit
// proportions and the first palette color of every slot.
func New(cat *catalog.Catalog, opts ...Option) (*Character, error) {
	headOpt, ok := cat.First(catalog.HeadShape)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "catalog has no %s options", catalog.HeadShape)
	}
	hairOpt, ok := cat.First(catalog.Hairstyle)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "catalog has no %s options", catalog.Hairstyle)
	}

	c := &Character{
		catalog:   cat,
		materials: make(map[catalog.Slot]*Material, len(materialSlots)),
		owners:    make(map[catalog.Slot][]*Node, len(materialSlots)),
		shape:     state.Shape{Height: 1, Build: 1, HeadSize: 1},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.pool == nil {
		c.pool = mesh.NewPool()
	}
	for _, slot := range materialSlots {
		c.materials[slot] = flatMaterial(slot, defaultColor(cat, slot))
	}

	headGeo, err := c.pool.Build(headOpt.Hint.Geometry)
	if err != nil {
		return nil, err
	}
	c.build(headGeo)
	c.headShape = headOpt.ID
	if err := c.SetHairstyle(hairOpt.ID); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Character) build(headGeo *mesh.Geometry) {
	c.root = NewGroup(PartRoot, Identity())

	c.torso = c.part(c.root, PartTorso, At(0, 0.35, 0), torsoSpec, catalog.SlotShirt)

	c.headGroup = NewGroup(PartHeadGroup, At(0, neckHeight, 0))
	c.root.Add(c.headGroup)
	c.head = NewPart(PartHead, Identity(), headGeo, c.materials[catalog.SlotSkin])
	c.headGroup.Add(c.head)
	c.own(catalog.SlotSkin, c.head)

	eyes := &Material{Color: color.Black, Unlit: true}
	for _, e := range []struct {
		name string
		x    float64
	}{{PartEyeLeft, -0.1}, {PartEyeRight, 0.1}} {
		c.headGroup.Add(NewPart(e.name, At(e.x, 0.05, 0.22), c.pool.MustBuild(eyeSpec), eyes))
	}

	c.hairGroup = NewGroup(PartHairGroup, Identity())
	c.headGroup.Add(c.hairGroup)

	for i, side := range []struct {
		leg, shoe, arm string
		sign           float64
	}{
		{PartLegLeft, PartShoeLeft, PartArmLeft, -1},
		{PartLegRight, PartShoeRight, PartArmRight, 1},
	} {
		c.legs[i] = c.part(c.root, side.leg, At(side.sign*legX, -legLength/2, 0), legSpec, catalog.SlotPants)
		c.shoes[i] = c.part(c.root, side.shoe, At(side.sign*legX, -legLength-shoeHeight/2, 0.03), shoeSpec, catalog.SlotShoes)
		arm := c.part(c.root, side.arm, At(side.sign*armX, armY, 0), armSpec, catalog.SlotSkin)
		arm.Transform.Rotation = mgl64.Vec3{0, 0, -side.sign * armTilt}
	}
}

func (c *Character) part(parent *Node, name string, t Transform, spec mesh.Spec, slot catalog.Slot) *Node {
	n := NewPart(name, t, c.pool.MustBuild(spec), c.materials[slot])
	parent.Add(n)
	c.own(slot, n)
	return n
}

func (c *Character) own(slot catalog.Slot, n *Node) {
	c.owners[slot] = append(c.owners[slot], n)
}

// detach removes n from the tree, releases every geometry in its subtree and
// drops the subtree from the owner table. It returns the number of released
// geometries.
func (c *Character) detach(n *Node) int {
	released := 0
	Walk(n, func(x *Node, _ int) bool {
		if x.Geometry != nil {
			x.Geometry.Release()
			released++
		}
		if x.Material != nil && x.Material.Slot != "" {
			c.owners[x.Material.Slot] = slices.DeleteFunc(c.owners[x.Material.Slot], func(o *Node) bool { return o == x })
		}
		return true
	})
	if p := n.Parent(); p != nil {
		p.Remove(n)
	}
	return released
}

func (c *Character) checkOpen() error {
	if c.closed {
		return errors.New(errors.ErrCodeUnsupported, "character is closed")
	}
	return nil
}

// Root returns the root node to attach to a scene.
func (c *Character) Root() *Node { return c.root }

// Pool returns the geometry pool of the character.
func (c *Character) Pool() *mesh.Pool { return c.pool }

// HeadShape returns the current head shape id.
func (c *Character) HeadShape() string { return c.headShape }

// Hairstyle returns the current hairstyle id.
func (c *Character) Hairstyle() string { return c.hairstyle }

// Shape returns the proportions last applied by UpdateScale.
func (c *Character) Shape() state.Shape { return c.shape }

// Material returns the shared material of slot.
func (c *Character) Material(slot catalog.Slot) (*Material, bool) {
	m, ok := c.materials[slot]
	return m, ok
}

// Slots returns the slots that have a shared material.
func (c *Character) Slots() []catalog.Slot { return slices.Clone(materialSlots) }

// Owners returns the parts that use the material of slot.
func (c *Character) Owners(slot catalog.Slot) []*Node {
	return slices.Clone(c.owners[slot])
}

// SetHairstyle replaces the contents of the hair group with the geometry of
// the hairstyle id. Every previous hair geometry is released.
func (c *Character) SetHairstyle(id string) error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	opt, err := c.catalog.GetOption(catalog.Hairstyle, id)
	if err != nil {
		return errors.InvalidSelection(string(catalog.Hairstyle), id)
	}
	g, err := c.pool.Build(opt.Hint.Geometry)
	if err != nil {
		return err
	}

	released := 0
	for _, child := range c.hairGroup.Children() {
		released += c.detach(child)
	}
	hair := NewPart(PartHair, At(0, opt.Hint.Offset, 0), g, c.materials[catalog.SlotHair])
	c.hairGroup.Add(hair)
	c.own(catalog.SlotHair, hair)
	c.hairstyle = id

	observability.Builder().OnGeometrySwap(PartHair, string(g.Kind()), released)
	return nil
}

// SetHeadShape swaps the head geometry for the shape id. The head keeps its
// material, position and children; the head group keeps its scale.
func (c *Character) SetHeadShape(id string) error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	opt, err := c.catalog.GetOption(catalog.HeadShape, id)
	if err != nil {
		return errors.InvalidSelection(string(catalog.HeadShape), id)
	}
	g, err := c.pool.Build(opt.Hint.Geometry)
	if err != nil {
		return err
	}

	old := c.head.Geometry
	c.head.Geometry = g
	old.Release()
	c.headShape = id

	observability.Builder().OnGeometrySwap(PartHead, string(g.Kind()), 1)
	return nil
}

// UpdateScale applies the proportions set in p. Height stretches the legs
// and keeps their tops at the hip; HeadSize scales the head group uniformly;
// Build widens the torso. Every value is checked against the catalog bounds
// before any is applied.
func (c *Character) UpdateScale(p ScaleParams) error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	type update struct {
		name  string
		value float64
		apply func(float64)
	}
	var updates []update
	if p.Height != nil {
		updates = append(updates, update{catalog.ParamHeight, *p.Height, c.setHeight})
	}
	if p.Build != nil {
		updates = append(updates, update{catalog.ParamBuild, *p.Build, c.setBuild})
	}
	if p.HeadSize != nil {
		updates = append(updates, update{catalog.ParamHeadSize, *p.HeadSize, c.setHeadSize})
	}
	for _, u := range updates {
		if param, ok := c.catalog.Param(u.name); ok && !param.Contains(u.value) {
			return errors.OutOfRange(u.name, u.value, param.Min, param.Max)
		}
	}
	for _, u := range updates {
		u.apply(u.value)
		observability.Builder().OnRescale(u.name, u.value)
	}
	return nil
}

func (c *Character) setHeight(s float64) {
	for i := range c.legs {
		c.legs[i].Transform.Scale[1] = s
		c.legs[i].Transform.Position[1] = -legLength / 2 * s
		c.shoes[i].Transform.Position[1] = -legLength*s - shoeHeight/2
	}
	c.shape.Height = s
}

func (c *Character) setBuild(s float64) {
	c.torso.Transform.Scale[0] = s
	c.torso.Transform.Scale[2] = s
	c.shape.Build = s
}

func (c *Character) setHeadSize(s float64) {
	c.headGroup.Transform.Scale = mgl64.Vec3{s, s, s}
	c.shape.HeadSize = s
}

// SetColor changes the shared material of slot. Every part in the slot is
// recolored by the single call.
func (c *Character) SetColor(slot catalog.Slot, col color.Color) error {
	m, ok := c.materials[slot]
	if !ok {
		return errors.InvalidSelection("color slot", string(slot))
	}
	m.Color = col
	observability.Builder().OnRecolor(string(slot), col.Hex(), len(c.owners[slot]))
	return nil
}

// Apply brings the character in line with a solid-variant state. Geometry is
// only swapped for selections that changed.
func (c *Character) Apply(st *state.State) error {
	if st.Variant() != catalog.Solid {
		return errors.New(errors.ErrCodeUnsupported, "cannot apply %s state to a 3D character", st.Variant())
	}
	if err := st.Validate(); err != nil {
		return err
	}
	if id := st.Selection(catalog.HeadShape); id != c.headShape {
		if err := c.SetHeadShape(id); err != nil {
			return err
		}
	}
	if id := st.Selection(catalog.Hairstyle); id != c.hairstyle {
		if err := c.SetHairstyle(id); err != nil {
			return err
		}
	}
	for slot, col := range st.Colors() {
		if m, ok := c.materials[slot]; ok && m.Color != col {
			if err := c.SetColor(slot, col); err != nil {
				return err
			}
		}
	}
	return c.UpdateScale(ScaleOf(st.Shape()))
}

// Bob sets the idle vertical offset of the whole character for the given
// time since the animation started.
func (c *Character) Bob(elapsed time.Duration) {
	c.root.Transform.Position[1] = BobAmplitude * math.Sin(elapsed.Seconds()*BobFrequency)
}

// Close releases every geometry of the character. It is safe to call more
// than once.
func (c *Character) Close() {
	if c.closed {
		return
	}
	Walk(c.root, func(n *Node, _ int) bool {
		if n.Geometry != nil {
			n.Geometry.Release()
		}
		return true
	})
	c.closed = true
}
