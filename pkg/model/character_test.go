package model

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/matzehuels/mypoly/pkg/catalog"
	"github.com/matzehuels/mypoly/pkg/color"
	"github.com/matzehuels/mypoly/pkg/errors"
	"github.com/matzehuels/mypoly/pkg/mesh"
	"github.com/matzehuels/mypoly/pkg/observability"
	"github.com/matzehuels/mypoly/pkg/state"
)

func newCharacter(t *testing.T) *Character {
	t.Helper()
	c, err := New(catalog.Default())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestNewLayout(t *testing.T) {
	c := newCharacter(t)
	root := c.Root()

	for _, name := range []string{
		PartTorso, PartHeadGroup, PartHead, PartEyeLeft, PartEyeRight, PartHairGroup,
		PartHair, PartLegLeft, PartLegRight, PartShoeLeft, PartShoeRight, PartArmLeft, PartArmRight,
	} {
		if root.Find(name) == nil {
			t.Errorf("missing part %q", name)
		}
	}
	if got := root.Find(PartHead).Parent(); got != root.Find(PartHeadGroup) {
		t.Error("head is not a child of the head group")
	}
	if got := root.Find(PartHair).Parent(); got != root.Find(PartHairGroup) {
		t.Error("hair is not a child of the hair group")
	}
	if c.HeadShape() != "shape1" || c.Hairstyle() != "style1" {
		t.Errorf("defaults = %s/%s, want shape1/style1", c.HeadShape(), c.Hairstyle())
	}
	if arm := root.Find(PartArmLeft); arm.Transform.Rotation.Z() != 0.2 || arm.Transform.Position.X() != -0.4 {
		t.Errorf("left arm transform = %+v", arm.Transform)
	}
	// torso, head, 2 eyes, hair, 2 legs, 2 shoes, 2 arms
	if got := c.Pool().Live(); got != 11 {
		t.Errorf("live geometries = %d, want 11", got)
	}
}

func TestNewMatchesStateDefaults(t *testing.T) {
	c := newCharacter(t)
	st := state.New(catalog.Default(), catalog.Solid)
	for _, slot := range c.Slots() {
		m, _ := c.Material(slot)
		want, ok := st.Color(slot)
		if !ok {
			t.Fatalf("state has no %s color", slot)
		}
		if m.Color != want {
			t.Errorf("%s material = %s, want state default %s", slot, m.Color.Hex(), want.Hex())
		}
	}
}

func TestSetHairstyle(t *testing.T) {
	c := newCharacter(t)
	live := c.Pool().Live()

	for _, id := range []string{"style2", "style3", "style1", "style1"} {
		if err := c.SetHairstyle(id); err != nil {
			t.Fatalf("SetHairstyle(%s) error: %v", id, err)
		}
		hairGroup := c.Root().Find(PartHairGroup)
		children := hairGroup.Children()
		if len(children) != 1 {
			t.Fatalf("hair group has %d children, want 1", len(children))
		}
		opt, _ := catalog.Default().GetOption(catalog.Hairstyle, id)
		if got := children[0].Geometry.Spec(); got != opt.Hint.Geometry {
			t.Errorf("hair spec = %v, want %v", got, opt.Hint.Geometry)
		}
		if got := children[0].Transform.Position.Y(); got != opt.Hint.Offset {
			t.Errorf("hair offset = %v, want %v", got, opt.Hint.Offset)
		}
		if c.Pool().Live() != live {
			t.Errorf("live geometries = %d after swap, want %d", c.Pool().Live(), live)
		}
		if n := len(c.Owners(catalog.SlotHair)); n != 1 {
			t.Errorf("hair owners = %d, want 1", n)
		}
	}
}

func TestSetHeadShape(t *testing.T) {
	c := newCharacter(t)
	if err := c.UpdateScale(ScaleParams{}.WithHeadSize(1.3)); err != nil {
		t.Fatal(err)
	}
	head := c.Root().Find(PartHead)
	old := head.Geometry
	mat := head.Material
	eyes := c.Root().Find(PartEyeLeft).Transform
	hair := c.Root().Find(PartHair)

	if err := c.SetHeadShape("shape2"); err != nil {
		t.Fatalf("SetHeadShape() error: %v", err)
	}

	if !old.Released() {
		t.Error("previous head geometry not released")
	}
	if head.Geometry.Kind() != mesh.KindBox || head.Geometry.Spec() != mesh.Box(0.4, 0.5, 0.4) {
		t.Errorf("head geometry = %v, want box 0.4x0.5x0.4", head.Geometry.Spec())
	}
	if head.Material != mat {
		t.Error("head material changed")
	}
	if c.Root().Find(PartEyeLeft).Transform != eyes {
		t.Error("eye transform changed")
	}
	if c.Root().Find(PartHair) != hair || hair.Geometry.Released() {
		t.Error("hair changed")
	}
	if got := c.Root().Find(PartHeadGroup).Transform.Scale; got != (mgl64.Vec3{1.3, 1.3, 1.3}) {
		t.Errorf("head group scale = %v, want 1.3", got)
	}
	if c.Root().Find(PartHeadGroup).Transform.Position.Y() != neckHeight {
		t.Error("head group moved")
	}
}

func TestUnknownIDsLeaveModelUnchanged(t *testing.T) {
	c := newCharacter(t)
	head := c.Root().Find(PartHead).Geometry
	hair := c.Root().Find(PartHair).Geometry

	if err := c.SetHeadShape("shape9"); !errors.Is(err, errors.ErrCodeInvalidSelection) {
		t.Errorf("SetHeadShape(shape9) error = %v, want INVALID_SELECTION", err)
	}
	if err := c.SetHairstyle("style9"); !errors.Is(err, errors.ErrCodeInvalidSelection) {
		t.Errorf("SetHairstyle(style9) error = %v, want INVALID_SELECTION", err)
	}
	if err := c.SetColor(catalog.SlotEyes, color.White); !errors.Is(err, errors.ErrCodeInvalidSelection) {
		t.Errorf("SetColor(eyes) error = %v, want INVALID_SELECTION", err)
	}
	if c.Root().Find(PartHead).Geometry != head || head.Released() {
		t.Error("head geometry changed")
	}
	if c.Root().Find(PartHair).Geometry != hair || hair.Released() {
		t.Error("hair geometry changed")
	}
}

func TestUpdateScaleHeight(t *testing.T) {
	c := newCharacter(t)
	if err := c.UpdateScale(ScaleParams{}.WithHeight(1.2)); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{PartLegLeft, PartLegRight} {
		leg := c.Root().Find(name)
		if leg.Transform.Scale.Y() != 1.2 {
			t.Errorf("%s scale.y = %v, want 1.2", name, leg.Transform.Scale.Y())
		}
		if math.Abs(leg.Transform.Position.Y()-(-0.48)) > 1e-12 {
			t.Errorf("%s y = %v, want -0.48", name, leg.Transform.Position.Y())
		}
		// The top of the leg stays at the hip.
		top := leg.World().Mul4x1(mgl64.Vec4{0, legLength / 2, 0, 1})
		if math.Abs(top.Y()) > 1e-12 {
			t.Errorf("%s top at %v, want 0", name, top.Y())
		}
	}
	if torso := c.Root().Find(PartTorso); torso.Transform.Scale != (mgl64.Vec3{1, 1, 1}) {
		t.Errorf("height changed torso scale to %v", torso.Transform.Scale)
	}
}

func TestUpdateScaleCommutes(t *testing.T) {
	h, b, s := 1.2, 0.9, 1.4
	params := []ScaleParams{
		ScaleParams{}.WithHeight(h),
		ScaleParams{}.WithBuild(b),
		ScaleParams{}.WithHeadSize(s),
	}
	orders := [][]int{{0, 1, 2}, {2, 1, 0}, {1, 0, 2}, {1, 2, 0}}

	var want map[string]Transform
	for _, order := range orders {
		c := newCharacter(t)
		for _, i := range order {
			if err := c.UpdateScale(params[i]); err != nil {
				t.Fatal(err)
			}
		}
		// Applying again is idempotent.
		if err := c.UpdateScale(ScaleParams{}.WithHeight(h).WithBuild(b).WithHeadSize(s)); err != nil {
			t.Fatal(err)
		}
		got := transforms(c.Root())
		if want == nil {
			want = got
			continue
		}
		for name, tr := range want {
			if got[name] != tr {
				t.Errorf("order %v: %s transform = %+v, want %+v", order, name, got[name], tr)
			}
		}
	}
}

func TestUpdateScaleOutOfRange(t *testing.T) {
	c := newCharacter(t)
	before := transforms(c.Root())

	err := c.UpdateScale(ScaleParams{}.WithBuild(1.1).WithHeight(2))
	if !errors.Is(err, errors.ErrCodeOutOfRange) {
		t.Fatalf("UpdateScale() error = %v, want OUT_OF_RANGE", err)
	}
	after := transforms(c.Root())
	for name, tr := range before {
		if after[name] != tr {
			t.Errorf("%s changed after rejected update", name)
		}
	}
}

func TestSetColorSharedMaterial(t *testing.T) {
	c := newCharacter(t)
	red := color.MustParse("#FF0000")
	if err := c.SetColor(catalog.SlotSkin, red); err != nil {
		t.Fatal(err)
	}
	owners := c.Owners(catalog.SlotSkin)
	if len(owners) != 3 {
		t.Fatalf("skin owners = %d, want head and two arms", len(owners))
	}
	for _, name := range []string{PartHead, PartArmLeft, PartArmRight} {
		if got := c.Root().Find(name).Material.Color; got != red {
			t.Errorf("%s color = %v, want red", name, got)
		}
	}
	if got := c.Root().Find(PartTorso).Material.Color; got == red {
		t.Error("torso recolored with skin")
	}

	// New hair picks up the current hair color.
	if err := c.SetColor(catalog.SlotHair, red); err != nil {
		t.Fatal(err)
	}
	if err := c.SetHairstyle("style3"); err != nil {
		t.Fatal(err)
	}
	if got := c.Root().Find(PartHair).Material.Color; got != red {
		t.Errorf("new hair color = %v, want red", got)
	}
}

func TestApplyState(t *testing.T) {
	cat := catalog.Default()
	st := state.New(cat, catalog.Solid)
	st.RandomizeWith(state.NewRand(4), state.Policy{Colors: state.DefaultPolicy(catalog.Solid).Colors, Shape: true})

	c := newCharacter(t)
	if err := c.Apply(st); err != nil {
		t.Fatalf("Apply() error: %v", err)
	}
	if c.HeadShape() != st.Selection(catalog.HeadShape) || c.Hairstyle() != st.Selection(catalog.Hairstyle) {
		t.Errorf("selections = %s/%s, want %s/%s", c.HeadShape(), c.Hairstyle(),
			st.Selection(catalog.HeadShape), st.Selection(catalog.Hairstyle))
	}
	for slot, want := range st.Colors() {
		m, _ := c.Material(slot)
		if m.Color != want {
			t.Errorf("%s color = %v, want %v", slot, m.Color, want)
		}
	}
	if c.Shape() != st.Shape() {
		t.Errorf("shape = %+v, want %+v", c.Shape(), st.Shape())
	}

	if err := c.Apply(state.New(cat, catalog.Flat)); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Apply(flat) error = %v, want UNSUPPORTED", err)
	}
}

func TestNoLeaks(t *testing.T) {
	pool := mesh.NewPool()
	c, err := New(catalog.Default(), WithPool(pool))
	if err != nil {
		t.Fatal(err)
	}
	rng := state.NewRand(8)
	st := state.New(catalog.Default(), catalog.Solid)
	for i := 0; i < 50; i++ {
		st.Randomize(rng)
		if err := c.Apply(st); err != nil {
			t.Fatal(err)
		}
	}
	c.Close()
	c.Close()
	if pool.Live() != 0 {
		t.Errorf("live geometries after Close = %d, want 0", pool.Live())
	}
	created, released := pool.Stats()
	if created != released {
		t.Errorf("created %d, released %d", created, released)
	}
	if err := c.SetHairstyle("style2"); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("SetHairstyle after Close error = %v, want UNSUPPORTED", err)
	}
}

func TestBob(t *testing.T) {
	c := newCharacter(t)
	c.Bob(0)
	if y := c.Root().Transform.Position.Y(); y != 0 {
		t.Errorf("Bob(0) y = %v", y)
	}
	q := math.Pi / 2 / BobFrequency * float64(time.Second)
	quarter := time.Duration(q)
	c.Bob(quarter)
	if y := c.Root().Transform.Position.Y(); math.Abs(y-BobAmplitude) > 1e-6 {
		t.Errorf("Bob(quarter) y = %v, want %v", y, BobAmplitude)
	}
}

type recordingHooks struct {
	observability.NoopBuilderHooks
	swaps    []string
	recolors map[string]int
}

func (r *recordingHooks) OnGeometrySwap(part, kind string, released int) {
	r.swaps = append(r.swaps, part+":"+kind)
}

func (r *recordingHooks) OnRecolor(slot, hex string, owners int) {
	r.recolors[slot] = owners
}

func TestBuilderHooks(t *testing.T) {
	h := &recordingHooks{recolors: map[string]int{}}
	observability.SetBuilderHooks(h)
	defer observability.Reset()

	c := newCharacter(t)
	_ = c.SetHeadShape("shape3")
	_ = c.SetColor(catalog.SlotPants, color.Black)

	if got := h.swaps[len(h.swaps)-1]; got != "head:cylinder" {
		t.Errorf("last swap = %q, want head:cylinder", got)
	}
	if h.recolors["pants"] != 2 {
		t.Errorf("pants owners reported = %d, want 2", h.recolors["pants"])
	}
}

func transforms(root *Node) map[string]Transform {
	out := make(map[string]Transform)
	Walk(root, func(n *Node, _ int) bool {
		out[n.Name] = n.Transform
		return true
	})
	return out
}
