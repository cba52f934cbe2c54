package catalog

import (
	"sync"

	"github.com/matzehuels/mypoly/pkg/color"
	"github.com/matzehuels/mypoly/pkg/mesh"
)

// Shape parameter names.
const (
	ParamHeight   = "height"
	ParamBuild    = "build"
	ParamHeadSize = "headSize"
)

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in catalog. It is built once and shared.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := New(DefaultDefinition())
		if err != nil {
			panic("catalog: invalid built-in definition: " + err.Error())
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// DefaultDefinition returns the raw built-in definition. Callers may extend
// it and pass it to New.
func DefaultDefinition() Definition {
	return Definition{
		Categories: map[Variant][]Category{
			Flat:  {Face, Eyes, Mouth, Hair},
			Solid: {HeadShape, Hairstyle},
		},
		Slots: map[Variant][]Slot{
			Flat:  {SlotSkin, SlotHair, SlotEyes, SlotClothes},
			Solid: {SlotSkin, SlotShirt, SlotPants, SlotHair, SlotShoes},
		},
		Options: map[Category][]PartOption{
			Face:      faceOptions,
			Eyes:      eyeOptions,
			Mouth:     mouthOptions,
			Hair:      hairOptions,
			HeadShape: headShapeOptions,
			Hairstyle: hairstyleOptions,
		},
		Palettes: map[Slot][]color.Color{
			SlotSkin:    palette("#FFDBAC", "#F1C27D", "#E0AC69", "#8D5524", "#C68642"),
			SlotHair:    palette("#090806", "#2C1608", "#4E2708", "#B55239", "#D6C4C2", "#4B1910", "#E5C09B"),
			SlotEyes:    palette("#2D2926", "#3E2723", "#1B5E20", "#0D47A1", "#4E342E"),
			SlotClothes: palette("#6366F1", "#EC4899", "#10B981", "#F59E0B", "#3B82F6", "#EF4444"),
			SlotShirt:   palette("#3B82F6", "#6366F1", "#EC4899", "#10B981", "#F59E0B", "#EF4444"),
			SlotPants:   palette("#1E293B", "#334155", "#1E3A8A", "#3F3F46", "#78350F"),
			SlotShoes:   palette("#111111", "#3F3F46", "#78350F", "#F5F5F5"),
		},
		Params: []Param{
			{Name: ParamHeight, Label: "Height", Min: 0.8, Max: 1.5, Default: 1, Step: 0.05},
			{Name: ParamBuild, Label: "Build", Min: 0.8, Max: 1.5, Default: 1, Step: 0.05},
			{Name: ParamHeadSize, Label: "Head Size", Min: 0.8, Max: 1.5, Default: 1, Step: 0.05},
		},
	}
}

func palette(hex ...string) []color.Color {
	out := make([]color.Color, len(hex))
	for i, h := range hex {
		out[i] = color.MustParse(h)
	}
	return out
}

func fragment(id, name, markup string) PartOption {
	return PartOption{ID: id, Name: name, Hint: Hint{Fragment: markup}}
}

func solid(id, name string, spec mesh.Spec, offset float64) PartOption {
	return PartOption{ID: id, Name: name, Hint: Hint{Geometry: spec, Offset: offset}}
}

var faceOptions = []PartOption{
	fragment("face-1", "Original", `<path d="M100,100 Q100,50 200,50 Q300,50 300,100 L300,300 Q300,400 200,400 Q100,400 100,300 Z" fill="currentColor" />`),
	fragment("face-2", "Sharp", `<path d="M100,100 L200,50 L300,100 L300,300 L200,400 L100,300 Z" fill="currentColor" />`),
	fragment("face-3", "Round", `<circle cx="200" cy="225" r="150" fill="currentColor" />`),
}

var eyeOptions = []PartOption{
	fragment("eyes-1", "Dot", `<circle cx="150" cy="200" r="10" /><circle cx="250" cy="200" r="10" />`),
	fragment("eyes-2", "Square", `<rect x="140" y="190" width="20" height="20" /><rect x="240" y="190" width="20" height="20" />`),
	fragment("eyes-3", "Closed", `<path d="M130,200 Q150,220 170,200" fill="none" stroke="currentColor" stroke-width="4" /><path d="M230,200 Q250,220 270,200" fill="none" stroke="currentColor" stroke-width="4" />`),
}

var mouthOptions = []PartOption{
	fragment("mouth-1", "Smile", `<path d="M170,300 Q200,330 230,300" fill="none" stroke="currentColor" stroke-width="4" stroke-linecap="round" />`),
	fragment("mouth-2", "Flat", `<line x1="170" y1="310" x2="230" y2="310" stroke="currentColor" stroke-width="4" stroke-linecap="round" />`),
	fragment("mouth-3", "Surprised", `<circle cx="200" cy="310" r="10" fill="none" stroke="currentColor" stroke-width="4" />`),
}

var hairOptions = []PartOption{
	fragment("hair-1", "Bowl", `<path d="M100,120 Q100,50 200,50 Q300,50 300,120 L300,180 L100,180 Z" fill="currentColor" />`),
	fragment("hair-2", "Spiky", `<path d="M100,180 L100,120 L130,50 L160,100 L200,30 L240,100 L270,50 L300,120 L300,180 Z" fill="currentColor" />`),
	fragment("hair-3", "Bald", ``),
}

var headShapeOptions = []PartOption{
	solid("shape1", "Round", mesh.Icosahedron(0.25), 0),
	solid("shape2", "Blocky", mesh.Box(0.4, 0.5, 0.4), 0),
	solid("shape3", "Angular", mesh.Cylinder(0.2, 0.25, 0.5, 6), 0),
}

var hairstyleOptions = []PartOption{
	solid("style1", "Short Messy", mesh.Icosahedron(0.27), 0.05),
	solid("style2", "Flat Top", mesh.Cylinder(0.28, 0.28, 0.2, 6), 0.15),
	solid("style3", "Mohawk", mesh.Box(0.1, 0.4, 0.4), 0.25),
}
