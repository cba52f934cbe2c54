package catalog

import (
	"slices"

	"github.com/matzehuels/mypoly/pkg/color"
	"github.com/matzehuels/mypoly/pkg/errors"
	"github.com/matzehuels/mypoly/pkg/mesh"
)

// Variant selects which renderer a category or slot belongs to.
type Variant string

const (
	Flat  Variant = "flat"  // 2D layered vector art
	Solid Variant = "solid" // 3D rigged-primitive mannequin
)

// Category is a customization axis with a fixed, ordered option set.
type Category string

const (
	Face      Category = "face"
	Eyes      Category = "eyes"
	Mouth     Category = "mouth"
	Hair      Category = "hair"
	HeadShape Category = "headShape"
	Hairstyle Category = "hairstyle"
)

// Slot is a semantic color slot.
type Slot string

const (
	SlotSkin    Slot = "skin"
	SlotHair    Slot = "hair"
	SlotEyes    Slot = "eyes"
	SlotClothes Slot = "clothes"
	SlotShirt   Slot = "shirt"
	SlotPants   Slot = "pants"
	SlotShoes   Slot = "shoes"
)

// Hint is what a renderer needs to draw an option.
type Hint struct {
	Fragment string    // SVG markup for flat options; may be empty (e.g. bald)
	Geometry mesh.Spec // primitive for solid options
	Offset   float64   // vertical offset of the geometry within its parent
}

// PartOption is one selectable entry within a category.
type PartOption struct {
	ID   string
	Name string
	Hint Hint
}

// Param is the declaration of a continuous shape parameter.
type Param struct {
	Name    string
	Label   string
	Min     float64
	Max     float64
	Default float64
	Step    float64
}

// Contains reports whether v is within the declared bounds.
func (p Param) Contains(v float64) bool {
	return v >= p.Min && v <= p.Max
}

// Catalog is the immutable registry of options, palettes and parameters.
type Catalog struct {
	categories map[Variant][]Category
	slots      map[Variant][]Slot
	options    map[Category][]PartOption
	index      map[Category]map[string]int
	palettes   map[Slot][]color.Color
	params     []Param
}

// Definition is the raw input for New.
type Definition struct {
	Categories map[Variant][]Category
	Slots      map[Variant][]Slot
	Options    map[Category][]PartOption
	Palettes   map[Slot][]color.Color
	Params     []Param
}

// New validates def and builds a catalog from it. Every category must have at
// least one option with unique ids, every slot a non-empty palette, and every
// parameter a default within its bounds.
func New(def Definition) (*Catalog, error) {
	c := &Catalog{
		categories: make(map[Variant][]Category, len(def.Categories)),
		slots:      make(map[Variant][]Slot, len(def.Slots)),
		options:    make(map[Category][]PartOption, len(def.Options)),
		index:      make(map[Category]map[string]int, len(def.Options)),
		palettes:   make(map[Slot][]color.Color, len(def.Palettes)),
		params:     slices.Clone(def.Params),
	}

	for v, cats := range def.Categories {
		for _, cat := range cats {
			opts := def.Options[cat]
			if len(opts) == 0 {
				return nil, errors.New(errors.ErrCodeInvalidInput, "category %s has no options", cat)
			}
			idx := make(map[string]int, len(opts))
			for i, o := range opts {
				if err := errors.ValidateID(o.ID); err != nil {
					return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "category %s", cat)
				}
				if _, dup := idx[o.ID]; dup {
					return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate id %q in category %s", o.ID, cat)
				}
				if v == Solid {
					if err := o.Hint.Geometry.Validate(); err != nil {
						return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "%s option %q", cat, o.ID)
					}
				}
				idx[o.ID] = i
			}
			c.options[cat] = slices.Clone(opts)
			c.index[cat] = idx
		}
		c.categories[v] = slices.Clone(cats)
	}

	for v, slots := range def.Slots {
		for _, s := range slots {
			if len(def.Palettes[s]) == 0 {
				return nil, errors.New(errors.ErrCodeInvalidInput, "slot %s has no palette", s)
			}
			c.palettes[s] = slices.Clone(def.Palettes[s])
		}
		c.slots[v] = slices.Clone(slots)
	}

	for _, p := range c.params {
		if p.Min >= p.Max || !p.Contains(p.Default) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "parameter %s has invalid bounds", p.Name)
		}
	}
	return c, nil
}

// Categories returns the ordered categories of a variant.
func (c *Catalog) Categories(v Variant) []Category {
	return slices.Clone(c.categories[v])
}

// Slots returns the ordered color slots of a variant.
func (c *Catalog) Slots(v Variant) []Slot {
	return slices.Clone(c.slots[v])
}

// HasCategory reports whether cat is registered for any variant.
func (c *Catalog) HasCategory(cat Category) bool {
	_, ok := c.options[cat]
	return ok
}

// HasSlot reports whether s has a palette.
func (c *Catalog) HasSlot(s Slot) bool {
	_, ok := c.palettes[s]
	return ok
}

// ListOptions returns the ordered options of cat. It never returns an empty
// slice for a registered category and returns nil for unknown ones.
func (c *Catalog) ListOptions(cat Category) []PartOption {
	return slices.Clone(c.options[cat])
}

// GetOption looks up id within cat. It fails with ErrCodeNotFound when the id
// (or the category) is unknown.
func (c *Catalog) GetOption(cat Category, id string) (PartOption, error) {
	i, ok := c.index[cat][id]
	if !ok {
		return PartOption{}, errors.NotFound(string(cat), id)
	}
	return c.options[cat][i], nil
}

// HasOption reports whether id is a valid option of cat.
func (c *Catalog) HasOption(cat Category, id string) bool {
	_, ok := c.index[cat][id]
	return ok
}

// First returns the default (first) option of cat.
func (c *Catalog) First(cat Category) (PartOption, bool) {
	opts := c.options[cat]
	if len(opts) == 0 {
		return PartOption{}, false
	}
	return opts[0], true
}

// ListPalette returns the suggested colors for slot, or nil when unknown.
func (c *Catalog) ListPalette(s Slot) []color.Color {
	return slices.Clone(c.palettes[s])
}

// Params returns the declared shape parameters in display order.
func (c *Catalog) Params() []Param {
	return slices.Clone(c.params)
}

// Param looks up a shape parameter declaration by name.
func (c *Catalog) Param(name string) (Param, bool) {
	for _, p := range c.params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}
