package state

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/mypoly/pkg/catalog"
	"github.com/matzehuels/mypoly/pkg/color"
	"github.com/matzehuels/mypoly/pkg/errors"
)

// Shape holds the continuous shape parameters.
type Shape struct {
	Height   float64
	Build    float64
	HeadSize float64
}

// State is the current customization of one avatar.
type State struct {
	catalog    *catalog.Catalog
	variant    catalog.Variant
	selections map[catalog.Category]string
	colors     map[catalog.Slot]color.Color
	shape      map[string]float64
}

// New returns a state with catalog defaults for the given variant.
func New(cat *catalog.Catalog, v catalog.Variant) *State {
	s := &State{
		catalog:    cat,
		variant:    v,
		selections: make(map[catalog.Category]string),
		colors:     make(map[catalog.Slot]color.Color),
		shape:      make(map[string]float64),
	}
	for _, c := range cat.Categories(v) {
		if first, ok := cat.First(c); ok {
			s.selections[c] = first.ID
		}
	}
	for _, slot := range cat.Slots(v) {
		s.colors[slot] = cat.ListPalette(slot)[0]
	}
	for _, p := range cat.Params() {
		s.shape[p.Name] = p.Default
	}
	return s
}

// Catalog returns the catalog the state validates against.
func (s *State) Catalog() *catalog.Catalog { return s.catalog }

// Variant returns the renderer variant of the state.
func (s *State) Variant() catalog.Variant { return s.variant }

// Select sets the option of cat to id. It fails with ErrCodeInvalidSelection
// when cat is not a category of the state's variant or id is not one of its
// options. Selecting the current id again is a no-op.
func (s *State) Select(cat catalog.Category, id string) error {
	if _, ok := s.selections[cat]; !ok || !s.catalog.HasOption(cat, id) {
		return errors.InvalidSelection(string(cat), id)
	}
	s.selections[cat] = id
	return nil
}

// Selection returns the selected option id of cat, or "" for unknown categories.
func (s *State) Selection(cat catalog.Category) string {
	return s.selections[cat]
}

// Selections returns a copy of all selections.
func (s *State) Selections() map[catalog.Category]string {
	return maps.Clone(s.selections)
}

// SetColor sets the color of slot. Any color is accepted; palettes are only
// suggestions. Unknown slots fail with ErrCodeInvalidSelection.
func (s *State) SetColor(slot catalog.Slot, c color.Color) error {
	if _, ok := s.colors[slot]; !ok {
		return errors.InvalidSelection("color slot", string(slot))
	}
	s.colors[slot] = c
	return nil
}

// SetColorHex parses hex and sets it as the color of slot.
func (s *State) SetColorHex(slot catalog.Slot, hex string) error {
	if _, ok := s.colors[slot]; !ok {
		return errors.InvalidSelection("color slot", string(slot))
	}
	c, err := color.Parse(hex)
	if err != nil {
		return err
	}
	s.colors[slot] = c
	return nil
}

// Color returns the color of slot and whether the slot exists.
func (s *State) Color(slot catalog.Slot) (color.Color, bool) {
	c, ok := s.colors[slot]
	return c, ok
}

// Colors returns a copy of all slot colors.
func (s *State) Colors() map[catalog.Slot]color.Color {
	return maps.Clone(s.colors)
}

// SetShapeParam stores value for the named parameter. Unknown names fail with
// ErrCodeInvalidSelection; values outside the declared bounds (including NaN)
// fail with ErrCodeOutOfRange and leave the previous value in place.
func (s *State) SetShapeParam(name string, value float64) error {
	p, ok := s.catalog.Param(name)
	if !ok {
		return errors.InvalidSelection("shape parameter", name)
	}
	if !p.Contains(value) {
		return errors.OutOfRange(name, value, p.Min, p.Max)
	}
	s.shape[name] = value
	return nil
}

// ShapeParam returns the current value of the named parameter.
func (s *State) ShapeParam(name string) (float64, bool) {
	v, ok := s.shape[name]
	return v, ok
}

// Shape returns the shape parameters as a struct.
func (s *State) Shape() Shape {
	return Shape{
		Height:   s.shape[catalog.ParamHeight],
		Build:    s.shape[catalog.ParamBuild],
		HeadSize: s.shape[catalog.ParamHeadSize],
	}
}

// Validate checks the state invariants: every category of the variant has a
// selection that exists in the catalog, every slot has a color, and every
// shape parameter is within bounds.
func (s *State) Validate() error {
	for _, c := range s.catalog.Categories(s.variant) {
		id, ok := s.selections[c]
		if !ok || !s.catalog.HasOption(c, id) {
			return errors.InvalidSelection(string(c), id)
		}
	}
	for _, slot := range s.catalog.Slots(s.variant) {
		if _, ok := s.colors[slot]; !ok {
			return errors.New(errors.ErrCodeInvalidColor, "slot %s has no color", slot)
		}
	}
	for _, p := range s.catalog.Params() {
		if v := s.shape[p.Name]; !p.Contains(v) {
			return errors.OutOfRange(p.Name, v, p.Min, p.Max)
		}
	}
	return nil
}

// Clone returns an independent copy sharing the same catalog.
func (s *State) Clone() *State {
	return &State{
		catalog:    s.catalog,
		variant:    s.variant,
		selections: maps.Clone(s.selections),
		colors:     maps.Clone(s.colors),
		shape:      maps.Clone(s.shape),
	}
}

// Equal reports whether two states hold the same customization.
func (s *State) Equal(o *State) bool {
	return s.variant == o.variant &&
		maps.Equal(s.selections, o.selections) &&
		maps.Equal(s.colors, o.colors) &&
		maps.Equal(s.shape, o.shape)
}

// Key returns a canonical, order-independent encoding of the state, suitable
// as a cache key.
func (s *State) Key() string {
	var b strings.Builder
	b.WriteString(string(s.variant))
	for _, c := range slices.Sorted(maps.Keys(s.selections)) {
		fmt.Fprintf(&b, "|%s=%s", c, s.selections[c])
	}
	for _, slot := range slices.Sorted(maps.Keys(s.colors)) {
		fmt.Fprintf(&b, "|%s=%s", slot, s.colors[slot].Hex())
	}
	for _, name := range slices.Sorted(maps.Keys(s.shape)) {
		fmt.Fprintf(&b, "|%s=%g", name, s.shape[name])
	}
	return b.String()
}

// replace swaps the contents of s with those of o.
func (s *State) replace(o *State) {
	s.selections = o.selections
	s.colors = o.colors
	s.shape = o.shape
}
