package state

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/mypoly/pkg/catalog"
	"github.com/matzehuels/mypoly/pkg/color"
)

// ColorMode controls how Randomize picks a slot's color.
type ColorMode int

const (
	KeepColor   ColorMode = iota // leave the slot unchanged
	PaletteColor                 // uniform pick from the slot's palette
	AnyColor                     // uniform random RGB triple
)

// Policy configures Randomize.
type Policy struct {
	Colors map[catalog.Slot]ColorMode
	// Shape also randomizes the shape parameters, snapped to their step.
	Shape bool
}

// DefaultPolicy returns the randomization policy of a variant. The flat
// variant re-rolls skin and hair from their palettes; the solid variant also
// picks arbitrary shirt and pants colors.
func DefaultPolicy(v catalog.Variant) Policy {
	switch v {
	case catalog.Solid:
		return Policy{Colors: map[catalog.Slot]ColorMode{
			catalog.SlotSkin:  PaletteColor,
			catalog.SlotHair:  PaletteColor,
			catalog.SlotShirt: AnyColor,
			catalog.SlotPants: AnyColor,
		}}
	default:
		return Policy{Colors: map[catalog.Slot]ColorMode{
			catalog.SlotSkin: PaletteColor,
			catalog.SlotHair: PaletteColor,
		}}
	}
}

// NewRand returns a deterministic random source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Randomize re-rolls every category and every randomizable color slot using
// the variant's default policy.
func (s *State) Randomize(rng *rand.Rand) {
	s.RandomizeWith(rng, DefaultPolicy(s.variant))
}

// RandomizeWith re-rolls the state under p. The new state is assembled on a
// copy and swapped in at the end, so the result is always complete.
func (s *State) RandomizeWith(rng *rand.Rand, p Policy) {
	next := s.Clone()
	for _, c := range s.catalog.Categories(s.variant) {
		opts := s.catalog.ListOptions(c)
		next.selections[c] = opts[rng.IntN(len(opts))].ID
	}
	for _, slot := range s.catalog.Slots(s.variant) {
		switch p.Colors[slot] {
		case PaletteColor:
			pal := s.catalog.ListPalette(slot)
			next.colors[slot] = pal[rng.IntN(len(pal))]
		case AnyColor:
			next.colors[slot] = color.Random(rng)
		}
	}
	if p.Shape {
		for _, param := range s.catalog.Params() {
			v := param.Min + rng.Float64()*(param.Max-param.Min)
			if param.Step > 0 {
				v = param.Min + math.Round((v-param.Min)/param.Step)*param.Step
				v = math.Round(v*1e6) / 1e6
			}
			next.shape[param.Name] = min(max(v, param.Min), param.Max)
		}
	}
	s.replace(next)
}
