package model

import (
	"github.com/matzehuels/mypoly/pkg/catalog"
	"github.com/matzehuels/mypoly/pkg/color"
)

// Material describes how a part is shaded. Materials bound to a slot are
// shared by every part in that slot.
type Material struct {
	Slot      catalog.Slot // empty for fixed materials
	Color     color.Color
	Roughness float64
	Metalness float64
	// Unlit materials ignore lighting.
	Unlit bool
}

func flatMaterial(slot catalog.Slot, c color.Color) *Material {
	return &Material{Slot: slot, Color: c, Roughness: 0.7, Metalness: 0.1}
}

// fallbackColor shades slots whose palette is empty.
var fallbackColor = color.MustParse("#808080")

// defaultColor is the material color of slot on a freshly built character:
// the head of the slot's palette, matching state.New.
func defaultColor(cat *catalog.Catalog, slot catalog.Slot) color.Color {
	if pal := cat.ListPalette(slot); len(pal) > 0 {
		return pal[0]
	}
	return fallbackColor
}

// materialSlots lists the shared materials in creation order.
var materialSlots = []catalog.Slot{
	catalog.SlotSkin,
	catalog.SlotShirt,
	catalog.SlotPants,
	catalog.SlotHair,
	catalog.SlotShoes,
}
