package flat

import (
	"github.com/matzehuels/mypoly/pkg/catalog"
	"github.com/matzehuels/mypoly/pkg/color"
	"github.com/matzehuels/mypoly/pkg/errors"
	"github.com/matzehuels/mypoly/pkg/state"
)

// BodyMarkup is the shoulders fragment drawn behind the head.
const BodyMarkup = `<path d="M60,500 Q60,410 200,410 Q340,410 340,500 Z" fill="currentColor" />`

// Fragment is one rendered layer: the option's markup and its fill color.
type Fragment struct {
	OptionID string
	Markup   string
	Color    color.Color
}

// Empty reports whether the fragment draws nothing.
func (f Fragment) Empty() bool { return f.Markup == "" }

// Scene is the rendered form of a flat state.
type Scene struct {
	// Order lists the categories back to front.
	Order     []catalog.Category
	Fragments map[catalog.Category]Fragment
	Body      Fragment
}

// Fragment returns the fragment of category c.
func (s Scene) Fragment(c catalog.Category) (Fragment, bool) {
	f, ok := s.Fragments[c]
	return f, ok
}

// Render maps st to a scene. It fails with ErrCodeUnsupported for states of
// another variant and with ErrCodeNotFound if a selection is not in cat.
func Render(cat *catalog.Catalog, st *state.State) (Scene, error) {
	if st.Variant() != catalog.Flat {
		return Scene{}, errors.New(errors.ErrCodeUnsupported, "flat renderer cannot draw %s state", st.Variant())
	}

	cats := cat.Categories(catalog.Flat)
	scene := Scene{
		Order:     cats,
		Fragments: make(map[catalog.Category]Fragment, len(cats)),
	}
	for _, c := range cats {
		opt, err := cat.GetOption(c, st.Selection(c))
		if err != nil {
			return Scene{}, err
		}
		scene.Fragments[c] = Fragment{
			OptionID: opt.ID,
			Markup:   opt.Hint.Fragment,
			Color:    layerColor(st, c),
		}
	}
	if clothes, ok := st.Color(catalog.SlotClothes); ok {
		scene.Body = Fragment{OptionID: "body", Markup: BodyMarkup, Color: clothes}
	}
	return scene, nil
}

// SlotFor returns the color slot that colors category c. Categories without a
// slot are drawn in [color.Ink].
func SlotFor(c catalog.Category) (catalog.Slot, bool) {
	switch c {
	case catalog.Face:
		return catalog.SlotSkin, true
	case catalog.Eyes:
		return catalog.SlotEyes, true
	case catalog.Hair:
		return catalog.SlotHair, true
	}
	return "", false
}

func layerColor(st *state.State, c catalog.Category) color.Color {
	if slot, ok := SlotFor(c); ok {
		if col, ok := st.Color(slot); ok {
			return col
		}
	}
	return color.Ink
}
