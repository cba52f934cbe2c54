package state

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mypoly/pkg/catalog"
	"github.com/matzehuels/mypoly/pkg/errors"
)

// Preset is the serialized form of a State.
type Preset struct {
	Variant    string             `toml:"variant"`
	Selections map[string]string  `toml:"selections,omitempty"`
	Colors     map[string]string  `toml:"colors,omitempty"`
	Shape      map[string]float64 `toml:"shape,omitempty"`
}

// Preset returns the full serialized form of s.
func (s *State) Preset() Preset {
	p := Preset{
		Variant:    string(s.variant),
		Selections: make(map[string]string, len(s.selections)),
		Colors:     make(map[string]string, len(s.colors)),
		Shape:      make(map[string]float64, len(s.shape)),
	}
	for c, id := range s.selections {
		p.Selections[string(c)] = id
	}
	for slot, col := range s.colors {
		p.Colors[string(slot)] = col.Hex()
	}
	for name, v := range s.shape {
		p.Shape[name] = v
	}
	return p
}

// ApplyPreset applies every entry of p through the validated setters. Entries
// missing from p keep their current value. If any entry is rejected the state
// is left unchanged and the error is wrapped with ErrCodeInvalidPreset.
func (s *State) ApplyPreset(p Preset) error {
	if p.Variant != "" && catalog.Variant(p.Variant) != s.variant {
		return errors.New(errors.ErrCodeInvalidPreset,
			"preset is for variant %q, state is %q", p.Variant, s.variant)
	}
	next := s.Clone()
	for c, id := range p.Selections {
		if err := next.Select(catalog.Category(c), id); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPreset, err, "selections.%s", c)
		}
	}
	for slot, hex := range p.Colors {
		if err := next.SetColorHex(catalog.Slot(slot), hex); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPreset, err, "colors.%s", slot)
		}
	}
	for name, v := range p.Shape {
		if err := next.SetShapeParam(name, v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPreset, err, "shape.%s", name)
		}
	}
	s.replace(next)
	return nil
}

// DecodePreset reads a TOML preset from r.
func DecodePreset(r io.Reader) (Preset, error) {
	var p Preset
	if _, err := toml.NewDecoder(r).Decode(&p); err != nil {
		return Preset{}, errors.Wrap(errors.ErrCodeInvalidPreset, err, "decode preset")
	}
	return p, nil
}

// EncodePreset writes p as TOML. Map keys are written in sorted order.
func EncodePreset(w io.Writer, p Preset) error {
	if err := toml.NewEncoder(w).Encode(p); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode preset")
	}
	return nil
}

// LoadFile reads the preset at path and returns a new state for cat with the
// preset applied over the defaults. The preset's variant selects the variant;
// presets without one default to flat.
func LoadFile(cat *catalog.Catalog, path string) (*State, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "preset %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open preset %s", path)
	}
	defer f.Close()

	p, err := DecodePreset(f)
	if err != nil {
		return nil, err
	}
	v := catalog.Flat
	if p.Variant != "" {
		v = catalog.Variant(p.Variant)
		if v != catalog.Flat && v != catalog.Solid {
			return nil, errors.New(errors.ErrCodeInvalidPreset, "unknown variant %q", p.Variant)
		}
	}
	st := New(cat, v)
	if err := st.ApplyPreset(p); err != nil {
		return nil, err
	}
	return st, nil
}

// SaveFile writes the preset of s to path.
func (s *State) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create preset %s", path)
	}
	if err := EncodePreset(f, s.Preset()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
