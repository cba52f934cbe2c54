package state

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/mypoly/pkg/catalog"
	"github.com/matzehuels/mypoly/pkg/errors"
)

func TestPresetRoundTrip(t *testing.T) {
	cat := catalog.Default()
	st := New(cat, catalog.Solid)
	st.RandomizeWith(NewRand(11), Policy{Colors: DefaultPolicy(catalog.Solid).Colors, Shape: true})

	var buf bytes.Buffer
	if err := EncodePreset(&buf, st.Preset()); err != nil {
		t.Fatalf("EncodePreset() error: %v", err)
	}
	p, err := DecodePreset(&buf)
	if err != nil {
		t.Fatalf("DecodePreset() error: %v", err)
	}
	got := New(cat, catalog.Solid)
	if err := got.ApplyPreset(p); err != nil {
		t.Fatalf("ApplyPreset() error: %v", err)
	}
	if !got.Equal(st) {
		t.Errorf("round trip mismatch:\n got %s\nwant %s", got.Key(), st.Key())
	}
}

func TestApplyPresetIsAtomic(t *testing.T) {
	st := New(catalog.Default(), catalog.Flat)
	before := st.Key()

	p := Preset{
		Selections: map[string]string{"face": "face-3"},
		Colors:     map[string]string{"skin": "not-a-color"},
	}
	err := st.ApplyPreset(p)
	if !errors.Is(err, errors.ErrCodeInvalidPreset) {
		t.Fatalf("ApplyPreset() error = %v, want INVALID_PRESET", err)
	}
	if st.Key() != before {
		t.Error("failed preset partially applied")
	}
}

func TestApplyPresetVariantMismatch(t *testing.T) {
	st := New(catalog.Default(), catalog.Flat)
	err := st.ApplyPreset(Preset{Variant: "solid"})
	if !errors.Is(err, errors.ErrCodeInvalidPreset) {
		t.Errorf("ApplyPreset() error = %v, want INVALID_PRESET", err)
	}
}

func TestDecodePresetText(t *testing.T) {
	src := `
variant = "flat"

[selections]
hair = "hair-3"

[colors]
skin = "#8D5524"

[shape]
height = 1.2
`
	p, err := DecodePreset(strings.NewReader(src))
	if err != nil {
		t.Fatalf("DecodePreset() error: %v", err)
	}
	st := New(catalog.Default(), catalog.Flat)
	if err := st.ApplyPreset(p); err != nil {
		t.Fatalf("ApplyPreset() error: %v", err)
	}
	if st.Selection(catalog.Hair) != "hair-3" {
		t.Errorf("hair = %q", st.Selection(catalog.Hair))
	}
	if c, _ := st.Color(catalog.SlotSkin); c.Hex() != "#8D5524" {
		t.Errorf("skin = %s", c.Hex())
	}
	if st.Shape().Height != 1.2 {
		t.Errorf("height = %v", st.Shape().Height)
	}
	// Untouched entries keep their defaults.
	if st.Selection(catalog.Face) != "face-1" {
		t.Errorf("face = %q", st.Selection(catalog.Face))
	}

	if _, err := DecodePreset(strings.NewReader("variant = ")); !errors.Is(err, errors.ErrCodeInvalidPreset) {
		t.Errorf("DecodePreset(bad) error = %v, want INVALID_PRESET", err)
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	cat := catalog.Default()
	st := New(cat, catalog.Flat)
	st.Randomize(NewRand(5))

	path := filepath.Join(t.TempDir(), "me.toml")
	if err := st.SaveFile(path); err != nil {
		t.Fatalf("SaveFile() error: %v", err)
	}
	got, err := LoadFile(cat, path)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	if !got.Equal(st) {
		t.Errorf("LoadFile() = %s, want %s", got.Key(), st.Key())
	}

	_, err = LoadFile(cat, filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("LoadFile(missing) error = %v, want FILE_NOT_FOUND", err)
	}

	bad := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(bad, []byte(`variant = "cubist"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(cat, bad); !errors.Is(err, errors.ErrCodeInvalidPreset) {
		t.Errorf("LoadFile(bad variant) error = %v, want INVALID_PRESET", err)
	}
}
