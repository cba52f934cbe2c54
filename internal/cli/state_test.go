package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/matzehuels/mypoly/pkg/catalog"
	"github.com/matzehuels/mypoly/pkg/errors"
	"github.com/matzehuels/mypoly/pkg/state"
)

func TestStateOptsBuild(t *testing.T) {
	cat := catalog.Default()
	opts := stateOpts{
		selections: []string{"eyes=eyes-3", " mouth = mouth-2 "},
		colors:     []string{"skin=#8D5524", "clothes=EC4899"},
	}

	st, err := opts.build(context.Background(), cat)
	if err != nil {
		t.Fatalf("build() error: %v", err)
	}
	if st.Variant() != catalog.Flat {
		t.Errorf("variant = %s, want flat", st.Variant())
	}
	if got := st.Selection(catalog.Eyes); got != "eyes-3" {
		t.Errorf("eyes = %q, want eyes-3", got)
	}
	if got := st.Selection(catalog.Mouth); got != "mouth-2" {
		t.Errorf("mouth = %q, want mouth-2", got)
	}
	if c, _ := st.Color(catalog.SlotClothes); c.Hex() != "#EC4899" {
		t.Errorf("clothes = %s, want #EC4899", c.Hex())
	}
}

func TestStateOptsBuildSolidShape(t *testing.T) {
	opts := stateOpts{variant: "solid", shapes: []string{"height=1.3"}, selections: []string{"hairstyle=style2"}}

	st, err := opts.build(context.Background(), catalog.Default())
	if err != nil {
		t.Fatalf("build() error: %v", err)
	}
	if st.Shape().Height != 1.3 {
		t.Errorf("height = %g, want 1.3", st.Shape().Height)
	}
	if st.Selection(catalog.Hairstyle) != "style2" {
		t.Errorf("hairstyle = %q, want style2", st.Selection(catalog.Hairstyle))
	}
}

func TestStateOptsBuildSeed(t *testing.T) {
	cat := catalog.Default()
	a, err := (&stateOpts{seed: 42}).build(context.Background(), cat)
	if err != nil {
		t.Fatal(err)
	}
	b, err := (&stateOpts{seed: 42}).build(context.Background(), cat)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Error("same seed should give the same avatar")
	}
}

func TestStateOptsBuildPreset(t *testing.T) {
	cat := catalog.Default()
	path := filepath.Join(t.TempDir(), "hero.toml")

	saved := state.New(cat, catalog.Solid)
	if err := saved.Select(catalog.HeadShape, "shape3"); err != nil {
		t.Fatal(err)
	}
	if err := saved.SaveFile(path); err != nil {
		t.Fatal(err)
	}

	st, err := (&stateOpts{preset: path}).build(context.Background(), cat)
	if err != nil {
		t.Fatalf("build() error: %v", err)
	}
	if !st.Equal(saved) {
		t.Error("preset should round trip")
	}

	_, err = (&stateOpts{preset: path, variant: "flat"}).build(context.Background(), cat)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("variant mismatch error = %v, want INVALID_INPUT", err)
	}
}

func TestStateOptsBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		opts stateOpts
		code errors.Code
	}{
		{"bad variant", stateOpts{variant: "4d"}, errors.ErrCodeInvalidInput},
		{"missing value", stateOpts{selections: []string{"hair="}}, errors.ErrCodeInvalidInput},
		{"no equals", stateOpts{colors: []string{"skin"}}, errors.ErrCodeInvalidInput},
		{"unknown option", stateOpts{selections: []string{"hair=hair-9"}}, errors.ErrCodeInvalidSelection},
		{"solid category on flat", stateOpts{selections: []string{"hairstyle=style1"}}, errors.ErrCodeInvalidSelection},
		{"bad color", stateOpts{colors: []string{"skin=#zzzzzz"}}, errors.ErrCodeInvalidColor},
		{"shape not a number", stateOpts{shapes: []string{"build=wide"}}, errors.ErrCodeInvalidInput},
		{"shape out of range", stateOpts{shapes: []string{"height=2"}}, errors.ErrCodeOutOfRange},
		{"missing preset", stateOpts{preset: "does-not-exist.toml"}, errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.opts.build(context.Background(), catalog.Default())
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("error code = %q, want %q (err: %v)", got, tt.code, err)
			}
		})
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in   string
		want catalog.Variant
	}{
		{"flat", catalog.Flat},
		{"2D", catalog.Flat},
		{"solid", catalog.Solid},
		{" 3d ", catalog.Solid},
	}
	for _, tt := range tests {
		got, err := parseVariant(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("parseVariant(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
	if _, err := parseVariant("sketch"); err == nil {
		t.Error("unknown variant should fail")
	}
}
