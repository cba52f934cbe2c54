package cli

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mypoly/pkg/catalog"
	"github.com/matzehuels/mypoly/pkg/errors"
	"github.com/matzehuels/mypoly/pkg/state"
)

// stateOpts holds the flags that describe a customization state. They are
// shared by every command that renders something.
type stateOpts struct {
	variant    string   // flat (2d) or solid (3d)
	preset     string   // TOML preset file loaded before other flags
	selections []string // category=option
	colors     []string // slot=#RRGGBB
	shapes     []string // param=value
	random     bool     // randomize before applying explicit flags
	seed       uint64   // random seed; 0 picks one from the clock
}

// register adds the state flags to cmd.
func (o *stateOpts) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.variant, "variant", "", "avatar variant: flat (2d, default) or solid (3d)")
	f.StringVarP(&o.preset, "preset", "p", "", "load a TOML preset before applying other flags")
	f.StringArrayVarP(&o.selections, "set", "s", nil, "select a part option, e.g. hair=hair-2 (repeatable)")
	f.StringArrayVarP(&o.colors, "color", "c", nil, "set a slot color, e.g. skin=#8D5524 (repeatable)")
	f.StringArrayVar(&o.shapes, "shape", nil, "set a shape parameter, e.g. height=1.2 (repeatable)")
	f.BoolVar(&o.random, "random", false, "randomize parts and colors first")
	f.Uint64Var(&o.seed, "seed", 0, "seed for --random (implies --random)")

	_ = cmd.RegisterFlagCompletionFunc("variant", completeVariants)
	_ = cmd.RegisterFlagCompletionFunc("set", completeSelections)
}

// build creates the state described by the flags. Presets are applied
// first, then randomization, then explicit selections, colors and shapes.
func (o *stateOpts) build(ctx context.Context, cat *catalog.Catalog) (*state.State, error) {
	logger := loggerFromContext(ctx)

	var variant catalog.Variant
	if o.variant != "" {
		v, err := parseVariant(o.variant)
		if err != nil {
			return nil, err
		}
		variant = v
	}

	var st *state.State
	if o.preset != "" {
		loaded, err := state.LoadFile(cat, o.preset)
		if err != nil {
			return nil, err
		}
		if variant != "" && loaded.Variant() != variant {
			return nil, invalidInput("preset %s is a %s avatar, not %s", o.preset, loaded.Variant(), variant)
		}
		logger.Debug("loaded preset", "path", o.preset, "variant", loaded.Variant())
		st = loaded
	} else {
		if variant == "" {
			variant = catalog.Flat
		}
		st = state.New(cat, variant)
	}

	if o.random || o.seed != 0 {
		seed := o.seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		st.Randomize(state.NewRand(seed))
		logger.Info("randomized avatar", "seed", seed)
	}

	for _, a := range o.selections {
		k, v, err := splitAssignment("set", a)
		if err != nil {
			return nil, err
		}
		if err := st.Select(catalog.Category(k), v); err != nil {
			return nil, err
		}
	}
	for _, a := range o.colors {
		k, v, err := splitAssignment("color", a)
		if err != nil {
			return nil, err
		}
		if err := st.SetColorHex(catalog.Slot(k), v); err != nil {
			return nil, err
		}
	}
	for _, a := range o.shapes {
		k, v, err := splitAssignment("shape", a)
		if err != nil {
			return nil, err
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid --shape value %q", a)
		}
		if err := st.SetShapeParam(k, f); err != nil {
			return nil, err
		}
	}
	return st, nil
}

// parseVariant accepts the variant names and their 2d/3d aliases.
func parseVariant(s string) (catalog.Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "flat", "2d":
		return catalog.Flat, nil
	case "solid", "3d":
		return catalog.Solid, nil
	}
	return "", invalidInput("invalid variant: %s (must be 'flat' or 'solid')", s)
}

// splitAssignment splits "key=value" for the named flag.
func splitAssignment(flag, s string) (string, string, error) {
	k, v, ok := strings.Cut(s, "=")
	k, v = strings.TrimSpace(k), strings.TrimSpace(v)
	if !ok || k == "" || v == "" {
		return "", "", invalidInput("invalid --%s %q (want key=value)", flag, s)
	}
	return k, v, nil
}

func invalidInput(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidInput, format, args...)
}
