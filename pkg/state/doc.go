// Package state holds a user's current customization: one option id per
// category, one color per slot, and the continuous shape parameters.
//
// A [State] is created with catalog defaults (first option, first palette
// color, declared default for each parameter) and mutated in place by the UI
// layer through validated setters. Every setter either applies completely or
// returns a coded error and leaves the state untouched:
//
//	st := state.New(catalog.Default(), catalog.Flat)
//	if err := st.Select(catalog.Hair, "hair-3"); err != nil {
//	    // errors.ErrCodeInvalidSelection
//	}
//	if err := st.SetShapeParam(catalog.ParamHeight, 1.7); err != nil {
//	    // errors.ErrCodeOutOfRange, height unchanged
//	}
//
// [State.Randomize] takes an explicit random source so results are
// reproducible under a fixed seed.
//
// # Presets
//
// States can be exchanged as TOML presets:
//
//	variant = "flat"
//
//	[selections]
//	face = "face-2"
//	hair = "hair-3"
//
//	[colors]
//	skin = "#8D5524"
//
//	[shape]
//	height = 1.2
//
// A State is owned by a single goroutine; it is not safe for concurrent use.
package state
