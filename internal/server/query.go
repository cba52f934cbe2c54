package server

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/mypoly/pkg/catalog"
	"github.com/matzehuels/mypoly/pkg/errors"
	"github.com/matzehuels/mypoly/pkg/pipeline"
	"github.com/matzehuels/mypoly/pkg/state"
)

// Query keys that configure the render rather than the state.
const (
	keySeed     = "seed"
	keyWidth    = "w"
	keyHeight   = "h"
	keyYaw      = "yaw"
	keyDetailed = "detailed"
	keyRefresh  = "refresh"

	colorPrefix = "color."
)

// decodeState builds a fresh state of variant v from q. Keys are applied in
// sorted order after the optional seed, so the result does not depend on
// query order.
func decodeState(cat *catalog.Catalog, v catalog.Variant, q url.Values) (*state.State, error) {
	st := state.New(cat, v)

	if raw := q.Get(keySeed); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid seed %q", raw)
		}
		st.Randomize(state.NewRand(seed))
	}

	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		if isRenderKey(k) {
			continue
		}
		val := q.Get(k)
		if err := applyParam(st, k, val); err != nil {
			return nil, err
		}
	}
	return st, nil
}

func applyParam(st *state.State, key, val string) error {
	cat := st.Catalog()
	if slot, ok := strings.CutPrefix(key, colorPrefix); ok {
		return st.SetColorHex(catalog.Slot(slot), val)
	}
	if cat.HasCategory(catalog.Category(key)) {
		return st.Select(catalog.Category(key), val)
	}
	if _, ok := cat.Param(key); ok {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid %s value %q", key, val)
		}
		return st.SetShapeParam(key, f)
	}
	return errors.New(errors.ErrCodeInvalidInput, "unknown query parameter %q", key)
}

func isRenderKey(k string) bool {
	switch k {
	case keySeed, keyWidth, keyHeight, keyYaw, keyDetailed, keyRefresh:
		return true
	}
	return false
}

// decodeOptions reads the render options for format from q.
func decodeOptions(format string, q url.Values) (pipeline.Options, error) {
	opts := pipeline.Options{Format: format}
	var err error
	if opts.Width, err = intParam(q, keyWidth); err != nil {
		return opts, err
	}
	if opts.Height, err = intParam(q, keyHeight); err != nil {
		return opts, err
	}
	if raw := q.Get(keyYaw); raw != "" {
		if opts.Yaw, err = strconv.ParseFloat(raw, 64); err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid yaw %q", raw)
		}
	}
	if raw := q.Get(keyDetailed); raw != "" {
		if opts.Detailed, err = strconv.ParseBool(raw); err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid detailed flag %q", raw)
		}
	}
	if raw := q.Get(keyRefresh); raw != "" {
		if opts.Refresh, err = strconv.ParseBool(raw); err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid refresh flag %q", raw)
		}
	}
	return opts, nil
}

func intParam(q url.Values, key string) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid %s %q: must be a positive integer", key, raw)
	}
	return n, nil
}
