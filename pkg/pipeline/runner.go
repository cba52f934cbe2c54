package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mypoly/pkg/cache"
	"github.com/matzehuels/mypoly/pkg/state"
)

// ArtifactTTL is how long rendered artifacts stay cached.
const ArtifactTTL = 24 * time.Hour

// Runner renders artifacts through a cache.
// Both the CLI and the server use it to avoid duplicating caching logic.
//
// The Runner holds no per-render state, so multiple goroutines can share
// one Runner as long as each passes its own State.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil logger
// uses log.Default().
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// RenderWithCacheInfo renders st and reports whether the artifact came from
// the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, st *state.State, opts Options) ([]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(st.Variant()); err != nil {
		return nil, false, err
	}
	key := cache.ArtifactKey(st.Key(), opts.Format, opts.keyOpts()...)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			r.Logger.Debug("artifact from cache", "format", opts.Format, "bytes", len(data))
			return data, true, nil
		}
	}

	start := time.Now()
	data, err := Render(ctx, st, opts)
	if err != nil {
		return nil, false, err
	}
	r.Logger.Debug("rendered artifact",
		"variant", st.Variant(),
		"options", opts,
		"bytes", len(data),
		"duration", time.Since(start))

	if err := r.Cache.Set(ctx, key, data, ArtifactTTL); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
	}
	return data, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, st *state.State, opts Options) ([]byte, error) {
	data, _, err := r.RenderWithCacheInfo(ctx, st, opts)
	return data, err
}

// RenderAll renders st in every format of formats, stopping at the first
// error.
func (r *Runner) RenderAll(ctx context.Context, st *state.State, formats []string, opts Options) (map[string][]byte, error) {
	if err := ValidateFormats(st.Variant(), formats); err != nil {
		return nil, err
	}
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		o := opts
		o.Format = format
		data, err := r.Render(ctx, st, o)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
