// Package observability provides hooks for metrics, tracing, and logging.
//
// The core packages never log. Instead they report events through the hook
// interfaces defined here, and the application decides what to do with them.
// The CLI installs hooks that forward to its structured logger.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetBuilderHooks(&myBuilderHooks{})
//	    observability.SetExportHooks(&myExportHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Export().OnExportStart(ctx, "png", 800, 1000)
//	// ... rasterize ...
//	observability.Export().OnExportComplete(ctx, "png", len(data), duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Builder Hooks
// =============================================================================

// BuilderHooks receives events from the 3D character builder. The builder is
// driven from a single UI goroutine, so these calls carry no context.
type BuilderHooks interface {
	// OnGeometrySwap records that part now holds a geometry of the given kind
	// and that released geometries were freed to make room for it.
	OnGeometrySwap(part, kind string, released int)

	// OnRecolor records a material color change and how many parts share it.
	OnRecolor(slot, hex string, owners int)

	// OnRescale records a shape parameter applied to the model.
	OnRescale(param string, value float64)
}

// =============================================================================
// Export Hooks
// =============================================================================

// ExportHooks receives events from image export.
type ExportHooks interface {
	OnExportStart(ctx context.Context, format string, width, height int)
	OnExportComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopBuilderHooks is a no-op implementation of BuilderHooks.
type NoopBuilderHooks struct{}

func (NoopBuilderHooks) OnGeometrySwap(string, string, int) {}
func (NoopBuilderHooks) OnRecolor(string, string, int)      {}
func (NoopBuilderHooks) OnRescale(string, float64)          {}

// NoopExportHooks is a no-op implementation of ExportHooks.
type NoopExportHooks struct{}

func (NoopExportHooks) OnExportStart(context.Context, string, int, int) {}
func (NoopExportHooks) OnExportComplete(context.Context, string, int, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	builderHooks BuilderHooks = NoopBuilderHooks{}
	exportHooks  ExportHooks  = NoopExportHooks{}
	cacheHooks   CacheHooks   = NoopCacheHooks{}
	hooksMu      sync.RWMutex
)

// SetBuilderHooks registers custom builder hooks.
// This should be called once at application startup before any model is built.
func SetBuilderHooks(h BuilderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		builderHooks = h
	}
}

// SetExportHooks registers custom export hooks.
func SetExportHooks(h ExportHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		exportHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Builder returns the registered builder hooks.
func Builder() BuilderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return builderHooks
}

// Export returns the registered export hooks.
func Export() ExportHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return exportHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	builderHooks = NoopBuilderHooks{}
	exportHooks = NoopExportHooks{}
	cacheHooks = NoopCacheHooks{}
}
