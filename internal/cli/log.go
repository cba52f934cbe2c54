// Package cli implements the mypoly command-line interface.
//
// This package provides commands for rendering avatars from flags or preset
// files, browsing the part catalog, customizing interactively in the
// terminal and serving previews over HTTP. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Generate SVG, PNG, TOML or (3D only) JSON, OBJ and DOT output
//   - random: Roll a random avatar and print it as a preset
//   - catalog: List categories, options, palettes and shape parameters
//   - tree: Show the part hierarchy of the 3D mannequin
//   - tui: Customize interactively and export a PNG snapshot
//   - serve: Run the HTTP preview server
//   - cache: Manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context, and the builder, export and cache hooks
// are routed to the same logger.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered 3 files (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Hooks
// =============================================================================

// logHooks reports builder, export and cache events as debug logs.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) logHooks { return logHooks{logger: l} }

func (h logHooks) OnGeometrySwap(part, kind string, released int) {
	h.logger.Debug("geometry swapped", "part", part, "kind", kind, "released", released)
}

func (h logHooks) OnRecolor(slot, hex string, owners int) {
	h.logger.Debug("material recolored", "slot", slot, "color", hex, "owners", owners)
}

func (h logHooks) OnRescale(param string, value float64) {
	h.logger.Debug("rescaled", "param", param, "value", value)
}

func (h logHooks) OnExportStart(_ context.Context, format string, w, hgt int) {
	h.logger.Debug("export started", "format", format, "width", w, "height", hgt)
}

func (h logHooks) OnExportComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("export failed", "format", format, "error", err)
		return
	}
	h.logger.Debug("export complete", "format", format, "bytes", size, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}
