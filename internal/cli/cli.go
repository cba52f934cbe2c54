package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mypoly/pkg/buildinfo"
	"github.com/matzehuels/mypoly/pkg/cache"
	"github.com/matzehuels/mypoly/pkg/observability"
	"github.com/matzehuels/mypoly/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "mypoly"

	// defaultBase is the output base name when -o is not given.
	defaultBase = "mypoly-character"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Cache backends selectable with --cache.
const (
	cacheNone   = "none"
	cacheMemory = "memory"
	cacheFile   = "file"
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "mypoly builds low-poly avatars",
		Long:          `mypoly is a CLI tool for customizing avatars from a fixed catalog of parts and colors, rendered either as layered 2D vector art or as a 3D mannequin of simple primitives.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			hooks := newLogHooks(c.Logger)
			observability.SetBuilderHooks(hooks)
			observability.SetExportHooks(hooks)
			observability.SetCacheHooks(hooks)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.randomCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the named cache.
func (c *CLI) newRunner(backend string) (*pipeline.Runner, error) {
	cc, err := newCache(backend, c.Logger)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, c.Logger), nil
}

// newCache opens the named backend. The file backend degrades to no caching
// when no cache directory can be resolved.
func newCache(backend string, logger *log.Logger) (cache.Cache, error) {
	switch backend {
	case cacheNone:
		return cache.NewNullCache(), nil
	case cacheMemory, "":
		return cache.NewMemoryCache(0), nil
	case cacheFile:
		dir, err := cacheDir()
		if err != nil {
			logger.Warn("cache dir unavailable, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
	return nil, invalidInput("unknown cache backend %q (must be none, memory or file)", backend)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/mypoly/).
func cacheDir() (string, error) {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// dataDir returns the export directory using XDG standard
// (~/.local/share/mypoly/).
func dataDir() (string, error) {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}
