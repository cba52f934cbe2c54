package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mypoly/pkg/catalog"
	"github.com/matzehuels/mypoly/pkg/errors"
	"github.com/matzehuels/mypoly/pkg/pipeline"
	"github.com/matzehuels/mypoly/pkg/state"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	state    stateOpts
	output   string   // output file (single format) or base path; "-" writes to stdout
	formats  []string // output formats
	width    int      // raster width in pixels
	height   int      // raster height in pixels
	yaw      float64  // 3D turntable angle in radians
	detailed bool     // detailed hierarchy diagrams
	cache    string   // cache backend
	refresh  bool     // ignore cached artifacts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		width:  pipeline.DefaultWidth,
		height: pipeline.DefaultHeight,
		cache:  cacheFile,
	}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render an avatar to SVG, PNG or model files",
		Example: `  mypoly render -f svg,png --set hair=hair-2 --color skin=#8D5524
  mypoly render --variant solid -f png,obj --shape height=1.3 -o hero
  mypoly render -p hero.toml -f svg -o -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return c.runRender(cmd.Context(), &opts)
		},
	}

	opts.state.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple); - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, toml; solid also json, obj, mtl, dot, tree.svg")
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "raster width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", opts.height, "raster height in pixels")
	cmd.Flags().Float64Var(&opts.yaw, "yaw", 0, "turn the 3D mannequin by this many radians")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show geometry and transforms in hierarchy diagrams")
	cmd.Flags().StringVar(&opts.cache, "cache", opts.cache, "artifact cache: file (default), memory, none")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if a cached artifact exists")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)

	return cmd
}

// runRender builds the state and writes one file per requested format.
func (c *CLI) runRender(ctx context.Context, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	st, err := opts.state.build(ctx, catalog.Default())
	if err != nil {
		return err
	}
	formats := withMaterialLibrary(opts.formats)
	if err := pipeline.ValidateFormats(st.Variant(), formats); err != nil {
		return err
	}
	toStdout := opts.output == "-"
	if toStdout && len(formats) != 1 {
		return invalidInput("-o - needs exactly one format, got %s", strings.Join(formats, ","))
	}

	runner, err := c.newRunner(opts.cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	base := basePath(opts.output)
	mtllib := filepath.Base(base) + pipeline.Extension(pipeline.FormatMTL)
	if slices.Contains(formats, pipeline.FormatOBJ) {
		if err := errors.ValidateFilename(mtllib); err != nil {
			return err
		}
	}
	popts := pipeline.Options{
		Width:           opts.width,
		Height:          opts.height,
		Yaw:             opts.yaw,
		Detailed:        opts.detailed,
		MaterialLibrary: mtllib,
		Refresh:         opts.refresh,
	}

	var spin *Spinner
	if !toStdout && slices.Contains(formats, pipeline.FormatPNG) {
		spin = newSpinnerWithContext(ctx, "Rasterizing...")
		spin.Start()
	}
	artifacts := make(map[string][]byte, len(formats))
	cached := 0
	for _, format := range formats {
		o := popts
		o.Format = format
		data, hit, err := runner.RenderWithCacheInfo(ctx, st, o)
		if err != nil {
			if spin != nil && spin.Cancelled() {
				spin.Stop()
			} else if spin != nil {
				spin.StopWithError(fmt.Sprintf("Rendering %s failed", format))
			}
			return err
		}
		if hit {
			cached++
		}
		artifacts[format] = data
	}
	if spin != nil {
		spin.Stop()
	}

	if toStdout {
		_, err := os.Stdout.Write(artifacts[formats[0]])
		return err
	}

	paths := outputPaths(opts.output, base, formats)
	for _, format := range formats {
		if err := writeFile(paths[format], artifacts[format]); err != nil {
			return err
		}
	}

	prog.done(fmt.Sprintf("Rendered %d file(s)", len(formats)))
	printSuccess("Rendered %s avatar", st.Variant())
	for _, format := range formats {
		printFile(paths[format])
	}
	printStats(len(formats), cached)
	if !slices.Contains(formats, pipeline.FormatTOML) {
		printNextStep("Save this avatar", "mypoly render "+stateFlagsHint(st)+" -f toml")
	}
	return nil
}

// withMaterialLibrary appends mtl when obj is requested, since the OBJ
// output references it.
func withMaterialLibrary(formats []string) []string {
	if slices.Contains(formats, pipeline.FormatOBJ) && !slices.Contains(formats, pipeline.FormatMTL) {
		return append(slices.Clone(formats), pipeline.FormatMTL)
	}
	return formats
}

// basePath derives the base output path. A known format extension on
// output is stripped so "hero.png" and "hero" both give "hero".
func basePath(output string) string {
	if output == "" || output == "-" {
		return defaultBase
	}
	for _, f := range []string{pipeline.FormatTree, pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatTOML,
		pipeline.FormatJSON, pipeline.FormatOBJ, pipeline.FormatMTL, pipeline.FormatDOT} {
		if trimmed, ok := strings.CutSuffix(output, pipeline.Extension(f)); ok {
			return trimmed
		}
	}
	return output
}

// outputPaths maps each format to its file. A single format with an
// explicit output path is written exactly there.
func outputPaths(output, base string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	for _, f := range formats {
		paths[f] = base + pipeline.Extension(f)
	}
	return paths
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = out.Write(data)
	return err
}

// openOutput opens path for writing, or stdout when path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// stateFlagsHint renders st as the flags that reproduce it.
func stateFlagsHint(st *state.State) string {
	var parts []string
	if st.Variant() != catalog.Flat {
		parts = append(parts, "--variant "+string(st.Variant()))
	}
	sel := st.Selections()
	for _, cat := range st.Catalog().Categories(st.Variant()) {
		parts = append(parts, fmt.Sprintf("-s %s=%s", cat, sel[cat]))
	}
	for _, slot := range st.Catalog().Slots(st.Variant()) {
		if col, ok := st.Color(slot); ok {
			parts = append(parts, fmt.Sprintf("-c %s=%s", slot, strings.TrimPrefix(col.Hex(), "#")))
		}
	}
	for _, p := range st.Catalog().Params() {
		if v, ok := st.ShapeParam(p.Name); ok && v != p.Default {
			parts = append(parts, fmt.Sprintf("--shape %s=%g", p.Name, v))
		}
	}
	return strings.Join(parts, " ")
}
