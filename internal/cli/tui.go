package cli

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mypoly/pkg/catalog"
	"github.com/matzehuels/mypoly/pkg/model"
	"github.com/matzehuels/mypoly/pkg/pipeline"
	"github.com/matzehuels/mypoly/pkg/render/raster"
	"github.com/matzehuels/mypoly/pkg/state"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Command
// =============================================================================

// tuiCommand creates the interactive customizer command.
func (c *CLI) tuiCommand() *cobra.Command {
	var (
		opts   stateOpts
		output string
	)

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Customize an avatar interactively",
		Long: `Customize an avatar in the terminal.

Move between rows with the arrow keys and cycle the selected part, color or
shape parameter with left and right. Press r to randomize, e to export a PNG
snapshot, s to save a preset and q to quit.

Exports go to -o when given, otherwise to $XDG_DATA_HOME/mypoly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTUI(cmd.Context(), &opts, output)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "export directory (default $XDG_DATA_HOME/mypoly)")

	return cmd
}

func (c *CLI) runTUI(ctx context.Context, opts *stateOpts, output string) error {
	st, err := opts.build(ctx, catalog.Default())
	if err != nil {
		return err
	}
	if output == "" {
		if output, err = dataDir(); err != nil {
			return err
		}
	}

	session := uuid.New()
	logger := loggerFromContext(ctx).With("session", session.String()[:8])
	logger.Info("customizer started", "variant", st.Variant(), "export_dir", output)

	m, err := NewCustomizerModel(ctx, st, CustomizerConfig{
		Session:   session,
		ExportDir: output,
		Seed:      uint64(time.Now().UnixNano()),
	})
	if err != nil {
		return err
	}
	defer m.Close()

	final, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(CustomizerModel); ok {
		for _, path := range fm.Exported {
			printFile(path)
		}
		logger.Info("customizer finished", "exports", len(fm.Exported), "state", fm.State.Key())
	}
	return nil
}

// =============================================================================
// CustomizerModel - Interactive avatar editing
// =============================================================================

type rowKind int

const (
	rowCategory rowKind = iota
	rowColor
	rowShape
)

// row is one editable line of the customizer.
type row struct {
	kind     rowKind
	category catalog.Category
	slot     catalog.Slot
	param    catalog.Param
}

func (r row) label() string {
	switch r.kind {
	case rowCategory:
		return string(r.category)
	case rowColor:
		return "color." + string(r.slot)
	}
	return r.param.Label
}

// CustomizerConfig configures a CustomizerModel.
type CustomizerConfig struct {
	Session   uuid.UUID
	ExportDir string
	Seed      uint64
}

// exportedMsg reports the end of an asynchronous export.
type exportedMsg struct {
	path string
	err  error
}

// CustomizerModel is the bubbletea model of the interactive customizer.
// The state and, for solid avatars, the live character are owned by the
// Update loop; only rasterization runs in a command goroutine.
type CustomizerModel struct {
	State    *state.State
	Char     *model.Character // nil for flat avatars
	Rows     []row
	Cursor   int
	Status   string
	Exported []string

	ctx       context.Context
	cfg       CustomizerConfig
	rng       *rand.Rand
	exporting bool
	exports   int // PNG exports started this session
}

// NewCustomizerModel creates a customizer editing st. For solid states the
// 3D character is assembled up front and kept in sync with every edit.
func NewCustomizerModel(ctx context.Context, st *state.State, cfg CustomizerConfig) (CustomizerModel, error) {
	m := CustomizerModel{
		State: st,
		Rows:  buildRows(st),
		ctx:   ctx,
		cfg:   cfg,
		rng:   state.NewRand(cfg.Seed),
	}
	if st.Variant() == catalog.Solid {
		ch, err := pipeline.Assemble(st)
		if err != nil {
			return m, err
		}
		m.Char = ch
	}
	return m, nil
}

// Close releases the live character, if any.
func (m CustomizerModel) Close() {
	if m.Char != nil {
		m.Char.Close()
	}
}

func buildRows(st *state.State) []row {
	cat := st.Catalog()
	var rows []row
	for _, c := range cat.Categories(st.Variant()) {
		rows = append(rows, row{kind: rowCategory, category: c})
	}
	for _, s := range cat.Slots(st.Variant()) {
		rows = append(rows, row{kind: rowColor, slot: s})
	}
	if st.Variant() == catalog.Solid {
		for _, p := range cat.Params() {
			rows = append(rows, row{kind: rowShape, param: p})
		}
	}
	return rows
}

func (m CustomizerModel) Init() tea.Cmd {
	return nil
}

func (m CustomizerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
			}
		case "left", "h":
			m.setStatus(m.cycle(-1))
		case "right", "l", "enter":
			m.setStatus(m.cycle(1))
		case "r":
			m.State.Randomize(m.rng)
			m.setStatus(m.sync())
			if m.Status == "" {
				m.Status = "randomized"
			}
		case "s":
			path := filepath.Join(m.cfg.ExportDir, m.filename(pipeline.FormatTOML))
			if err := mkdirFor(path); err != nil {
				m.Status = err.Error()
			} else if err := m.State.SaveFile(path); err != nil {
				m.Status = err.Error()
			} else {
				m.Status = "saved " + path
			}
		case "e":
			if m.exporting {
				return m, nil
			}
			svg, err := m.svg()
			if err != nil {
				m.Status = err.Error()
				return m, nil
			}
			m.exporting = true
			m.exports++
			m.Status = "exporting..."
			return m, m.export(svg)
		}
	case exportedMsg:
		m.exporting = false
		if msg.err != nil {
			m.Status = "export failed: " + msg.err.Error()
			return m, nil
		}
		m.Exported = append(m.Exported, msg.path)
		m.Status = "exported " + msg.path
	}
	return m, nil
}

func (m *CustomizerModel) setStatus(err error) {
	if err != nil {
		m.Status = err.Error()
		return
	}
	m.Status = ""
}

// cycle moves the value of the current row by delta steps.
func (m *CustomizerModel) cycle(delta int) error {
	if len(m.Rows) == 0 {
		return nil
	}
	r := m.Rows[m.Cursor]
	cat := m.State.Catalog()
	var err error
	switch r.kind {
	case rowCategory:
		opts := cat.ListOptions(r.category)
		i := indexOf(len(opts), func(i int) bool { return opts[i].ID == m.State.Selection(r.category) })
		err = m.State.Select(r.category, opts[wrap(i+delta, len(opts))].ID)
	case rowColor:
		pal := cat.ListPalette(r.slot)
		cur, _ := m.State.Color(r.slot)
		i := indexOf(len(pal), func(i int) bool { return pal[i] == cur })
		if i < 0 && delta < 0 {
			i = 0
		}
		err = m.State.SetColor(r.slot, pal[wrap(i+delta, len(pal))])
	case rowShape:
		v, _ := m.State.ShapeParam(r.param.Name)
		v = stepParam(r.param, v, delta)
		err = m.State.SetShapeParam(r.param.Name, v)
	}
	if err != nil {
		return err
	}
	return m.sync()
}

// sync pushes the state into the live character.
func (m *CustomizerModel) sync() error {
	if m.Char == nil {
		return nil
	}
	return m.Char.Apply(m.State)
}

// svg renders the current preview synchronously.
func (m CustomizerModel) svg() ([]byte, error) {
	opts := pipeline.Options{Format: pipeline.FormatSVG}
	if m.Char != nil {
		return pipeline.RenderCharacter(m.ctx, m.Char, opts)
	}
	return pipeline.Render(m.ctx, m.State, opts)
}

// export rasterizes svg off the Update loop and writes the PNG.
func (m CustomizerModel) export(svg []byte) tea.Cmd {
	ctx := m.ctx
	path := filepath.Join(m.cfg.ExportDir, m.filename(pipeline.FormatPNG))
	return func() tea.Msg {
		data, err := raster.Export(ctx, svg)
		if err == nil {
			err = writeFile(path, data)
		}
		return exportedMsg{path: path, err: err}
	}
}

// filename names output files after the session. PNG exports carry a
// sequence number so repeated exports in one session do not overwrite each
// other; the saved TOML state is a single file that each save replaces.
func (m CustomizerModel) filename(format string) string {
	name := strings.TrimSuffix(raster.DefaultFilename, filepath.Ext(raster.DefaultFilename))
	name += "-" + m.cfg.Session.String()[:8]
	if format == pipeline.FormatPNG {
		name += fmt.Sprintf("-%d", m.exports)
	}
	return name + pipeline.Extension(format)
}

func (m CustomizerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("mypoly · %s avatar", m.State.Variant())))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ row  ←/→ change  r random  e export  s save  q quit"))
	b.WriteString("\n\n")

	for i, r := range m.Rows {
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		b.WriteString(cursor)
		b.WriteString(style.Width(18).Render(r.label()))
		b.WriteString(m.value(r))
		b.WriteString("\n")
	}

	if m.Char != nil {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d parts · %d geometries live",
			countParts(m.Char.Root()), m.Char.Pool().Live())))
		b.WriteString("\n")
	}
	if m.Status != "" {
		b.WriteString("\n")
		b.WriteString(StyleDim.Render("  " + m.Status))
		b.WriteString("\n")
	}
	return b.String()
}

func (m CustomizerModel) value(r row) string {
	switch r.kind {
	case rowCategory:
		id := m.State.Selection(r.category)
		opt, err := m.State.Catalog().GetOption(r.category, id)
		if err != nil {
			return id
		}
		return StyleValue.Render(opt.Name) + " " + listDimStyle.Render(id)
	case rowColor:
		c, _ := m.State.Color(r.slot)
		return swatch(c) + " " + StyleValue.Render(c.Hex())
	}
	v, _ := m.State.ShapeParam(r.param.Name)
	return shapeBar(r.param, v) + " " + StyleNumber.Render(fmt.Sprintf("%.2f", v))
}

// =============================================================================
// Helpers
// =============================================================================

func indexOf(n int, match func(int) bool) int {
	for i := range n {
		if match(i) {
			return i
		}
	}
	return -1
}

// wrap maps i onto [0, n).
func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// stepParam moves v by delta steps, clamped to the parameter bounds and
// snapped to the step grid.
func stepParam(p catalog.Param, v float64, delta int) float64 {
	step := p.Step
	if step <= 0 {
		step = (p.Max - p.Min) / 10
	}
	v = math.Round((v+float64(delta)*step)/step) * step
	v = math.Round(v*1e6) / 1e6
	return math.Max(p.Min, math.Min(p.Max, v))
}

// shapeBar draws v's position within the parameter range.
func shapeBar(p catalog.Param, v float64) string {
	const width = 14
	filled := int(math.Round((v - p.Min) / (p.Max - p.Min) * width))
	filled = max(0, min(width, filled))
	return StyleHighlight.Render(strings.Repeat("█", filled)) + listDimStyle.Render(strings.Repeat("░", width-filled))
}

func countParts(root *model.Node) int {
	n := 0
	model.Walk(root, func(node *model.Node, _ int) bool {
		if !node.IsGroup() {
			n++
		}
		return true
	})
	return n
}

func mkdirFor(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
