package cli

import (
	"context"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/matzehuels/mypoly/pkg/catalog"
	"github.com/matzehuels/mypoly/pkg/state"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, v catalog.Variant) CustomizerModel {
	t.Helper()
	m, err := NewCustomizerModel(context.Background(), state.New(catalog.Default(), v), CustomizerConfig{
		Session:   uuid.New(),
		ExportDir: t.TempDir(),
		Seed:      7,
	})
	if err != nil {
		t.Fatalf("NewCustomizerModel() error: %v", err)
	}
	t.Cleanup(m.Close)
	return m
}

func press(m CustomizerModel, keys ...string) CustomizerModel {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(CustomizerModel)
	}
	return m
}

func TestCustomizerRows(t *testing.T) {
	flat := newTestModel(t, catalog.Flat)
	if len(flat.Rows) != 8 {
		t.Errorf("flat rows = %d, want 4 categories + 4 slots", len(flat.Rows))
	}
	if flat.Char != nil {
		t.Error("flat customizer should not assemble a character")
	}

	solid := newTestModel(t, catalog.Solid)
	if len(solid.Rows) != 10 {
		t.Errorf("solid rows = %d, want 2 categories + 5 slots + 3 params", len(solid.Rows))
	}
	if solid.Char == nil {
		t.Error("solid customizer should assemble a character")
	}
}

func TestCustomizerCursor(t *testing.T) {
	m := newTestModel(t, catalog.Flat)

	m = press(m, "up")
	if m.Cursor != 0 {
		t.Errorf("cursor should stop at 0, got %d", m.Cursor)
	}
	m = press(m, "down", "j", "down")
	if m.Cursor != 3 {
		t.Errorf("cursor = %d, want 3", m.Cursor)
	}
	for range 20 {
		m = press(m, "down")
	}
	if m.Cursor != len(m.Rows)-1 {
		t.Errorf("cursor should stop at last row, got %d", m.Cursor)
	}
}

func TestCustomizerCycleSelection(t *testing.T) {
	m := newTestModel(t, catalog.Flat)

	m = press(m, "right")
	if got := m.State.Selection(catalog.Face); got != "face-2" {
		t.Errorf("face = %q, want face-2", got)
	}
	m = press(m, "left", "left")
	if got := m.State.Selection(catalog.Face); got != "face-3" {
		t.Errorf("face should wrap to face-3, got %q", got)
	}
	if m.Status != "" {
		t.Errorf("unexpected status %q", m.Status)
	}
}

func TestCustomizerCycleColor(t *testing.T) {
	m := newTestModel(t, catalog.Flat)
	pal := catalog.Default().ListPalette(catalog.SlotSkin)

	m = press(m, "down", "down", "down", "down", "right")
	if c, _ := m.State.Color(catalog.SlotSkin); c != pal[1] {
		t.Errorf("skin = %s, want %s", c.Hex(), pal[1].Hex())
	}
}

func TestCustomizerShapeStep(t *testing.T) {
	m := newTestModel(t, catalog.Solid)

	// height is the first shape row, after 2 categories and 5 slots.
	for range 7 {
		m = press(m, "down")
	}
	m = press(m, "right", "right")
	if got, _ := m.State.ShapeParam(catalog.ParamHeight); got != 1.1 {
		t.Errorf("height = %g, want 1.1", got)
	}
	if err := m.State.Validate(); err != nil {
		t.Errorf("state invalid after step: %v", err)
	}
}

func TestCustomizerRandomizeDeterministic(t *testing.T) {
	a := press(newTestModel(t, catalog.Solid), "r")
	b := press(newTestModel(t, catalog.Solid), "r")
	if !a.State.Equal(b.State) {
		t.Error("same seed should randomize to the same avatar")
	}
	if a.Status != "randomized" {
		t.Errorf("status = %q, want randomized", a.Status)
	}
}

func TestCustomizerSave(t *testing.T) {
	m := press(newTestModel(t, catalog.Flat), "right", "s")
	path, ok := strings.CutPrefix(m.Status, "saved ")
	if !ok {
		t.Fatalf("status = %q, want saved path", m.Status)
	}
	st, err := state.LoadFile(catalog.Default(), path)
	if err != nil {
		t.Fatal(err)
	}
	if !st.Equal(m.State) {
		t.Error("saved preset should match the edited state")
	}
}

func TestCustomizerExport(t *testing.T) {
	m := newTestModel(t, catalog.Flat)

	next, cmd := m.Update(key("e"))
	m = next.(CustomizerModel)
	if cmd == nil || !m.exporting {
		t.Fatal("export should start a command")
	}
	if _, again := m.Update(key("e")); again != nil {
		t.Error("second export should be ignored while one is running")
	}

	next, _ = m.Update(cmd())
	m = next.(CustomizerModel)
	if len(m.Exported) != 1 {
		t.Fatalf("status = %q, want one export", m.Status)
	}
	data, err := os.ReadFile(m.Exported[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "\x89PNG") {
		t.Error("export should be a PNG")
	}
}

func TestCustomizerRepeatedExports(t *testing.T) {
	m := newTestModel(t, catalog.Flat)

	for range 2 {
		next, cmd := m.Update(key("e"))
		m = next.(CustomizerModel)
		if cmd == nil {
			t.Fatalf("export did not start: %s", m.Status)
		}
		next, _ = m.Update(cmd())
		m = next.(CustomizerModel)
	}

	if len(m.Exported) != 2 {
		t.Fatalf("exported = %v, want 2 paths", m.Exported)
	}
	if m.Exported[0] == m.Exported[1] {
		t.Fatalf("second export reused path %s", m.Exported[0])
	}
	for _, path := range m.Exported {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("export %s missing: %v", path, err)
		}
	}
}

func TestCustomizerView(t *testing.T) {
	m := newTestModel(t, catalog.Solid)
	view := m.View()
	for _, want := range []string{"solid avatar", "headShape", "color.shirt", "Height", "parts"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestStepParam(t *testing.T) {
	p := catalog.Param{Name: "height", Min: 0.8, Max: 1.5, Default: 1, Step: 0.05}
	tests := []struct {
		v     float64
		delta int
		want  float64
	}{
		{1, 1, 1.05},
		{1, -4, 0.8},
		{0.8, -1, 0.8},
		{1.5, 1, 1.5},
		{1.02, 0, 1},
	}
	for _, tt := range tests {
		if got := stepParam(p, tt.v, tt.delta); got != tt.want {
			t.Errorf("stepParam(%g, %d) = %g, want %g", tt.v, tt.delta, got, tt.want)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct{ i, n, want int }{
		{0, 3, 0},
		{3, 3, 0},
		{-1, 3, 2},
		{-4, 3, 2},
	}
	for _, tt := range tests {
		if got := wrap(tt.i, tt.n); got != tt.want {
			t.Errorf("wrap(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.want)
		}
	}
}
