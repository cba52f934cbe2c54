package mesh

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestPoolTracksRelease(t *testing.T) {
	pool := NewPool()
	a := pool.MustBuild(Icosahedron(0.25))
	b := pool.MustBuild(Box(0.05, 0.05, 0.02))

	if pool.Live() != 2 {
		t.Fatalf("Live() = %d, want 2", pool.Live())
	}
	if a.ID() == b.ID() {
		t.Error("geometries share an id")
	}

	a.Release()
	a.Release()
	if !a.Released() {
		t.Error("Released() = false after Release")
	}
	if a.TriangleCount() != 0 {
		t.Error("released geometry kept its buffers")
	}
	if pool.Live() != 1 {
		t.Errorf("Live() = %d, want 1", pool.Live())
	}

	pool.ReleaseAll()
	created, released := pool.Stats()
	if pool.Live() != 0 || created != 2 || released != 2 {
		t.Errorf("Live=%d created=%d released=%d", pool.Live(), created, released)
	}
}

func TestOBJWriter(t *testing.T) {
	pool := NewPool()
	box := pool.MustBuild(Box(1, 1, 1))
	ico := pool.MustBuild(Icosahedron(1))

	var buf bytes.Buffer
	w := NewOBJWriter(&buf, "test")
	if err := w.Object("box", "shirt", box, mgl64.Translate3D(0, 1, 0)); err != nil {
		t.Fatal(err)
	}
	if err := w.Object("ico", "skin", ico, mgl64.Ident4()); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "# test\n") {
		t.Errorf("missing header: %q", out[:20])
	}
	if got := strings.Count(out, "\nv "); got != 8+12 {
		t.Errorf("vertex lines = %d, want 20", got)
	}
	if got := strings.Count(out, "\nf "); got != 12+20 {
		t.Errorf("face lines = %d, want 32", got)
	}
	// First icosahedron vertex follows the 8 box vertices.
	if !strings.Contains(out, "usemtl skin\nv ") || !strings.Contains(out, "\nf 9//13 ") {
		t.Errorf("second object does not continue global indices:\n%s", out)
	}
	// The box was translated up by one unit.
	if !strings.Contains(out, "v -0.50000 0.50000 -0.50000\n") {
		t.Error("box vertices were not transformed")
	}
}
