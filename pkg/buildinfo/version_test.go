package buildinfo

import (
	"strings"
	"testing"
)

func TestShort(t *testing.T) {
	v, c := Version, Commit
	defer func() { Version, Commit = v, c }()

	Version, Commit = "v1.0.0", "none"
	if got := Short(); got != "mypoly v1.0.0" {
		t.Errorf("Short() = %q", got)
	}
	Commit = "0123456789abcdef"
	if got := Short(); got != "mypoly v1.0.0 (0123456)" {
		t.Errorf("Short() = %q", got)
	}
}

func TestTemplate(t *testing.T) {
	if !strings.HasPrefix(Template(), "{{.Name}} version ") {
		t.Errorf("Template() = %q", Template())
	}
}
