package eval

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/sigil/internal/ast"
	"github.com/cwbudde/sigil/internal/catalog"
	"github.com/cwbudde/sigil/internal/lower"
	"github.com/cwbudde/sigil/internal/parser"
	"github.com/cwbudde/sigil/internal/symbols"
	"github.com/gkampitakis/go-snaps/snaps"
)

// TestFixtures runs every testdata/fixtures/*.sigil script end to end
// through the full pipeline and snapshots its printed output plus
// whatever error (if any) terminated it.
func TestFixtures(t *testing.T) {
	paths, err := filepath.Glob("testdata/fixtures/*.sigil")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(paths) == 0 {
		t.Fatal("no fixtures found")
	}

	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".sigil")
		t.Run(name, func(t *testing.T) {
			src, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read %s: %v", path, err)
			}
			snaps.MatchSnapshot(t, fmt.Sprintf("%s_output", name), runFixture(t, string(src)))
		})
	}
}

// runFixture drives one fixture through parse -> lower -> prelude ->
// symbols -> eval, returning its printed output followed by an
// "error: ..." line if the pipeline didn't complete cleanly.
func runFixture(t *testing.T, src string) string {
	t.Helper()

	prog, err := parser.Parse(src)
	if err != nil {
		return "error: " + err.Error()
	}
	prog, err = lower.Program(prog)
	if err != nil {
		return "error: " + err.Error()
	}
	prelude, err := catalog.Prelude()
	if err != nil {
		t.Fatalf("prelude: %v", err)
	}
	syms, err := symbols.Build(append(append([]ast.TopLevel{}, prelude...), prog.Items...))
	if err != nil {
		return "error: " + err.Error()
	}

	var out bytes.Buffer
	ev := New(syms, &out)
	runErr := ev.Run(prog)

	result := out.String()
	if runErr != nil {
		result += "error: " + runErr.Error()
	}
	return result
}
