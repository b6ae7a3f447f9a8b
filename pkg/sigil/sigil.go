// Package sigil is the one public, non-internal entry point into the
// pipeline, mirroring the teacher's pkg/dwscript facade's role.
package sigil

import (
	"fmt"
	"io"
	"sort"

	"github.com/cwbudde/sigil/internal/ast"
	"github.com/cwbudde/sigil/internal/catalog"
	"github.com/cwbudde/sigil/internal/checker"
	"github.com/cwbudde/sigil/internal/diagnostics"
	"github.com/cwbudde/sigil/internal/eval"
	"github.com/cwbudde/sigil/internal/lower"
	"github.com/cwbudde/sigil/internal/parser"
	"github.com/cwbudde/sigil/internal/symbols"
)

// Host supplies everything Run needs: the program source, an optional
// prelude catalog override (name -> raw JSON text, same shape as
// internal/catalog's embedded data files), an output sink, and a
// diagnostics sink.
type Host interface {
	Source() string
	Prelude() map[string]string
	Stdout() io.Writer
	Diagnostics() *diagnostics.Diagnostics
}

// Run wires lexer -> parser -> lower -> catalog -> symbols -> checker
// -> eval over h and returns the first fatal error. Non-fatal warnings
// accumulate on h.Diagnostics() regardless of the outcome.
func Run(h Host) error {
	prog, err := parser.Parse(h.Source())
	if err != nil {
		return err
	}
	prog, err = lower.Program(prog)
	if err != nil {
		return err
	}

	prelude, err := loadPrelude(h.Prelude())
	if err != nil {
		return err
	}

	syms, err := symbols.Build(append(append([]ast.TopLevel{}, prelude...), prog.Items...))
	if err != nil {
		return err
	}

	c := checker.New(syms, h.Diagnostics())
	if err := c.Check(prog); err != nil {
		return err
	}

	ev := eval.New(syms, h.Stdout())
	return ev.Run(prog)
}

// loadPrelude returns the built-in embedded catalog when catalogs is
// empty, or parses each entry of catalogs (in name order, so symbol
// conflicts are reported deterministically) otherwise.
func loadPrelude(catalogs map[string]string) ([]ast.TopLevel, error) {
	if len(catalogs) == 0 {
		return catalog.Prelude()
	}

	names := make([]string, 0, len(catalogs))
	for name := range catalogs {
		names = append(names, name)
	}
	sort.Strings(names)

	var items []ast.TopLevel
	for _, name := range names {
		parsed, err := catalog.Load([]byte(catalogs[name]))
		if err != nil {
			return nil, fmt.Errorf("prelude catalog %q: %w", name, err)
		}
		items = append(items, parsed...)
	}
	return items, nil
}
