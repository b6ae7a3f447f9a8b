package catalog

import (
	"embed"

	"github.com/cwbudde/sigil/internal/ast"
)

//go:embed data/math.json data/cast.json data/ordering.json data/io.json
var preludeFS embed.FS

// preludeFiles lists the embedded catalogs in load order. math first
// establishes Addable/Subtractable/Multipliable/Negatable, cast adds
// the Float-only div and toFloat escape hatch, ordering adds Ord/cmp,
// and io adds Printable/print last since it is the only catalog that
// declares an attr (io); PrintErr is never declared in print's
// `failures` list (it stays empty), since its RaisedFailure is only
// ever raised by the evaluator wrapping a future host-sink error, not
// by anything the checker needs to track statically.
var preludeFiles = []string{
	"data/math.json",
	"data/cast.json",
	"data/ordering.json",
	"data/io.json",
}

// Prelude loads and concatenates every embedded catalog into one flat
// item slice, in a fixed, deterministic order.
func Prelude() ([]ast.TopLevel, error) {
	var items []ast.TopLevel
	for _, name := range preludeFiles {
		src, err := preludeFS.ReadFile(name)
		if err != nil {
			return nil, errf("reading embedded catalog %s: %v", name, err)
		}
		fileItems, err := Load(src)
		if err != nil {
			return nil, errf("loading embedded catalog %s: %v", name, err)
		}
		items = append(items, fileItems...)
	}
	return items, nil
}
