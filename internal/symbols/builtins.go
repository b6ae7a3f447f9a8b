package symbols

// KnownBuiltinIDs is the fixed table of dotted builtin identifiers the
// evaluator implements (spec.md §4.7 "Builtin table"), mirrored here so
// the symbol builder can validate that every Impl's builtin id is
// actually backed by something (spec.md §4.5's `_validate_catalog`
// step (c)), without the symbols package depending on internal/eval.
var KnownBuiltinIDs = map[string]struct{}{
	"core.int.add":   {},
	"core.float.add": {},

	"core.int.sub":   {},
	"core.float.sub": {},

	"core.int.mul":   {},
	"core.float.mul": {},

	"core.float.div": {},

	"core.int.neg":   {},
	"core.float.neg": {},

	"core.int.toFloat": {},

	"core.int.print":      {},
	"core.float.print":    {},
	"core.string.print":   {},
	"core.ordering.print": {},

	"core.int.cmp":   {},
	"core.float.cmp": {},
}

// IsKnownBuiltin reports whether id names a builtin the evaluator
// implements.
func IsKnownBuiltin(id string) bool {
	_, ok := KnownBuiltinIDs[id]
	return ok
}
