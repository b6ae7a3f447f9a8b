package eval

// Cell is a named binding: a Value plus whether it was declared
// mutable (`var`) or immutable (`let`). AssignStmt re-binds the name
// to a new Cell carrying the original Mutable flag (spec.md §4.7).
type Cell struct {
	Value   Value
	Mutable bool
}

// Environment is sigil's flat binding scope: one for the top-level
// program, and a fresh one per function call (spec.md §9 shrinks the
// teacher's arbitrarily nested block scopes down to this two-level
// model, since sigil has no nested blocks).
type Environment struct {
	vars map[string]*Cell
}

// NewEnvironment returns an empty Environment ready to use.
func NewEnvironment() *Environment {
	return &Environment{vars: map[string]*Cell{}}
}

// Get looks up name's current Cell.
func (e *Environment) Get(name string) (*Cell, bool) {
	c, ok := e.vars[name]
	return c, ok
}

// Define binds name to a new Cell, overwriting any prior binding.
func (e *Environment) Define(name string, v Value, mutable bool) {
	e.vars[name] = &Cell{Value: v, Mutable: mutable}
}
