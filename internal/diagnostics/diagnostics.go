// Package diagnostics collects non-fatal warnings and notes the
// checker emits alongside its fatal errors (spec.md §2 row H, §7).
package diagnostics

import "github.com/cwbudde/sigil/internal/lexer"

// Level distinguishes a warning (something the program should
// probably address) from a note (informational only).
type Level string

const (
	Warning Level = "warning"
	Note    Level = "note"
)

// Code is a known diagnostic code. UnhandledFailures is the only one
// the checker currently emits (spec.md §4.6, §7).
type Code string

const UnhandledFailures Code = "UNHANDLED_FAILURES"

// Item is one recorded diagnostic.
type Item struct {
	Level   Level
	Code    Code
	Message string
	Pos     lexer.Position
}

// Diagnostics is an append-only collector. The zero value is ready to
// use; Items is never mutated in place by the checker, only appended
// to, matching the host's "append-only sink" ownership model
// (spec.md §5).
type Diagnostics struct {
	items []Item
}

// Warn appends a warning-level diagnostic.
func (d *Diagnostics) Warn(code Code, message string, pos lexer.Position) {
	d.items = append(d.items, Item{Level: Warning, Code: code, Message: message, Pos: pos})
}

// Note appends a note-level diagnostic.
func (d *Diagnostics) Note(code Code, message string, pos lexer.Position) {
	d.items = append(d.items, Item{Level: Note, Code: code, Message: message, Pos: pos})
}

// Items returns the diagnostics recorded so far, in emission order.
func (d *Diagnostics) Items() []Item {
	return d.items
}
