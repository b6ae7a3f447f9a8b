// Package effect implements the FailureSet algebra the checker and
// evaluator share: the closed FailureId enumeration and the union/
// remove/membership operations spec.md §3 allows on sets of them.
package effect

import (
	"sort"

	"github.com/samber/lo"
)

// FailureId is a closed enumeration of symbolic failure names
// (spec.md §3). The zero value is not a valid FailureId.
type FailureId string

const (
	PrintErr      FailureId = "PrintErr"
	IOErr         FailureId = "IOErr"
	TimeErr       FailureId = "TimeErr"
	RandomErr     FailureId = "RandomErr"
	DivideByZero  FailureId = "DivideByZero"
	UnexpectedErr FailureId = "UnexpectedErr"
)

// knownFailureIds is the closed set §3 names; IsKnown rejects anything
// else so the checker can report an unknown failure name up front.
var knownFailureIds = map[FailureId]struct{}{
	PrintErr:      {},
	IOErr:         {},
	TimeErr:       {},
	RandomErr:     {},
	DivideByZero:  {},
	UnexpectedErr: {},
}

// IsKnown reports whether id is one of the closed FailureId names.
func IsKnown(id FailureId) bool {
	_, ok := knownFailureIds[id]
	return ok
}

// Set is an immutable set of FailureIds. The zero value is the empty
// set. Every operation returns a new Set; none mutates its receiver.
type Set struct {
	ids []FailureId
}

// Empty is the empty FailureSet.
var Empty = Set{}

// NewSet builds a Set from ids, deduplicating via samber/lo.
func NewSet(ids ...FailureId) Set {
	if len(ids) == 0 {
		return Empty
	}
	return Set{ids: lo.Uniq(ids)}
}

// Union returns the set union of s and other.
func (s Set) Union(other Set) Set {
	return NewSet(append(append([]FailureId{}, s.ids...), other.ids...)...)
}

// Remove returns s with id removed, if present.
func (s Set) Remove(id FailureId) Set {
	return Set{ids: lo.Without(s.ids, id)}
}

// Contains reports whether id is a member of s.
func (s Set) Contains(id FailureId) bool {
	return lo.Contains(s.ids, id)
}

// IsEmpty reports whether s has no members.
func (s Set) IsEmpty() bool {
	return len(s.ids) == 0
}

// Items returns s's members in a stable, sorted order, suitable for
// deterministic diagnostics and snapshot tests.
func (s Set) Items() []FailureId {
	out := append([]FailureId{}, s.ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Len reports the number of members of s.
func (s Set) Len() int {
	return len(s.ids)
}
